// Package assist implements the AI-assistance workflow of the problem page:
// entitlement gating, debounced completion fetches, insertion of accepted
// suggestions into the host editor, and the gated code review request.
//
// The package is UI-agnostic. A host supplies an Editor (cursor query,
// positioned edits, cursor moves), a Notifier for user-visible notices and
// a ReviewDisplay, and forwards code changes and key events to a Session.
package assist
