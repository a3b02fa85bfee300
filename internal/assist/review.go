package assist

import (
	"context"
	"log"
	"sync"
	"tle_zone_assist/internal/domain/model"
)

// ReviewDisplay presents a finished review, e.g. in a modal dialog.
type ReviewDisplay interface {
	ShowReview(review string)
}

type ReviewDisplayFunc func(string)

func (f ReviewDisplayFunc) ShowReview(review string) { f(review) }

// ReviewWorkflow requests an AI review of the user's accepted solution.
// At most one review request is in flight at a time.
type ReviewWorkflow struct {
	svc         Service
	notifier    Notifier
	display     ReviewDisplay
	openUpgrade func()
	logger      *log.Logger

	mu       sync.Mutex
	inFlight bool
	review   string
}

// NewReviewWorkflow builds a workflow. A nil logger selects log.Default.
func NewReviewWorkflow(svc Service, notifier Notifier, display ReviewDisplay, openUpgrade func(), logger *log.Logger) *ReviewWorkflow {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ReviewWorkflow{svc: svc, notifier: notifier, display: display, openUpgrade: openUpgrade, logger: logger}
}

// Request checks, in order, entitlement, the existence of a last submission
// and its Accepted status, stopping with a notice at the first failure. It
// then sends exactly one review request. It returns the review and true on
// success. A call made while another request is in flight returns false
// without any effect.
func (w *ReviewWorkflow) Request(ctx context.Context, last *model.Submission, code string, lang model.Language, role model.Role) (string, bool) {
	if !IsEntitled(role, model.FeatureReview) {
		w.notifier.Notify(upgradeNotice(MsgUpgradeReview, "This feature is only available for PRO members", w.openUpgrade))
		return "", false
	}
	if last == nil {
		w.notifier.Notify(Notice{Level: LevelInfo, Message: MsgSubmitFirst})
		return "", false
	}
	if !last.Accepted() {
		w.notifier.Notify(Notice{Level: LevelInfo, Message: MsgMustBeAccepted})
		return "", false
	}

	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return "", false
	}
	w.inFlight = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	resp, err := w.svc.Review(ctx, model.ReviewRequest{Code: code, Language: lang, SubmissionID: last.ID})
	switch {
	case err != nil && isNotEntitled(err):
		w.notifier.Notify(upgradeNotice(MsgUpgradeReview, "This feature is only available for PRO members", w.openUpgrade))
		return "", false
	case err != nil:
		w.logger.Printf("WARN: ai review for submission %s failed: %v", last.ID, err)
		w.notifier.Notify(Notice{Level: LevelError, Message: MsgReviewFailed})
		return "", false
	case !resp.Success:
		if resp.Message == model.NotEntitledMessage {
			w.notifier.Notify(upgradeNotice(MsgUpgradeReview, "This feature is only available for PRO members", w.openUpgrade))
			return "", false
		}
		w.logger.Printf("WARN: ai review for submission %s rejected: %s", last.ID, resp.Message)
		w.notifier.Notify(Notice{Level: LevelError, Message: MsgReviewFailed})
		return "", false
	}

	w.mu.Lock()
	w.review = resp.Review
	w.mu.Unlock()
	if w.display != nil {
		w.display.ShowReview(resp.Review)
	}
	return resp.Review, true
}

// Loading reports whether a review request is in flight.
func (w *ReviewWorkflow) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// Review returns the most recent successful review.
func (w *ReviewWorkflow) Review() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.review
}
