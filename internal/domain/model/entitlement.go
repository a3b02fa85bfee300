package model

// Feature names an AI capability gated by subscription tier.
type Feature string

const (
	FeatureAutocomplete Feature = "autocomplete"
	FeatureReview       Feature = "review"
)

// NotEntitledMessage is the message the assistance API returns to callers
// whose tier does not include AI features.
const NotEntitledMessage = "This feature is only available for PRO users"

// IsEntitled reports whether role may use feature. Every AI feature is
// available to PRO and ADMIN and to nobody else.
func IsEntitled(role Role, feature Feature) bool {
	switch feature {
	case FeatureAutocomplete, FeatureReview:
		return role == RolePro || role == RoleAdmin
	}
	return false
}
