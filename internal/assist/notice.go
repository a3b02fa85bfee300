package assist

// Level is the severity of a user-visible notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Action is a button attached to a notice.
type Action struct {
	Label string
	Run   func()
}

type Notice struct {
	Level       Level
	Message     string
	Description string
	Action      *Action
}

type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}

const (
	MsgUpgradeAutocomplete = "Upgrade to PRO to use AI Autocomplete"
	MsgAutocompleteProOnly = "AI Autocomplete is for PRO users only"
	MsgUpgradeReview       = "Upgrade to PRO for AI Code Review"
	MsgSubmitFirst         = "Please submit your code first to get an AI review"
	MsgMustBeAccepted      = "Your submission must be accepted to get an AI review"
	MsgReviewFailed        = "Error getting code review"
	MsgSuggestionAccepted  = "Suggestion accepted!"
)

func upgradeNotice(message, description string, openUpgrade func()) Notice {
	if openUpgrade == nil {
		openUpgrade = func() {}
	}
	return Notice{
		Level:       LevelError,
		Message:     message,
		Description: description,
		Action:      &Action{Label: "Upgrade", Run: openUpgrade},
	}
}
