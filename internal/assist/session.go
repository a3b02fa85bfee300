package assist

import (
	"context"
	"log"
	"sync"
	"time"
	"tle_zone_assist/internal/domain/model"
)

// Options configures a Session. Service is required; a nil Role reads as
// RoleAbsent.
type Options struct {
	Service  Service
	Editor   Editor
	Notifier Notifier
	Display  ReviewDisplay
	// Role returns the signed-in user's role at the time of the call.
	Role           func() model.Role
	Language       model.Language
	DebounceWindow time.Duration
	// OpenUpgrade runs when the user picks the "Upgrade" action of a notice.
	OpenUpgrade func()
	Logger      *log.Logger
}

// Session is the AI assistance state of one problem page: the autocomplete
// toggle, the pending suggestion, loading flags and the key binding that
// accepts suggestions. All methods are safe for concurrent use.
type Session struct {
	notifier    Notifier
	role        func() model.Role
	openUpgrade func()
	logger      *log.Logger

	fetcher *Fetcher
	reviews *ReviewWorkflow
	gate    *Gate

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	editor   Editor
	lang     model.Language
	enabled  bool
	pending  string
	code     string
	stable   string
	inFlight int
	closed   bool
}

func NewSession(opts Options) *Session {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}
	role := opts.Role
	if role == nil {
		role = func() model.Role { return RoleAbsent }
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	lang := opts.Language
	if lang == "" {
		lang = model.LanguageJavaScript
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		notifier:    notifier,
		role:        role,
		openUpgrade: opts.OpenUpgrade,
		logger:      logger,
		fetcher:     NewFetcher(opts.Service),
		reviews:     NewReviewWorkflow(opts.Service, notifier, opts.Display, opts.OpenUpgrade, logger),
		ctx:         ctx,
		cancel:      cancel,
		editor:      opts.Editor,
		lang:        lang,
	}
	s.gate = NewGate(opts.DebounceWindow, s.stabilized)
	return s
}

// Attach sets the editor that suggestions are inserted into.
func (s *Session) Attach(ed Editor) {
	s.mu.Lock()
	s.editor = ed
	s.mu.Unlock()
}

// Mount subscribes the accept key binding. The returned release must be
// called when the page goes away.
func (s *Session) Mount(keys *KeyEvents) (release func()) {
	return keys.Subscribe(s.HandleKey)
}

// Close stops the debounce gate, cancels outstanding requests and waits for
// them to return. Results arriving after Close are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.gate.Stop()
	s.cancel()
	s.wg.Wait()
}

// spawn runs fn on a goroutine that Close waits for. It reports false,
// without running fn, once the session is closed.
func (s *Session) spawn(fn func()) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		fn()
	}()
	return true
}

// Role is the signed-in user's current role.
func (s *Session) Role() model.Role {
	return s.role()
}

// SetCode records an edit. A completion is requested once the code has
// stayed unchanged for the debounce window.
func (s *Session) SetCode(code string) {
	s.mu.Lock()
	s.code = code
	s.mu.Unlock()
	s.gate.Update(code)
}

func (s *Session) Code() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code
}

// SetLanguage switches the editor language and drops the pending suggestion.
// With autocomplete on, the stable code is requested again in the new
// language.
func (s *Session) SetLanguage(lang model.Language) {
	s.mu.Lock()
	if lang == s.lang {
		s.mu.Unlock()
		return
	}
	s.lang = lang
	s.pending = ""
	enabled, stable := s.enabled, s.stable
	s.mu.Unlock()

	if enabled && stable != "" {
		s.spawn(func() { s.FetchSuggestion(s.ctx, stable) })
	}
}

func (s *Session) Language() model.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// stabilized runs on the gate's timer goroutine.
func (s *Session) stabilized(code string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stable = code
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	s.FetchSuggestion(s.ctx, code)
}

// ToggleAutocomplete flips autocomplete and returns the new state. Users
// without the feature get an upgrade notice and the toggle stays off.
// Turning it on drops any stale suggestion and requests one for the current
// stable code.
func (s *Session) ToggleAutocomplete() bool {
	if !IsEntitled(s.role(), model.FeatureAutocomplete) {
		s.mu.Lock()
		s.enabled = false
		s.mu.Unlock()
		s.notifier.Notify(upgradeNotice(MsgUpgradeAutocomplete, model.NotEntitledMessage, s.openUpgrade))
		return false
	}

	s.mu.Lock()
	s.enabled = !s.enabled
	enabled := s.enabled
	stable := s.stable
	if enabled {
		s.pending = ""
	}
	s.mu.Unlock()

	if enabled && stable != "" {
		s.spawn(func() { s.FetchSuggestion(s.ctx, stable) })
	}
	return enabled
}

func (s *Session) AutocompleteEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *Session) PendingSuggestion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Loading reports whether a completion request is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// FetchSuggestion requests a completion for code and stores it as the
// pending suggestion. Nothing is sent when autocomplete is off, code is
// empty or the user is not entitled. It reports whether a suggestion was
// stored. Responses overtaken by a newer request, or arriving after Close,
// are discarded.
func (s *Session) FetchSuggestion(ctx context.Context, code string) bool {
	s.mu.Lock()
	enabled, lang, closed := s.enabled, s.lang, s.closed
	s.mu.Unlock()
	if closed || !enabled || code == "" || !IsEntitled(s.role(), model.FeatureAutocomplete) {
		return false
	}

	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()

	res, id := s.fetcher.Fetch(ctx, code, lang)

	s.mu.Lock()
	s.inFlight--
	if s.closed || !s.fetcher.IsLatest(id) {
		s.mu.Unlock()
		return false
	}
	switch {
	case res.Success:
		s.pending = res.Suggestion
		s.mu.Unlock()
		return true
	case res.Denied:
		s.enabled = false
		s.mu.Unlock()
		s.notifier.Notify(upgradeNotice(MsgAutocompleteProOnly, model.NotEntitledMessage, s.openUpgrade))
		return false
	default:
		s.mu.Unlock()
		s.logger.Printf("WARN: ai completion failed: %s", res.FailureReason)
		return false
	}
}

// AcceptSuggestion inserts the pending suggestion at the cursor. It reports
// false when there is nothing to accept or no editor is attached.
func (s *Session) AcceptSuggestion() bool {
	s.mu.Lock()
	ed, suggestion := s.editor, s.pending
	s.mu.Unlock()

	if _, _, ok := Accept(ed, suggestion); !ok {
		return false
	}

	s.mu.Lock()
	if s.pending == suggestion {
		s.pending = ""
	}
	s.mu.Unlock()
	s.notifier.Notify(Notice{Level: LevelSuccess, Message: MsgSuggestionAccepted})
	return true
}

// HandleKey accepts the pending suggestion on Ctrl+Shift and suppresses the
// key's default action when it does.
func (s *Session) HandleKey(ev *KeyEvent) {
	if ev == nil || !ev.Ctrl || !ev.Shift {
		return
	}
	if s.PendingSuggestion() == "" {
		return
	}
	ev.PreventDefault()
	s.AcceptSuggestion()
}

// RequestReview runs the review workflow for the current code and language.
func (s *Session) RequestReview(ctx context.Context, last *model.Submission) (string, bool) {
	s.mu.Lock()
	code, lang := s.code, s.lang
	s.mu.Unlock()
	return s.reviews.Request(ctx, last, code, lang, s.role())
}

func (s *Session) ReviewLoading() bool {
	return s.reviews.Loading()
}

// LastReview is the text of the most recent successful review.
func (s *Session) LastReview() string {
	return s.reviews.Review()
}
