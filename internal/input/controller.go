// Package input bridges raw chapter/verse keystrokes to debounced validation.
//
// A Controller owns the InputState for one form. Raw values are echoed immediately;
// error messages follow once typing pauses for the configured delay. Submit never
// trusts the debounced state: it cancels whatever is pending and validates the current
// pair synchronously.
package input

import (
	"sync"
	"time"

	"instaquran/internal/debounce"
	"instaquran/internal/logging"
	"instaquran/internal/quran"
	"instaquran/internal/validation"
)

// DefaultDelay is how long typing must pause before validation runs.
const DefaultDelay = 500 * time.Millisecond

// Phase is the validation state of the field pair.
type Phase int

const (
	// Clean means nothing has been typed yet.
	Clean Phase = iota
	// Dirty means a validation is pending for the latest keystroke.
	Dirty
	// Valid means the last validation found no errors.
	Valid
	// Invalid means the last validation produced at least one message.
	Invalid
)

func (p Phase) String() string {
	switch p {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// State is a snapshot of the form.
type State struct {
	ChapterRaw   string
	VerseRaw     string
	ChapterError string
	VerseError   string
	Phase        Phase
}

// Errors returns the error messages as a validation.Errors.
func (s State) Errors() validation.Errors {
	return validation.Errors{Chapter: s.ChapterError, Verse: s.VerseError}
}

type pair struct {
	chapter string
	verse   string
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithScheduler replaces the runtime timer, mainly for tests.
func WithScheduler(s debounce.Scheduler) Option {
	return func(c *Controller) {
		c.scheduler = s
	}
}

// WithNotify registers fn to be called with the new state each time a debounced
// validation settles. fn runs on the timer goroutine without the controller lock held.
func WithNotify(fn func(State)) Option {
	return func(c *Controller) {
		c.notify = fn
	}
}

// Controller is the single writer of the form state.
type Controller struct {
	validator *validation.Validator
	delay     time.Duration
	scheduler debounce.Scheduler
	notify    func(State)

	// Built once in New and kept for the session.
	validate *debounce.Func[pair]

	mu     sync.Mutex
	state  State
	closed bool
}

// New creates a controller in the Clean phase.
func New(v *validation.Validator, opts ...Option) *Controller {
	c := &Controller{
		validator: v,
		delay:     DefaultDelay,
		scheduler: debounce.TimerScheduler{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.validate = debounce.New(c.delay, c.settle, debounce.WithScheduler(c.scheduler))
	return c
}

// SetChapter records a chapter keystroke and schedules validation of the pair.
func (c *Controller) SetChapter(raw string) {
	c.change(func(s *State) { s.ChapterRaw = raw })
}

// SetVerse records a verse keystroke and schedules validation of the pair.
func (c *Controller) SetVerse(raw string) {
	c.change(func(s *State) { s.VerseRaw = raw })
}

func (c *Controller) change(apply func(*State)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	apply(&c.state)
	c.state.Phase = Dirty
	p := pair{chapter: c.state.ChapterRaw, verse: c.state.VerseRaw}
	c.mu.Unlock()

	// Verse bounds depend on the chapter, so the pair is always validated together.
	c.validate.Call(p)
}

// settle is the debounced callback.
func (c *Controller) settle(p pair) {
	errs := c.validator.DescribeError(p.chapter, p.verse)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	// A keystroke that landed after this call was scheduled has already
	// rescheduled the debouncer; its own settle will write the result.
	if p.chapter != c.state.ChapterRaw || p.verse != c.state.VerseRaw {
		c.mu.Unlock()
		return
	}
	c.applyLocked(errs)
	snapshot := c.state
	notify := c.notify
	c.mu.Unlock()

	logging.InputDebug("validated %q:%q -> %s", p.chapter, p.verse, snapshot.Phase)
	if notify != nil {
		notify(snapshot)
	}
}

func (c *Controller) applyLocked(errs validation.Errors) {
	c.state.ChapterError = errs.Chapter
	c.state.VerseError = errs.Verse
	if errs.OK() {
		c.state.Phase = Valid
	} else {
		c.state.Phase = Invalid
	}
}

// Submit validates the current pair synchronously, discarding any pending debounced
// validation, and returns the reference when both fields are valid. A rejected submit
// leaves the messages in the state for display.
func (c *Controller) Submit() (quran.Reference, bool) {
	c.validate.Cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return quran.Reference{}, false
	}

	ref, errs := c.validator.Resolve(c.state.ChapterRaw, c.state.VerseRaw)
	c.applyLocked(errs)
	if !errs.OK() {
		logging.Input("submit rejected for %q:%q (chapter=%q verse=%q)",
			c.state.ChapterRaw, c.state.VerseRaw, errs.Chapter, errs.Verse)
		return quran.Reference{}, false
	}
	logging.Input("submit accepted for %s", ref)
	return ref, true
}

// State returns a snapshot of the form.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending reports whether a debounced validation is waiting to run.
func (c *Controller) Pending() bool {
	return c.validate.Pending()
}

// Close tears the controller down. A pending validation is cancelled and never
// reaches the state or the notify hook; later keystrokes are ignored.
func (c *Controller) Close() {
	c.validate.Stop()

	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
