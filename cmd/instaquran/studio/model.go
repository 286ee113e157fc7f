// Package studio is the interactive card generator: a form with debounced inline
// validation, a live terminal preview and save/copy actions.
package studio

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"instaquran/cmd/instaquran/ui"
	"instaquran/internal/card"
	"instaquran/internal/debounce"
	"instaquran/internal/input"
	"instaquran/internal/logging"
	"instaquran/internal/quran"
	"instaquran/internal/render"
	"instaquran/internal/validation"
	"instaquran/internal/verse"
)

const (
	// DefaultPreviewDelay is how long option changes must pause before a re-render.
	DefaultPreviewDelay = 300 * time.Millisecond

	noticeDuration = 3 * time.Second
	notReadyNotice = "Image is not ready yet"
)

// Fetcher retrieves verse content.
type Fetcher interface {
	Fetch(ctx context.Context, ref quran.Reference) (verse.Verse, error)
}

// Saver writes a rendered card to disk.
type Saver interface {
	Save(img render.Image, name string) (string, error)
}

// Clipboard receives images and captions.
type Clipboard interface {
	CopyImage(ctx context.Context, img render.Image) error
	CopyText(text string) error
}

// Deps are the collaborators the studio drives.
type Deps struct {
	Validator    *validation.Validator
	Fetcher      Fetcher
	Rasterizer   render.Rasterizer
	Saver        Saver
	Clipboard    Clipboard
	InputDelay   time.Duration
	PreviewDelay time.Duration
	Options      card.Options
	Styles       ui.Styles

	// Scheduler drives both debouncers; nil uses runtime timers.
	Scheduler debounce.Scheduler
}

type focus int

const (
	focusChapter focus = iota
	focusVerse
	focusBackground
	focusGradient
	focusTheme
	focusPhoto
	focusDimension
	focusArabic
	focusGenerate
	focusCount
)

// field maps option focus targets to the card field they change.
var field = map[focus]card.Field{
	focusBackground: card.FieldBackground,
	focusGradient:   card.FieldGradient,
	focusTheme:      card.FieldTheme,
	focusPhoto:      card.FieldPhoto,
	focusDimension:  card.FieldDimension,
	focusArabic:     card.FieldArabic,
}

type renderJob struct {
	revision uint64
	card     card.Card
}

// Messages

type validatedMsg struct {
	state input.State
}

type fetchedMsg struct {
	requestID string
	ref       quran.Reference
	verse     verse.Verse
	err       error
}

type renderedMsg struct {
	revision uint64
	image    render.Image
	err      error
}

type exportedMsg struct {
	text string
	err  error
}

type clearNoticeMsg struct {
	id int
}

// session holds what every copy of the Model shares: the controller, the preview
// debouncer and the channel their timer callbacks post into.
type session struct {
	deps       Deps
	controller *input.Controller
	preview    *debounce.Func[renderJob]
	events     chan tea.Msg
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
	closeOnce  sync.Once
}

// send posts msg into the update loop unless the studio is shutting down.
func (s *session) send(msg tea.Msg) {
	select {
	case s.events <- msg:
	case <-s.done:
	}
}

// listen waits for the next message from a timer callback.
func (s *session) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.events:
			return msg
		case <-s.done:
			return nil
		}
	}
}

func (s *session) render(job renderJob) {
	img, err := s.deps.Rasterizer.Render(s.ctx, job.card)
	s.send(renderedMsg{revision: job.revision, image: img, err: err})
}

// close tears the session down: no validation, render or message outlives it.
func (s *session) close() {
	s.closeOnce.Do(func() {
		s.controller.Close()
		s.preview.Stop()
		s.cancel()
		close(s.done)
		if err := s.deps.Rasterizer.Close(); err != nil {
			logging.Get(logging.CategoryUI).Warn("rasterizer close: %v", err)
		}
		logging.UI("studio closed")
	})
}

// Model is the bubbletea model of the studio.
type Model struct {
	s      *session
	styles ui.Styles
	keys   keyMap
	help   help.Model

	chapter textinput.Model
	verse   textinput.Model
	spinner spinner.Model
	focus   focus

	form input.State
	opts card.Options

	loading   bool
	requestID string
	card      *card.Card

	revision  uint64
	rendering bool
	image     render.Image

	notice    string
	noticeErr bool
	noticeID  int

	showHelp bool
	width    int
	height   int
	quitting bool
}

// New builds the studio. Call Close (or quit from the UI) to release it.
func New(deps Deps) Model {
	if deps.Validator == nil {
		deps.Validator = validation.Default()
	}
	if deps.InputDelay <= 0 {
		deps.InputDelay = input.DefaultDelay
	}
	if deps.PreviewDelay <= 0 {
		deps.PreviewDelay = DefaultPreviewDelay
	}
	if deps.Scheduler == nil {
		deps.Scheduler = debounce.TimerScheduler{}
	}
	if deps.Options == (card.Options{}) {
		deps.Options = card.DefaultOptions()
	}
	styles := deps.Styles
	if styles.Theme.Primary == "" {
		styles = ui.DefaultStyles()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		deps:   deps,
		events: make(chan tea.Msg, 16),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	s.controller = input.New(deps.Validator,
		input.WithDelay(deps.InputDelay),
		input.WithScheduler(deps.Scheduler),
		input.WithNotify(func(st input.State) { s.send(validatedMsg{state: st}) }),
	)
	s.preview = debounce.New(deps.PreviewDelay, s.render, debounce.WithScheduler(deps.Scheduler))

	chapter := textinput.New()
	chapter.Placeholder = "1-114"
	chapter.CharLimit = 8
	chapter.Width = 20
	chapter.Prompt = ""
	chapter.Focus()

	verseInput := textinput.New()
	verseInput.Placeholder = "verse"
	verseInput.CharLimit = 8
	verseInput.Width = 20
	verseInput.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	logging.UI("studio started")
	return Model{
		s:       s,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    help.New(),
		chapter: chapter,
		verse:   verseInput,
		spinner: sp,
		focus:   focusChapter,
		opts:    deps.Options,
		width:   80,
		height:  40,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.s.listen())
}

// Close releases the studio. It is safe to call more than once.
func (m Model) Close() {
	m.s.close()
}
