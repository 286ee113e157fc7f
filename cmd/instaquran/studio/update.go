package studio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"instaquran/internal/card"
	"instaquran/internal/export"
	"instaquran/internal/logging"
	"instaquran/internal/quran"
	"instaquran/internal/render"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case validatedMsg:
		m.form = msg.state
		return m, m.s.listen()

	case fetchedMsg:
		return m.handleFetched(msg)

	case renderedMsg:
		cmd := m.handleRendered(msg)
		return m, tea.Batch(cmd, m.s.listen())

	case exportedMsg:
		if msg.err != nil {
			cmd := m.setNotice(describeExportError(msg.err), true)
			return m, cmd
		}
		cmd := m.setNotice(msg.text, false)
		return m, cmd

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other textinput internals.
	var cmd tea.Cmd
	switch m.focus {
	case focusChapter:
		m.chapter, cmd = m.chapter.Update(msg)
	case focusVerse:
		m.verse, cmd = m.verse.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.s.close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1), nil

	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1), nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Save):
		return m.exportImage(false)

	case key.Matches(msg, m.keys.CopyImage):
		return m.exportImage(true)

	case key.Matches(msg, m.keys.CopyText):
		return m.copyCaption()
	}

	if f, ok := field[m.focus]; ok {
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.changeOption(m.opts.Prev(f))
		case key.Matches(msg, m.keys.Right):
			return m.changeOption(m.opts.Next(f))
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// updateInputs forwards a key to the focused text field and reports any change to the
// controller. The raw value is echoed at once; errors follow after the debounce.
func (m Model) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusChapter:
		before := m.chapter.Value()
		m.chapter, cmd = m.chapter.Update(msg)
		if v := m.chapter.Value(); v != before {
			m.s.controller.SetChapter(v)
			m.form = m.s.controller.State()
		}
	case focusVerse:
		before := m.verse.Value()
		m.verse, cmd = m.verse.Update(msg)
		if v := m.verse.Value(); v != before {
			m.s.controller.SetVerse(v)
			m.form = m.s.controller.State()
		}
	}
	return m, cmd
}

func (m Model) visible(f focus) bool {
	if cf, ok := field[f]; ok {
		return m.opts.Visible(cf)
	}
	return true
}

func (m Model) moveFocus(delta int) Model {
	next := m.focus
	for range focusCount {
		next = focus((int(next) + delta + int(focusCount)) % int(focusCount))
		if m.visible(next) {
			break
		}
	}
	m.focus = next

	m.chapter.Blur()
	m.verse.Blur()
	switch m.focus {
	case focusChapter:
		m.chapter.Focus()
	case focusVerse:
		m.verse.Focus()
	}
	return m
}

func (m Model) changeOption(opts card.Options) (tea.Model, tea.Cmd) {
	m.opts = opts
	if m.card != nil {
		c := m.card.WithOptions(opts)
		m.card = &c
		m.scheduleRender()
	}
	return m, nil
}

// scheduleRender asks the preview debouncer for a render of the current card. Results
// for older revisions are dropped when they arrive.
func (m *Model) scheduleRender() {
	m.revision++
	m.rendering = true
	m.s.preview.Call(renderJob{revision: m.revision, card: *m.card})
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	ref, ok := m.s.controller.Submit()
	m.form = m.s.controller.State()
	if !ok {
		cmd := m.setNotice("Check the chapter and verse", true)
		return m, cmd
	}

	m.loading = true
	m.requestID = uuid.NewString()
	logging.Get(logging.CategoryUI).With("request_id", m.requestID).Info("generate %s", ref)
	return m, tea.Batch(m.spinner.Tick, m.fetch(m.requestID, ref))
}

func (m Model) fetch(requestID string, ref quran.Reference) tea.Cmd {
	s := m.s
	return func() tea.Msg {
		ctx := logging.WithRequestID(s.ctx, requestID)
		v, err := s.deps.Fetcher.Fetch(ctx, ref)
		return fetchedMsg{requestID: requestID, ref: ref, verse: v, err: err}
	}
}

func (m Model) handleFetched(msg fetchedMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID {
		return m, nil
	}
	m.loading = false

	var c card.Card
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		logging.Get(logging.CategoryUI).With("request_id", msg.requestID).Warn("fetch failed: %v", msg.err)
		c = card.Failed(msg.ref, m.opts)
	} else {
		c = card.New(msg.verse, m.opts)
	}
	m.card = &c
	m.image = render.Image{}
	m.scheduleRender()
	return m, nil
}

func (m *Model) handleRendered(msg renderedMsg) tea.Cmd {
	if msg.revision != m.revision {
		logging.UIDebug("dropping stale render %d (current %d)", msg.revision, m.revision)
		return nil
	}
	m.rendering = false
	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		return m.setNotice(fmt.Sprintf("Render failed: %v", msg.err), true)
	}
	m.image = msg.image
	return nil
}

func (m Model) ready() bool {
	return m.card != nil && !m.rendering && !m.image.Empty()
}

func (m Model) exportImage(toClipboard bool) (tea.Model, tea.Cmd) {
	if !m.ready() {
		cmd := m.setNotice(notReadyNotice, true)
		return m, cmd
	}
	img, name, s := m.image, m.card.FileName(), m.s
	if toClipboard {
		return m, func() tea.Msg {
			if err := s.deps.Clipboard.CopyImage(s.ctx, img); err != nil {
				return exportedMsg{err: err}
			}
			return exportedMsg{text: "Image copied to clipboard"}
		}
	}
	return m, func() tea.Msg {
		path, err := s.deps.Saver.Save(img, name)
		if err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{text: "Saved " + path}
	}
}

func (m Model) copyCaption() (tea.Model, tea.Cmd) {
	if !m.ready() {
		cmd := m.setNotice(notReadyNotice, true)
		return m, cmd
	}
	caption, s := m.card.Caption(), m.s
	return m, func() tea.Msg {
		if err := s.deps.Clipboard.CopyText(caption); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{text: "Caption copied to clipboard"}
	}
}

func describeExportError(err error) string {
	switch {
	case errors.Is(err, export.ErrClipboardUnavailable):
		return "No clipboard tool found (install wl-copy or xclip)"
	case errors.Is(err, export.ErrNoImage):
		return notReadyNotice
	default:
		return fmt.Sprintf("Export failed: %v", err)
	}
}

// setNotice shows a transient message and schedules its removal.
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.noticeID++
	m.notice = text
	m.noticeErr = isErr
	id := m.noticeID
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}
