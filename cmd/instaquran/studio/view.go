package studio

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"instaquran/cmd/instaquran/ui"
	"instaquran/internal/card"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.styles.Header.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("InstaQuran"),
		m.styles.Subtitle.Render("Share a verse as a post or story"),
	))

	var right string
	switch {
	case m.showHelp:
		right = ui.RenderHelp(m.helpWidth(), m.styles.Theme.IsDark)
	case m.card != nil:
		right = m.renderPreview()
	}

	body := m.renderForm()
	if right != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", right)
	}

	sections := []string{header, lipgloss.NewStyle().Padding(1, 2).Render(body)}
	if m.notice != "" {
		st := m.styles.Success
		if m.noticeErr {
			st = m.styles.Error
		}
		sections = append(sections, lipgloss.NewStyle().PaddingLeft(2).Render(st.Render(m.notice)))
	}
	sections = append(sections, m.styles.Footer.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) helpWidth() int {
	w := m.width - 50
	if w < 40 {
		w = 40
	}
	return w
}

func (m Model) renderForm() string {
	rows := []string{
		m.renderInput("Chapter", m.chapter.View(), m.form.ChapterError, m.focus == focusChapter),
		m.renderInput("Verse", m.verse.View(), m.form.VerseError, m.focus == focusVerse),
	}
	for _, f := range []focus{focusBackground, focusGradient, focusTheme, focusPhoto, focusDimension, focusArabic} {
		if m.visible(f) {
			rows = append(rows, m.renderOption(f))
		}
	}
	rows = append(rows, "", m.renderButton())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderInput(label, value, errMsg string, focused bool) string {
	st := m.styles.Field
	switch {
	case errMsg != "":
		st = m.styles.FieldInvalid
	case focused:
		st = m.styles.FieldFocused
	}
	line := lipgloss.JoinHorizontal(lipgloss.Center, m.styles.Label.Render(label), st.Render(value))
	// Reserve the error row so the form does not jump when messages appear.
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.FieldError.Render(errMsg))
}

func (m Model) renderOption(f focus) string {
	cf := field[f]
	var choices []string
	switch cf {
	case card.FieldBackground, card.FieldTheme, card.FieldDimension, card.FieldArabic:
		// Two-valued pickers show both choices side by side.
		other := m.opts.Next(cf)
		first, second := m.opts, other
		if isSecondChoice(cf, m.opts) {
			first, second = other, m.opts
		}
		for _, o := range []card.Options{first, second} {
			st := m.styles.Option
			if o.Label(cf) == m.opts.Label(cf) {
				st = m.styles.OptionActive
				if m.focus == f {
					st = m.styles.OptionFocused
				}
			}
			choices = append(choices, st.Render(o.Label(cf)))
		}
	default:
		st := m.styles.OptionActive
		if m.focus == f {
			st = m.styles.OptionFocused
		}
		value := m.opts.Label(cf)
		if cf == card.FieldGradient {
			g := m.opts.GradientStops()
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(g.From)).Render("  ") +
				lipgloss.NewStyle().Background(lipgloss.Color(g.To)).Render("  ")
			choices = append(choices, swatch)
		}
		choices = append(choices, st.Render("‹ "+value+" ›"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Label.Render(cf.String()),
		strings.Join(choices, " "),
	)
}

// isSecondChoice reports whether o currently holds the second value of a two-valued field.
func isSecondChoice(f card.Field, o card.Options) bool {
	switch f {
	case card.FieldBackground:
		return o.Background == card.BackgroundImage
	case card.FieldTheme:
		return o.Theme == card.ThemeLight
	case card.FieldDimension:
		return o.Dimension == card.DimensionStory
	case card.FieldArabic:
		return !o.ShowArabic
	}
	return false
}

func (m Model) renderButton() string {
	if m.loading {
		return m.styles.Button.Render(m.spinner.View() + " Loading...")
	}
	st := m.styles.Button
	if m.focus == focusGenerate {
		st = m.styles.ButtonFocused
	}
	return st.Render("Generate Post")
}

func (m Model) renderPreview() string {
	status := "Rendering..."
	switch {
	case m.card.IsFailed():
		status = "Fetch failed, press Enter to retry"
	case !m.rendering && !m.image.Empty():
		status = "Ready: ctrl+s save, ctrl+y copy"
	case !m.rendering:
		status = "Not rendered"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.RenderCard(*m.card),
		m.styles.Muted.Render(status),
	)
}
