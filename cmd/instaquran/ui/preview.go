package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"instaquran/internal/card"
)

// Terminal cells are roughly twice as tall as they are wide.
const (
	pxPerCol = 10
	pxPerRow = 20
)

// Photo themes cannot be drawn in a terminal, so each gets a flat backdrop.
var photoBackdrop = map[card.Theme]string{
	card.ThemeDark:  "#1f2937",
	card.ThemeLight: "#e5e7eb",
}

// PreviewSize returns the preview size in cells for a dimension.
func PreviewSize(d card.Dimension) (cols, rows int) {
	s := card.Options{Dimension: d}.Size()
	return s.Width / pxPerCol, s.Height / pxPerRow
}

// RenderCard draws a terminal approximation of c: the gradient is blended row by row,
// text uses the card's colours and the layout keeps the aspect of the chosen format.
func RenderCard(c card.Card) string {
	cols, rows := PreviewSize(c.Options.Dimension)
	inner := cols - 4

	arabic := c.Options.ArabicStyle()
	translation := c.Options.TranslationStyle()

	var body []styledLine
	// A failed card carries its message in the Arabic slot.
	if (c.Options.ShowArabic || c.IsFailed()) && c.Arabic != "" {
		body = append(body, wrap(c.Arabic, inner, arabic)...)
		body = append(body, styledLine{})
	}
	if c.Translation != "" {
		body = append(body, wrap(`"`+c.Translation+`"`, inner, translation)...)
	}
	body = append(body, styledLine{}, styledLine{text: c.Reference.Key(), style: arabic})

	// Keep the reference visible when the text is longer than the card.
	if len(body) > rows {
		body = append(body[:rows-1], body[len(body)-1])
	}

	top := (rows - len(body)) / 2
	lines := make([]string, rows)
	for i := range lines {
		bg := rowBackground(c.Options, i, rows)
		base := lipgloss.NewStyle().
			Width(cols).
			Align(lipgloss.Center).
			Background(lipgloss.Color(bg))

		var line styledLine
		if j := i - top; j >= 0 && j < len(body) {
			line = body[j]
		}
		if line.text == "" {
			lines[i] = base.Render("")
			continue
		}
		st := base.Foreground(lipgloss.Color(line.style.Color)).
			Italic(line.style.Italic).
			Bold(line.style.Semibold)
		lines[i] = st.Render(line.text)
	}
	return strings.Join(lines, "\n")
}

type styledLine struct {
	text  string
	style card.TextStyle
}

func wrap(text string, width int, style card.TextStyle) []styledLine {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	var out []styledLine
	for _, l := range strings.Split(wrapped, "\n") {
		out = append(out, styledLine{text: strings.TrimSpace(l), style: style})
	}
	return out
}

func rowBackground(o card.Options, row, rows int) string {
	if o.Background == card.BackgroundImage {
		return photoBackdrop[o.Theme]
	}
	g := o.GradientStops()
	if rows <= 1 {
		return g.From
	}
	return Blend(g.From, g.To, float64(row)/float64(rows-1))
}

// Blend mixes two #rrggbb colours; t=0 is from and t=1 is to.
func Blend(from, to string, t float64) string {
	fr, fg, fb := parseHex(from)
	tr, tg, tb := parseHex(to)
	mix := func(a, b int) int {
		return a + int(float64(b-a)*t+0.5*sign(b-a))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(fr, tr), mix(fg, tg), mix(fb, tb))
}

func sign(n int) float64 {
	if n < 0 {
		return -1
	}
	return 1
}

func parseHex(s string) (r, g, b int) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
