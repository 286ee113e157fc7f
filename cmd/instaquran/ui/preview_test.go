package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instaquran/internal/card"
	"instaquran/internal/quran"
)

func TestBlend(t *testing.T) {
	assert.Equal(t, "#93c5fd", Blend("#93c5fd", "#d8b4fe", 0))
	assert.Equal(t, "#d8b4fe", Blend("#93c5fd", "#d8b4fe", 1))
	assert.Equal(t, "#808080", Blend("#000000", "#ffffff", 0.5))
	assert.Equal(t, "#808080", Blend("#ffffff", "#000000", 0.5))
	assert.Equal(t, "#000000", Blend("bogus", "#000000", 0.3))
}

func TestPreviewSize(t *testing.T) {
	cols, rows := PreviewSize(card.DimensionPost)
	assert.Equal(t, 47, cols)
	assert.Equal(t, 23, rows)

	cols, rows = PreviewSize(card.DimensionStory)
	assert.Equal(t, 31, cols)
	assert.Equal(t, 28, rows)
}

func TestRenderCard_Shape(t *testing.T) {
	for _, d := range card.Dimensions {
		t.Run(string(d), func(t *testing.T) {
			opts := card.DefaultOptions()
			opts.Dimension = d
			opts.ShowArabic = false
			c := card.Card{
				Reference:   quran.Reference{Chapter: 94, Verse: 5},
				Translation: "So truly where there is hardship there is also ease",
				Options:     opts,
			}

			out := RenderCard(c)
			cols, rows := PreviewSize(d)
			lines := strings.Split(out, "\n")
			require.Len(t, lines, rows)
			for i, l := range lines {
				assert.Equal(t, cols, lipgloss.Width(l), "line %d", i)
			}
			assert.Contains(t, out, "94:5")
			assert.Contains(t, out, "ease")
		})
	}
}

func TestRenderCard_LongTextKeepsReference(t *testing.T) {
	opts := card.DefaultOptions()
	opts.ShowArabic = false
	c := card.Card{
		Reference:   quran.Reference{Chapter: 2, Verse: 282},
		Translation: strings.Repeat("You who believe, when you contract a debt write it down. ", 30),
		Options:     opts,
	}

	out := RenderCard(c)
	_, rows := PreviewSize(card.DimensionPost)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, rows)
	assert.Contains(t, lines[len(lines)-1], "2:282")
}

func TestRenderCard_FailedCard(t *testing.T) {
	c := card.Failed(quran.Reference{Chapter: 2, Verse: 255}, card.DefaultOptions())
	out := RenderCard(c)
	assert.Contains(t, out, "Error fetching verse.")

	c.Options.ShowArabic = false
	assert.Contains(t, RenderCard(c), "Error fetching verse.", "the failure message ignores Show Arabic")
}

func TestRenderHelp(t *testing.T) {
	for _, dark := range []bool{false, true} {
		out := RenderHelp(60, dark)
		assert.Contains(t, out, "Keyboard")
		assert.Contains(t, out, "Ctrl+S")
	}
}
