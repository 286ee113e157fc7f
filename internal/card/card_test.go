package card

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instaquran/internal/quran"
	"instaquran/internal/verse"
)

var fatiha = verse.Verse{
	Reference:   quran.Reference{Chapter: 1, Verse: 2},
	Arabic:      "ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَـٰلَمِينَ",
	Translation: "Praise belongs to God, Lord of the Worlds",
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	require.NoError(t, o.Validate())
	assert.Equal(t, "Blue to Purple", o.GradientStops().Name)
	assert.Equal(t, "https://i.imgur.com/pXxHxDX.jpeg", o.PhotoURL())
	assert.Equal(t, Size{Width: 470, Height: 470}, o.Size())
	assert.True(t, o.ShowArabic)
}

func TestCatalogue(t *testing.T) {
	assert.Len(t, Gradients, 10)
	for _, th := range Themes {
		assert.Len(t, Photos(th), 6, th)
	}
	assert.Equal(t, Size{Width: 315, Height: 560}, Options{Dimension: DimensionStory}.Size())

	p := Photos(ThemeDark)
	p[0] = "mutated"
	assert.NotEqual(t, "mutated", Photos(ThemeDark)[0], "Photos must return a copy")
}

func TestTextStyles(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		arabic      TextStyle
		translation TextStyle
	}{
		{
			name:        "gradient",
			opts:        Options{Background: BackgroundGradient, Theme: ThemeDark},
			arabic:      TextStyle{Color: "#1f2937"},
			translation: TextStyle{Color: "#1f2937"},
		},
		{
			name:        "dark photo",
			opts:        Options{Background: BackgroundImage, Theme: ThemeDark},
			arabic:      TextStyle{Color: "#fde047"},
			translation: TextStyle{Color: "#fde047", Italic: true},
		},
		{
			name:        "light photo",
			opts:        Options{Background: BackgroundImage, Theme: ThemeLight},
			arabic:      TextStyle{Color: "#1f2937", Semibold: true},
			translation: TextStyle{Color: "#1f2937", Semibold: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.arabic, tt.opts.ArabicStyle()); diff != "" {
				t.Errorf("arabic style (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.translation, tt.opts.TranslationStyle()); diff != "" {
				t.Errorf("translation style (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	bad := []Options{
		{Background: "video", Theme: ThemeDark, Dimension: DimensionPost},
		{Background: BackgroundGradient, Gradient: 10, Theme: ThemeDark, Dimension: DimensionPost},
		{Background: BackgroundGradient, Gradient: -1, Theme: ThemeDark, Dimension: DimensionPost},
		{Background: BackgroundImage, Theme: "sepia", Dimension: DimensionPost},
		{Background: BackgroundImage, Theme: ThemeLight, Photo: 6, Dimension: DimensionPost},
		{Background: BackgroundImage, Theme: ThemeLight, Dimension: "reel"},
	}
	for _, o := range bad {
		assert.Error(t, o.Validate(), "%+v", o)
	}
}

func TestFileNameAndCaption(t *testing.T) {
	c := New(fatiha, DefaultOptions())
	assert.Equal(t, "quran-verse-1-2.png", c.FileName())
	assert.Equal(t, "\"Praise belongs to God, Lord of the Worlds\"\nQuran 1:2", c.Caption())

	arabicOnly := c
	arabicOnly.Translation = ""
	assert.Equal(t, fatiha.Arabic+"\nQuran 1:2", arabicOnly.Caption())
}

func TestFailedCard(t *testing.T) {
	ref := quran.Reference{Chapter: 2, Verse: 255}
	c := Failed(ref, DefaultOptions())
	assert.True(t, c.IsFailed())
	assert.Equal(t, verse.FetchFailedMessage, c.Arabic)
	assert.Empty(t, c.Translation)
	assert.False(t, New(fatiha, DefaultOptions()).IsFailed())
}

func TestHTML_Gradient(t *testing.T) {
	doc, err := New(fatiha, DefaultOptions()).HTML()
	require.NoError(t, err)

	for _, want := range []string{
		`id="card"`,
		"width: 470px",
		"height: 470px",
		"linear-gradient(to bottom right, #93c5fd, #d8b4fe)",
		fatiha.Arabic,
		`dir="rtl"`,
		"Praise belongs to God, Lord of the Worlds",
		"1:2",
		"font-size: 14px",
		"fonts.googleapis.com",
	} {
		assert.Contains(t, doc, want)
	}
}

func TestHTML_StoryPhotoWithoutArabic(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = BackgroundImage
	opts.Theme = ThemeLight
	opts.Photo = 2
	opts.Dimension = DimensionStory
	opts.ShowArabic = false

	doc, err := New(fatiha, opts).HTML()
	require.NoError(t, err)

	assert.Contains(t, doc, "width: 315px")
	assert.Contains(t, doc, "height: 560px")
	assert.Contains(t, doc, `url("https://i.imgur.com/VIPGlxB.jpeg")`)
	assert.Contains(t, doc, "font-weight: 600")
	assert.Contains(t, doc, "font-size: 20px")
	assert.NotContains(t, doc, `dir="rtl"`)
	assert.NotContains(t, doc, fatiha.Arabic)
}

func TestHTML_FailedCardShowsMessage(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowArabic = false
	doc, err := Failed(quran.Reference{Chapter: 2, Verse: 255}, opts).HTML()
	require.NoError(t, err)

	assert.Contains(t, doc, verse.FetchFailedMessage)
	assert.NotContains(t, doc, `class="translation"`)
}

func TestHTML_EscapesText(t *testing.T) {
	v := fatiha
	v.Translation = "<script>alert(1)</script>"
	doc, err := New(v, DefaultOptions()).HTML()
	require.NoError(t, err)
	assert.NotContains(t, doc, "<script>")
	assert.True(t, strings.Contains(doc, "&lt;script&gt;"))
}

func TestHTML_RejectsBadOptions(t *testing.T) {
	_, err := New(fatiha, Options{Background: "video"}).HTML()
	assert.ErrorContains(t, err, "invalid card options")
}
