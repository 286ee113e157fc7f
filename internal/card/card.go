// Package card describes a verse card: its content, background and size, and the
// HTML document a rasterizer turns into a PNG.
package card

import (
	"fmt"
	"strings"

	"instaquran/internal/quran"
	"instaquran/internal/verse"
)

// Background selects how the card is filled.
type Background string

const (
	BackgroundGradient Background = "gradient"
	BackgroundImage    Background = "image"
)

// Backgrounds lists the backgrounds in picker order.
var Backgrounds = []Background{BackgroundGradient, BackgroundImage}

// Theme groups background photos by brightness; it also decides the text colour.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Themes lists the photo themes in picker order.
var Themes = []Theme{ThemeDark, ThemeLight}

// Dimension is the social media format.
type Dimension string

const (
	DimensionPost  Dimension = "post"
	DimensionStory Dimension = "story"
)

// Dimensions lists the formats in picker order.
var Dimensions = []Dimension{DimensionPost, DimensionStory}

// Size is a card size in CSS pixels.
type Size struct {
	Width  int
	Height int
}

var sizes = map[Dimension]Size{
	DimensionPost:  {Width: 470, Height: 470},
	DimensionStory: {Width: 315, Height: 560},
}

// Gradient is a two-stop diagonal gradient.
type Gradient struct {
	Name string
	From string // hex colour
	To   string
}

// Gradients are the available gradient backgrounds. The first is the default.
var Gradients = []Gradient{
	{Name: "Blue to Purple", From: "#93c5fd", To: "#d8b4fe"},
	{Name: "Green to Blue", From: "#86efac", To: "#93c5fd"},
	{Name: "Yellow to Red", From: "#fde047", To: "#fca5a5"},
	{Name: "Pink to Purple", From: "#f9a8d4", To: "#d8b4fe"},
	{Name: "Indigo to Purple", From: "#a5b4fc", To: "#d8b4fe"},
	{Name: "Teal to Lime", From: "#5eead4", To: "#bef264"},
	{Name: "Orange to Rose", From: "#fdba74", To: "#fda4af"},
	{Name: "Sky to Emerald", From: "#7dd3fc", To: "#6ee7b7"},
	{Name: "Fuchsia to Amber", From: "#f0abfc", To: "#fcd34d"},
	{Name: "Cyan to Violet", From: "#67e8f9", To: "#c4b5fd"},
}

var photos = map[Theme][]string{
	ThemeDark: {
		"https://i.imgur.com/pXxHxDX.jpeg",
		"https://i.imgur.com/cCf5Hqj.jpeg",
		"https://i.imgur.com/LUQkxCn.jpeg",
		"https://i.imgur.com/mRJqaLx.jpeg",
		"https://i.imgur.com/lrICBPd.jpeg",
		"https://i.imgur.com/Y6OBems.jpeg",
	},
	ThemeLight: {
		"https://i.imgur.com/WGkyHfd.jpeg",
		"https://i.imgur.com/DNpjHq9.jpeg",
		"https://i.imgur.com/VIPGlxB.jpeg",
		"https://i.imgur.com/vP1VUmx.jpeg",
		"https://i.imgur.com/pZVu7ff.jpeg",
		"https://i.imgur.com/ETdJ6VT.jpeg",
	},
}

// Photos returns the background photo URLs for a theme.
func Photos(t Theme) []string {
	return append([]string(nil), photos[t]...)
}

// Options is everything about a card except its text.
type Options struct {
	Background Background
	Gradient   int // index into Gradients
	Theme      Theme
	Photo      int // index into Photos(Theme)
	Dimension  Dimension
	ShowArabic bool
}

// DefaultOptions is the first gradient, the first dark photo, a square post and Arabic shown.
func DefaultOptions() Options {
	return Options{
		Background: BackgroundGradient,
		Theme:      ThemeDark,
		Dimension:  DimensionPost,
		ShowArabic: true,
	}
}

// Validate reports the first option that names nothing.
func (o Options) Validate() error {
	if o.Background != BackgroundGradient && o.Background != BackgroundImage {
		return fmt.Errorf("unknown background %q", o.Background)
	}
	if o.Gradient < 0 || o.Gradient >= len(Gradients) {
		return fmt.Errorf("gradient index %d out of range [0, %d)", o.Gradient, len(Gradients))
	}
	ph, ok := photos[o.Theme]
	if !ok {
		return fmt.Errorf("unknown theme %q", o.Theme)
	}
	if o.Photo < 0 || o.Photo >= len(ph) {
		return fmt.Errorf("photo index %d out of range [0, %d)", o.Photo, len(ph))
	}
	if _, ok := sizes[o.Dimension]; !ok {
		return fmt.Errorf("unknown dimension %q", o.Dimension)
	}
	return nil
}

// Size returns the card size for the chosen dimension.
func (o Options) Size() Size {
	return sizes[o.Dimension]
}

// GradientStops returns the active gradient.
func (o Options) GradientStops() Gradient {
	return Gradients[o.Gradient]
}

// PhotoURL returns the active background photo.
func (o Options) PhotoURL() string {
	return photos[o.Theme][o.Photo]
}

// TextStyle is the colour and weight for one text block.
type TextStyle struct {
	Color    string
	Italic   bool
	Semibold bool
}

const (
	gray800   = "#1f2937"
	yellow300 = "#fde047"
)

// ArabicStyle is the style for the Arabic text and the reference line.
func (o Options) ArabicStyle() TextStyle {
	switch {
	case o.Background == BackgroundGradient:
		return TextStyle{Color: gray800}
	case o.Theme == ThemeDark:
		return TextStyle{Color: yellow300}
	default:
		return TextStyle{Color: gray800, Semibold: true}
	}
}

// TranslationStyle is the style for the quoted translation.
func (o Options) TranslationStyle() TextStyle {
	s := o.ArabicStyle()
	if o.Background == BackgroundImage && o.Theme == ThemeDark {
		s.Italic = true
	}
	return s
}

// Card is a verse with its presentation options.
type Card struct {
	Reference   quran.Reference
	Arabic      string
	Translation string
	Options     Options
}

// New builds a card from fetched verse content.
func New(v verse.Verse, opts Options) Card {
	return Card{Reference: v.Reference, Arabic: v.Arabic, Translation: v.Translation, Options: opts}
}

// Failed builds the card shown when fetching ref failed: the failure message takes the
// place of the verse text and there is no translation.
func Failed(ref quran.Reference, opts Options) Card {
	return Card{Reference: ref, Arabic: verse.FetchFailedMessage, Options: opts}
}

// IsFailed reports whether c carries the fetch failure message instead of a verse.
func (c Card) IsFailed() bool {
	return c.Arabic == verse.FetchFailedMessage && c.Translation == ""
}

// FileName is the download name, e.g. quran-verse-2-255.png.
func (c Card) FileName() string {
	return fmt.Sprintf("quran-verse-%d-%d.png", c.Reference.Chapter, c.Reference.Verse)
}

// Caption is the text copied alongside a card: the quoted translation and its reference.
func (c Card) Caption() string {
	var sb strings.Builder
	if c.Translation != "" {
		sb.WriteString(`"` + c.Translation + `"` + "\n")
	} else if c.Arabic != "" {
		sb.WriteString(c.Arabic)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "Quran %s", c.Reference)
	return sb.String()
}

// WithOptions returns a copy of c with different options.
func (c Card) WithOptions(opts Options) Card {
	c.Options = opts
	return c
}
