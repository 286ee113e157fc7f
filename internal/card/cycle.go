package card

import "fmt"

// Field names one option a picker can change.
type Field int

const (
	FieldBackground Field = iota
	FieldGradient
	FieldTheme
	FieldPhoto
	FieldDimension
	FieldArabic
)

func (f Field) String() string {
	switch f {
	case FieldBackground:
		return "Background"
	case FieldGradient:
		return "Gradient"
	case FieldTheme:
		return "Image theme"
	case FieldPhoto:
		return "Photo"
	case FieldDimension:
		return "Content type"
	case FieldArabic:
		return "Show Arabic"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Visible reports whether the field applies to the current background. Gradients only
// matter for gradient cards, photos and themes only for image cards.
func (o Options) Visible(f Field) bool {
	switch f {
	case FieldGradient:
		return o.Background == BackgroundGradient
	case FieldTheme, FieldPhoto:
		return o.Background == BackgroundImage
	default:
		return true
	}
}

func wrap(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}

// Step moves field f by delta positions, wrapping at either end. Changing the theme
// selects that theme's first photo.
func (o Options) Step(f Field, delta int) Options {
	switch f {
	case FieldBackground:
		o.Background = Backgrounds[wrap(indexOf(Backgrounds, o.Background), delta, len(Backgrounds))]
	case FieldGradient:
		o.Gradient = wrap(o.Gradient, delta, len(Gradients))
	case FieldTheme:
		next := Themes[wrap(indexOf(Themes, o.Theme), delta, len(Themes))]
		if next != o.Theme {
			o.Theme = next
			o.Photo = 0
		}
	case FieldPhoto:
		o.Photo = wrap(o.Photo, delta, len(photos[o.Theme]))
	case FieldDimension:
		o.Dimension = Dimensions[wrap(indexOf(Dimensions, o.Dimension), delta, len(Dimensions))]
	case FieldArabic:
		if delta%2 != 0 {
			o.ShowArabic = !o.ShowArabic
		}
	}
	return o
}

// Next selects the following value of f.
func (o Options) Next(f Field) Options {
	return o.Step(f, 1)
}

// Prev selects the preceding value of f.
func (o Options) Prev(f Field) Options {
	return o.Step(f, -1)
}

// Label is the human-readable current value of f.
func (o Options) Label(f Field) string {
	switch f {
	case FieldBackground:
		if o.Background == BackgroundImage {
			return "Image"
		}
		return "Gradient"
	case FieldGradient:
		return Gradients[o.Gradient].Name
	case FieldTheme:
		if o.Theme == ThemeLight {
			return "Light"
		}
		return "Dark"
	case FieldPhoto:
		return fmt.Sprintf("%d of %d", o.Photo+1, len(photos[o.Theme]))
	case FieldDimension:
		if o.Dimension == DimensionStory {
			return "Story"
		}
		return "Post"
	case FieldArabic:
		if o.ShowArabic {
			return "Yes"
		}
		return "No"
	default:
		return ""
	}
}

// GradientByName finds a gradient case-insensitively, ignoring spaces and dashes, so
// "blue-to-purple" matches "Blue to Purple".
func GradientByName(name string) (int, bool) {
	want := normalize(name)
	for i, g := range Gradients {
		if normalize(g.Name) == want {
			return i, true
		}
	}
	return 0, false
}

func normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_':
			continue
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
