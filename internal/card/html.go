package card

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// ElementID is the id of the element a rasterizer should capture.
const ElementID = "card"

// FontsURL loads the Amiri face used for Arabic text.
const FontsURL = "https://fonts.googleapis.com/css2?family=Amiri:wght@400;700&display=swap"

var documentTemplate = template.Must(template.New("card").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<link rel="stylesheet" href="{{.FontsURL}}">
<style>
html, body { margin: 0; padding: 0; background: transparent; }
#card {
  box-sizing: border-box;
  position: relative;
  width: {{.Width}}px;
  height: {{.Height}}px;
  display: flex;
  flex-direction: column;
  align-items: center;
  justify-content: center;
  padding: 24px;
  border-radius: 8px;
  overflow: hidden;
  font-family: system-ui, -apple-system, "Segoe UI", Roboto, sans-serif;
  {{.Background}}
}
#card .arabic { font-family: "Amiri", serif; font-size: 18px; line-height: 1.625; margin: 0 0 16px; text-align: center; white-space: pre-wrap; {{.ArabicCSS}} }
#card .translation { font-size: {{.TranslationSize}}; line-height: 1.625; margin: 0; text-align: center; direction: ltr; unicode-bidi: isolate; {{.TranslationCSS}} }
#card .reference { font-family: "Amiri", serif; font-size: 14px; margin: 24px 0 8px; {{.ArabicCSS}} }
</style>
</head>
<body>
<div id="{{.ElementID}}">
{{- if .ShowArabic}}
<p class="arabic" dir="rtl">{{.Arabic}}</p>
{{- end}}
{{- if .Translation}}
<p class="translation">&quot;{{.Translation}}&quot;</p>
{{- end}}
<div class="reference">{{.Reference}}</div>
</div>
</body>
</html>
`))

type documentData struct {
	FontsURL        string
	ElementID       string
	Width           int
	Height          int
	Background      template.CSS
	ArabicCSS       template.CSS
	TranslationCSS  template.CSS
	TranslationSize template.CSS
	ShowArabic      bool
	Arabic          string
	Translation     string
	Reference       string
}

func (s TextStyle) css() template.CSS {
	var sb strings.Builder
	fmt.Fprintf(&sb, "color: %s;", s.Color)
	if s.Italic {
		sb.WriteString(" font-style: italic;")
	}
	if s.Semibold {
		sb.WriteString(" font-weight: 600;")
	}
	return template.CSS(sb.String())
}

func (o Options) backgroundCSS() template.CSS {
	if o.Background == BackgroundImage {
		return template.CSS(fmt.Sprintf(
			"background-image: url(%q); background-size: cover; background-position: center;",
			o.PhotoURL()))
	}
	g := o.GradientStops()
	return template.CSS(fmt.Sprintf(
		"background-image: linear-gradient(to bottom right, %s, %s);", g.From, g.To))
}

// HTML renders the card as a self-contained document. The element with id ElementID
// has exactly the card size in CSS pixels.
func (c Card) HTML() (string, error) {
	if err := c.Options.Validate(); err != nil {
		return "", fmt.Errorf("invalid card options: %w", err)
	}

	size := c.Options.Size()
	translationSize := "14px"
	if !c.Options.ShowArabic {
		translationSize = "20px"
	}

	data := documentData{
		FontsURL:        FontsURL,
		ElementID:       ElementID,
		Width:           size.Width,
		Height:          size.Height,
		Background:      c.Options.backgroundCSS(),
		ArabicCSS:       c.Options.ArabicStyle().css(),
		TranslationCSS:  c.Options.TranslationStyle().css(),
		TranslationSize: template.CSS(translationSize),
		ShowArabic:      c.Options.ShowArabic || c.IsFailed(),
		Arabic:          c.Arabic,
		Translation:     c.Translation,
		Reference:       c.Reference.Key(),
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render card: %w", err)
	}
	return buf.String(), nil
}
