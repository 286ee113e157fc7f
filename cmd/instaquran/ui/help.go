package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# InstaQuran studio

Type a **chapter** and **verse**, pick a look, then press **Enter**.
Errors appear under a field once you pause typing.

## Keyboard

| Key | Action |
|---|---|
| Tab / Shift+Tab | Next / previous field |
| ← / → | Change the focused option |
| Enter | Generate the card |
| Ctrl+S | Save the PNG |
| Ctrl+Y | Copy the image |
| Ctrl+T | Copy the caption text |
| F1 | Toggle this help |
| Esc / Ctrl+C | Quit |

## Backgrounds

- **Gradient**: ten two-colour gradients, dark text.
- **Image**: dark photos use yellow text, light photos use dark bold text.

Posts are 470×470 and stories 315×560, saved at twice that resolution.
`

// RenderHelp renders the studio help as markdown. It falls back to the raw markdown if
// the renderer cannot be built.
func RenderHelp(width int, dark bool) string {
	if width < 20 {
		width = 80
	}
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n")
}
