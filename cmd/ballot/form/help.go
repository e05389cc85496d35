package form

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# How to vote

1. Type your **unique identifier** in the first field. It must be a whole
   number greater than zero, written with the digits 0-9 only.
2. Press **tab** to move to the candidate list, pick one with the arrow keys
   and press **space**. The digits **1**, **2** and **3** pick directly.
3. Press **enter** to cast the vote.

Each identifier can vote once. Votes are appended to the vote file and
cannot be changed from here.

| Key | Action |
|-----|--------|
| enter | vote / close a dialog |
| tab | switch between identifier and candidates |
| ↑ ↓ / k j | move in the candidate list |
| space | choose the highlighted candidate |
| ? / f1 | toggle this help |
| ctrl+c | quit |
`

// renderHelp renders the help panel. Rendering failures fall back to the raw markdown.
func renderHelp(dark bool, width int) string {
	if width <= 0 || width > 80 {
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
	return out
}
