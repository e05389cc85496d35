package form

import (
	"strings"

	"ballotbox/internal/ballot"

	"github.com/charmbracelet/lipgloss"
)

// View renders the form, or the open dialog in its place.
func (m Model) View() string {
	if m.dialog != nil {
		return m.place(m.renderDialog(*m.dialog))
	}
	if m.showHelp {
		return m.helpView + "\n" + m.styles.Footer.Render("? or esc to close")
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Voting Application"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("One vote per identifier"))
	b.WriteString("\n")
	b.WriteString(m.styles.RenderDivider(min(m.width-4, 40)))
	b.WriteString("\n\n")

	b.WriteString(m.label("Unique Identifier:", m.focus == fieldIdentifier))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.label("Select candidate for best artist:", m.focus == fieldCandidates))
	b.WriteString("\n")
	for i, c := range ballot.Candidates {
		b.WriteString(m.renderCandidate(i, c))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.submitting {
		b.WriteString(m.styles.Warning.Render("[ Voting... ]"))
	} else {
		b.WriteString(m.styles.Bold.Render("[ Vote ]"))
	}
	b.WriteString("\n")

	if m.inline != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.inline))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.Content.Render(b.String())
}

func (m Model) label(text string, focused bool) string {
	if focused {
		return m.styles.Prompt.Render(text)
	}
	return m.styles.Label.Render(text)
}

func (m Model) renderCandidate(i int, c ballot.Candidate) string {
	pointer := "  "
	if m.focus == fieldCandidates && i == m.cursor {
		pointer = m.styles.Cursor.Render("> ")
	}
	radio := "( )"
	line := radio + " " + string(c)
	if c == m.selected {
		line = m.styles.Selected.Render("(•) " + string(c))
	}
	return pointer + line
}

func (m Model) renderDialog(n Notice) string {
	title := m.styles.DialogTitle.Inherit(m.styles.Success).Render(n.Title)
	if n.Kind == NoticeError {
		title = m.styles.DialogTitle.Inherit(m.styles.Error).Render(n.Title)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.styles.Body.Render(n.Text),
		"",
		m.styles.Muted.Render("enter to close"),
	)
	return m.styles.Dialog.Render(body)
}

func (m Model) place(s string) string {
	if m.width <= 0 || m.height <= 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}
