package form

import (
	"strings"

	"ballotbox/internal/ballot"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = max(msg.Width, 0)
		if m.showHelp {
			m.helpView = renderHelp(m.styles.Theme.IsDark, m.width-4)
		}
		return m, nil

	case submitResultMsg:
		return m.applyResult(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.focus == fieldIdentifier {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.dialog != nil {
		if key.Matches(msg, m.keys.Dismiss) {
			m.dialog = nil
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Vote):
		return m.submit()

	case key.Matches(msg, m.keys.Focus):
		return m.toggleFocus(), nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView = renderHelp(m.styles.Theme.IsDark, m.width-4)
		return m, nil
	}

	if m.focus == fieldCandidates {
		return m.handleCandidateKey(msg), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleCandidateKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(ballot.Candidates)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Choose):
		m.selected = ballot.Candidates[m.cursor]
	default:
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(ballot.Candidates) {
			m.cursor = int(s[0] - '1')
			m.selected = ballot.Candidates[m.cursor]
		}
	}
	return m
}

func (m Model) toggleFocus() Model {
	if m.focus == fieldIdentifier {
		m.focus = fieldCandidates
		m.input.Blur()
	} else {
		m.focus = fieldIdentifier
		m.input.Focus()
	}
	return m
}

// submit starts one vote. Further Enter presses are ignored until its result arrives.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true

	ctx := m.ctx
	sub := m.submitter
	candidate := m.selected
	identifier := strings.TrimSpace(m.input.Value())

	m.log.Debug("submit", zap.String("candidate", string(candidate)))
	return m, func() tea.Msg {
		out, err := sub.SubmitVote(ctx, candidate, identifier)
		return submitResultMsg{outcome: out, err: err}
	}
}

// applyResult shows exactly one message for the submission.
func (m Model) applyResult(msg submitResultMsg) Model {
	m.submitting = false
	m.inline = ""
	m.dialog = nil

	if msg.err != nil {
		m.log.Error("submission failed", zap.Error(msg.err))
		n := DescribeError(msg.err)
		m.dialog = &n
		return m
	}

	m.log.Debug("submission finished", zap.Stringer("outcome", msg.outcome.Kind))
	n := Describe(msg.outcome)
	if n.Kind == NoticeInline {
		m.inline = n.Text
		return m
	}
	m.dialog = &n

	if msg.outcome.IsAccepted() {
		// Ready the form for the next voter.
		m.input.Reset()
		m.selected = ballot.NoCandidate
		m.cursor = 0
		if m.focus != fieldIdentifier {
			m = m.toggleFocus()
		}
	}
	return m
}
