// Package form is the interactive voting form: an identifier field, a radio
// group over the fixed candidates, and a dialog for the result of each vote.
// It owns every piece of UI state and hands plain values to the Recorder.
package form

import (
	"context"

	"ballotbox/cmd/ballot/ui"
	"ballotbox/internal/ballot"
	"ballotbox/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Submitter casts a vote. *ballot.Recorder implements it.
type Submitter interface {
	SubmitVote(ctx context.Context, candidate ballot.Candidate, identifier string) (ballot.Outcome, error)
}

type field int

const (
	fieldIdentifier field = iota
	fieldCandidates
)

// submitResultMsg carries the result of one SubmitVote call back into Update.
type submitResultMsg struct {
	outcome ballot.Outcome
	err     error
}

// Model is the bubbletea model for the form.
type Model struct {
	ctx       context.Context
	submitter Submitter
	styles    ui.Styles
	keys      keyMap
	help      help.Model
	log       *zap.Logger

	input    textinput.Model
	cursor   int
	selected ballot.Candidate
	focus    field

	inline     string  // validation or selection message under the form
	dialog     *Notice // modal result; nil when closed
	submitting bool

	showHelp bool
	helpView string

	width  int
	height int
}

// New builds the form. ctx bounds every submission.
func New(ctx context.Context, s Submitter, styles ui.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. 42"
	ti.Prompt = "| "
	ti.CharLimit = 256
	ti.Width = 30
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput
	ti.Focus()

	h := help.New()
	h.Styles.ShortKey = styles.Bold
	h.Styles.ShortDesc = styles.Muted

	return Model{
		ctx:       ctx,
		submitter: s,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      h,
		log:       logging.Get(logging.CategoryForm),
		input:     ti,
		selected:  ballot.NoCandidate,
		focus:     fieldIdentifier,
	}
}

// Run starts the form full-screen and blocks until the user quits or ctx ends.
func Run(ctx context.Context, s Submitter, styles ui.Styles) error {
	p := tea.NewProgram(New(ctx, s, styles), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Selected returns the chosen candidate, or ballot.NoCandidate.
func (m Model) Selected() ballot.Candidate { return m.selected }

// Identifier returns the identifier field's current text.
func (m Model) Identifier() string { return m.input.Value() }

// InlineMessage returns the message shown under the form, if any.
func (m Model) InlineMessage() string { return m.inline }

// Dialog returns the open dialog, if any.
func (m Model) Dialog() (Notice, bool) {
	if m.dialog == nil {
		return Notice{}, false
	}
	return *m.dialog, true
}
