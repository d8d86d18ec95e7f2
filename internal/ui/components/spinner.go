package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ssupark/oratio/internal/ui/theme"
)

// Spinner is the loading indicator shown while a report request is in
// flight.
type Spinner struct {
	Model spinner.Model
}

// NewSpinner creates a themed spinner.
func NewSpinner() Spinner {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return Spinner{Model: sp}
}

// Init starts the spinner animation.
func (s Spinner) Init() tea.Cmd {
	return s.Model.Tick
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the current frame.
func (s Spinner) View() string {
	return s.Model.View()
}
