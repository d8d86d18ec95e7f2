// Package results implements the final report screen shown after the last
// question.
package results

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ssupark/oratio/internal/report"
	"github.com/ssupark/oratio/internal/router"
	"github.com/ssupark/oratio/internal/screen"
	"github.com/ssupark/oratio/internal/ui/layout"
)

// ResultsScreen renders the comprehensive report. It replaces the
// interview screen on the stack, so Esc returns to level selection.
type ResultsScreen struct {
	level  report.Level
	report *report.FinalReport
	offset int
	lines  []string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.BadgeProvider = (*ResultsScreen)(nil)

// New creates the results screen. A nil report renders the degraded view;
// the session still ended normally.
func New(level report.Level, r *report.FinalReport) *ResultsScreen {
	return &ResultsScreen{level: level, report: r}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "종합 리포트"
}

func (s *ResultsScreen) Badge() string {
	return s.level.Label()
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "스크롤"},
		{Key: "R", Description: "다시 시작"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "r":
		// Back to level selection; the stale session's epoch orphans
		// anything still in flight.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	content := s.render(width)
	s.lines = strings.Split(content, "\n")

	maxOffset := len(s.lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.offset > maxOffset {
		s.offset = maxOffset
	}

	end := s.offset + height
	if end > len(s.lines) {
		end = len(s.lines)
	}
	visible := strings.Join(s.lines[s.offset:end], "\n")

	if maxOffset > 0 && s.offset < maxOffset {
		marker := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("▼")
		if height > 1 {
			parts := strings.Split(visible, "\n")
			parts[len(parts)-1] = marker
			visible = strings.Join(parts, "\n")
		}
	}
	return visible
}
