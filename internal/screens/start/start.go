// Package start implements the level selection screen that opens a session.
package start

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ssupark/oratio/internal/interview"
	"github.com/ssupark/oratio/internal/report"
	"github.com/ssupark/oratio/internal/router"
	"github.com/ssupark/oratio/internal/screen"
	interviewscreen "github.com/ssupark/oratio/internal/screens/interview"
	"github.com/ssupark/oratio/internal/speech"
	"github.com/ssupark/oratio/internal/ui/components"
	"github.com/ssupark/oratio/internal/ui/layout"
	"github.com/ssupark/oratio/internal/ui/theme"
)

// StartScreen greets the user and asks for a school level. Selecting a
// level begins a full interview.
type StartScreen struct {
	menu    components.Menu
	reports *report.Service
	recog   speech.Recognizer
	synth   speech.Synthesizer
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates the start screen with the session dependencies the interview
// will need.
func New(reports *report.Service, recog speech.Recognizer, synth speech.Synthesizer) *StartScreen {
	s := &StartScreen{
		reports: reports,
		recog:   recog,
		synth:   synth,
	}

	items := make([]components.MenuItem, 0, len(report.AllLevels)+1)
	for _, level := range report.AllLevels {
		level := level
		items = append(items, components.MenuItem{
			Label: level.Label(),
			Hint:  levelHint(level),
			Action: func() tea.Cmd {
				return s.beginInterview(level)
			},
		})
	}
	items = append(items, components.MenuItem{
		Label: "종료",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	s.menu = components.NewMenu(items)
	return s
}

func (s *StartScreen) beginInterview(level report.Level) tea.Cmd {
	sess := interview.New().SelectLevel(level, interview.Questions(level))
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: interviewscreen.New(sess, s.reports, s.recog, s.synth),
		}
	}
}

func (s *StartScreen) Init() tea.Cmd {
	return nil
}

func (s *StartScreen) Title() string {
	return "AI 모의 면접"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "이동"},
		{Key: "Enter", Description: "선택"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *StartScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Oratio"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("말하기 연습 AI 면접 코치"))
	b.WriteString("\n\n")

	intro := "다섯 개의 질문에 목소리로 답하면\nAI 코치가 답변마다 피드백을, 마지막에 종합 리포트를 만들어 드려요."
	b.WriteString(theme.Body.
		Width(width).
		Align(lipgloss.Center).
		Render(intro))
	b.WriteString("\n\n")

	if !s.recog.Supported() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("(음성 인식을 사용할 수 없어 키보드로 답변을 입력합니다)"))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("학교급을 선택하세요"))
	b.WriteString("\n\n")

	menu := s.menu.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return b.String()
}

func levelHint(level report.Level) string {
	switch level {
	case report.LevelElementary:
		return "친근한 별점 피드백"
	case report.LevelMiddle:
		return "점수와 등급 피드백"
	case report.LevelHigh:
		return "심층 역량 분석"
	}
	return ""
}
