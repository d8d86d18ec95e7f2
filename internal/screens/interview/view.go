package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	session "github.com/ssupark/oratio/internal/interview"
	"github.com/ssupark/oratio/internal/ui/components"
	"github.com/ssupark/oratio/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	switch s.sess.State {
	case session.StateInterviewing:
		return s.renderQuestion(width)
	case session.StateAwaitingAnswerReport:
		return s.renderWaiting(width, "AI 코치가 답변을 분석하고 있어요...")
	case session.StateAnswerReport:
		return s.renderAnswerReport(width)
	case session.StateAwaitingFinalReport:
		return s.renderWaiting(width, "전체 답변을 모아 종합 리포트를 만들고 있어요...")
	}
	return ""
}

func (s *InterviewScreen) renderQuestion(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("질문 %d / %d", s.sess.QuestionNumber(), s.sess.TotalQuestions())))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true).
		Align(lipgloss.Center).
		Render(s.sess.CurrentQuestion())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, question))
	b.WriteString("\n\n")

	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.notice))
		b.WriteString("\n\n")
	}

	if s.typing {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("답변: " + s.input.View())
		b.WriteString(answerLine)
		return b.String()
	}

	switch {
	case s.pendingSubmit:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("답변을 마무리하는 중..."))
	case s.synth.Speaking():
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(theme.Speaking.Render("♪ 질문을 읽는 중") +
				theme.Hint.Render("  듣고 나서 답변을 시작하세요")))
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(theme.Listening.Render("● 듣는 중") +
				theme.Hint.Render("  말이 끝나면 Enter를 누르세요")))
	}
	b.WriteString("\n\n")

	transcript := s.transcript
	if transcript == "" {
		transcript = theme.Hint.Render("(아직 들린 내용이 없어요)")
	}
	box := theme.Card.
		Width(min(width-8, 72)).
		Render(transcript)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))

	return b.String()
}

func (s *InterviewScreen) renderWaiting(width int, message string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(s.spinner.View() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(message)))
	return b.String()
}

func (s *InterviewScreen) renderAnswerReport(width int) string {
	r := s.sess.AnswerReport
	if r == nil {
		return s.renderMissingReport(width)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(r.Title))
	b.WriteString("\n\n")

	cardWidth := min(width-8, 72)
	var card strings.Builder

	card.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(r.EvaluationTitle))
	card.WriteString("  ")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(r.EvaluationValue))
	card.WriteString("\n\n")

	card.WriteString(theme.Praise.Render(r.PraiseTitle))
	card.WriteString("\n")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(r.Praise))
	card.WriteString("\n\n")

	card.WriteString(theme.GrowthTip.Render(r.GrowthTipTitle))
	card.WriteString("\n")
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(r.GrowthTip))
	card.WriteString("\n\n")

	card.WriteString(components.ScoreBar("이번 답변", int(r.Score), 10, cardWidth-6))

	box := theme.Card.Width(cardWidth).Render(card.String())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	b.WriteString("\n\n")

	button := components.NewButton(r.ButtonText, true, nil).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, button))

	return b.String()
}

// renderMissingReport is the degraded view when the mini report could not
// be produced. The interview continues regardless.
func (s *InterviewScreen) renderMissingReport(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("피드백을 가져오지 못했어요"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("답변은 저장되었으니 그대로 진행할 수 있어요."))
	b.WriteString("\n\n")
	button := components.NewButton("계속", true, nil).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, button))
	return b.String()
}
