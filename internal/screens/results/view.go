package results

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ssupark/oratio/internal/report"
	"github.com/ssupark/oratio/internal/ui/components"
	"github.com/ssupark/oratio/internal/ui/theme"
)

func (s *ResultsScreen) render(width int) string {
	if s.report == nil {
		return s.renderMissing(width)
	}

	cw := contentWidth(width)
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(s.report.Title))

	sections = append(sections, s.renderOverall(width, cw))
	sections = append(sections, s.renderRadar(width, cw))
	sections = append(sections, s.renderDetailedAnalysis(width, cw))

	if s.level == report.LevelHigh {
		sections = append(sections, s.renderDiagnosis(width, cw))
		sections = append(sections, s.renderSimulation(width, cw))
		if s.report.FutureStrategy != "" {
			sections = append(sections, renderSection(width, cw,
				"향후 성장 전략", s.report.FutureStrategy))
		}
	} else if s.report.FinalComment != "" {
		title := s.report.FinalCommentTitle
		if title == "" {
			title = "AI 코치의 최종 분석"
		}
		sections = append(sections, renderSection(width, cw, title, s.report.FinalComment))
	}

	sections = append(sections, s.renderGrowth(width, cw))

	return "\n" + strings.Join(sections, "\n\n") + "\n"
}

// renderOverall shows the headline result: score and persona for the
// junior tiers, tier label and strength keywords for high school.
func (s *ResultsScreen) renderOverall(width, cw int) string {
	var b strings.Builder

	if s.level == report.LevelHigh {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(s.report.OverallTier))
		if len(s.report.StrengthKeywords) > 0 {
			b.WriteString("\n\n")
			var tags []string
			for _, kw := range s.report.StrengthKeywords {
				tags = append(tags, lipgloss.NewStyle().
					Foreground(theme.Secondary).
					Render("#"+kw))
			}
			b.WriteString(strings.Join(tags, "  "))
		}
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("%d점", s.report.OverallScore)))
		if s.report.OverallGrade != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("  등급 " + s.report.OverallGrade))
		}
		if s.report.Persona != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
				Render("나의 면접 페르소나: " + s.report.Persona))
		}
	}

	box := theme.Card.Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (s *ResultsScreen) renderRadar(width, cw int) string {
	if len(s.report.RadarChartData) == 0 {
		return ""
	}

	labelWidth := 0
	for _, p := range s.report.RadarChartData {
		if w := lipgloss.Width(p.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("역량 분석"))
	b.WriteString("\n\n")
	for i, p := range s.report.RadarChartData {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(components.ScoreBar(p.Label, int(p.Score), labelWidth, cw-6))
	}

	box := theme.Card.Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (s *ResultsScreen) renderDetailedAnalysis(width, cw int) string {
	if len(s.report.DetailedAnalysis) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("항목별 상세 분석"))

	for _, item := range s.report.DetailedAnalysis {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(item.Category))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("  %d점", item.Score)))
		if item.Quote != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("“" + item.Quote + "”"))
		}
		body := item.Comment
		if item.Analysis != "" {
			body = item.Analysis
		}
		if body != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(body))
		}
	}

	box := theme.Card.Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (s *ResultsScreen) renderDiagnosis(width, cw int) string {
	d := s.report.DiagnosisAndGuide
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("진단과 활용 가이드"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(d.Profiling))
	if d.Utilization.InterviewStrategy != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("면접 전략"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(d.Utilization.InterviewStrategy))
	}
	if d.Utilization.StudentRecordTips != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("생활기록부 연계 팁"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(d.Utilization.StudentRecordTips))
	}

	box := theme.Card.Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (s *ResultsScreen) renderSimulation(width, cw int) string {
	sim := s.report.Simulation
	if sim == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("실전 시뮬레이션"))

	if len(sim.FollowUpQuestions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("예상 꼬리질문"))
		for _, q := range sim.FollowUpQuestions {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8).Render("· " + q))
		}
	}
	if sim.LogicEnhancement != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("논리 보강"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(sim.LogicEnhancement))
	}
	if sim.AnswerExtensionGuide != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("답변 확장 가이드"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(sim.AnswerExtensionGuide))
	}

	box := theme.Card.Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// renderGrowth draws the per-question score series recorded during the
// session.
func (s *ResultsScreen) renderGrowth(width, cw int) string {
	if len(s.report.GrowthGraphData) == 0 {
		return ""
	}

	title := s.report.GrowthGraphTitle
	if title == "" {
		title = "질문별 성장 그래프"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title))
	b.WriteString("\n\n")
	for i, p := range s.report.GrowthGraphData {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(components.ScoreBar(fmt.Sprintf("Q%d", p.Question), int(p.Score), 4, cw-6))
	}

	box := theme.Card.Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func (s *ResultsScreen) renderMissing(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("종합 리포트를 만들지 못했어요"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("면접은 끝까지 진행되었어요. 잠시 후 다시 시도해 보세요."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("R · 다시 시작"))
	return b.String()
}

func renderSection(width, cw int, title, body string) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(body))
	box := theme.Card.Width(cw).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func contentWidth(width int) int {
	cw := width - 8
	if cw > 76 {
		cw = 76
	}
	if cw < 20 {
		cw = 20
	}
	return cw
}
