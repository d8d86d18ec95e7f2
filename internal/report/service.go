package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ssupark/oratio/internal/llm"
)

const (
	answerMaxTokens = 1024
	finalMaxTokens  = 4096

	// requestTimeout bounds a single generation call. The upstream
	// transport imposes no limit of its own, and there is no retry, so
	// without a deadline a stalled call would leave the session loading
	// forever.
	requestTimeout = 60 * time.Second
)

// ErrNotConfigured indicates no generative provider is available.
var ErrNotConfigured = errors.New("no LLM provider configured")

// Service turns free-text model output into validated report objects.
// Every method makes exactly one provider attempt; all failures are
// returned as errors and the caller treats them as "no report".
type Service struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewService creates a report service on top of a provider. A nil provider
// is allowed: every request then fails with ErrNotConfigured, which the
// screens render as the degraded no-report view.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider, timeout: requestTimeout}
}

// AnswerFeedback requests the mini report for a single answer.
func (s *Service) AnswerFeedback(ctx context.Context, level Level, question, answer string) (*AnswerReport, error) {
	prompt := BuildAnswerPrompt(level, question, answer)

	raw, err := s.generate(ctx, "answer-report", prompt, answerMaxTokens, AnswerReportSchema)
	if err != nil {
		return nil, err
	}

	var r AnswerReport
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, &ErrShape{Content: raw, Err: err}
	}
	r.Score = clampScore(r.Score)
	return &r, nil
}

// FinalAnalysis requests the comprehensive cross-answer report. The caller
// passes a snapshot of the answer list; the slice is not retained.
func (s *Service) FinalAnalysis(ctx context.Context, level Level, answers []Answer) (*FinalReport, error) {
	prompt := BuildFinalPrompt(level, answers)

	raw, err := s.generate(ctx, "final-report", prompt, finalMaxTokens, FinalReportSchema(level))
	if err != nil {
		return nil, err
	}

	var r FinalReport
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, &ErrShape{Content: raw, Err: err}
	}
	for i := range r.RadarChartData {
		r.RadarChartData[i].Score = clampScore(r.RadarChartData[i].Score)
	}
	for i := range r.DetailedAnalysis {
		r.DetailedAnalysis[i].Score = clampScore(r.DetailedAnalysis[i].Score)
	}
	r.OverallScore = clampScore(r.OverallScore)
	return &r, nil
}

// generate performs the single provider attempt and the extract/validate
// pipeline shared by both report kinds.
func (s *Service) generate(ctx context.Context, purpose, prompt string, maxTokens int, schema *Schema) (json.RawMessage, error) {
	if s == nil || s.provider == nil {
		return nil, ErrNotConfigured
	}

	ctx = llm.WithPurpose(ctx, purpose)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.provider.Generate(ctx, llm.Request{
		Prompt:    prompt,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", purpose, err)
	}

	raw, err := ExtractJSON(resp.Text)
	if err != nil {
		logUnparseable(purpose, resp.Text)
		return nil, fmt.Errorf("%s: %w", purpose, err)
	}

	if err := validate(schema, raw); err != nil {
		logUnparseable(purpose, resp.Text)
		return nil, fmt.Errorf("%s: %w", purpose, err)
	}

	return raw, nil
}

func clampScore(score Score) Score {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// logUnparseable records the offending text for later inspection without
// surfacing a fault to the session.
func logUnparseable(purpose, text string) {
	fmt.Fprintf(os.Stderr, "warning: %s reply did not contain a valid report object:\n%s\n", purpose, text)
}
