package eventlog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ssupark/oratio/internal/llm"
)

func tempLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "llm.jsonl"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return l
}

func TestAppendAndRecent(t *testing.T) {
	l := tempLog(t)
	ctx := context.Background()

	for _, purpose := range []string{"answer-report", "answer-report", "final-report"} {
		ev := llm.RequestEvent{
			Provider:     "gemini",
			Model:        "gemini-2.5-flash",
			Purpose:      purpose,
			Success:      true,
			InputTokens:  100,
			OutputTokens: 50,
		}
		if err := l.AppendLLMRequest(ctx, ev); err != nil {
			t.Fatalf("AppendLLMRequest: %v", err)
		}
	}

	entries, err := l.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Purpose != "final-report" {
		t.Errorf("newest first: got %q", entries[0].Purpose)
	}
	if entries[0].ID == "" || entries[0].CreatedAt.IsZero() {
		t.Error("entries must carry an ID and timestamp")
	}

	limited, err := l.Recent(2)
	if err != nil {
		t.Fatalf("Recent(2): %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d entries, want 2", len(limited))
	}
}

func TestRecent_EmptyLog(t *testing.T) {
	l := tempLog(t)
	entries, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent on missing file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestGet_ByIDAndPrefix(t *testing.T) {
	l := tempLog(t)
	if err := l.AppendLLMRequest(context.Background(), llm.RequestEvent{Purpose: "answer-report"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	entries, _ := l.Recent(1)
	id := entries[0].ID

	got, err := l.Get(id)
	if err != nil {
		t.Fatalf("Get full ID: %v", err)
	}
	if got.ID != id {
		t.Errorf("got %q", got.ID)
	}

	short, err := l.Get(id[:8])
	if err != nil {
		t.Fatalf("Get prefix: %v", err)
	}
	if short.ID != id {
		t.Errorf("prefix lookup got %q", short.ID)
	}

	if _, err := l.Get("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	l := tempLog(t)
	ctx := context.Background()

	events := []llm.RequestEvent{
		{Model: "gemini-2.5-flash", Purpose: "answer-report", Success: true, InputTokens: 10, OutputTokens: 5},
		{Model: "gemini-2.5-flash", Purpose: "answer-report", Success: false, ErrorMessage: "rate limited"},
		{Model: "gemini-2.5-pro", Purpose: "final-report", Success: true, InputTokens: 40, OutputTokens: 30},
	}
	for _, ev := range events {
		if err := l.AppendLLMRequest(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	st, err := l.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if st.Total != 3 || st.Failures != 1 {
		t.Errorf("Total=%d Failures=%d", st.Total, st.Failures)
	}
	if st.InputTokens != 50 || st.OutputTokens != 35 {
		t.Errorf("tokens = %d/%d", st.InputTokens, st.OutputTokens)
	}
	if st.ByPurpose["answer-report"] != 2 {
		t.Errorf("ByPurpose = %v", st.ByPurpose)
	}
	pro := st.ByModel["gemini-2.5-pro"]
	if pro.Calls != 1 || pro.InputTokens != 40 || pro.OutputTokens != 30 {
		t.Errorf("ByModel[gemini-2.5-pro] = %+v", pro)
	}
}

func TestReadAll_SkipsTornLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm.jsonl")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.AppendLLMRequest(context.Background(), llm.RequestEvent{Purpose: "answer-report"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(`{"id":"truncat`); err != nil {
		t.Fatal(err)
	}
	f.Close()

	entries, err := l.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want the torn line skipped", len(entries))
	}
}
