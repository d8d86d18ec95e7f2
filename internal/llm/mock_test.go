package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockProvider_FIFO(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Text: "first"},
		MockResponse{Text: "second"},
	)

	resp, err := m.Generate(context.Background(), Request{Prompt: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "first" {
		t.Errorf("Text = %q, want %q", resp.Text, "first")
	}

	resp, err = m.Generate(context.Background(), Request{Prompt: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "second" {
		t.Errorf("Text = %q, want %q", resp.Text, "second")
	}

	if m.CallCount() != 2 {
		t.Errorf("CallCount = %d, want 2", m.CallCount())
	}
}

func TestMockProvider_ExhaustedQueue(t *testing.T) {
	m := NewMockProvider()

	_, err := m.Generate(context.Background(), Request{Prompt: "a"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_CannedError(t *testing.T) {
	wantErr := &ErrRateLimit{Err: errors.New("slow down")}
	m := NewMockProvider(MockResponse{Err: wantErr})

	_, err := m.Generate(context.Background(), Request{Prompt: "a"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}
}

func TestResolveModel(t *testing.T) {
	models := map[string]string{"friendly": "real-model-id"}

	if got := resolveModel("friendly", models); got != "real-model-id" {
		t.Errorf("resolveModel(friendly) = %q", got)
	}
	if got := resolveModel("custom-id", models); got != "custom-id" {
		t.Errorf("resolveModel(custom-id) = %q", got)
	}
}
