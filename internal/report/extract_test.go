package report

import (
	"errors"
	"testing"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	text := "Here is your report:\n```json\n{\"title\":\"ok\"}\n```\nHope it helps!"
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"title":"ok"}` {
		t.Errorf("raw = %s", raw)
	}
}

func TestExtractJSON_FencedWithoutLanguage(t *testing.T) {
	text := "```\n{\"a\": 1}\n```"
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"a": 1}` {
		t.Errorf("raw = %s", raw)
	}
}

func TestExtractJSON_BareObject(t *testing.T) {
	text := `  {"score": 85, "nested": {"x": [1,2,3]}}  `
	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"score": 85, "nested": {"x": [1,2,3]}}` {
		t.Errorf("raw = %s", raw)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	for _, text := range []string{
		"",
		"I'm sorry, I can't do that.",
		"```json\nnot actually json\n```",
		"{broken",
	} {
		_, err := ExtractJSON(text)
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("ExtractJSON(%q): expected ErrNoJSON, got %v", text, err)
		}
	}
}

func TestExtractJSON_NonObject(t *testing.T) {
	for _, text := range []string{
		`[1, 2, 3]`,
		`"just a string"`,
		`42`,
		`{"a":1} {"b":2}`,
	} {
		_, err := ExtractJSON(text)
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("ExtractJSON(%q): expected ErrNoJSON, got %v", text, err)
		}
	}
}
