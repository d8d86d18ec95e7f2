package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON indicates the model reply contained no parseable JSON object.
var ErrNoJSON = errors.New("no JSON object found in response text")

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON locates the first well-formed JSON object in free-form model
// output. A fenced block is preferred when present; otherwise the whole
// text is the candidate. Malformed JSON is never repaired.
func ExtractJSON(text string) (json.RawMessage, error) {
	candidate := strings.TrimSpace(text)
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidate = strings.TrimSpace(m[1])
	}
	if candidate == "" {
		return nil, ErrNoJSON
	}

	raw := json.RawMessage(candidate)
	if !isObject(raw) {
		return nil, ErrNoJSON
	}
	return raw, nil
}

// isObject reports whether raw parses as a single JSON object.
func isObject(raw json.RawMessage) bool {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var v any
	if err := dec.Decode(&v); err != nil {
		return false
	}
	if _, ok := v.(map[string]any); !ok {
		return false
	}
	// Trailing content after the object means the candidate was not a
	// single JSON value.
	if dec.More() {
		return false
	}
	return true
}
