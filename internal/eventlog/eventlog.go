// Package eventlog stores LLM request records as append-only JSON lines.
// One file per install keeps the CLI inspection commands trivial and avoids
// dragging a database into a tool that writes a handful of rows per session.
package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ssupark/oratio/internal/llm"
)

// ErrNotFound indicates no entry with the requested ID exists.
var ErrNotFound = errors.New("eventlog: entry not found")

// Entry is one persisted LLM request.
type Entry struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Purpose      string    `json:"purpose"`
	LatencyMs    int64     `json:"latencyMs"`
	Success      bool      `json:"success"`
	InputTokens  int       `json:"inputTokens"`
	OutputTokens int       `json:"outputTokens"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	RequestBody  string    `json:"requestBody,omitempty"`
	ResponseBody string    `json:"responseBody,omitempty"`
}

// Log appends entries to a JSONL file. Safe for concurrent use within one
// process; the file is opened per append so an abrupt exit loses at most
// the entry being written.
type Log struct {
	mu   sync.Mutex
	path string
}

// Open prepares a log at path, creating parent directories as needed.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("eventlog: %w", err)
	}
	return &Log{path: path}, nil
}

// DefaultPath places the log under the user state directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "oratio", "llm.jsonl"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("eventlog: %w", err)
	}
	return filepath.Join(home, ".local", "state", "oratio", "llm.jsonl"), nil
}

// Path returns the backing file location.
func (l *Log) Path() string { return l.path }

// AppendLLMRequest implements llm.EventSink.
func (l *Log) AppendLLMRequest(_ context.Context, ev llm.RequestEvent) error {
	entry := Entry{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Provider:     ev.Provider,
		Model:        ev.Model,
		Purpose:      ev.Purpose,
		LatencyMs:    ev.LatencyMs,
		Success:      ev.Success,
		InputTokens:  ev.InputTokens,
		OutputTokens: ev.OutputTokens,
		ErrorMessage: ev.ErrorMessage,
		RequestBody:  ev.RequestBody,
		ResponseBody: ev.ResponseBody,
	}
	return l.append(entry)
}

func (l *Log) append(entry Entry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("eventlog: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("eventlog: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("eventlog: %w", err)
	}
	return f.Sync()
}

// Recent returns up to n entries, newest first. n <= 0 returns everything.
func (l *Log) Recent(n int) ([]Entry, error) {
	entries, err := l.readAll()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Get returns the entry with the given ID. A unique ID prefix is accepted,
// matching the short IDs the list command prints.
func (l *Log) Get(id string) (*Entry, error) {
	entries, err := l.readAll()
	if err != nil {
		return nil, err
	}

	var found *Entry
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
		if strings.HasPrefix(entries[i].ID, id) {
			if found != nil {
				return nil, fmt.Errorf("eventlog: ambiguous ID prefix %q", id)
			}
			found = &entries[i]
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// ModelUsage aggregates calls and tokens for one model.
type ModelUsage struct {
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Stats summarizes the whole log.
type Stats struct {
	Total        int
	Failures     int
	InputTokens  int
	OutputTokens int
	ByPurpose    map[string]int
	ByModel      map[string]ModelUsage
}

// Summarize aggregates counters over all entries.
func (l *Log) Summarize() (*Stats, error) {
	entries, err := l.readAll()
	if err != nil {
		return nil, err
	}

	st := &Stats{
		ByPurpose: make(map[string]int),
		ByModel:   make(map[string]ModelUsage),
	}
	for _, e := range entries {
		st.Total++
		if !e.Success {
			st.Failures++
		}
		st.InputTokens += e.InputTokens
		st.OutputTokens += e.OutputTokens
		if e.Purpose != "" {
			st.ByPurpose[e.Purpose]++
		}
		if e.Model != "" {
			mu := st.ByModel[e.Model]
			mu.Calls++
			mu.InputTokens += e.InputTokens
			mu.OutputTokens += e.OutputTokens
			st.ByModel[e.Model] = mu
		}
	}
	return st, nil
}

func (l *Log) readAll() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("eventlog: %w", err)
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			// A torn final line from a crashed process is skipped
			// rather than poisoning the whole log.
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("eventlog: %w", err)
	}
	return entries, nil
}
