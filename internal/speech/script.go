package speech

import (
	"context"
	"sync"
)

// ScriptRecognizer is a deterministic in-memory recognizer. Each capture
// "hears" the next queued line; used by tests and by demo sessions.
type ScriptRecognizer struct {
	mu        sync.Mutex
	lines     []string
	listening bool
	current   string
	starts    int
}

// NewScriptRecognizer queues the lines future captures will transcribe.
func NewScriptRecognizer(lines ...string) *ScriptRecognizer {
	return &ScriptRecognizer{lines: lines}
}

func (r *ScriptRecognizer) Supported() bool { return true }

func (r *ScriptRecognizer) Start(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listening {
		return nil
	}
	r.listening = true
	r.current = ""
	r.starts++
	if len(r.lines) > 0 {
		r.current = r.lines[0]
		r.lines = r.lines[1:]
	}
	return nil
}

func (r *ScriptRecognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listening = false
	return nil
}

func (r *ScriptRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

func (r *ScriptRecognizer) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Starts returns how many captures have begun.
func (r *ScriptRecognizer) Starts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starts
}

// ScriptSynthesizer records spoken text instead of producing audio.
type ScriptSynthesizer struct {
	mu       sync.Mutex
	spoken   []string
	speaking bool
}

func NewScriptSynthesizer() *ScriptSynthesizer { return &ScriptSynthesizer{} }

func (s *ScriptSynthesizer) Supported() bool { return true }

func (s *ScriptSynthesizer) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	s.speaking = false
	return nil
}

func (s *ScriptSynthesizer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speaking = false
	return nil
}

func (s *ScriptSynthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// Spoken returns everything spoken so far.
func (s *ScriptSynthesizer) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.spoken))
	copy(out, s.spoken)
	return out
}
