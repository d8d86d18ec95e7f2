// Package speech provides the optional voice layer: streaming recognition
// of the user's spoken answer and synthesis of the interviewer's question.
// Both capabilities are gated; when one is unavailable the session falls
// back to typed answers and silent question display.
package speech

import "context"

// Recognizer captures microphone audio and accumulates a transcript.
// Start and Stop are idempotent. After Stop returns, Listening reports
// false once the in-flight audio has been drained, and Transcript holds
// the final accumulated text.
type Recognizer interface {
	// Supported reports whether recognition can run in this environment.
	Supported() bool

	// Start begins a fresh capture, clearing any previous transcript.
	// Starting an active capture is a no-op.
	Start(ctx context.Context) error

	// Stop ends the capture. Stopping an inactive capture is a no-op.
	Stop() error

	// Listening reports whether capture or transcript drain is active.
	Listening() bool

	// Transcript returns the text accumulated so far. Safe to call at
	// any time, including mid-capture.
	Transcript() string
}

// Synthesizer speaks a piece of text aloud.
type Synthesizer interface {
	// Supported reports whether synthesis can run in this environment.
	Supported() bool

	// Speak starts playback of text. A second call while speaking stops
	// the current playback first.
	Speak(ctx context.Context, text string) error

	// Stop cancels any active playback. Idempotent.
	Stop() error

	// Speaking reports whether playback is active.
	Speaking() bool
}

// NoRecognizer is the unavailable-capability stand-in. The session treats
// it as "type your answer instead".
type NoRecognizer struct{}

func (NoRecognizer) Supported() bool             { return false }
func (NoRecognizer) Start(context.Context) error { return nil }
func (NoRecognizer) Stop() error                 { return nil }
func (NoRecognizer) Listening() bool             { return false }
func (NoRecognizer) Transcript() string          { return "" }

// NoSynthesizer is the unavailable-capability stand-in; questions are
// shown silently.
type NoSynthesizer struct{}

func (NoSynthesizer) Supported() bool                     { return false }
func (NoSynthesizer) Speak(context.Context, string) error { return nil }
func (NoSynthesizer) Stop() error                         { return nil }
func (NoSynthesizer) Speaking() bool                      { return false }
