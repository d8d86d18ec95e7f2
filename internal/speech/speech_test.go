package speech

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestNoRecognizer_Gated(t *testing.T) {
	var r Recognizer = NoRecognizer{}
	if r.Supported() {
		t.Error("NoRecognizer must report unsupported")
	}
	if err := r.Start(context.Background()); err != nil {
		t.Errorf("Start: %v", err)
	}
	if r.Listening() {
		t.Error("NoRecognizer never listens")
	}
	if r.Transcript() != "" {
		t.Error("NoRecognizer never transcribes")
	}
}

func TestNoSynthesizer_Gated(t *testing.T) {
	var s Synthesizer = NoSynthesizer{}
	if s.Supported() {
		t.Error("NoSynthesizer must report unsupported")
	}
	if err := s.Speak(context.Background(), "hello"); err != nil {
		t.Errorf("Speak: %v", err)
	}
	if s.Speaking() {
		t.Error("NoSynthesizer never speaks")
	}
}

func TestAssemblyAI_UnsupportedWithoutKey(t *testing.T) {
	r := NewAssemblyAIRecognizer("")
	if r.Supported() {
		t.Error("empty API key must gate recognition off")
	}
	if err := r.Start(context.Background()); err == nil {
		t.Error("starting an unsupported recognizer must fail")
	}
	if err := r.Stop(); err != nil {
		t.Errorf("Stop on idle recognizer: %v", err)
	}
}

func TestAssemblyAI_StopIdempotentWhenIdle(t *testing.T) {
	r := NewAssemblyAIRecognizer("key")
	for i := 0; i < 3; i++ {
		if err := r.Stop(); err != nil {
			t.Fatalf("Stop #%d: %v", i+1, err)
		}
	}
	if r.Listening() {
		t.Error("idle recognizer must not report listening")
	}
}

// wsPair dials a local websocket server and returns both ends.
func wsPair(t *testing.T) (client, server *websocket.Conn) {
	t.Helper()
	var upgrader websocket.Upgrader
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		c, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conns <- c
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, <-conns
}

func waitClosed(t *testing.T, ch <-chan struct{}, name string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s never signalled", name)
	}
}

func TestAssemblyAI_ListenAccumulatesTurns(t *testing.T) {
	r := NewAssemblyAIRecognizer("key")
	client, server := wsPair(t)

	done := make(chan struct{})
	go r.listen(client, done)

	send := func(v any) {
		t.Helper()
		if err := server.WriteJSON(v); err != nil {
			t.Fatalf("WriteJSON: %v", err)
		}
	}

	send(map[string]any{"type": "Turn", "transcript": "안녕하", "end_of_turn": false})
	waitTranscript(t, r, "안녕하")

	send(map[string]any{
		"type": "Turn", "transcript": "안녕하세요.",
		"end_of_turn": true, "turn_is_formatted": true,
	})
	waitTranscript(t, r, "안녕하세요.")

	send(map[string]string{"type": "Termination"})
	waitClosed(t, done, "drain")
}

func waitTranscript(t *testing.T, r *AssemblyAIRecognizer, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.Transcript() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Transcript = %q, want %q", r.Transcript(), want)
}

// A listener that outlives its drain window must signal the session it was
// started with, not whichever session the recognizer currently holds.
func TestAssemblyAI_StaleListenerSignalsOwnSession(t *testing.T) {
	r := NewAssemblyAIRecognizer("key")

	oldClient, oldServer := wsPair(t)
	oldDone := make(chan struct{})
	go r.listen(oldClient, oldDone)

	// The next capture starts while the old listener is still alive.
	newClient, newServer := wsPair(t)
	newDone := make(chan struct{})
	r.mu.Lock()
	r.done = newDone
	r.mu.Unlock()
	go r.listen(newClient, newDone)

	if err := oldServer.WriteJSON(map[string]string{"type": "Termination"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	waitClosed(t, oldDone, "old session")

	select {
	case <-newDone:
		t.Fatal("stale listener closed the new session's channel")
	default:
	}

	if err := newServer.WriteJSON(map[string]string{"type": "Termination"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	waitClosed(t, newDone, "new session")
}

func TestElevenLabs_UnsupportedWithoutKey(t *testing.T) {
	s := NewElevenLabsSynthesizer("", "")
	if s.Supported() {
		t.Error("empty API key must gate synthesis off")
	}
	if err := s.Speak(context.Background(), "text"); err == nil {
		t.Error("speaking on an unsupported synthesizer must fail")
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop on idle synthesizer: %v", err)
	}
}

func TestElevenLabs_DefaultVoice(t *testing.T) {
	s := NewElevenLabsSynthesizer("key", "")
	if s.voiceID != defaultVoiceID {
		t.Errorf("voiceID = %q", s.voiceID)
	}
	custom := NewElevenLabsSynthesizer("key", "my-voice")
	if custom.voiceID != "my-voice" {
		t.Errorf("voiceID = %q", custom.voiceID)
	}
}

type errReadCloser struct{ err error }

func (e errReadCloser) Read([]byte) (int, error) { return 0, e.err }
func (errReadCloser) Close() error               { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestElevenLabs_PlaybackErrorsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := playbackLog
	playbackLog = &buf
	defer func() { playbackLog = prev }()

	body := errReadCloser{err: errors.New("stream cut")}
	stdin := nopWriteCloser{io.Discard}
	player := exec.Command("true") // never started, so Wait reports an error

	pipePlayback(context.Background(), body, stdin, player)

	out := buf.String()
	if !strings.Contains(out, "stream cut") {
		t.Errorf("stream error not logged: %q", out)
	}
	if !strings.Contains(out, "speech playback") {
		t.Errorf("player error not logged: %q", out)
	}
}

func TestElevenLabs_CancelledPlaybackSilent(t *testing.T) {
	var buf bytes.Buffer
	prev := playbackLog
	playbackLog = &buf
	defer func() { playbackLog = prev }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := errReadCloser{err: errors.New("stream cut")}
	pipePlayback(ctx, body, nopWriteCloser{io.Discard}, exec.Command("true"))

	if buf.Len() != 0 {
		t.Errorf("deliberate stop must not warn, got %q", buf.String())
	}
}

func TestScriptRecognizer_CaptureCycle(t *testing.T) {
	r := NewScriptRecognizer("첫 답변", "둘째 답변")
	ctx := context.Background()

	if !r.Supported() {
		t.Fatal("script recognizer is always supported")
	}

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !r.Listening() {
		t.Error("should be listening after Start")
	}
	// Restarting an active capture must not consume the next line.
	_ = r.Start(ctx)
	if got := r.Transcript(); got != "첫 답변" {
		t.Errorf("Transcript = %q", got)
	}
	if err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if r.Listening() {
		t.Error("should not be listening after Stop")
	}

	_ = r.Start(ctx)
	if got := r.Transcript(); got != "둘째 답변" {
		t.Errorf("second capture Transcript = %q", got)
	}
	_ = r.Stop()

	// Queue exhausted: a further capture hears nothing.
	_ = r.Start(ctx)
	if got := r.Transcript(); got != "" {
		t.Errorf("exhausted Transcript = %q", got)
	}
	if r.Starts() != 3 {
		t.Errorf("Starts = %d, want 3", r.Starts())
	}
}

func TestScriptSynthesizer_RecordsSpeech(t *testing.T) {
	s := NewScriptSynthesizer()
	_ = s.Speak(context.Background(), "질문 하나")
	_ = s.Speak(context.Background(), "질문 둘")

	spoken := s.Spoken()
	if len(spoken) != 2 || spoken[0] != "질문 하나" {
		t.Errorf("Spoken = %v", spoken)
	}
	if s.Speaking() {
		t.Error("script synthesizer finishes instantly")
	}
}
