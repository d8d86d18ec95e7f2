package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	assemblyAIEndpoint = "wss://streaming.assemblyai.com/v3/ws"

	// audioChunk is 50ms of 16 kHz 16-bit mono PCM.
	audioChunk = 1600

	drainTimeout = 3 * time.Second
)

// AssemblyAIRecognizer streams microphone audio to AssemblyAI's realtime
// endpoint and accumulates formatted turns into a transcript. One capture
// at a time; Start opens a fresh websocket session and Stop terminates it
// after draining in-flight audio.
type AssemblyAIRecognizer struct {
	apiKey string

	mu        sync.Mutex
	active    bool
	draining  bool
	committed []string
	partial   string
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewAssemblyAIRecognizer returns a recognizer bound to an API key. An
// empty key or a machine without a recording tool yields Supported false.
func NewAssemblyAIRecognizer(apiKey string) *AssemblyAIRecognizer {
	return &AssemblyAIRecognizer{apiKey: apiKey}
}

func (r *AssemblyAIRecognizer) Supported() bool {
	return r.apiKey != "" && micAvailable()
}

// Start opens the streaming session and begins forwarding mic audio.
// Calling Start while a capture is active is a no-op.
func (r *AssemblyAIRecognizer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return nil
	}
	if !r.Supported() {
		return fmt.Errorf("speech: recognition not available")
	}

	params := url.Values{}
	params.Set("sample_rate", "16000")
	params.Set("encoding", "pcm_s16le")
	params.Set("format_turns", "true")

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx,
		assemblyAIEndpoint+"?"+params.Encode(),
		map[string][]string{"Authorization": {r.apiKey}})
	if err != nil {
		if resp != nil {
			return fmt.Errorf("speech: connect (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("speech: connect: %w", err)
	}

	mic, err := startMic(context.Background())
	if err != nil {
		_ = conn.Close()
		return err
	}

	captureCtx, cancel := context.WithCancel(context.Background())
	r.active = true
	r.draining = false
	r.committed = nil
	r.partial = ""
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.pump(captureCtx, conn, mic)
	go r.listen(conn, r.done)
	return nil
}

// Stop ends the capture: the mic subprocess is killed, a Terminate frame
// is sent, and the session stays in a draining state until the server's
// final messages arrive or the drain window elapses. Idempotent.
func (r *AssemblyAIRecognizer) Stop() error {
	r.mu.Lock()
	if !r.active || r.draining {
		r.mu.Unlock()
		return nil
	}
	r.draining = true
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	cancel()

	select {
	case <-done:
	case <-time.After(drainTimeout):
	}

	r.mu.Lock()
	r.active = false
	r.draining = false
	r.mu.Unlock()
	return nil
}

func (r *AssemblyAIRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Transcript joins the committed turns with the live partial.
func (r *AssemblyAIRecognizer) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	parts := r.committed
	if r.partial != "" {
		parts = append(append([]string{}, parts...), r.partial)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// pump forwards mic audio to the websocket until the capture is cancelled,
// then kills the mic and asks the server to finalize.
func (r *AssemblyAIRecognizer) pump(ctx context.Context, conn *websocket.Conn, mic *micCapture) {
	defer func() {
		_ = mic.Close()
		_ = conn.WriteJSON(map[string]string{"type": "Terminate"})
	}()

	buf := make([]byte, audioChunk)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := mic.Read(buf)
		if n > 0 {
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

type turnMessage struct {
	Type       string `json:"type"`
	Transcript string `json:"transcript"`
	EndOfTurn  bool   `json:"end_of_turn"`
	Formatted  bool   `json:"turn_is_formatted"`
}

// listen consumes server messages until Termination or a read error, then
// closes the connection and signals the drain. done belongs to the session
// this listener was started with; a listener that outlives its drain window
// must never touch a later session's channel.
func (r *AssemblyAIRecognizer) listen(conn *websocket.Conn, done chan struct{}) {
	defer func() {
		_ = conn.Close()
		close(done)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg turnMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "Turn":
			r.mu.Lock()
			// Formatted end-of-turn commits the text; everything else
			// is a live partial of the current turn.
			if msg.EndOfTurn && msg.Formatted {
				if t := strings.TrimSpace(msg.Transcript); t != "" {
					r.committed = append(r.committed, t)
				}
				r.partial = ""
			} else {
				r.partial = msg.Transcript
			}
			r.mu.Unlock()
		case "Termination":
			return
		}
	}
}
