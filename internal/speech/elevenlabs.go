package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	elevenLabsEndpoint = "https://api.elevenlabs.io/v1/text-to-speech"

	// Rachel, the default multilingual voice.
	defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"
)

// ElevenLabsSynthesizer streams synthesized speech from the ElevenLabs
// text-to-speech API into a local playback subprocess. Playback is
// interruptible; a new Speak or a Stop kills the player mid-stream.
type ElevenLabsSynthesizer struct {
	apiKey  string
	voiceID string
	client  *http.Client

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewElevenLabsSynthesizer returns a synthesizer bound to an API key. An
// empty voiceID selects the default voice.
func NewElevenLabsSynthesizer(apiKey, voiceID string) *ElevenLabsSynthesizer {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	return &ElevenLabsSynthesizer{
		apiKey:  apiKey,
		voiceID: voiceID,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *ElevenLabsSynthesizer) Supported() bool {
	return s.apiKey != "" && playerAvailable()
}

// Speak synthesizes text and plays it. Any playback already in progress is
// stopped first. The call returns once streaming has started; playback
// continues in the background.
func (s *ElevenLabsSynthesizer) Speak(ctx context.Context, text string) error {
	if !s.Supported() {
		return fmt.Errorf("speech: synthesis not available")
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_ = s.Stop()

	playCtx, cancel := context.WithCancel(context.Background())

	body, err := s.stream(ctx, text)
	if err != nil {
		cancel()
		return err
	}

	player, stdin, err := startPlayer(playCtx)
	if err != nil {
		cancel()
		body.Close()
		return err
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		pipePlayback(playCtx, body, stdin, player)
	}()
	return nil
}

// playbackLog receives playback warnings. A failed utterance is never a
// session fault, but it must not vanish silently either.
var playbackLog io.Writer = os.Stderr

// pipePlayback streams the synthesis body into the player and waits for it
// to exit. Errors after a deliberate cancel are expected and not reported.
func pipePlayback(ctx context.Context, body io.ReadCloser, stdin io.WriteCloser, player *exec.Cmd) {
	defer body.Close()

	if _, err := io.Copy(stdin, body); err != nil && ctx.Err() == nil {
		fmt.Fprintf(playbackLog, "warning: speech playback stream: %v\n", err)
	}
	_ = stdin.Close()
	if err := player.Wait(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(playbackLog, "warning: speech playback: %v\n", err)
	}
}

// Stop kills any active playback. Idempotent.
func (s *ElevenLabsSynthesizer) Stop() error {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	return nil
}

func (s *ElevenLabsSynthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// stream opens the streaming synthesis response. Raw 16 kHz PCM keeps the
// player side free of any decoder.
func (s *ElevenLabsSynthesizer) stream(ctx context.Context, text string) (io.ReadCloser, error) {
	payload := fmt.Sprintf(`{"text":%q,"model_id":"eleven_multilingual_v2"}`, text)
	url := fmt.Sprintf("%s/%s/stream?output_format=pcm_16000", elevenLabsEndpoint, s.voiceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("speech: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: synthesis request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("speech: synthesis request failed with status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// startPlayer launches a subprocess that plays raw PCM (16 kHz, 16-bit LE,
// mono) from stdin.
func startPlayer(ctx context.Context) (*exec.Cmd, io.WriteCloser, error) {
	var cmd *exec.Cmd
	switch {
	case commandExists("aplay"):
		cmd = exec.CommandContext(ctx, "aplay", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw")
	case commandExists("play"):
		cmd = exec.CommandContext(ctx, "play", "-q",
			"-t", "raw", "-r", "16000", "-e", "signed-integer", "-b", "16", "-c", "1", "-")
	default:
		return nil, nil, fmt.Errorf("speech: no playback tool found (need aplay or play)")
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("speech: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("speech: start player: %w", err)
	}
	return cmd, stdin, nil
}

func playerAvailable() bool {
	return commandExists("aplay") || commandExists("play")
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
