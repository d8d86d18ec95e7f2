package speech

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// micCapture runs a recording subprocess that writes raw PCM (16 kHz,
// 16-bit little-endian, mono) to stdout. sox's rec is preferred, arecord
// is the ALSA fallback.
type micCapture struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func micCommand(ctx context.Context) (*exec.Cmd, error) {
	if _, err := exec.LookPath("rec"); err == nil {
		return exec.CommandContext(ctx, "rec", "-q",
			"-t", "raw", "-r", "16000", "-e", "signed-integer", "-b", "16", "-c", "1", "-"), nil
	}
	if _, err := exec.LookPath("arecord"); err == nil {
		return exec.CommandContext(ctx, "arecord", "-q",
			"-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw"), nil
	}
	return nil, fmt.Errorf("speech: no recording tool found (need rec or arecord)")
}

// micAvailable reports whether a recording tool exists on PATH.
func micAvailable() bool {
	if _, err := exec.LookPath("rec"); err == nil {
		return true
	}
	_, err := exec.LookPath("arecord")
	return err == nil
}

func startMic(ctx context.Context) (*micCapture, error) {
	cmd, err := micCommand(ctx)
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("speech: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("speech: start recorder: %w", err)
	}
	return &micCapture{cmd: cmd, stdout: stdout}, nil
}

func (m *micCapture) Read(p []byte) (int, error) {
	return m.stdout.Read(p)
}

func (m *micCapture) Close() error {
	if m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
	_ = m.stdout.Close()
	return m.cmd.Wait()
}
