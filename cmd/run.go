package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssupark/oratio/internal/app"
	"github.com/ssupark/oratio/internal/eventlog"
	"github.com/ssupark/oratio/internal/llm"
	"github.com/ssupark/oratio/internal/report"
	"github.com/ssupark/oratio/internal/speech"
)

// runApp wires the services and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logPath, err := resolveLogPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}
	log, err := eventlog.Open(logPath)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}

	opts := app.Options{}

	provider, err := llm.NewProviderFromEnv(ctx, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Interviews will run without AI feedback reports.")
	}
	opts.Reports = report.NewService(provider)

	opts.Recognizer = buildRecognizer()
	opts.Synthesizer = buildSynthesizer()

	return app.Run(opts)
}

// buildRecognizer returns the voice capture adapter, or the unavailable
// stand-in when the key or a recording tool is missing.
func buildRecognizer() speech.Recognizer {
	key := os.Getenv("ASSEMBLYAI_API_KEY")
	if key == "" {
		return speech.NoRecognizer{}
	}
	r := speech.NewAssemblyAIRecognizer(key)
	if !r.Supported() {
		return speech.NoRecognizer{}
	}
	return r
}

func buildSynthesizer() speech.Synthesizer {
	key := os.Getenv("ELEVENLABS_API_KEY")
	if key == "" {
		return speech.NoSynthesizer{}
	}
	s := speech.NewElevenLabsSynthesizer(key, os.Getenv("ELEVENLABS_VOICE_ID"))
	if !s.Supported() {
		return speech.NoSynthesizer{}
	}
	return s
}
