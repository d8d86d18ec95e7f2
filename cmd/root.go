package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ssupark/oratio/internal/eventlog"
)

var rootCmd = &cobra.Command{
	Use:   "oratio",
	Short: "AI speaking coach for school interviews",
	Long:  "Oratio is a terminal coach that runs a spoken mock interview and builds AI feedback reports for each answer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// API keys commonly live in a local .env during development; absence
	// is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log", "", "Path to the LLM event log (overrides ORATIO_LOG env var)")

	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveLogPath returns the event log path using --log (highest priority),
// then ORATIO_LOG, then the default XDG state path.
func resolveLogPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("log"); p != "" {
		return p, nil
	}
	if p := os.Getenv("ORATIO_LOG"); p != "" {
		return p, nil
	}
	return eventlog.DefaultPath()
}
