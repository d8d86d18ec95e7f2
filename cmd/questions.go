package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssupark/oratio/internal/interview"
	"github.com/ssupark/oratio/internal/report"
)

var questionsCmd = &cobra.Command{
	Use:   "questions [level]",
	Short: "Print the interview question sets",
	Long:  "Print the fixed question set for a level (elementary, middle, high), or all levels.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := interview.LoadQuestionSets()
		if err != nil {
			return err
		}

		levels := report.AllLevels
		if len(args) == 1 {
			level, err := report.ParseLevel(args[0])
			if err != nil {
				return err
			}
			levels = []report.Level{level}
		}

		for i, level := range levels {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s (%s)\n", level.Label(), level)
			for n, q := range sets[level] {
				fmt.Printf("  %d. %s\n", n+1, q)
			}
		}
		return nil
	},
}
