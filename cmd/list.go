package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshdayorg/vibe-check/internal/checker"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available checkers",
	Run: func(cmd *cobra.Command, args []string) {
		checkers := checker.Registry()
		fmt.Fprintf(cmd.OutOrStdout(), "%d checkers available:\n\n", len(checkers))
		for _, c := range checkers {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", colorInfo(c.ID()), c.Name())
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", c.Description())
		}
	},
}
