package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/self-focus/backend/internal/infra/dependency"
)

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Habit streak maintenance",
}

var streaksRecomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Re-derive the current streak of every active habit for today",
	RunE:  runStreaksRecompute,
}

func init() {
	streaksCmd.AddCommand(streaksRecomputeCmd)
	rootCmd.AddCommand(streaksCmd)
}

func runStreaksRecompute(cmd *cobra.Command, _ []string) error {
	return withInjector(cmd.Context(), func(ctx context.Context, inj *dependency.Injector) error {
		out, err := inj.RecomputeStreaks.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Checked %d habits, updated %d streaks\n", out.Checked, out.Updated)
		return nil
	})
}
