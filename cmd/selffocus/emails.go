package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/self-focus/backend/internal/infra/dependency"
)

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Email queue maintenance",
}

var emailsFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Deliver one batch of pending emails and exit",
	RunE:  runEmailsFlush,
}

func init() {
	emailsCmd.AddCommand(emailsFlushCmd)
	rootCmd.AddCommand(emailsCmd)
}

func runEmailsFlush(cmd *cobra.Command, _ []string) error {
	return withInjector(cmd.Context(), func(ctx context.Context, inj *dependency.Injector) error {
		inj.EmailWorker.ProcessNow(ctx)
		fmt.Fprintln(cmd.OutOrStdout(), "  Email batch processed")
		return nil
	})
}
