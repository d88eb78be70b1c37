package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/self-focus/backend/internal/application/usecase/transaction"
	domainerror "github.com/self-focus/backend/internal/domain/error"
	"github.com/self-focus/backend/internal/infra/dependency"
)

var (
	flagExportUser string
	flagExportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's transactions as CSV",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportUser, "user", "u", "", "Email or username of the account (required)")
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "-", "Output file, - for stdout")
	_ = exportCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	return withInjector(cmd.Context(), func(ctx context.Context, inj *dependency.Injector) error {
		user, err := inj.Users.FindByEmail(ctx, strings.ToLower(flagExportUser))
		if errors.Is(err, domainerror.ErrUserNotFound) {
			user, err = inj.Users.FindByUsername(ctx, flagExportUser)
		}
		if err != nil {
			return fmt.Errorf("find user %q: %w", flagExportUser, err)
		}

		var w io.Writer = cmd.OutOrStdout()
		if flagExportOut != "-" {
			f, err := os.Create(flagExportOut)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		n, err := inj.ExportTransactions.Execute(ctx, transaction.ExportTransactionsInput{
			UserID: user.ID,
			Writer: w,
		})
		if err != nil {
			return err
		}
		if flagExportOut != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "  Wrote %d transactions to %s\n", n, flagExportOut)
		}
		return nil
	})
}
