package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"planetary-server/internal/app"

	"github.com/spf13/cobra"
)

// AppFactory opens the application a command runs against
type AppFactory func(ctx context.Context) (*app.App, error)

// RootCommand creates and returns the root command
func RootCommand(open AppFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "planetctl",
		Short:        "Planetary Design Environment administration",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		seedCommand(open),
		listCommand(open),
		getCommand(open),
		deleteCommand(open),
		integrityCommand(open),
	)

	return rootCmd
}

// withApp opens the application for the duration of fn
func withApp(cmd *cobra.Command, open AppFactory, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()

	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to close store", "component", "planetctl", "error", err)
		}
	}()

	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
