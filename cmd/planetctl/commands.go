package main

import (
	"context"
	"fmt"

	"planetary-server/internal/app"

	"github.com/spf13/cobra"
)

func seedCommand(open AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default solar system if no bodies exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				outcome, err := a.Seeder.InitializeDefaults(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
				return nil
			})
		},
	}
}

func listCommand(open AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:       "list <bodies|settings|systems>",
		Short:     "Print every record of a resource as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: resourceNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				records, err := r.list(ctx, a)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), records)
			})
		},
	}
}

func getCommand(open AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <bodies|settings|systems> <id>",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				record, err := r.get(ctx, a, args[1])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), record)
			})
		},
	}
}

func deleteCommand(open AppFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <bodies|settings|systems> <id>",
		Short: "Delete one record",
		Long:  "Delete one record. References to it from other records are left in place; run integrity to find them.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				if err := r.delete(ctx, a, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", args[0], args[1])
				return nil
			})
		},
	}
}

func integrityCommand(open AppFactory) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "integrity",
		Short: "Report dangling references and unknown body types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				report, err := a.Systems.CheckIntegrity(ctx)
				if err != nil {
					return err
				}
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				if strict && !report.OK {
					return fmt.Errorf("integrity check found problems")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with an error when the report is not clean")
	return cmd
}
