package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"titrate/adapters/report"
	"titrate/domain/core"
	"titrate/internal/errors"

	"github.com/spf13/cobra"
)

func newRunsCmd() *cobra.Command {
	var dbURL string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect archived titration runs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if dbURL != "" {
				cfg.Database.URL = dbURL
			}
			if !cfg.Database.Enabled() {
				return errors.ConfigInvalid("no run archive configured: set DATABASE_URL or --db")
			}
			cfg.Output.PlotFile, cfg.Output.ExcelFile = "", ""
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&dbURL, "db", "", "archive database (overrides DATABASE_URL)")

	cmd.AddCommand(newRunsListCmd(), newRunsShowCmd())
	return cmd
}

func newRunsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			runs, err := c.Archive.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tTYPE\tEQUIVALENCE PH\tSCENARIO")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Label, r.EquivalencePH, r.Fingerprint.Short())
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")
	return cmd
}

func newRunsShowCmd() *cobra.Command {
	var htmlFile string
	var markdown bool

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Print the report of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseRunID(args[0])
			if err != nil {
				return errors.ConfigInvalid("%v", err)
			}

			c, err := newContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			run, err := c.Archive.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			if markdown {
				_, err = cmd.OutOrStdout().Write(report.Markdown(run))
			} else {
				err = report.WriteText(cmd.OutOrStdout(), run.Summary)
			}
			if err != nil {
				return err
			}
			if htmlFile != "" {
				if err := os.WriteFile(htmlFile, report.HTML(run), 0o644); err != nil {
					return fmt.Errorf("failed to write HTML report: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print the full Markdown report")
	cmd.Flags().StringVar(&htmlFile, "html", "", "also write an HTML report to this file")
	return cmd
}
