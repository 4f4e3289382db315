package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"titrate/adapters/api"
	"titrate/adapters/report"
	"titrate/internal"
	"titrate/internal/config"
	"titrate/internal/container"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *internal.Logger
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "titrate",
		Short: "Compute and plot pH curves for acid-base titrations",
		Long: `titrate sweeps titrant volume over an acid-base titration and reports the
pH curve, the equivalence point and the titrant needed to reach it.

Defaults come from TITRATION_* environment variables (a .env file is loaded
when present); command flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()

			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			if logLevel != "" {
				cfg.LogLevel = internal.ParseLogLevel(logLevel)
			}
			logger = internal.NewLogger(cfg.LogLevel, os.Stderr)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newCurveCmd(),
		newReactCmd(),
		newServeCmd(),
		newRunsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newContainer builds the dependency container from the loaded configuration
func newContainer(ctx context.Context) (*container.Container, error) {
	c, err := container.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func newCurveCmd() *cobra.Command {
	var flags scenarioFlags
	var plotFile, excelFile, dbURL, htmlFile string

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Sweep titrant volume and print the titration report",
		Long: `Sweep titrant volume from --initial to --final in steps of --increment and
print the five-line report. Charts are written when --plot or --xlsx is set.

Example: titrate curve --kind base --k 1.8e-5 --c-analyte 0.1 --c-titrant 0.1 --plot curve.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := flags.apply(cmd, cfg.Scenario)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("plot") {
				cfg.Output.PlotFile = plotFile
			}
			if cmd.Flags().Changed("xlsx") {
				cfg.Output.ExcelFile = excelFile
			}
			if cmd.Flags().Changed("db") {
				cfg.Database.URL = dbURL
			}
			if flags.workers > 0 {
				cfg.Workers = flags.workers
			}

			c, err := newContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			run, err := c.CurveService.Run(cmd.Context(), scenario)
			if err != nil {
				return err
			}

			if err := report.WriteText(cmd.OutOrStdout(), run.Summary); err != nil {
				return err
			}
			if c.Archive != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "archived as %s\n", run.ID)
			}
			if htmlFile != "" {
				if err := os.WriteFile(htmlFile, report.HTML(run), 0o644); err != nil {
					return fmt.Errorf("failed to write HTML report: %w", err)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&plotFile, "plot", "", "write the curve as an image (.png, .svg, .pdf)")
	cmd.Flags().StringVar(&excelFile, "xlsx", "", "write the curve and a chart to an Excel workbook")
	cmd.Flags().StringVar(&dbURL, "db", "", "archive the run in this database (overrides DATABASE_URL)")
	cmd.Flags().StringVar(&htmlFile, "html", "", "write an HTML report to this file")
	return cmd
}

func newReactCmd() *cobra.Command {
	var flags scenarioFlags
	var volume float64

	cmd := &cobra.Command{
		Use:   "react",
		Short: "Evaluate the mixture after adding one volume of titrant",
		Long: `Run the neutralization for a single titrant volume and print the remaining
moles, the titration regime and the pH.

Example: titrate react --volume 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := flags.apply(cmd, cfg.Scenario)
			if err != nil {
				return err
			}

			// a single probe has nothing to draw or archive
			cfg.Output = config.OutputConfig{}
			cfg.Database.URL = ""
			c, err := newContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			sample, err := c.CurveService.Probe(scenario, volume)
			if err != nil {
				return err
			}

			st := sample.State
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Titrant added: %g %s\n", sample.Volume, scenario.Unit)
			fmt.Fprintf(out, "Regime: %s\n", st.Regime)
			fmt.Fprintf(out, "Analyte remaining: %g mol\n", st.AnalyteMol)
			fmt.Fprintf(out, "Titrant excess: %g mol\n", st.TitrantMol)
			fmt.Fprintf(out, "Salt formed: %g mol\n", st.SaltMol)
			if scenario.Ratio.HasWater() {
				fmt.Fprintf(out, "Water formed: %g mol\n", st.WaterMol)
			}
			fmt.Fprintf(out, "Total volume: %g L\n", st.VolumeL)
			fmt.Fprintf(out, "pH: %.4f", sample.PH)
			if !sample.InScale {
				fmt.Fprint(out, " (outside the 0-14 scale)")
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&volume, "volume", 0, "titrant volume added, in the scenario unit")
	_ = cmd.MarkFlagRequired("volume")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the titration API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// sinks write fixed files, so concurrent API requests must not share them
			cfg.Output = config.OutputConfig{}
			c, err := newContainer(ctx)
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			server := api.NewServer(c.CurveService, cfg.Scenario, logger)
			return server.ListenAndServe(ctx, ":"+cfg.Server.Port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
