package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/brewresults/internal/config"
	"github.com/JonMunkholm/brewresults/internal/core"
	"github.com/JonMunkholm/brewresults/internal/logging"
	"github.com/JonMunkholm/brewresults/internal/report"
)

type flags struct {
	csv     string
	year    int
	debug   bool
	awards  string
	vendors []string
	out     string
}

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envLoaded := godotenv.Overload() == nil

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(envLoaded)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		stop()
		os.Exit(1)
	}
}

func newRootCmd(envLoaded bool) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Convert a competition entry export into results, engravings and gift cards",
		Long: "results reads a judged entry export (.csv or .xlsx) and writes the medal\n" +
			"engraving list, the results HTML and the gift card HTML next to it.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f, envLoaded)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.csv, "csv", "c", "", "entry export to read (.csv or .xlsx)")
	fs.IntVarP(&f.year, "year", "y", 0, "year printed on engravings (default: RESULTS_YEAR or current year)")
	fs.BoolVarP(&f.debug, "debug", "d", false, "also write the aggregated results as YAML")
	fs.StringVarP(&f.awards, "awards", "a", "", "YAML award table (default: AWARDS_FILE)")
	fs.StringSliceVar(&f.vendors, "vendors", nil, "gift card vendors, comma separated (default: GIFT_CARD_VENDORS)")
	fs.StringVarP(&f.out, "out", "o", "", "output directory (default: alongside the input)")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

func run(cmd *cobra.Command, f flags, envLoaded bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("year") {
		cfg.Run.Year = f.year
	}
	if fs.Changed("debug") {
		cfg.Run.Debug = f.debug
	}
	if fs.Changed("out") {
		cfg.Run.OutputDir = f.out
	}
	if fs.Changed("awards") {
		cfg.Awards.File = f.awards
	}
	if fs.Changed("vendors") {
		cfg.Awards.Vendors = f.vendors
	}
	cfg.ResolveDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	if envLoaded {
		slog.Debug("loaded .env file (overwriting existing env vars)")
	}

	ctx, runID := logging.WithRunID(cmd.Context())
	log := logging.FromContext(ctx)
	log.Info("configuration loaded", "config", cfg.String())

	awards, err := config.LoadAwards(cfg.Awards.File, cfg.Awards.Vendors)
	if err != nil {
		return err
	}

	summary, err := report.Run(ctx, report.Options{
		InputPath: f.csv,
		OutputDir: cfg.Run.OutputDir,
		Year:      cfg.Run.YearLabel(),
		Debug:     cfg.Run.Debug,
		Policy:    awards.Policy(),
	})
	if err != nil {
		if core.IsUserFacing(err) {
			log.Warn("run rejected input", "error", err)
		} else {
			log.Error("run failed", "error", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %d records, %d skipped, %d groups, %d placements\n",
		runID, summary.Records, summary.Skipped, summary.Groups, summary.Placements)
	fmt.Fprintf(out, "Gift cards: $%d across %d vendor(s)\n", summary.GiftCardTotal, summary.Vendors)
	for _, path := range summary.Files {
		fmt.Fprintln(out, "  wrote", path)
	}
	return nil
}
