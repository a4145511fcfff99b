package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"review-analytics/config"
	"review-analytics/pipeline"
	"review-analytics/utils"
)

// Run command flags.
var (
	appsFlag    string
	reviewsFlag string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "review-analytics",
	Short: "App review ETL and KPI reporting",
	Long: `review-analytics normalizes heterogeneous app review exports
(JSONL, CSV or JSON) into one canonical dataset, then derives per-app
KPIs, daily metrics and sentiment consistency flags from it.

Outputs land in the processed data directory as JSONL/JSON datasets and
CSV tables, and optionally in a relational mart (PostgreSQL or SQLite).`,
}

// runCmd executes the full batch over the raw datasets.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline over the raw datasets",
	Long: `Run normalizes the raw app metadata and review feed, persists the
canonical datasets, and rebuilds every output table from scratch.

Input locations come from the environment (.env) and can be overridden
per run:

  review-analytics run
  review-analytics run --reviews user_reviews_raw.csv
  review-analytics run --apps /data/exports/apps.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.NewLogger()
		cfg := config.Load()
		logger.SetLevel(cfg.LogLevel)

		mart := cfg.DBDriver
		if mart == "" {
			mart = "off"
		}
		logger.Info("=== Review Analytics Pipeline starting ===")
		logger.Info("Config — raw: %s | processed: %s | review cap: %d | mart: %s",
			cfg.RawDataDir, cfg.ProcessedDataDir, cfg.MaxReviews, mart)

		appsName := appsFlag
		if appsName == "" {
			appsName = cfg.RawAppsFile
		}
		reviewsName := reviewsFlag
		if reviewsName == "" {
			reviewsName = cfg.RawReviewsFile
		}

		p := pipeline.New(cfg, logger)
		summary, err := p.Run(cfg.ResolveRaw(appsName), cfg.ResolveRaw(reviewsName))
		if err != nil {
			return err
		}

		if cfg.DBDriver != "" {
			fmt.Printf("  Done. %d reviews | Tables → %s | Mart → %s\n\n",
				summary.ReviewsProcessed, cfg.ProcessedDataDir, cfg.DBDriver)
		} else {
			fmt.Printf("  Done. %d reviews | Tables → %s\n\n",
				summary.ReviewsProcessed, cfg.ProcessedDataDir)
		}
		return nil
	},
}

// reportCmd reprints the dataset summary without touching raw inputs.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dataset summary from a previous run",
	Long: `Report recomputes the dataset summary from the processed outputs of
the last run and prints it. The raw inputs are not read, so this works
even after they have been rotated away.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.NewLogger()
		cfg := config.Load()
		logger.SetLevel(cfg.LogLevel)

		return pipeline.New(cfg, logger).Report()
	},
}

func init() {
	runCmd.Flags().StringVar(&appsFlag, "apps", "", "raw app metadata file (name inside RAW_DATA_DIR, or a path)")
	runCmd.Flags().StringVar(&reviewsFlag, "reviews", "", "raw review feed file (name inside RAW_DATA_DIR, or a path)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
