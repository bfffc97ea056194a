// Package main provides the CLI entry point for itemimport.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/catalog"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/config"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/importer"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/logger"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/metrics"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputPath  string
	pretty      bool
	apiURL      string
	timeout     time.Duration
	env         string
	metricsFile string
	dryRun      bool
	limit       int
	sheets      []string
	noFallback  bool
	skipStock   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "itemimport [input.xlsx]",
		Short: "Import inventory items from supplier workbooks",
		Long: `itemimport reads a supplier/inventory workbook, rebuilds one record per
inventory item (part numbers, origin, grade, pricing, model fitments) and
creates the items in the parts catalog.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSON results to this file")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "Catalog API base URL (default from ITEMIMPORT_API_URL)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Catalog request timeout")
	rootCmd.Flags().StringVar(&env, "env", "", "Logging environment: development or production")
	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract items and print them as JSON without importing")
	rootCmd.Flags().IntVar(&limit, "limit", 0, "Import at most this many items (0 means all)")
	rootCmd.Flags().StringSliceVar(&sheets, "sheet", nil, "Only process the named sheets (repeatable)")
	rootCmd.Flags().BoolVar(&noFallback, "no-fallback", false, "Disable positional column reading")
	rootCmd.Flags().BoolVar(&skipStock, "skip-stock", false, "Do not create opening stock movements")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("logger setup failed: %w", err)
	}
	defer func() { _ = log.Sync() }()

	opts := itemimport.DefaultOptions()
	opts.Logger = log
	opts.Sheets = sheets
	if noFallback {
		useFallback := false
		opts.UseFallback = &useFallback
	}

	// Extract items
	wb, err := itemimport.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	items := wb.Items()
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	log.Info("items extracted", zap.String("book", wb.BookName), zap.Int("items", len(items)))

	if dryRun {
		jsonData, err := output.ItemsToJSON(items, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return writeOutput(jsonData)
	}

	reg := metrics.NewRegistry()
	reg.ItemsExtracted.Add(float64(len(items)))

	client := catalog.NewClient(cfg.CatalogURL, cfg.HTTPTimeout, log)
	client.OnRequest(func(op string, d time.Duration) {
		reg.RequestLatency.WithLabelValues(op).Observe(d.Seconds())
	})

	imp := importer.New(client, log, reg, importer.Options{
		PauseEvery:        cfg.PauseEvery,
		PauseFor:          cfg.PauseFor,
		ErrorMessageLimit: cfg.ErrorMessageLimit,
		SkipStock:         cfg.SkipStock,
	})

	outcome, err := imp.Run(context.Background(), items)
	if err != nil {
		return fmt.Errorf("import aborted: %w", err)
	}

	if err := importer.WriteReport(os.Stdout, outcome, cfg.MaxReportedErrors); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if outputPath != "" {
		jsonData, err := output.OutcomeToJSON(outcome, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		if err := writeOutput(jsonData); err != nil {
			return err
		}
	}

	if cfg.MetricsFile != "" {
		if err := reg.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return nil
}

// applyFlags overrides environment configuration with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.CatalogURL = apiURL
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = timeout
	}
	if flags.Changed("env") {
		cfg.Env = env
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
	if flags.Changed("skip-stock") {
		cfg.SkipStock = skipStock
	}
}

// writeOutput writes JSON to the output file, or stdout when none is set.
func writeOutput(jsonData []byte) error {
	if outputPath == "" {
		fmt.Println(string(jsonData))
		return nil
	}
	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
