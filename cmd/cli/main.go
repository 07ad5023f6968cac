package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"discharge-analyzer/internal/chart"
	"discharge-analyzer/internal/config"
	"discharge-analyzer/internal/discharge"
	"discharge-analyzer/internal/logging"
	"discharge-analyzer/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "peaks":
		cmdPeaks(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --config examples/config.yaml [--cutoff 5.5] [--charts results/charts] [--series results/series]")
	fmt.Println("  cli peaks --config examples/config.yaml")
	fmt.Println("  cli rank --config examples/config.yaml --metric capacity")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - analyze prints total capacity (mAh) and energy (Wh) per condition after the cut-off")
	fmt.Println("  - conditions with no samples above the cut-off are reported and skipped")
	fmt.Println("  - DISCHARGE_* environment variables override the config file")
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	cutoff := fs.Float64("cutoff", 0, "Optional: override cut-off voltage (V)")
	chartDir := fs.String("charts", "", "Optional: directory for PNG charts (overrides output.chart_dir)")
	seriesDir := fs.String("series", "", "Optional: directory for derived-series CSVs (overrides output.series_dir)")
	noCharts := fs.Bool("no-charts", false, "Skip chart rendering")
	_ = fs.Parse(args)

	cfg := mustLoad(*cfgPath, *cutoff)
	if *chartDir != "" {
		cfg.Output.ChartDir = *chartDir
	}
	if *seriesDir != "" {
		cfg.Output.SeriesDir = *seriesDir
	}
	if *noCharts {
		cfg.Output.ChartDir = ""
	}

	logger := logging.Init(cfg.Logging)
	res := mustRun(cfg, logger)

	if err := discharge.WriteReport(os.Stdout, res); err != nil {
		fail(err)
	}

	if cfg.Output.SeriesDir != "" {
		paths, err := discharge.ExportSeries(cfg.Output.SeriesDir, res)
		if err != nil {
			fail(err)
		}
		logger.Info("wrote derived series", slog.Int("files", len(paths)), slog.String("dir", cfg.Output.SeriesDir))
	}

	if cfg.Output.ChartDir != "" {
		if len(res.Conditions) == 0 {
			logger.Warn("no condition has data above the cut-off; skipping charts")
			return
		}
		paths, err := chart.RenderAll(cfg.Output.ChartDir, res)
		if err != nil {
			fail(err)
		}
		logger.Info("wrote charts", slog.Int("files", len(paths)), slog.String("dir", cfg.Output.ChartDir))
	}
}

func cmdPeaks(args []string) {
	fs := flag.NewFlagSet("peaks", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	cutoff := fs.Float64("cutoff", 0, "Optional: override cut-off voltage (V)")
	_ = fs.Parse(args)

	cfg := mustLoad(*cfgPath, *cutoff)
	res := mustRun(cfg, logging.Init(cfg.Logging))
	if err := discharge.WritePeaks(os.Stdout, res); err != nil {
		fail(err)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	cutoff := fs.Float64("cutoff", 0, "Optional: override cut-off voltage (V)")
	metric := fs.String("metric", string(model.MetricCapacity), "Metric to rank by (power, energy, capacity, voltage, current)")
	_ = fs.Parse(args)

	m := model.Metric(*metric)
	if !m.Valid() {
		fmt.Fprintf(os.Stderr, "unknown metric %q\n", *metric)
		os.Exit(2)
	}

	cfg := mustLoad(*cfgPath, *cutoff)
	res := mustRun(cfg, logging.Init(cfg.Logging))

	fmt.Printf("%-4s %-12s %12s %-4s %12s\n", "rank", "condition", "max", "unit", "time[s]")
	for _, r := range discharge.Rank(res, m) {
		fmt.Printf("%-4d %-12s %12.2f %-4s %12.1f\n", r.Rank, r.Label, r.Value, r.Unit, r.Time)
	}
}

func mustLoad(path string, cutoff float64) *config.Config {
	if path == "" {
		fmt.Fprintln(os.Stderr, "--config is required")
		os.Exit(2)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	if err := cfg.OverrideCutoff(cutoff); err != nil {
		fmt.Fprintf(os.Stderr, "--cutoff: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

func mustRun(cfg *config.Config, logger *slog.Logger) *discharge.Result {
	res, err := discharge.New(cfg, logger).Run()
	if err != nil {
		fail(err)
	}
	return res
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
