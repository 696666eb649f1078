// Command cpkcsv computes summary statistics and Cpk for a measurements
// file (CSV or xlsx) and writes the result row as a BOM-prefixed CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"cpkcli/internal/capability"
	"cpkcli/internal/config"
	"cpkcli/internal/exporter"
	"cpkcli/internal/infrastructure"
	"cpkcli/internal/services"
)

func main() {
	in := flag.String("in", "", "measurements file (.csv or .xlsx)")
	column := flag.String("column", "", "measurement column (header name, or 0-based index for headerless files)")
	sheet := flag.String("sheet", "", "worksheet name for xlsx input (defaults to the first sheet)")
	uslFlag := flag.String("usl", "", "upper spec limit (optional)")
	lslFlag := flag.String("lsl", "", "lower spec limit (optional)")
	out := flag.String("out", "cpk_result.csv", "output csv file path")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: cpkcsv -in measurements.csv [-column value] [-usl 0.3] [-lsl -0.3] [-out cpk_result.csv]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		def := config.Default()
		cfg = &def
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	usl, err := parseLimit(*uslFlag)
	if err != nil {
		logger.Error("invalid -usl value", slog.String("value", *uslFlag))
		os.Exit(2)
	}
	lsl, err := parseLimit(*lslFlag)
	if err != nil {
		logger.Error("invalid -lsl value", slog.String("value", *lslFlag))
		os.Exit(2)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("cannot read input file",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := services.NewCalculationService(logger, cfg.Calculator, nil)
	result, err := svc.CalculateFromFile(context.Background(), services.FileRequest{
		Filename: *in,
		Data:     data,
		Column:   *column,
		Sheet:    *sheet,
		USL:      usl,
		LSL:      lsl,
	})
	if err != nil {
		logger.Error("calculation failed",
			slog.String("path", *in),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	printSummary(result)

	writer := exporter.NewWriter(logger)
	row := exporter.ResultRow{
		Summary: result.Summary,
		Limits:  result.Limits,
		Cpk:     result.Cpk,
	}
	if err := writer.WriteResultFile(*out, row); err != nil {
		logger.Error("cannot write result file",
			slog.String("path", *out),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("result written", slog.String("path", *out))
}

// parseLimit converts an optional flag value. Empty means absent.
func parseLimit(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return capability.Float(v), nil
}

// printSummary writes a human-readable summary to stdout. Undefined
// statistics print as "not computable".
func printSummary(result *services.CalculationResult) {
	fmt.Printf("count: %d\n", result.Summary.Count)
	fmt.Printf("mean:  %s\n", formatOptional(result.Summary.Mean))
	fmt.Printf("std:   %s\n", formatOptional(result.Summary.Std))
	fmt.Printf("min:   %s\n", formatOptional(result.Summary.Min))
	fmt.Printf("max:   %s\n", formatOptional(result.Summary.Max))
	fmt.Printf("Cpk:   %s\n", formatOptional(result.Cpk))
}

func formatOptional(v *float64) string {
	if v == nil {
		return "not computable"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
