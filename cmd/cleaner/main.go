package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"gscclean/internal/config"
	"gscclean/internal/exporter"
	"gscclean/internal/infrastructure"
	"gscclean/internal/services"
	"gscclean/pkg/contracts/domain"
)

func main() {
	inPath := flag.String("in", "", "input report file (.csv or .xlsx; .xls only when it is an OOXML workbook)")
	outPath := flag.String("out", "cleaned_gsc_data.csv", "output CSV file")
	showStats := flag.Bool("stats", true, "print per-column cleaning statistics")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: cleaner -in report.csv [-out cleaned.csv]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Text logs to stderr; the CLI keeps stdout for its own output.
	logger := infrastructure.NewLogger(config.LoggingConfig{Level: *logLevel, Format: "text"})
	svc := services.NewCleanService(logger, nil)

	result, err := svc.CleanFile(context.Background(), *inPath)
	if err != nil {
		slog.Error("failed to clean report", "file", *inPath, "error", err)
		os.Exit(1)
	}

	if !result.Roles.HasAny() {
		slog.Warn("no recognized columns found, writing table unchanged",
			"file", *inPath)
	}

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteFile(*outPath, result.Table, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		slog.Error("failed to write cleaned CSV", "file", *outPath, "error", err)
		os.Exit(1)
	}

	if *showStats {
		printStats(result)
	}
	fmt.Printf("wrote %d rows to %s\n", result.Table.RowCount(), *outPath)
}

// printStats renders the per-column and whole-table statistics the way the
// report preview does: original, removed and final counts plus retention.
func printStats(result domain.CleanResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tORIGINAL\tREMOVED\tFINAL\tRETENTION")
	for _, name := range result.Roles.Classified() {
		stats, ok := result.ColumnStats[name]
		if !ok {
			continue
		}
		retention := "n/a"
		if pct, valid := stats.RetentionPct(); valid {
			retention = fmt.Sprintf("%.1f%%", pct)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
			name, stats.OriginalCount, stats.RemovedTotal(), stats.FinalCount, retention)
	}
	w.Flush()

	summary := result.Summary
	retention := "n/a"
	if summary.RetentionPct != nil {
		retention = fmt.Sprintf("%.1f%%", *summary.RetentionPct)
	}
	fmt.Printf("\noriginal rows: %d, cleaned rows: %d, removed: %d, retention: %s\n",
		summary.OriginalRows, summary.CleanedRows, summary.RemovedRows, retention)
}
