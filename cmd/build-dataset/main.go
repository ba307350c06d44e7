// Command build-dataset joins the serving event log into a labeled training
// dataset, written as CSV and parquet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roviahq/rovia/internal/adapters/eventlog"
	"github.com/roviahq/rovia/internal/training"
	"github.com/roviahq/rovia/pkg/logger"
)

const outDirPermission = 0o755

func main() {
	logPath := flag.String("log", "data/events.jsonl", "event log to read")
	outDir := flag.String("out", "data/datasets", "directory for dataset files")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(context.Background(), *logPath, *outDir); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, logPath, outDir string) error {
	records, err := eventlog.ReadAll(logPath)
	if err != nil {
		if errors.Is(err, eventlog.ErrLogNotFound) {
			return fmt.Errorf("event log not found at %s; serve some /api/recommend traffic first", logPath)
		}
		return err
	}

	rows, err := training.NewAssembler().Assemble(ctx, records)
	if err != nil {
		if errors.Is(err, training.ErrNoImpressions) {
			return fmt.Errorf("no impressions in %s; call /api/recommend to generate some", logPath)
		}
		return err
	}

	if err := os.MkdirAll(outDir, outDirPermission); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	csvPath := filepath.Join(outDir, "training.csv")
	if err := training.WriteCSV(rows, csvPath); err != nil {
		return err
	}
	parquetPath := filepath.Join(outDir, "training.parquet")
	if err := training.WriteParquet(rows, parquetPath); err != nil {
		return err
	}

	positives := 0
	for _, r := range rows {
		if r.Label == 1 {
			positives++
		}
	}
	fmt.Printf("built dataset: %d rows, %d positives\n", len(rows), positives)
	fmt.Printf("wrote %s and %s\n", csvPath, parquetPath)
	return nil
}
