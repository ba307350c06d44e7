// Command train fits the click model on an assembled dataset and persists
// the artifact the serving path loads.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roviahq/rovia/internal/training"
	"github.com/roviahq/rovia/pkg/logger"
)

const modelDirPermission = 0o755

func main() {
	dataPath := flag.String("data", "data/datasets/training.csv", "training dataset (CSV)")
	modelPath := flag.String("model", "models/ranker.json", "where to write the model artifact")
	seed := flag.Int64("seed", 42, "split and shuffle seed")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(context.Background(), *dataPath, *modelPath, *seed); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, dataPath, modelPath string, seed int64) error {
	rows, err := training.LoadCSV(dataPath)
	if err != nil {
		if errors.Is(err, training.ErrDatasetNotFound) {
			return fmt.Errorf("dataset not found at %s; run build-dataset first", dataPath)
		}
		return err
	}

	result, err := training.NewTrainer(training.WithSeed(seed)).Train(ctx, rows)
	if err != nil {
		if errors.Is(err, training.ErrNoPositives) {
			return fmt.Errorf("dataset %s has no clicks; generate recommend+click traffic first", dataPath)
		}
		return err
	}

	if dir := filepath.Dir(modelPath); dir != "." {
		if err := os.MkdirAll(dir, modelDirPermission); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}
	if err := result.Artifact.Save(modelPath); err != nil {
		return err
	}

	fmt.Printf("trained on %d rows (%d positives, %d held out)\n",
		result.Rows, result.Positives, result.TestRows)
	fmt.Printf("auc=%.3f accuracy=%.3f\n", result.AUC, result.Accuracy)
	fmt.Printf("saved model to %s\n", modelPath)
	return nil
}
