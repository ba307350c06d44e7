package training

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes the dataset as a parquet file with the schema inferred
// from the TrainingRow struct tags.
func WriteParquet(rows []TrainingRow, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := parquet.NewGenericWriter[TrainingRow](f)
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			_ = w.Close()
			return fmt.Errorf("write parquet rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
