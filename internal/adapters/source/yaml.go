package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/roviahq/rovia/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML document shape.
type catalogFile struct {
	Candidates []model.Candidate `yaml:"candidates"`
}

// YAMLSource serves candidates loaded once from a YAML catalog file. The
// file is validated eagerly so bad windows or duplicate ids fail at startup
// rather than mid-request.
type YAMLSource struct {
	candidates []model.Candidate
}

// NewYAMLSource loads and validates the catalog at path.
func NewYAMLSource(path string) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := validate(doc.Candidates); err != nil {
		return nil, err
	}
	return &YAMLSource{candidates: doc.Candidates}, nil
}

// Candidates implements Source.
func (s *YAMLSource) Candidates(_ context.Context) ([]model.Candidate, error) {
	out := make([]model.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, nil
}

func validate(candidates []model.Candidate) error {
	if len(candidates) == 0 {
		return fmt.Errorf("%w: no candidates", ErrInvalidCatalog)
	}
	seen := make(map[int64]struct{}, len(candidates))
	for i, c := range candidates {
		if c.ID <= 0 {
			return fmt.Errorf("%w: candidate %d: id must be positive", ErrInvalidCatalog, i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate candidate id %d", ErrInvalidCatalog, c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Name == "" {
			return fmt.Errorf("%w: candidate %d: name required", ErrInvalidCatalog, c.ID)
		}
		if c.Category == "" {
			return fmt.Errorf("%w: candidate %d: category required", ErrInvalidCatalog, c.ID)
		}
		if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
			return fmt.Errorf("%w: candidate %d: coordinates out of range", ErrInvalidCatalog, c.ID)
		}
		if _, err := time.Parse("15:04", c.Open); err != nil {
			return fmt.Errorf("%w: candidate %d: bad open time %q", ErrInvalidCatalog, c.ID, c.Open)
		}
		if _, err := time.Parse("15:04", c.Close); err != nil {
			return fmt.Errorf("%w: candidate %d: bad close time %q", ErrInvalidCatalog, c.ID, c.Close)
		}
	}
	return nil
}
