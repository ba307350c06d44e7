package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact bundles a trained classifier with the exact ordered list of
// feature columns it was fitted on. The column order is load-bearing:
// inference rows must be assembled in this order.
type Artifact struct {
	Model       LRModel  `json:"model"`
	FeatureCols []string `json:"feature_cols"`
}

// artifactFilePermission applies to newly written artifacts.
const artifactFilePermission = 0o644

// LoadArtifact reads and validates an artifact from path.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArtifact, err)
	}
	if len(a.FeatureCols) == 0 {
		return nil, fmt.Errorf("%w: empty feature column list", ErrBadArtifact)
	}
	if len(a.Model.Weights) == 0 {
		return nil, fmt.Errorf("%w: model has no weights", ErrBadArtifact)
	}
	return &a, nil
}

// Save writes the artifact as one JSON object. The artifact is read-only
// after creation; a retrained model is written as a whole new file.
func (a *Artifact) Save(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model artifact: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, artifactFilePermission); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	return nil
}
