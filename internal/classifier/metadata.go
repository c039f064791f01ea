// AngelaMos | 2026
// metadata.go

package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

type Metadata struct {
	ModelType      string  `json:"model_type"`
	TrainingDate   string  `json:"training_date"`
	DatasetSize    int     `json:"dataset_size"`
	Accuracy       float64 `json:"accuracy"`
	RecallMelanoma float64 `json:"recall_melanoma,omitempty"`
	Preprocessing  string  `json:"preprocessing"`
	Augmentation   string  `json:"augmentation,omitempty"`
	InputShape     []int   `json:"input_shape"`
}

// LoadMetadata reads the training metadata sidecar. A missing file returns
// the zero value so configured defaults apply.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Metadata{}, nil
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("read model metadata: %w", err)
	}

	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return Metadata{}, fmt.Errorf("parse model metadata: %w", err)
	}

	return md, nil
}

// InputSize returns the width and height recorded in input_shape
// ([h, w, c]), or ok=false when absent.
func (m Metadata) InputSize() (width, height int, ok bool) {
	if len(m.InputShape) < 2 || m.InputShape[0] <= 0 || m.InputShape[1] <= 0 {
		return 0, 0, false
	}
	return m.InputShape[1], m.InputShape[0], true
}

// PreprocessMode maps the free-text preprocessing note onto "medical" or
// "baseline". Empty means unspecified.
func (m Metadata) PreprocessMode() string {
	p := strings.ToLower(strings.TrimSpace(m.Preprocessing))
	switch {
	case p == "":
		return ""
	case p == "medical", strings.Contains(p, "clahe"):
		return "medical"
	default:
		return "baseline"
	}
}
