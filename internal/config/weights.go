package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/sendgate/internal/core/score"
)

// LoadWeights reads the scoring deduction table from a YAML file. An empty
// path resolves to weights.yaml in the config directory. A missing file
// yields the default table.
func LoadWeights(path string) (score.Weights, error) {
	if path == "" {
		dir, err := ConfigDir()
		if err != nil {
			return score.Weights{}, err
		}
		path = filepath.Join(dir, "weights.yaml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return score.DefaultWeights(), nil
	}
	if err != nil {
		return score.Weights{}, fmt.Errorf("failed to read weights: %w", err)
	}

	weights := score.DefaultWeights()
	if err := yaml.Unmarshal(data, &weights); err != nil {
		return score.Weights{}, fmt.Errorf("failed to parse weights: %w", err)
	}

	if weights.TimeConflict < 0 || weights.PriceOutlier < 0 || weights.CaptionFlag < 0 {
		return score.Weights{}, fmt.Errorf("weights must be non-negative")
	}

	return weights, nil
}
