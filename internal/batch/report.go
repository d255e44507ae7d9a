// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report is the YAML document written by WriteReport.
type Report struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	Result      `yaml:",inline"`
}

// WriteReport writes res as a YAML report to path. It lists every attempted
// file with its status, so a caller can tell which outputs exist after an
// aborted run.
func WriteReport(path string, res Result) error {
	data, err := yaml.Marshal(Report{GeneratedAt: time.Now().UTC(), Result: res})
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport reads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}
