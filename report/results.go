package report

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"model_output_report/generator"
)

// Run is the machine-readable record of one report run. It carries the
// metadata kept out of the HTML so the HTML stays reproducible.
type Run struct {
	ID           string             `json:"run_id"`
	Provider     string             `json:"provider"`
	Model        string             `json:"model"`
	Device       string             `json:"device,omitempty"`
	DType        string             `json:"dtype,omitempty"`
	MaxNewTokens int                `json:"max_new_tokens"`
	Title        string             `json:"title,omitempty"`
	Format       Format             `json:"format,omitempty"`
	StartedAt    time.Time          `json:"started_at"`
	FinishedAt   time.Time          `json:"finished_at"`
	Results      []generator.Result `json:"results"`
}

// WriteResults stores run as indented JSON.
func WriteResults(path string, run Run) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	return nil
}

// ReadResults loads a run written by WriteResults and checks that results
// are numbered 1..n in order.
func ReadResults(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, err
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("parse results %s: %w", path, err)
	}
	for i, r := range run.Results {
		if r.Index != i+1 {
			return Run{}, fmt.Errorf("results %s: entry %d has index %d", path, i+1, r.Index)
		}
	}
	return run, nil
}
