package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"model_output_report/generator"
)

func TestResultsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	started := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	run := Run{
		ID:           "6f1c1f2e-0000-4000-8000-000000000000",
		Provider:     "mock",
		Model:        "deepseek-ai/deepseek-coder-1.3b",
		Device:       "cpu",
		DType:        "float32",
		MaxNewTokens: 50,
		Format:       FormatText,
		StartedAt:    started,
		FinishedAt:   started.Add(3 * time.Second),
		Results: []generator.Result{
			{Index: 1, Prompt: "Hello", Response: "World", FinishReason: "stop", CompletionTokens: 1},
			{Index: 2, Prompt: "<a>", Response: "&", Duration: time.Second},
		},
	}
	if err := WriteResults(path, run); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), `"run_id": "6f1c1f2e-0000-4000-8000-000000000000"`) {
		t.Fatalf("unexpected json:\n%s", raw)
	}

	got, err := ReadResults(path)
	if err != nil {
		t.Fatalf("ReadResults: %v", err)
	}
	if got.Model != run.Model || got.MaxNewTokens != 50 || !got.StartedAt.Equal(started) {
		t.Fatalf("metadata mismatch: %+v", got)
	}
	if len(got.Results) != 2 || got.Results[1].Prompt != "<a>" || got.Results[1].Duration != time.Second {
		t.Fatalf("results mismatch: %+v", got.Results)
	}
}

func TestReadResultsRejectsMisnumbered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	body := `{"run_id":"x","model":"m","results":[{"index":2,"prompt":"a","response":"b","duration_ns":0}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadResults(path); err == nil {
		t.Fatal("expected error for misnumbered results")
	}
}

func TestReadResultsMissingFile(t *testing.T) {
	if _, err := ReadResults(filepath.Join(t.TempDir(), "nope.json")); !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}
