package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/browser"

	"model_output_report/logger"
)

// openFile is swapped out in tests.
var openFile = browser.OpenFile

// Write renders entries to path, replacing any existing file atomically.
// The temporary file is always closed, and removed on failure.
func Write(path string, entries []Entry, opts Options) (err error) {
	if path == "" {
		path = DefaultPath
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, ".report-*.html")
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	tmp := f.Name()
	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = Render(f, entries, opts); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync report %s: %w", path, err)
	}
	closed = true
	if err = f.Close(); err != nil {
		return fmt.Errorf("close report %s: %w", path, err)
	}
	if err = os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("chmod report %s: %w", path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename report %s: %w", path, err)
	}
	return nil
}

// Open hands the file to the host's default HTML handler.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return openFile(abs)
}

// Generate pairs prompts with responses, writes the report and, if asked,
// opens it. It returns the absolute path written. Failing to open the
// browser is logged and does not fail the call.
func Generate(ctx context.Context, prompts, responses []string, path string, opts Options) (string, error) {
	log := logger.FromContext(ctx)

	entries, err := Pair(prompts, responses)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = DefaultPath
	}
	if err := Write(path, entries, opts); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	log.Info("report written", "path", abs, "entries", len(entries))

	if opts.OpenBrowser {
		if err := Open(abs); err != nil {
			log.Warn("could not open report in browser", "path", abs, "err", err)
		}
	}
	return abs, nil
}
