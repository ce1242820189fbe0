package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"model_output_report/config"
	"model_output_report/generator"
	"model_output_report/logger"
	"model_output_report/metrics"
	"model_output_report/report"
)

// loadEngine is replaced in tests to observe the engine's lifecycle.
var loadEngine = generator.Load

func runCmd() *cli.Command {
	flags := slices.Concat(configFlags(), engineFlags(), profileFlags(), reportFlags(), loggingFlags())
	flags = append(flags,
		&cli.StringFlag{
			Name:  "results",
			Usage: "also write the run as JSON to this path",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "write Prometheus text metrics for the run to this path",
		},
	)
	return &cli.Command{
		Name:   "run",
		Usage:  "Generate responses for the profile's prompts and write the report",
		Flags:  flags,
		Action: runAction,

		// prompts routinely contain commas
		DisableSliceFlagSeparator: true,
	}
}

func runAction(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	profile, err := cfg.Profile(c.String("profile"))
	if err != nil {
		return err
	}
	applyProfileFlags(c, &profile)
	prompts, err := promptsFromFlags(c)
	if err != nil {
		return err
	}
	if prompts != nil {
		profile.Prompts = prompts
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	engineCfg := cfg.Engine
	applyEngineFlags(c, &engineCfg)
	settings, err := engineCfg.Settings()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := newLogger(c, cfg).With("run_id", runID)
	ctx = logger.WithContext(ctx, log)

	m := metrics.NewRun(profile.Model)
	if profile.MetricsFile != "" {
		defer func() {
			if err := m.WriteTextfile(profile.MetricsFile); err != nil {
				log.Warn("could not write metrics", "path", profile.MetricsFile, "err", err)
			}
		}()
	}

	started := time.Now().UTC()
	log.Info("starting run", "provider", settings.Provider, "model", profile.Model, "prompts", len(profile.Prompts))

	results, err := generate(ctx, settings, profile, m)
	if err != nil {
		log.Error("generation failed", "err", err)
		return err
	}

	out := newConsole(c.Root().Writer)
	out.results(results)

	// The sidecar goes first so a failed write aborts before any report exists.
	if profile.Results != "" {
		run := report.Run{
			ID:           runID,
			Provider:     settings.Provider,
			Model:        profile.Model,
			Device:       profile.Device,
			DType:        profile.DType,
			MaxNewTokens: profile.MaxNewTokens,
			Title:        profile.Title,
			Format:       report.Format(profile.Format),
			StartedAt:    started,
			FinishedAt:   time.Now().UTC(),
			Results:      results,
		}
		if err := report.WriteResults(profile.Results, run); err != nil {
			return err
		}
		log.Info("results written", "path", profile.Results)
	}

	path, err := report.Generate(ctx, generator.Prompts(results), generator.Responses(results), profile.Output, report.Options{
		Title:       profile.Title,
		Format:      report.Format(profile.Format),
		OpenBrowser: profile.ShouldOpen(),
	})
	if err != nil {
		return err
	}
	m.ReportsWritten.Inc()

	out.saved(path)
	return nil
}

// generate acquires the engine, runs every prompt and releases the engine
// before returning.
func generate(ctx context.Context, settings generator.Settings, profile config.Profile, m *metrics.Run) ([]generator.Result, error) {
	eng, err := loadEngine(ctx, settings, profile.ModelSpec(), nil)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", profile.Model, err)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			logger.FromContext(ctx).Warn("closing engine", "err", err)
		}
	}()

	runner, err := generator.NewRunner(eng, profile.Options(), m)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx, profile.Prompts)
}

// promptsFromFlags returns nil when neither --prompt nor --prompts-file was
// given, so the profile's prompts stay in effect.
func promptsFromFlags(c *cli.Command) ([]string, error) {
	var prompts []string
	set := false
	if c.IsSet("prompt") {
		prompts = append(prompts, c.StringSlice("prompt")...)
		set = true
	}
	if path := c.String("prompts-file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		fromFile, err := generator.ReadPrompts(f)
		if err != nil {
			return nil, fmt.Errorf("read prompts %s: %w", path, err)
		}
		prompts = append(prompts, fromFile...)
		set = true
	}
	if !set {
		return nil, nil
	}
	if prompts == nil {
		prompts = []string{}
	}
	return prompts, nil
}
