package main

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"

	"model_output_report/config"
	"model_output_report/generator"
	"model_output_report/logger"
	"model_output_report/report"
)

func renderCmd() *cli.Command {
	flags := slices.Concat(configFlags(), reportFlags(), loggingFlags())
	flags = append(flags, &cli.StringFlag{
		Name:     "results",
		Usage:    "JSON results written by run --results",
		Required: true,
	})
	return &cli.Command{
		Name:   "render",
		Usage:  "Re-render an HTML report from a saved JSON run without touching the engine",
		Flags:  flags,
		Action: renderAction,
	}
}

func renderAction(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)
	ctx = logger.WithContext(ctx, log)

	run, err := report.ReadResults(c.String("results"))
	if err != nil {
		return err
	}
	log = log.With("run_id", run.ID)
	ctx = logger.WithContext(ctx, log)

	opts := report.Options{
		Title:       run.Title,
		Format:      run.Format,
		OpenBrowser: renderOpens(cfg, c.Bool("no-open")),
	}
	if c.IsSet("title") {
		opts.Title = c.String("title")
	}
	if c.IsSet("format") {
		opts.Format = report.Format(c.String("format"))
	}
	output := c.String("output")
	if output == "" {
		output = report.DefaultPath
	}

	path, err := report.Generate(ctx, generator.Prompts(run.Results), generator.Responses(run.Results), output, opts)
	if err != nil {
		return err
	}
	newConsole(c.Root().Writer).saved(path)
	return nil
}

// renderOpens follows the default profile's open_browser setting unless
// --no-open was given.
func renderOpens(cfg config.Config, noOpen bool) bool {
	if noOpen {
		return false
	}
	profile, err := cfg.Profile("")
	if err != nil {
		return true
	}
	return profile.ShouldOpen()
}
