package main

import (
	"github.com/urfave/cli/v3"

	"model_output_report/config"
	"model_output_report/logger"
)

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path to config.yaml (default: user config dir)",
			Sources: cli.EnvVars("MODEL_REPORT_CONFIG"),
		},
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "provider",
			Usage: "engine provider (openai, deepseek, mock)",
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "OpenAI-compatible endpoint serving the model",
			Sources: cli.EnvVars("MODEL_REPORT_BASE_URL"),
		},
		&cli.BoolFlag{
			Name:  "verify-model",
			Usage: "check the engine lists the model before generating",
		},
	}
}

func profileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "profile",
			Usage: "named profile from the config file or built-ins",
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "model identifier, e.g. deepseek-ai/deepseek-coder-1.3b",
		},
		&cli.StringFlag{
			Name:  "device",
			Usage: "device preference passed to the engine (auto, cpu, cuda, mps)",
		},
		&cli.StringFlag{
			Name:  "dtype",
			Usage: "weight precision passed to the engine (auto, float32, float16, bfloat16)",
		},
		&cli.StringSliceFlag{
			Name:    "prompt",
			Aliases: []string{"p"},
			Usage:   "prompt to run; repeat for several (replaces profile prompts)",
		},
		&cli.StringFlag{
			Name:  "prompts-file",
			Usage: "file with one prompt per line (replaces profile prompts)",
		},
		&cli.IntFlag{
			Name:    "max-new-tokens",
			Aliases: []string{"n"},
			Usage:   "token budget per response",
		},
		&cli.Float64Flag{
			Name:  "temperature",
			Usage: "sampling temperature",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "sampling seed",
		},
		&cli.BoolFlag{
			Name:  "echo",
			Usage: "include the prompt at the start of each response",
		},
	}
}

func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "HTML report path",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "report title and heading",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "response format in the report (text, markdown)",
		},
		&cli.BoolFlag{
			Name:  "no-open",
			Usage: "do not open the report in a browser",
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "log format (console, json)",
		},
	}
}

// applyEngineFlags overrides config file values with explicitly set flags.
func applyEngineFlags(c *cli.Command, e *config.Engine) {
	if c.IsSet("provider") {
		e.Provider = c.String("provider")
	}
	if c.IsSet("base-url") {
		e.BaseURL = c.String("base-url")
	}
	if c.IsSet("verify-model") {
		e.VerifyModel = c.Bool("verify-model")
	}
}

// applyProfileFlags overrides profile values with explicitly set flags.
func applyProfileFlags(c *cli.Command, p *config.Profile) {
	if c.IsSet("model") {
		p.Model = c.String("model")
	}
	if c.IsSet("device") {
		p.Device = c.String("device")
	}
	if c.IsSet("dtype") {
		p.DType = c.String("dtype")
	}
	if c.IsSet("max-new-tokens") {
		p.MaxNewTokens = c.Int("max-new-tokens")
	}
	if c.IsSet("temperature") {
		t := c.Float64("temperature")
		p.Temperature = &t
	}
	if c.IsSet("seed") {
		s := c.Int64("seed")
		p.Seed = &s
	}
	if c.IsSet("echo") {
		p.Echo = c.Bool("echo")
	}
	if c.IsSet("output") {
		p.Output = c.String("output")
	}
	if c.IsSet("title") {
		p.Title = c.String("title")
	}
	if c.IsSet("format") {
		p.Format = c.String("format")
	}
	if c.IsSet("no-open") {
		open := !c.Bool("no-open")
		p.OpenBrowser = &open
	}
	if c.IsSet("results") {
		p.Results = c.String("results")
	}
	if c.IsSet("metrics-file") {
		p.MetricsFile = c.String("metrics-file")
	}
}

func newLogger(c *cli.Command, cfg config.Config) *logger.Logger {
	level, format := cfg.LogLevel, cfg.LogFormat
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		format = c.String("log-format")
	}
	return logger.New(c.Root().ErrWriter, level, format)
}
