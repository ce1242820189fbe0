package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:           "model-report",
		Usage:          "Run prompts through a causal language model and render the responses as an HTML report",
		DefaultCommand: "run",
		Writer:         stdout,
		ErrWriter:      stderr,
		Commands: []*cli.Command{
			runCmd(),
			renderCmd(),
			profilesCmd(),
		},

		DisableSliceFlagSeparator: true,
	}
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
