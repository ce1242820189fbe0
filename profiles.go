package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"model_output_report/config"
)

func profilesCmd() *cli.Command {
	return &cli.Command{
		Name:   "profiles",
		Usage:  "List built-in and configured profiles",
		Flags:  configFlags(),
		Action: profilesAction,
	}
}

func profilesAction(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	def := cfg.DefaultProfile
	if def == "" {
		def = config.DefaultProfileName
	}

	tw := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tMODEL\tDEVICE\tPROMPTS\tOUTPUT")
	for _, name := range cfg.ProfileNames() {
		p, err := cfg.Profile(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == def {
			marker = " (default)"
		}
		_, _ = fmt.Fprintf(tw, "%s%s\t%s\t%s\t%d\t%s\n", name, marker, p.Model, p.Device, len(p.Prompts), p.Output)
	}
	return tw.Flush()
}
