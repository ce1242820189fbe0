package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"model_output_report/generator"
)

type console struct {
	w       io.Writer
	heading *color.Color
	dim     *color.Color
	ok      *color.Color
}

func newConsole(w io.Writer) *console {
	return &console{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		dim:     color.New(color.Faint),
		ok:      color.New(color.FgGreen),
	}
}

func (c *console) results(results []generator.Result) {
	for _, r := range results {
		_, _ = c.heading.Fprintf(c.w, "Prompt %d: ", r.Index)
		_, _ = fmt.Fprintln(c.w, r.Prompt)
		_, _ = c.dim.Fprintln(c.w, "Generated Text:")
		_, _ = fmt.Fprintln(c.w, r.Response)
		_, _ = fmt.Fprintln(c.w)
	}
}

func (c *console) saved(path string) {
	_, _ = c.ok.Fprintf(c.w, "✅ Responses saved to %s\n", path)
}
