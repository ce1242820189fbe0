package report

import (
	"bufio"
	"errors"
	"fmt"
	"html/template"
	"io"
)

// DefaultPath is where the report is written when no path is given.
const DefaultPath = "output.html"

// DefaultTitle is used for both the page title and the heading.
const DefaultTitle = "Model Output"

var ErrLengthMismatch = errors.New("prompts and responses differ in length")

// Format selects how responses are shown.
type Format string

const (
	// FormatText shows the response verbatim, escaped, whitespace preserved.
	FormatText Format = "text"
	// FormatMarkdown renders the response as CommonMark+GFM. Raw HTML in the
	// response is dropped.
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "", "text" and "markdown".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text or markdown)", s)
	}
}

// Entry is one prompt/response pair. Index is 1-based.
type Entry struct {
	Index    int
	Prompt   string
	Response string
}

// Options controls rendering and the side effects of Generate.
type Options struct {
	Title       string
	Format      Format
	OpenBrowser bool
}

// Pair zips prompts and responses into entries. Sequences of different
// length are rejected rather than truncated.
func Pair(prompts, responses []string) ([]Entry, error) {
	if len(prompts) != len(responses) {
		return nil, fmt.Errorf("%w: %d prompts, %d responses", ErrLengthMismatch, len(prompts), len(responses))
	}
	entries := make([]Entry, len(prompts))
	for i := range prompts {
		entries[i] = Entry{Index: i + 1, Prompt: prompts[i], Response: responses[i]}
	}
	return entries, nil
}

type entryView struct {
	Index    int
	Prompt   string
	Text     string
	HTML     template.HTML
	Markdown bool
}

type pageView struct {
	Title   string
	Entries []entryView
}

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet">
    <style>.response { white-space: pre-wrap; }</style>
</head>
<body class="container mt-4">
    <h1 class="mb-4 text-primary">{{.Title}}</h1>
    <div class="list-group">
{{- range .Entries}}
        <div class="list-group-item">
            <h5 class="mb-1">Prompt {{.Index}}: <span class="text-secondary">{{.Prompt}}</span></h5>
            <div class="mb-1"><strong>Response:</strong> {{if .Markdown}}<div class="response-md">{{.HTML}}</div>{{else}}<span class="response">{{.Text}}</span>{{end}}</div>
        </div>
{{- end}}
    </div>
</body>
</html>
`))

// Render writes the HTML document for entries to w. The output depends only
// on its inputs.
func Render(w io.Writer, entries []Entry, opts Options) error {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return err
	}
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	view := pageView{Title: title, Entries: make([]entryView, 0, len(entries))}
	for _, e := range entries {
		ev := entryView{Index: e.Index, Prompt: e.Prompt}
		if format == FormatMarkdown {
			html, err := mdToHTML(e.Response)
			if err != nil {
				return fmt.Errorf("render response %d: %w", e.Index, err)
			}
			ev.HTML = template.HTML(html)
			ev.Markdown = true
		} else {
			ev.Text = e.Response
		}
		view.Entries = append(view.Entries, ev)
	}

	bw := bufio.NewWriter(w)
	if err := page.Execute(bw, view); err != nil {
		return err
	}
	return bw.Flush()
}
