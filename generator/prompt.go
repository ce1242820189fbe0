package generator

import (
	"bufio"
	"io"
	"strings"
)

// ReadPrompts reads one prompt per line. Blank lines and lines starting with
// '#' are skipped, and surrounding whitespace is trimmed.
func ReadPrompts(r io.Reader) ([]string, error) {
	var prompts []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		trimmed := strings.TrimSpace(sc.Text())
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		prompts = append(prompts, trimmed)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return prompts, nil
}
