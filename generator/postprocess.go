package generator

import (
	"strings"
)

// Sequence markers some servers leave in decoded text. Begin markers only
// ever lead a decode and end markers only ever trail one.
var (
	bosMarkers = []string{"<｜begin▁of▁sentence｜>", "<s>"}
	eosMarkers = []string{"<|endoftext|>", "<｜end▁of▁sentence｜>", "<|EOT|>", "</s>"}
)

// Clean drops leading begin-of-sequence and trailing end-of-sequence markers
// from a decoded completion, together with the single space a tokenizer puts
// between a marker and the text. Everything else, including markup that
// happens to look like a marker and the model's own indentation, is kept.
func Clean(raw string) string {
	out := raw
	for {
		tok, ok := leadingMarker(out)
		if !ok {
			break
		}
		out = strings.TrimPrefix(out[len(tok):], " ")
	}
	for {
		tok, ok := trailingMarker(out)
		if !ok {
			break
		}
		out = strings.TrimSuffix(out[:len(out)-len(tok)], " ")
	}
	return out
}

func leadingMarker(s string) (string, bool) {
	for _, tok := range bosMarkers {
		if strings.HasPrefix(s, tok) {
			return tok, true
		}
	}
	return "", false
}

func trailingMarker(s string) (string, bool) {
	for _, tok := range eosMarkers {
		if strings.HasSuffix(s, tok) {
			return tok, true
		}
	}
	return "", false
}
