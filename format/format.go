// Package format turns decoder descriptions with **bold** markers into styled text runs.
package format

import (
	"iter"
	"strings"
)

// BoldDelimiter separates plain and emphasized runs in a description.
const BoldDelimiter = "**"

// Segment is one run of a formatted description.
type Segment struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized"`
}

// Segments splits s on BoldDelimiter and yields the pieces in order. Pieces at odd
// positions are emphasized. Splitting is positional: an unterminated marker leaves the
// trailing piece emphasized and never fails.
//
// The returned sequence can be ranged over any number of times.
func Segments(s string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		i := 0
		for part := range strings.SplitSeq(s, BoldDelimiter) {
			if !yield(Segment{Text: part, Emphasized: i%2 == 1}) {
				return
			}
			i++
		}
	}
}

// Split collects Segments(s) into a slice.
func Split(s string) []Segment {
	out := make([]Segment, 0, strings.Count(s, BoldDelimiter)+1)
	for seg := range Segments(s) {
		out = append(out, seg)
	}

	return out
}

// Plain returns s with every delimiter removed.
func Plain(s string) string {
	var sb strings.Builder
	for seg := range Segments(s) {
		sb.WriteString(seg.Text)
	}

	return sb.String()
}

// Markdown renders the segments back as markdown, dropping empty emphasized runs so that
// "****" never reaches the output.
func Markdown(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if !seg.Emphasized {
			sb.WriteString(seg.Text)
			continue
		}
		if seg.Text == "" {
			continue
		}
		sb.WriteString(BoldDelimiter + seg.Text + BoldDelimiter)
	}

	return sb.String()
}
