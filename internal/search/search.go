// Package search implements line-numbered substring search over text blobs.
package search

import (
	"fmt"
	"strings"
)

// MaxMatches caps how many matching lines a single search reports.
const MaxMatches = 100

// Match is one matching line. Line numbers are 1-based.
type Match struct {
	Line int
	Text string
}

// Result holds the matches for one search in blob order. Remaining counts
// the matches beyond MaxMatches that were found but not reported. An empty
// Matches slice means "no matches" and is not an error.
type Result struct {
	Matches   []Match
	Remaining int
}

// Empty reports whether the search found nothing.
func (r Result) Empty() bool { return len(r.Matches) == 0 }

// Run splits text on newlines and reports every line containing term.
// Matching is case-sensitive, no pattern syntax.
func Run(text, term string) Result {
	var res Result
	for i, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, term) {
			continue
		}
		if len(res.Matches) == MaxMatches {
			res.Remaining++
			continue
		}
		res.Matches = append(res.Matches, Match{Line: i + 1, Text: line})
	}
	return res
}

// Format renders the result as numbered "line: text" rows, with a trailing
// note when matches were withheld.
func (r Result) Format() string {
	var b strings.Builder
	for i, m := range r.Matches {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s", m.Line, m.Text)
	}
	if r.Remaining > 0 {
		fmt.Fprintf(&b, "\n\n...and %d more matches.", r.Remaining)
	}
	return b.String()
}
