// Package section locates an individual file's text inside a digest's
// concatenated content blob. The blob is a sequence of sections, each
// introduced by a marker line of the form "### <path>\n" and terminated by
// the next marker or end of text. The marker format has no escaping: a file
// whose own body contains a line starting with "### " will truncate its
// section early. That is a documented limitation of the collaborator's
// format, not of this parser.
package section

import (
	"fmt"
	"strings"

	"github.com/gitdigest/gitdigest-mcp/internal/digest"
)

const markerPrefix = "### "

// duplicatedArchiveHints names repositories whose archives are known to
// unpack into an "owner-repo" duplicated top-level directory. For these the
// duplicated prefix is tried before the verbatim path.
var duplicatedArchiveHints = map[string]bool{
	"browser-use": true,
}

// candidateGenerator produces one candidate section path for a file path and
// repository name hint. An empty return means the generator does not apply.
type candidateGenerator func(filePath, hint string) string

// generators is the ordered fallback chain of path conventions observed in
// collaborator output. New conventions are added here, not in Extract.
var generators = []candidateGenerator{
	func(p, h string) string {
		if !duplicatedArchiveHints[h] {
			return ""
		}
		return h + "-" + h + "/" + p
	},
	func(p, _ string) string { return p },
	func(p, h string) string {
		if h == "" {
			return ""
		}
		return h + "-" + h + "/" + p
	},
	func(p, h string) string {
		if h == "" {
			return ""
		}
		return h + "/" + p
	},
}

// Candidates returns the ordered, de-duplicated marker lines Extract will
// search for, exposed for diagnostics and tests.
func Candidates(filePath, hint string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, gen := range generators {
		p := gen(filePath, hint)
		if p == "" {
			continue
		}
		marker := markerPrefix + p + "\n"
		if seen[marker] {
			continue
		}
		seen[marker] = true
		out = append(out, marker)
	}
	return out
}

// Extract returns the text of filePath's section within content, trying each
// candidate marker in order. The returned text is trimmed of surrounding
// whitespace.
func Extract(content, filePath, hint string) (string, error) {
	for _, marker := range Candidates(filePath, hint) {
		start := strings.Index(content, marker)
		if start < 0 {
			continue
		}
		body := content[start+len(marker):]
		if end := strings.Index(body, markerPrefix); end >= 0 {
			body = body[:end]
		}
		return strings.TrimSpace(body), nil
	}
	return "", fmt.Errorf("%w: %s", digest.ErrSectionNotFound, filePath)
}
