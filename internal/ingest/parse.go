package ingest

import "strings"

// The digest emitted by the collaborator is three blocks in fixed order:
// a free-form summary, a tree listing introduced by a "Directory structure:"
// line, and the concatenated file contents starting at the first "### <path>"
// marker line. ParseDigest splits the blocks without interpreting them.
const (
	treeHeading   = "Directory structure:"
	contentMarker = "### "
)

// ParseDigest splits a raw digest into its three facets. Missing blocks come
// back empty rather than failing: a digest of an empty repository has a
// summary but neither tree nor content.
func ParseDigest(raw string) Result {
	var res Result

	rest := raw
	if i := indexLine(rest, treeHeading); i >= 0 {
		res.Summary = strings.TrimSpace(rest[:i])
		rest = rest[i:]
	} else {
		// No tree heading: everything before the first content marker is
		// the summary.
		if i := indexLinePrefix(rest, contentMarker); i >= 0 {
			res.Summary = strings.TrimSpace(rest[:i])
			res.Content = strings.TrimRight(rest[i:], "\n")
			return res
		}
		res.Summary = strings.TrimSpace(rest)
		return res
	}

	if i := indexLinePrefix(rest, contentMarker); i >= 0 {
		res.Tree = strings.TrimSpace(rest[:i])
		res.Content = strings.TrimRight(rest[i:], "\n")
	} else {
		res.Tree = strings.TrimSpace(rest)
	}
	return res
}

// indexLine returns the offset of the first line equal to want, or -1.
func indexLine(text, want string) int {
	off := 0
	for _, line := range strings.Split(text, "\n") {
		if line == want {
			return off
		}
		off += len(line) + 1
	}
	return -1
}

// indexLinePrefix returns the offset of the first line starting with prefix,
// or -1.
func indexLinePrefix(text, prefix string) int {
	off := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, prefix) {
			return off
		}
		off += len(line) + 1
	}
	return -1
}
