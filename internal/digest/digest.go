// Package digest holds the in-memory store of repository digests and the
// external addressing scheme for their facets.
package digest

import "time"

// Facet names the three text blobs produced for every ingested source.
type Facet string

const (
	FacetSummary Facet = "summary"
	FacetTree    Facet = "tree"
	FacetContent Facet = "content"
)

// Facets lists all facets in their canonical order.
var Facets = []Facet{FacetSummary, FacetTree, FacetContent}

// Digest is everything known about one ingested source. Source is the
// caller-supplied URL or path and is the unique key; Summary, Tree and
// Content are opaque text blobs produced by the ingestion collaborator.
type Digest struct {
	Source  string
	Summary string
	Tree    string
	Content string

	// Branch is the ref the source was ingested from, empty for the default.
	Branch string
	// IngestedAt is when the digest was stored.
	IngestedAt time.Time
}

// Facet returns the named facet's text. Unknown facets return "".
func (d Digest) Facet(f Facet) string {
	switch f {
	case FacetSummary:
		return d.Summary
	case FacetTree:
		return d.Tree
	case FacetContent:
		return d.Content
	}
	return ""
}
