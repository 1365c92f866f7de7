// Package ingest defines the contract with the external digest collaborator
// and an implementation that shells out to a gitingest-compatible CLI. The
// collaborator is a black box: given a source and filter options it returns
// the summary, tree and content blobs. How it clones, filters and walks the
// source is its business, not ours.
package ingest

import "context"

// DefaultMaxFileSize caps per-file inclusion at 10 MiB unless overridden.
const DefaultMaxFileSize = 10 * 1024 * 1024

// Options are the filter knobs passed through to the collaborator.
type Options struct {
	// MaxFileSize caps per-file inclusion in bytes. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64
	// IncludePatterns and ExcludePatterns are comma-separated glob patterns,
	// passed through verbatim.
	IncludePatterns string
	ExcludePatterns string
	// Branch selects a ref; empty means the collaborator's default.
	Branch string
	// Output, when set, additionally persists the raw digest to this path.
	Output string
}

// Result is the three-facet digest returned by the collaborator.
type Result struct {
	Summary string
	Tree    string
	Content string
}

// Ingester produces a digest for a source URL or local path.
type Ingester interface {
	Ingest(ctx context.Context, source string, opts Options) (Result, error)
}

// Func adapts a plain function to the Ingester interface.
type Func func(ctx context.Context, source string, opts Options) (Result, error)

// Ingest implements Ingester.
func (f Func) Ingest(ctx context.Context, source string, opts Options) (Result, error) {
	return f(ctx, source, opts)
}
