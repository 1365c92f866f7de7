// Package query composes the digest store, section extractor, search engine
// and truncation policy into the operations the MCP surface exposes.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gitdigest/gitdigest-mcp/internal/digest"
	"github.com/gitdigest/gitdigest-mcp/internal/ingest"
	"github.com/gitdigest/gitdigest-mcp/internal/search"
	"github.com/gitdigest/gitdigest-mcp/internal/section"
	"github.com/gitdigest/gitdigest-mcp/internal/truncate"
)

// FacetAll selects all three facets concatenated with headers.
const FacetAll = "all"

// Facade is the transport-facing query surface over the digest store.
type Facade struct {
	store    *digest.Store
	ingester ingest.Ingester
	logger   *slog.Logger
	inflight singleflight.Group
}

// NewFacade wires a facade. A nil logger selects slog.Default.
func NewFacade(store *digest.Store, ingester ingest.Ingester, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Facade{store: store, ingester: ingester, logger: logger}
}

// Store exposes the underlying digest store for listing and addressing.
func (f *Facade) Store() *digest.Store { return f.store }

// EnsureIngested returns the stored digest for source, invoking the
// collaborator first if none exists. An existing digest always wins, even if
// opts differ from the original ingestion. Concurrent calls for the same
// source share one collaborator invocation. created reports whether this
// call populated the store.
func (f *Facade) EnsureIngested(ctx context.Context, source string, opts ingest.Options) (digest.Digest, bool, error) {
	if d, err := f.store.Get(source); err == nil {
		return d, false, nil
	}

	v, err, _ := f.inflight.Do(source, func() (any, error) {
		// Re-check under the flight: a racing call may have stored already.
		if d, err := f.store.Get(source); err == nil {
			return d, nil
		}
		f.logger.Info("ingesting", "source", source, "branch", opts.Branch)
		res, err := f.ingester.Ingest(ctx, source, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", digest.ErrIngestFailed, source, err)
		}
		d := digest.Digest{
			Source:     source,
			Summary:    res.Summary,
			Tree:       res.Tree,
			Content:    res.Content,
			Branch:     opts.Branch,
			IngestedAt: time.Now().UTC(),
		}
		f.store.Put(d)
		f.logger.Info("ingested", "source", source, "content_bytes", len(d.Content))
		return d, nil
	})
	if err != nil {
		return digest.Digest{}, false, err
	}
	return v.(digest.Digest), true, nil
}

// QueryFacet resolves source and returns the requested facet, bounded by
// maxTokens (zero = unbounded). The "all" facet concatenates summary, tree
// and content under headers.
func (f *Facade) QueryFacet(source, facet string, maxTokens int) (string, error) {
	d, err := f.resolve(source)
	if err != nil {
		return "", err
	}

	var text string
	switch facet {
	case FacetAll:
		text = fmt.Sprintf("SUMMARY:\n%s\n\nFILE TREE:\n%s\n\nCONTENT:\n%s", d.Summary, d.Tree, d.Content)
	case string(digest.FacetSummary), string(digest.FacetTree), string(digest.FacetContent):
		text = d.Facet(digest.Facet(facet))
	default:
		return "", fmt.Errorf("unknown resource type: %s", facet)
	}
	return truncate.Apply(text, maxTokens), nil
}

// QueryFile resolves source, extracts filePath's section from the content
// blob and optionally annotates it with in-file search matches. A missed
// path is reported as diagnostic text carrying the tree listing, not as an
// error.
func (f *Facade) QueryFile(source, filePath, searchTerm string, maxTokens int) (string, error) {
	d, err := f.resolve(source)
	if err != nil {
		return "", err
	}

	text, err := section.Extract(d.Content, filePath, RepoNameHint(source))
	if err != nil {
		return fmt.Sprintf("File not found: %s\n\nAvailable files:\n%s", filePath, d.Tree), nil
	}

	report := fmt.Sprintf("File: %s\n\n%s", filePath, text)
	if searchTerm != "" {
		if res := search.Run(text, searchTerm); !res.Empty() {
			report += fmt.Sprintf("\n\nMatches for %q:\n%s", searchTerm, res.Format())
		}
	}
	return truncate.Apply(report, maxTokens), nil
}

// QuerySearch resolves source and searches the whole content blob.
func (f *Facade) QuerySearch(source, term string, maxTokens int) (string, error) {
	d, err := f.resolve(source)
	if err != nil {
		return "", err
	}

	res := search.Run(d.Content, term)
	if res.Empty() {
		return fmt.Sprintf("No matches found for: %q", term), nil
	}
	report := fmt.Sprintf("Search results for %q:\n%s", term, res.Format())
	return truncate.Apply(report, maxTokens), nil
}

func (f *Facade) resolve(source string) (digest.Digest, error) {
	key, err := f.store.Resolve(source)
	if err != nil {
		return digest.Digest{}, err
	}
	return f.store.Get(key)
}

// RepoNameHint derives the repository short name used for section path
// candidates: the last path segment of the identifier, cut at the first dot
// to drop archive and host suffixes (".git", ".tar.gz").
func RepoNameHint(source string) string {
	name := strings.TrimRight(source, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}
