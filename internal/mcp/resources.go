package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gitdigest/gitdigest-mcp/internal/digest"
)

// facetDescriptions names each facet resource for listing.
var facetDescriptions = map[digest.Facet]string{
	digest.FacetSummary: "Repository summary",
	digest.FacetTree:    "File tree",
	digest.FacetContent: "Full content",
}

// registerDigestResources exposes the three facets of a stored digest as
// resources under gitingest://<token>/<facet>. Registration is idempotent
// per source: a re-ingest reuses the already-registered URIs since the
// token derivation is deterministic. The SDK notifies connected clients
// that the resource list changed.
func (s *Server) registerDigestResources(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registered[source] {
		return
	}
	s.registered[source] = true

	name := repoDisplayName(source)
	for _, f := range digest.Facets {
		s.server.AddResource(&mcp.Resource{
			URI:         digest.FacetURI(source, f),
			Name:        fmt.Sprintf("%s: %s", capitalize(string(f)), name),
			Description: fmt.Sprintf("%s for %s", facetDescriptions[f], source),
			MIMEType:    "text/plain",
		}, s.handleReadFacet)
	}
}

// handleReadFacet serves a facet read. The address token is decoded against
// the live key set rather than a stored mapping, so it keeps resolving even
// after a digest is replaced in place.
func (s *Server) handleReadFacet(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	token, facet, err := splitFacetURI(req.Params.URI)
	if err != nil || !validFacet(facet) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	store := s.facade.Store()
	source, err := digest.DecodeAddress(token, store.List())
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	d, err := store.Get(source)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     d.Facet(facet),
		}},
	}, nil
}

func validFacet(f digest.Facet) bool {
	switch f {
	case digest.FacetSummary, digest.FacetTree, digest.FacetContent:
		return true
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// splitFacetURI breaks gitingest://<token>/<facet> into its parts.
func splitFacetURI(uri string) (token string, facet digest.Facet, err error) {
	rest, ok := strings.CutPrefix(uri, digest.Scheme+"://")
	if !ok {
		return "", "", fmt.Errorf("unsupported URI scheme: %s", uri)
	}
	i := strings.LastIndex(rest, "/")
	if i < 0 {
		return "", "", fmt.Errorf("invalid digest URI: %s", uri)
	}
	return rest[:i], digest.Facet(rest[i+1:]), nil
}

// repoDisplayName extracts a short repository name from a source identifier.
func repoDisplayName(source string) string {
	parts := strings.Split(strings.Trim(source, "/"), "/")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return "repository"
	}
	return parts[len(parts)-1]
}
