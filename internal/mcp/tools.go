package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gitdigest/gitdigest-mcp/internal/digest"
	ghclient "github.com/gitdigest/gitdigest-mcp/internal/github"
	"github.com/gitdigest/gitdigest-mcp/internal/ingest"
	"github.com/gitdigest/gitdigest-mcp/internal/truncate"
)

// staleThreshold is the commits-behind count past which digest_status warns.
const staleThreshold = 20

// handleIngestRepo handles the ingest_repo tool. An existing digest wins:
// the collaborator is only invoked for sources not yet stored, and its
// failures come back as report text, never as a protocol error.
func (s *Server) handleIngestRepo(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input IngestRepoInput,
) (*mcp.CallToolResult, IngestRepoOutput, error) {
	if input.RepoURI == "" {
		return nil, IngestRepoOutput{}, errors.New("missing repo_uri")
	}

	opts := ingest.Options{
		MaxFileSize:     input.MaxFileSize,
		IncludePatterns: input.IncludePatterns,
		ExcludePatterns: input.ExcludePatterns,
		Branch:          input.Branch,
		Output:          input.OutputFile,
	}

	d, created, err := s.facade.EnsureIngested(ctx, input.RepoURI, opts)
	if err != nil {
		return nil, IngestRepoOutput{
			Message: fmt.Sprintf("Error ingesting repository %s: %v", input.RepoURI, err),
		}, nil
	}

	s.registerDigestResources(d.Source)

	out := IngestRepoOutput{
		Source:       d.Source,
		Reused:       !created,
		ApproxFiles:  strings.Count(d.Tree, "\n"),
		ApproxTokens: truncate.Tokens(d.Content),
		ContentBytes: len(d.Content),
	}

	var b strings.Builder
	if created {
		fmt.Fprintf(&b, "Successfully ingested repository: %s\n\n", d.Source)
	} else {
		fmt.Fprintf(&b, "Repository already ingested, reusing existing digest: %s\n\n", d.Source)
	}
	fmt.Fprintf(&b, "Summary:\n%s\n\n", head(d.Summary, 500))
	fmt.Fprintf(&b, "Statistics:\n")
	fmt.Fprintf(&b, "- Approximately %d files processed\n", out.ApproxFiles)
	fmt.Fprintf(&b, "- Approximately %d tokens in content\n", out.ApproxTokens)
	fmt.Fprintf(&b, "- Content size: %d characters\n", out.ContentBytes)
	if created && input.OutputFile != "" {
		fmt.Fprintf(&b, "\nOutput saved to: %s", input.OutputFile)
	}
	out.Message = b.String()

	return nil, out, nil
}

// handleQueryRepo handles the query_repo tool. Lookup and extraction misses
// are reported as diagnostic text; only malformed requests error.
func (s *Server) handleQueryRepo(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input QueryRepoInput,
) (*mcp.CallToolResult, QueryRepoOutput, error) {
	if input.RepoURI == "" {
		return nil, QueryRepoOutput{}, errors.New("missing repo_uri")
	}
	if input.ResourceType == "" {
		return nil, QueryRepoOutput{}, errors.New("missing resource_type")
	}

	var (
		text string
		err  error
	)
	switch {
	case input.ResourceType == string(digest.FacetContent) && input.FilePath != "":
		text, err = s.facade.QueryFile(input.RepoURI, input.FilePath, input.SearchTerm, input.MaxTokens)
	case input.ResourceType == string(digest.FacetContent) && input.SearchTerm != "":
		text, err = s.facade.QuerySearch(input.RepoURI, input.SearchTerm, input.MaxTokens)
	default:
		text, err = s.facade.QueryFacet(input.RepoURI, input.ResourceType, input.MaxTokens)
	}
	if err != nil {
		if errors.Is(err, digest.ErrNotIngested) {
			return nil, QueryRepoOutput{
				Text: fmt.Sprintf("%v. Use the ingest_repo tool first.", err),
			}, nil
		}
		return nil, QueryRepoOutput{}, err
	}

	return nil, QueryRepoOutput{Text: text}, nil
}

// handleDigestStatus handles the digest_status tool. GitHub API failures
// degrade to omitting staleness, they never fail the tool.
func (s *Server) handleDigestStatus(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input DigestStatusInput,
) (*mcp.CallToolResult, DigestStatusOutput, error) {
	store := s.facade.Store()
	sources := store.List()

	out := DigestStatusOutput{
		TotalDigests: len(sources),
		Digests:      make([]DigestStatus, 0, len(sources)),
	}

	for _, source := range sources {
		d, err := store.Get(source)
		if err != nil {
			continue
		}
		status := DigestStatus{
			Source:       d.Source,
			Branch:       d.Branch,
			IngestedAt:   d.IngestedAt.Format(time.RFC3339),
			ContentBytes: len(d.Content),
			ApproxTokens: truncate.Tokens(d.Content),
		}
		if s.github != nil {
			if owner, repo, ok := ghclient.ParseRepoURL(d.Source); ok {
				if behind, more, err := s.github.CommitsSince(ctx, owner, repo, d.Branch, d.IngestedAt); err == nil {
					status.CommitsBehind = &behind
					if more {
						status.StaleWarning = fmt.Sprintf(
							"Digest is at least %d commits behind %s. Consider re-ingesting.", behind, d.Source)
					} else if behind > staleThreshold {
						status.StaleWarning = fmt.Sprintf(
							"Digest is %d commits behind %s. Consider re-ingesting.", behind, d.Source)
					}
				}
			}
		}
		out.Digests = append(out.Digests, status)
	}

	return nil, out, nil
}

// head returns at most n characters of s, marking the cut.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
