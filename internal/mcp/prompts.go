package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gitdigest/gitdigest-mcp/internal/truncate"
)

// detailedContentTokens bounds how much raw content the detailed prompt
// variant embeds (2000 characters under the 4-chars-per-token heuristic).
const detailedContentTokens = 500

// registerPrompts registers the summarize-repo prompt.
func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-repo",
		Description: "Creates a summary of a repository",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "repo_uri",
				Description: "URI of the repository to summarize",
				Required:    true,
			},
			{
				Name:        "detail_level",
				Description: "Level of detail (brief/detailed)",
				Required:    false,
			},
		},
	}, s.handleSummarizePrompt)
}

// handleSummarizePrompt builds a summarization prompt from a stored digest.
// The detailed level also embeds the head of the content blob and asks for
// implementation specifics.
func (s *Server) handleSummarizePrompt(
	ctx context.Context,
	req *mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	repoURI := req.Params.Arguments["repo_uri"]
	if repoURI == "" {
		return nil, fmt.Errorf("missing required argument: repo_uri")
	}
	detailLevel := req.Params.Arguments["detail_level"]
	if detailLevel == "" {
		detailLevel = "brief"
	}

	store := s.facade.Store()
	source, err := store.Resolve(repoURI)
	if err != nil {
		return nil, fmt.Errorf("%w; use the ingest_repo tool first", err)
	}
	d, err := store.Get(source)
	if err != nil {
		return nil, err
	}

	detailPrompt := ""
	if detailLevel == "detailed" {
		detailPrompt = " Provide extensive details about the code structure and implementation."
	}

	text := fmt.Sprintf(
		"Here is the repository information to summarize for %s.%s\n\nSUMMARY:\n%s\n\nFILE TREE:\n%s\n\n",
		source, detailPrompt, d.Summary, d.Tree)
	if detailLevel == "detailed" {
		text += fmt.Sprintf("CONTENT:\n%s", truncate.Apply(d.Content, detailedContentTokens))
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Summarize the repository: %s", source),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}, nil
}
