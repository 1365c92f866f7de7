package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptRequest(args map[string]string) *mcp.GetPromptRequest {
	return &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{
			Name:      "summarize-repo",
			Arguments: args,
		},
	}
}

func TestServer_handleSummarizePrompt(t *testing.T) {
	ctx := context.Background()

	ingested := func(t *testing.T) *Server {
		t.Helper()
		res := testResult
		res.Content = strings.Repeat("x", 3000)
		s := newTestServer(&fakeIngester{result: res})
		_, _, err := s.handleIngestRepo(ctx, nil, IngestRepoInput{
			RepoURI: "https://github.com/owner/repo",
		})
		require.NoError(t, err)
		return s
	}

	promptText := func(t *testing.T, res *mcp.GetPromptResult) string {
		t.Helper()
		require.Len(t, res.Messages, 1)
		tc, ok := res.Messages[0].Content.(*mcp.TextContent)
		require.True(t, ok)
		return tc.Text
	}

	t.Run("brief includes summary and tree only", func(t *testing.T) {
		s := ingested(t)
		res, err := s.handleSummarizePrompt(ctx, promptRequest(map[string]string{
			"repo_uri": "repo",
		}))
		require.NoError(t, err)
		assert.Contains(t, res.Description, "https://github.com/owner/repo")

		text := promptText(t, res)
		assert.Contains(t, text, "SUMMARY:\n"+testResult.Summary)
		assert.Contains(t, text, "FILE TREE:\n"+testResult.Tree)
		assert.NotContains(t, text, "CONTENT:")
	})

	t.Run("detailed embeds bounded content", func(t *testing.T) {
		s := ingested(t)
		res, err := s.handleSummarizePrompt(ctx, promptRequest(map[string]string{
			"repo_uri":     "repo",
			"detail_level": "detailed",
		}))
		require.NoError(t, err)

		text := promptText(t, res)
		assert.Contains(t, text, "extensive details")
		assert.Contains(t, text, "CONTENT:\n"+strings.Repeat("x", 2000))
		assert.NotContains(t, text, strings.Repeat("x", 2001))
	})

	t.Run("missing repo_uri errors", func(t *testing.T) {
		s := ingested(t)
		_, err := s.handleSummarizePrompt(ctx, promptRequest(map[string]string{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "repo_uri")
	})

	t.Run("unknown repository errors with known identifiers", func(t *testing.T) {
		s := ingested(t)
		_, err := s.handleSummarizePrompt(ctx, promptRequest(map[string]string{
			"repo_uri": "unknown",
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "https://github.com/owner/repo")
		assert.Contains(t, err.Error(), "ingest_repo")
	})
}
