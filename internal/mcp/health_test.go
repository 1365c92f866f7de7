package mcp

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitdigest/gitdigest-mcp/internal/digest"
)

func TestNewHealthHandler(t *testing.T) {
	store := digest.NewStore()
	store.Put(digest.Digest{Source: "repo"})

	handler := NewHealthHandler(store)
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 1, resp.Digests)
	assert.NotEmpty(t, resp.Timestamp)
}
