// Package mcp exposes the digest store over the Model Context Protocol:
// tools for ingesting and querying repositories, a resource per stored
// digest facet, and a repository summarization prompt.
package mcp

// IngestRepoInput defines the input parameters for the ingest_repo tool.
type IngestRepoInput struct {
	// RepoURI is the URL or local path of the Git repository.
	RepoURI string `json:"repo_uri" jsonschema:"URL or local path to the Git repository"`
	// OutputFile optionally persists the raw digest to this path.
	OutputFile string `json:"output_file,omitempty" jsonschema:"Optional path to save the digest output"`
	// MaxFileSize caps per-file inclusion in bytes (default 10 MiB).
	MaxFileSize int64 `json:"max_file_size,omitempty" jsonschema:"Maximum file size in bytes (default: 10MB)"`
	// IncludePatterns is a comma-separated glob list of files to include.
	IncludePatterns string `json:"include_patterns,omitempty" jsonschema:"Comma-separated patterns of files to include"`
	// ExcludePatterns is a comma-separated glob list of files to exclude.
	ExcludePatterns string `json:"exclude_patterns,omitempty" jsonschema:"Comma-separated patterns of files to exclude"`
	// Branch selects a specific ref to analyze.
	Branch string `json:"branch,omitempty" jsonschema:"Specific branch to analyze (default: main/master)"`
}

// IngestRepoOutput reports the result of an ingestion.
type IngestRepoOutput struct {
	// Message is the human-readable ingestion report, including failures.
	Message string `json:"message"`
	// Source is the identifier the digest is stored under.
	Source string `json:"source,omitempty"`
	// Reused is true when an existing digest was returned without
	// re-invoking the collaborator.
	Reused bool `json:"reused,omitempty"`
	// ApproxFiles estimates the number of files in the digest.
	ApproxFiles int `json:"approx_files,omitempty"`
	// ApproxTokens estimates the token count of the content blob.
	ApproxTokens int `json:"approx_tokens,omitempty"`
	// ContentBytes is the content blob size in characters.
	ContentBytes int `json:"content_bytes,omitempty"`
}

// QueryRepoInput defines the input parameters for the query_repo tool.
type QueryRepoInput struct {
	// RepoURI identifies a previously ingested repository; short-name
	// suffixes of the ingested identifier are accepted.
	RepoURI string `json:"repo_uri" jsonschema:"URL or local path of the repository that was previously ingested using ingest_repo"`
	// ResourceType selects the facet to query.
	ResourceType string `json:"resource_type" jsonschema:"Type of resource to query (summary | tree | content | all)"`
	// FilePath narrows a content query to one file's section.
	FilePath string `json:"file_path,omitempty" jsonschema:"Optional specific file path to query (only used when resource_type is 'content')"`
	// SearchTerm filters content by substring, per line.
	SearchTerm string `json:"search_term,omitempty" jsonschema:"Optional search term to find in content"`
	// MaxTokens bounds the returned text (4 characters per token).
	MaxTokens int `json:"max_tokens,omitempty" jsonschema:"Optional token budget for the returned text"`
}

// QueryRepoOutput carries the query result or a diagnostic message.
type QueryRepoOutput struct {
	Text string `json:"text"`
}

// DigestStatusInput defines the (empty) input of the digest_status tool.
type DigestStatusInput struct{}

// DigestStatus describes one stored digest.
type DigestStatus struct {
	Source       string `json:"source"`
	Branch       string `json:"branch,omitempty"`
	IngestedAt   string `json:"ingested_at"`
	ContentBytes int    `json:"content_bytes"`
	ApproxTokens int    `json:"approx_tokens"`
	// CommitsBehind counts commits on the source branch since ingestion,
	// for github.com sources when the API is reachable.
	CommitsBehind *int `json:"commits_behind,omitempty"`
	// StaleWarning is set when the digest has fallen far behind its source.
	StaleWarning string `json:"stale_warning,omitempty"`
}

// DigestStatusOutput lists all stored digests.
type DigestStatusOutput struct {
	TotalDigests int            `json:"total_digests"`
	Digests      []DigestStatus `json:"digests"`
}
