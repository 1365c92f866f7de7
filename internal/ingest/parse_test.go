package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDigest = `Repository: owner/repo
Files analyzed: 2
Estimated tokens: 1.2k

Directory structure:
└── repo/
    ├── README.md
    └── main.go

### repo/README.md
# Hello

### repo/main.go
package main
`

func TestParseDigest(t *testing.T) {
	t.Run("splits the three blocks", func(t *testing.T) {
		res := ParseDigest(sampleDigest)

		assert.Equal(t, "Repository: owner/repo\nFiles analyzed: 2\nEstimated tokens: 1.2k", res.Summary)
		assert.Equal(t, "Directory structure:\n└── repo/\n    ├── README.md\n    └── main.go", res.Tree)
		assert.Equal(t, "### repo/README.md\n# Hello\n\n### repo/main.go\npackage main", res.Content)
	})

	t.Run("no tree heading", func(t *testing.T) {
		res := ParseDigest("just a summary\n\n### f.txt\nbody\n")
		assert.Equal(t, "just a summary", res.Summary)
		assert.Empty(t, res.Tree)
		assert.Equal(t, "### f.txt\nbody", res.Content)
	})

	t.Run("summary only", func(t *testing.T) {
		res := ParseDigest("empty repository\n")
		assert.Equal(t, "empty repository", res.Summary)
		assert.Empty(t, res.Tree)
		assert.Empty(t, res.Content)
	})

	t.Run("tree without content", func(t *testing.T) {
		res := ParseDigest("summary\n\nDirectory structure:\n└── repo/\n")
		assert.Equal(t, "summary", res.Summary)
		assert.Equal(t, "Directory structure:\n└── repo/", res.Tree)
		assert.Empty(t, res.Content)
	})

	t.Run("tree line must match exactly", func(t *testing.T) {
		// A summary mentioning the heading mid-line must not split there.
		res := ParseDigest("see Directory structure: below\n\nDirectory structure:\n└── x/\n")
		assert.Equal(t, "see Directory structure: below", res.Summary)
		assert.Equal(t, "Directory structure:\n└── x/", res.Tree)
	})
}

func TestSplitPatterns(t *testing.T) {
	assert.Nil(t, splitPatterns(""))
	assert.Equal(t, []string{"*.go"}, splitPatterns("*.go"))
	assert.Equal(t, []string{"*.go", "*.md"}, splitPatterns(" *.go , *.md ,"))
}

func TestTransient(t *testing.T) {
	assert.True(t, transient("fatal: unable to access 'x': Could not resolve host"))
	assert.True(t, transient("Connection reset by peer"))
	assert.True(t, transient("operation timed out"))
	assert.False(t, transient("fatal: repository 'x' not found"))
	assert.False(t, transient("usage: gitingest [OPTIONS] SOURCE"))
}

func TestCommand_BuildArgs(t *testing.T) {
	c := NewCommand("", nil)

	t.Run("defaults", func(t *testing.T) {
		args := c.buildArgs("https://github.com/o/r", Options{})
		assert.Equal(t, []string{
			"https://github.com/o/r", "--output", "-",
			"--max-size", "10485760",
		}, args)
	})

	t.Run("all options", func(t *testing.T) {
		args := c.buildArgs("src", Options{
			MaxFileSize:     1024,
			IncludePatterns: "*.go,*.md",
			ExcludePatterns: "vendor/*",
			Branch:          "dev",
		})
		assert.Equal(t, []string{
			"src", "--output", "-",
			"--max-size", "1024",
			"--include-pattern", "*.go",
			"--include-pattern", "*.md",
			"--exclude-pattern", "vendor/*",
			"--branch", "dev",
		}, args)
	})
}
