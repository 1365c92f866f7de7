package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultBinary is the digest CLI invoked when none is configured.
const DefaultBinary = "gitingest"

// Command invokes an external gitingest-compatible CLI and parses its digest
// output. Transient failures (network, clone) are retried with exponential
// backoff; anything else fails immediately.
type Command struct {
	binary string
	logger *slog.Logger
}

// NewCommand returns a Command runner for the given binary. An empty binary
// selects DefaultBinary; a nil logger selects slog.Default.
func NewCommand(binary string, logger *slog.Logger) *Command {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Command{binary: binary, logger: logger}
}

// Ingest runs the CLI against source, capturing the digest from stdout.
// When opts.Output is set the captured digest is also written to that path.
func (c *Command) Ingest(ctx context.Context, source string, opts Options) (Result, error) {
	args := c.buildArgs(source, opts)

	var raw []byte
	run := func() error {
		cmd := exec.CommandContext(ctx, c.binary, args...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		c.logger.Debug("running ingest command", "binary", c.binary, "source", source)
		if err := cmd.Run(); err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = err.Error()
			}
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if transient(msg) {
				c.logger.Warn("transient ingest failure, retrying", "source", source, "error", msg)
				return fmt.Errorf("%s: %s", c.binary, msg)
			}
			return backoff.Permanent(fmt.Errorf("%s: %s", c.binary, msg))
		}
		raw = stdout.Bytes()
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(run, backoff.WithContext(b, ctx)); err != nil {
		return Result{}, err
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, raw, 0o644); err != nil {
			return Result{}, fmt.Errorf("writing digest to %s: %w", opts.Output, err)
		}
	}

	return ParseDigest(string(raw)), nil
}

// buildArgs maps Options to the CLI's flags. The digest itself is requested
// on stdout so the three facets can be split without a temp file.
func (c *Command) buildArgs(source string, opts Options) []string {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	args := []string{source, "--output", "-", "--max-size", strconv.FormatInt(maxSize, 10)}
	for _, p := range splitPatterns(opts.IncludePatterns) {
		args = append(args, "--include-pattern", p)
	}
	for _, p := range splitPatterns(opts.ExcludePatterns) {
		args = append(args, "--exclude-pattern", p)
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	return args
}

// splitPatterns breaks a comma-separated pattern list into trimmed,
// non-empty entries.
func splitPatterns(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// transient reports whether a failure message looks like a network or clone
// hiccup worth retrying.
func transient(msg string) bool {
	m := strings.ToLower(msg)
	for _, marker := range []string{
		"timed out", "timeout", "connection re", "could not resolve",
		"temporarily unavailable", "rate limit", "502", "503",
	} {
		if strings.Contains(m, marker) {
			return true
		}
	}
	return false
}
