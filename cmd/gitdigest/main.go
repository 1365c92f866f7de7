// Package main provides the gitdigest CLI for producing and inspecting
// repository digests without running the MCP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitdigest/gitdigest-mcp/internal/ingest"
	"github.com/gitdigest/gitdigest-mcp/internal/query"
	"github.com/gitdigest/gitdigest-mcp/internal/search"
	"github.com/gitdigest/gitdigest-mcp/internal/section"
	"github.com/gitdigest/gitdigest-mcp/internal/truncate"
)

var rootCmd = &cobra.Command{
	Use:   "gitdigest",
	Short: "Repository digest tool",
	Long:  "CLI for producing repository digests and inspecting saved digest files",
}

var (
	ingestOutput  string
	ingestMaxSize int64
	ingestInclude string
	ingestExclude string
	ingestBranch  string
	showFacet     string
	showFile      string
	showSearch    string
	showMaxTokens int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <source>",
	Short: "Ingest a repository and print a digest report",
	Long: `Invokes the digest collaborator on a repository URL or local path and
prints the ingestion report. With --output the raw digest is also written
to a file that the show command can inspect later.

Environment variables:
  GITINGEST_BIN  digest CLI binary (default: gitingest)
  LOG_LEVEL      debug, info, warn or error (default: info)`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

var showCmd = &cobra.Command{
	Use:   "show <digest-file>",
	Short: "Inspect a saved digest file",
	Long: `Reads a digest file written by ingest --output and prints a facet of it,
a single file's section, or substring search results.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestOutput, "output", "o", "", "write the raw digest to this path")
	ingestCmd.Flags().Int64VarP(&ingestMaxSize, "max-size", "s", 0, "maximum file size in bytes (default 10 MiB)")
	ingestCmd.Flags().StringVarP(&ingestInclude, "include-pattern", "i", "", "comma-separated patterns of files to include")
	ingestCmd.Flags().StringVarP(&ingestExclude, "exclude-pattern", "e", "", "comma-separated patterns of files to exclude")
	ingestCmd.Flags().StringVarP(&ingestBranch, "branch", "b", "", "specific branch to analyze")

	showCmd.Flags().StringVar(&showFacet, "facet", "summary", "facet to print: summary, tree, content or all")
	showCmd.Flags().StringVar(&showFile, "file", "", "print a single file's section of the content")
	showCmd.Flags().StringVar(&showSearch, "search", "", "search the content (or the selected file) for a substring")
	showCmd.Flags().IntVar(&showMaxTokens, "max-tokens", 0, "token budget for the printed text (0 = unlimited)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(showCmd)
}

func main() {
	_ = godotenv.Load()
	slog.SetDefault(newLogger(os.Getenv("LOG_LEVEL")))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	source := args[0]
	ingester := ingest.NewCommand(os.Getenv("GITINGEST_BIN"), slog.Default())

	res, err := ingester.Ingest(context.Background(), source, ingest.Options{
		MaxFileSize:     ingestMaxSize,
		IncludePatterns: ingestInclude,
		ExcludePatterns: ingestExclude,
		Branch:          ingestBranch,
		Output:          ingestOutput,
	})
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", source, err)
	}

	fmt.Printf("Ingested repository: %s\n\n", source)
	fmt.Printf("Summary:\n%s\n\n", res.Summary)
	fmt.Printf("Statistics:\n")
	fmt.Printf("- Approximately %d files processed\n", strings.Count(res.Tree, "\n"))
	fmt.Printf("- Approximately %d tokens in content\n", truncate.Tokens(res.Content))
	fmt.Printf("- Content size: %d characters\n", len(res.Content))
	if ingestOutput != "" {
		fmt.Printf("\nOutput saved to: %s\n", ingestOutput)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	res := ingest.ParseDigest(string(raw))

	// A file section request takes precedence over the facet selection.
	if showFile != "" {
		hint := query.RepoNameHint(args[0])
		text, err := section.Extract(res.Content, showFile, hint)
		if err != nil {
			return fmt.Errorf("%w\n\nAvailable files:\n%s", err, res.Tree)
		}
		if showSearch != "" {
			if matches := search.Run(text, showSearch); !matches.Empty() {
				text += fmt.Sprintf("\n\nMatches for %q:\n%s", showSearch, matches.Format())
			}
		}
		fmt.Println(truncate.Apply(text, showMaxTokens))
		return nil
	}

	if showSearch != "" {
		matches := search.Run(res.Content, showSearch)
		if matches.Empty() {
			fmt.Printf("No matches found for: %q\n", showSearch)
			return nil
		}
		fmt.Println(truncate.Apply(matches.Format(), showMaxTokens))
		return nil
	}

	var text string
	switch showFacet {
	case "summary":
		text = res.Summary
	case "tree":
		text = res.Tree
	case "content":
		text = res.Content
	case "all":
		text = fmt.Sprintf("SUMMARY:\n%s\n\nFILE TREE:\n%s\n\nCONTENT:\n%s", res.Summary, res.Tree, res.Content)
	default:
		return fmt.Errorf("unknown facet: %s", showFacet)
	}
	fmt.Println(truncate.Apply(text, showMaxTokens))
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   lvl,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}
