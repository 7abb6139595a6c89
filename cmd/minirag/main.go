// Package main provides the minirag CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootFlags holds the persistent flags shared by every subcommand
type rootFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
	docsDir    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds a fresh command tree with its own flag values.
func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "minirag",
		Short: "Retrieval over local notes with an in-memory vector store",
		Long: `minirag loads the markdown and text files under --dir into an
in-memory vector store, then searches them or answers questions with a
language model grounded by the best matching chunks.

Nothing is persisted: every invocation embeds the documents again.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&f.logJSON, "log-json", false, "log as JSON")
	pf.StringVar(&f.docsDir, "dir", "docs", "directory of documents to ingest")

	root.AddCommand(
		newSearchCmd(f),
		newContextCmd(f),
		newAskCmd(f),
		newGenerateCmd(f),
		newStatsCmd(f),
		newModelsCmd(f),
	)
	return root
}
