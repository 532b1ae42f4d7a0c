package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for doccompare.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doccompare",
		Short: "Semantic comparison of legal documents",
		Long: `doccompare compares two documents sentence by sentence using
embedding similarity. It reports matched, changed, missing and
reordered sentences along with an overall verdict.

The tool needs two running sidecars: an Ollama instance for
embeddings and a sentence segmentation service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewExtractCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
