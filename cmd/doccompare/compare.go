package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
	"github.com/lnxalpha/legal-document-comparator/internal/core/usecase"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/embedding/ollama"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/extractor"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/resilience"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/segmenter/spacyd"
	"github.com/lnxalpha/legal-document-comparator/internal/report"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two documents sentence by sentence",
		Long: `Compare extracts text from both files, segments it into
sentences and matches sentences across documents by embedding
similarity.

Examples:
  # Compare two contracts, human-readable output
  doccompare compare contract_v1.pdf contract_v2.pdf

  # Machine-readable output for scripting
  doccompare compare --format json old.txt new.txt

  # Markdown report written to a file
  doccompare compare --format markdown --output report.md a.pdf b.pdf`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("format", "f", "text", "Output format: text, json or markdown")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	addSidecarFlags(cmd)
	cmd.Flags().Float64("similarity-threshold", 0.85, "Minimum cosine similarity for a sentence match")
	cmd.Flags().Int("context-window", 2, "Neighbor window used for match validation and reordering detection")
	cmd.Flags().Int("max-sentence-length", 500, "Sentences longer than this are split before matching")

	return cmd
}

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract plain text from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			text, err := extractor.New().Extract(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func addSidecarFlags(cmd *cobra.Command) {
	cmd.Flags().String("embedder-url", "http://localhost:11434", "Base URL of the Ollama embedding service")
	cmd.Flags().String("embed-model", "nomic-embed-text", "Embedding model name")
	cmd.Flags().String("segmenter-url", "http://localhost:8001", "Base URL of the sentence segmentation service")
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	threshold, err := cmd.Flags().GetFloat64("similarity-threshold")
	if err != nil {
		return err
	}
	contextWindow, err := cmd.Flags().GetInt("context-window")
	if err != nil {
		return err
	}
	maxSentenceLength, err := cmd.Flags().GetInt("max-sentence-length")
	if err != nil {
		return err
	}

	compareUC, err := buildPipeline(cmd, threshold, contextWindow, maxSentenceLength)
	if err != nil {
		return err
	}

	text1, err := extractFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	text2, err := extractFile(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	result, err := compareUC.CompareTexts(cmd.Context(), text1, text2)
	if err != nil {
		return err
	}
	result.File1Name = args[0]
	result.File2Name = args[1]

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "markdown":
		return report.NewMarkdownWriter(out).Write(result)
	case "text":
		return writeTextReport(out, result)
	default:
		return fmt.Errorf("unknown format %q (expected text, json or markdown)", format)
	}
}

func buildPipeline(cmd *cobra.Command, threshold float64, contextWindow, maxSentenceLength int) (*usecase.CompareUseCase, error) {
	embedderURL, err := cmd.Flags().GetString("embedder-url")
	if err != nil {
		return nil, err
	}
	embedModel, err := cmd.Flags().GetString("embed-model")
	if err != nil {
		return nil, err
	}
	segmenterURL, err := cmd.Flags().GetString("segmenter-url")
	if err != nil {
		return nil, err
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	embedder := ollama.New(embedderURL, embedModel, executor)
	splitter := spacyd.New(segmenterURL, executor)

	segmenter := usecase.NewSentenceSegmenter(splitter, maxSentenceLength)
	matcher := usecase.NewSimilarityMatcher(embedder, threshold, contextWindow)
	reporter := usecase.NewReportBuilder(contextWindow)
	return usecase.NewCompareUseCase(segmenter, matcher, reporter), nil
}

func extractFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	text, err := extractor.New().Extract(ctx, path, data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s contains no extractable text", path)
	}
	return text, nil
}

func writeTextReport(out io.Writer, result *domain.Report) error {
	fmt.Fprintf(out, "Comparison: %s vs %s\n", result.File1Name, result.File2Name)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintf(out, "\nVerdict: %s (%s confidence)\n", result.Verdict.Message, result.Verdict.Confidence)
	fmt.Fprintf(out, "Overall match: %.2f%%\n", result.Summary.OverallMatch)

	fmt.Fprintln(out, "\nSummary:")
	fmt.Fprintf(out, "  %-26s %d / %d\n", "Sentences (doc1 / doc2)",
		result.Summary.TotalSentencesDoc1, result.Summary.TotalSentencesDoc2)
	fmt.Fprintf(out, "  %-26s %d\n", "Matched", result.Summary.MatchedSentences)
	fmt.Fprintf(out, "  %-26s %d\n", "Exact matches", result.Summary.ExactMatches)
	fmt.Fprintf(out, "  %-26s %d\n", "Minor differences", result.Summary.MinorDifferences)
	fmt.Fprintf(out, "  %-26s %d\n", "Rewordings", result.Summary.Rewordings)
	fmt.Fprintf(out, "  %-26s %d\n", "Significant differences", result.Summary.SignificantDifferences)
	fmt.Fprintf(out, "  %-26s %d\n", "Reorderings", result.Summary.ReorderingsDetected)

	if len(result.Differences) > 0 {
		fmt.Fprintf(out, "\nDifferences (%d):\n", len(result.Differences))
		for _, diff := range result.Differences {
			fmt.Fprintf(out, "  [%s/%s] pos %s -> %s (similarity %.3f)\n",
				diff.Classification, diff.Severity,
				positionText(diff.Position1), positionText(diff.Position2), diff.Similarity)
			if diff.Text1 != nil {
				fmt.Fprintf(out, "    doc1: %s\n", *diff.Text1)
			}
			if diff.Text2 != nil {
				fmt.Fprintf(out, "    doc2: %s\n", *diff.Text2)
			}
			for _, suggestion := range diff.Suggestions {
				fmt.Fprintf(out, "    note: %s\n", suggestion)
			}
		}
	}

	if len(result.Reorderings) > 0 {
		fmt.Fprintf(out, "\nReordered sentences (%d):\n", len(result.Reorderings))
		for _, reordering := range result.Reorderings {
			fmt.Fprintf(out, "  %d -> %d (%+d): %s\n",
				reordering.ExpectedPosition, reordering.ActualPosition,
				reordering.Displacement, reordering.Text)
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(out, "\nRecommendations:")
		for _, recommendation := range result.Recommendations {
			fmt.Fprintf(out, "  - %s\n", recommendation)
		}
	}
	return nil
}

func positionText(position *int) string {
	if position == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *position)
}
