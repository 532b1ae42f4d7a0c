// Package report renders comparison results for humans. The JSON
// shape lives in domain; this package only formats.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

// MarkdownWriter renders a comparison report as GitHub-flavored
// markdown, suitable for review threads and audit trails.
type MarkdownWriter struct {
	output io.Writer
}

func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

func (w *MarkdownWriter) Write(report *domain.Report) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeVerdict(md, report)
	w.writeSummary(md, report)
	w.writeDifferences(md, report)
	w.writeReorderings(md, report)
	w.writeRecommendations(md, report)

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *domain.Report) {
	md.H1("Document Comparison Report")
	md.PlainText("")

	rows := [][]string{
		{"Overall Match", fmt.Sprintf("%.2f%%", report.Summary.OverallMatch)},
		{"Sentences (doc 1)", strconv.Itoa(report.Summary.TotalSentencesDoc1)},
		{"Sentences (doc 2)", strconv.Itoa(report.Summary.TotalSentencesDoc2)},
		{"Matched", strconv.Itoa(report.Summary.MatchedSentences)},
	}
	if report.File1Name != "" {
		rows = append([][]string{
			{"Document 1", "`" + report.File1Name + "`"},
			{"Document 2", "`" + report.File2Name + "`"},
		}, rows...)
	}
	if report.ProcessingTime > 0 {
		rows = append(rows, []string{"Processing Time", fmt.Sprintf("%.2fs", report.ProcessingTime)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, report *domain.Report) {
	switch report.Verdict.Status {
	case "identical":
		md.Tip(report.Verdict.Message)
	case "very_similar":
		md.Note(report.Verdict.Message)
	case "similar":
		md.Importantf("%s", report.Verdict.Message)
	case "different":
		md.Warningf("%s", report.Verdict.Message)
	default:
		md.Cautionf("%s", report.Verdict.Message)
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *domain.Report) {
	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count"},
		Rows: [][]string{
			{"Exact matches", strconv.Itoa(report.Summary.ExactMatches)},
			{"Minor differences", strconv.Itoa(report.Summary.MinorDifferences)},
			{"Rewordings", strconv.Itoa(report.Summary.Rewordings)},
			{"Significant differences", strconv.Itoa(report.Summary.SignificantDifferences)},
			{"Missing in document 1", strconv.Itoa(report.Summary.MissingInDoc1)},
			{"Missing in document 2", strconv.Itoa(report.Summary.MissingInDoc2)},
			{"Reorderings", strconv.Itoa(report.Summary.ReorderingsDetected)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeDifferences(md *markdown.Markdown, report *domain.Report) {
	md.H2("Differences")
	md.PlainText("")

	if len(report.Differences) == 0 {
		md.PlainText("No differences detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Differences))
	for i, diff := range report.Differences {
		rows[i] = []string{
			formatPosition(diff.Position1),
			formatPosition(diff.Position2),
			string(diff.Classification),
			string(diff.Severity),
			fmt.Sprintf("%.3f", diff.Similarity),
			truncate(deref(diff.Text1), 60),
			truncate(deref(diff.Text2), 60),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Pos 1", "Pos 2", "Classification", "Severity", "Similarity", "Text 1", "Text 2"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, diff := range report.Differences {
		if len(diff.Suggestions) == 0 {
			continue
		}
		md.PlainTextf("**%s / %s:**", formatPosition(diff.Position1), formatPosition(diff.Position2))
		md.BulletList(diff.Suggestions...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeReorderings(md *markdown.Markdown, report *domain.Report) {
	if len(report.Reorderings) == 0 {
		return
	}

	md.H2("Reordered Sentences")
	md.PlainText("")

	rows := make([][]string, len(report.Reorderings))
	for i, reordering := range report.Reorderings {
		rows[i] = []string{
			strconv.Itoa(reordering.ExpectedPosition),
			strconv.Itoa(reordering.ActualPosition),
			strconv.Itoa(reordering.Displacement),
			truncate(reordering.Text, 80),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Expected", "Actual", "Displacement", "Text"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *domain.Report) {
	if len(report.Recommendations) == 0 {
		return
	}
	md.H2("Recommendations")
	md.PlainText("")
	md.BulletList(report.Recommendations...)
	md.PlainText("")
}

func formatPosition(position *int) string {
	if position == nil {
		return "-"
	}
	return strconv.Itoa(*position)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
