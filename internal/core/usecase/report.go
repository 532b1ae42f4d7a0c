package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

// ReportBuilder merges matches, leftovers, classifications and
// reorderings into the user-facing report.
type ReportBuilder struct {
	contextWindow int
}

func NewReportBuilder(contextWindow int) *ReportBuilder {
	if contextWindow <= 0 {
		contextWindow = defaultContextWindow
	}
	return &ReportBuilder{contextWindow: contextWindow}
}

func (b *ReportBuilder) Build(result *domain.MatchResult, sentences1, sentences2 []domain.Sentence) *domain.Report {
	quality := b.analyzeQuality(result.Matches, sentences1, sentences2)
	reorderings := b.findReorderings(result.Matches)
	differences := buildDifferences(result)
	summary := buildSummary(result, sentences1, sentences2, quality, len(reorderings))

	return &domain.Report{
		Summary:         summary,
		Verdict:         buildVerdict(summary),
		Differences:     differences,
		Reorderings:     reorderings,
		Recommendations: buildRecommendations(summary, differences, reorderings),
		QualityAnalysis: quality,
	}
}

// findReorderings flags matches whose positions drifted further than
// twice the context window. Position drift is a heuristic, not a true
// move detector: heavily edited documents can trip it.
func (b *ReportBuilder) findReorderings(matches []domain.Match) []domain.Reordering {
	reorderings := []domain.Reordering{}
	tolerance := 2 * b.contextWindow

	for _, m := range matches {
		if absInt(m.Index1-m.Index2) <= tolerance {
			continue
		}
		reorderings = append(reorderings, domain.Reordering{
			Text:             m.Sentence1.Text,
			ExpectedPosition: m.Index1,
			ActualPosition:   m.Index2,
			Displacement:     m.Index2 - m.Index1,
		})
	}
	return reorderings
}

func (b *ReportBuilder) analyzeQuality(matches []domain.Match, sentences1, sentences2 []domain.Sentence) domain.QualityAnalysis {
	quality := domain.QualityAnalysis{
		Doc1Stats: sentenceStats(sentences1),
		Doc2Stats: sentenceStats(sentences2),
	}
	if len(matches) == 0 {
		return quality
	}

	var similaritySum float64
	for _, m := range matches {
		switch ClassifyMatch(m) {
		case domain.ClassExactMatch:
			quality.ExactMatches++
		case domain.ClassMinorDifference:
			quality.MinorDifferences++
		case domain.ClassRewording:
			quality.Rewordings++
		default:
			quality.SignificantDifferences++
		}
		similaritySum += m.Similarity
	}

	quality.TotalMatches = len(matches)
	quality.AvgSimilarity = similaritySum / float64(len(matches))
	return quality
}

func sentenceStats(sentences []domain.Sentence) domain.SentenceStats {
	if len(sentences) == 0 {
		return domain.SentenceStats{}
	}

	stats := domain.SentenceStats{
		TotalSentences: len(sentences),
		MinLength:      sentences[0].Length,
	}
	for _, sentence := range sentences {
		stats.TotalChars += sentence.Length
		if sentence.Length < stats.MinLength {
			stats.MinLength = sentence.Length
		}
		if sentence.Length > stats.MaxLength {
			stats.MaxLength = sentence.Length
		}
	}
	stats.AvgLength = float64(stats.TotalChars) / float64(len(sentences))
	return stats
}

func buildDifferences(result *domain.MatchResult) []domain.Difference {
	differences := make([]domain.Difference, 0, len(result.Matches)+len(result.OnlyInDoc1)+len(result.OnlyInDoc2))

	for _, m := range result.Matches {
		if m.ExactMatch {
			continue
		}
		class := ClassifyMatch(m)
		differences = append(differences, domain.Difference{
			Type:           domain.DiffMismatch,
			Classification: class,
			Severity:       severityFor(class),
			Position1:      intPtr(m.Index1 + 1),
			Position2:      intPtr(m.Index2 + 1),
			Text1:          strPtr(m.Sentence1.Text),
			Text2:          strPtr(m.Sentence2.Text),
			Similarity:     m.Similarity,
			Suggestions:    suggestCorrections(m),
		})
	}

	for _, sentence := range result.OnlyInDoc1 {
		differences = append(differences, domain.Difference{
			Type:           domain.DiffMissingInDoc2,
			Classification: domain.ClassAddition,
			Severity:       domain.SeverityHigh,
			Position1:      intPtr(sentence.ID + 1),
			Text1:          strPtr(sentence.Text),
			Suggestions:    []string{"This sentence appears in document 1 but not in document 2"},
		})
	}
	for _, sentence := range result.OnlyInDoc2 {
		differences = append(differences, domain.Difference{
			Type:           domain.DiffMissingInDoc1,
			Classification: domain.ClassAddition,
			Severity:       domain.SeverityHigh,
			Position2:      intPtr(sentence.ID + 1),
			Text2:          strPtr(sentence.Text),
			Suggestions:    []string{"This sentence appears in document 2 but not in document 1"},
		})
	}

	sort.SliceStable(differences, func(a, b int) bool {
		ka1, ka2 := positionKey(differences[a].Position1), positionKey(differences[a].Position2)
		kb1, kb2 := positionKey(differences[b].Position1), positionKey(differences[b].Position2)
		if ka1 != kb1 {
			return ka1 < kb1
		}
		return ka2 < kb2
	})
	return differences
}

// positionKey sorts absent positions after every real one.
func positionKey(position *int) int {
	if position == nil {
		return math.MaxInt
	}
	return *position
}

func buildSummary(
	result *domain.MatchResult,
	sentences1, sentences2 []domain.Sentence,
	quality domain.QualityAnalysis,
	reorderingCount int,
) domain.Summary {
	return domain.Summary{
		OverallMatch:           round2(result.MatchScore * 100),
		TotalSentencesDoc1:     len(sentences1),
		TotalSentencesDoc2:     len(sentences2),
		MatchedSentences:       len(result.Matches),
		ExactMatches:           quality.ExactMatches,
		MinorDifferences:       quality.MinorDifferences,
		Rewordings:             quality.Rewordings,
		SignificantDifferences: quality.SignificantDifferences + len(result.OnlyInDoc1) + len(result.OnlyInDoc2),
		MissingInDoc1:          len(result.OnlyInDoc2),
		MissingInDoc2:          len(result.OnlyInDoc1),
		ReorderingsDetected:    reorderingCount,
		AvgSimilarity:          round3(quality.AvgSimilarity),
	}
}

func buildVerdict(summary domain.Summary) domain.Verdict {
	verdict := domain.Verdict{Confidence: "medium"}
	if summary.MatchedSentences > 5 {
		verdict.Confidence = "high"
	}

	switch {
	case summary.OverallMatch >= 98:
		verdict.Status = "identical"
		verdict.Message = "Documents are virtually identical"
		verdict.Color = "green"
	case summary.OverallMatch >= 90:
		verdict.Status = "very_similar"
		verdict.Message = "Documents are very similar with minor differences"
		verdict.Color = "green"
	case summary.OverallMatch >= 75:
		verdict.Status = "similar"
		verdict.Message = "Documents are similar but have notable differences"
		verdict.Color = "yellow"
	case summary.OverallMatch >= 50:
		verdict.Status = "different"
		verdict.Message = "Documents have significant differences"
		verdict.Color = "orange"
	default:
		verdict.Status = "very_different"
		verdict.Message = "Documents are substantially different"
		verdict.Color = "red"
	}
	return verdict
}

func buildRecommendations(
	summary domain.Summary,
	differences []domain.Difference,
	reorderings []domain.Reordering,
) []string {
	recommendations := []string{}

	ocrSuspects := 0
	for _, diff := range differences {
		for _, suggestion := range diff.Suggestions {
			if strings.Contains(suggestion, "OCR") {
				ocrSuspects++
				break
			}
		}
	}
	if ocrSuspects > 3 {
		recommendations = append(recommendations,
			"Multiple potential OCR errors detected. Consider rescanning document with higher quality settings.")
	}

	if len(reorderings) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Detected %d sentences that appear in different order. Verify if content was intentionally reorganized.",
			len(reorderings)))
	}

	if summary.MissingInDoc1 > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"%d sentence(s) appear only in document 2. Check if content was added or if OCR missed these sections.",
			summary.MissingInDoc1))
	}
	if summary.MissingInDoc2 > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"%d sentence(s) appear only in document 1. Check if content was removed or if OCR failed.",
			summary.MissingInDoc2))
	}

	if summary.OverallMatch < 90 {
		recommendations = append(recommendations,
			"Documents have notable differences. Manual review recommended for important documents.")
	}
	if summary.OverallMatch >= 95 && summary.MinorDifferences > 0 {
		recommendations = append(recommendations,
			"Documents are very similar. Differences appear to be minor (typos, punctuation). Verify if these are acceptable variations.")
	}

	if len(recommendations) == 0 && summary.OverallMatch >= 98 {
		recommendations = append(recommendations,
			"Documents match very closely. No significant issues detected.")
	}
	return recommendations
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
