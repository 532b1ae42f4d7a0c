package usecase

import (
	"strings"
	"testing"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

func TestBuildDifferencesSortedByPosition(t *testing.T) {
	builder := NewReportBuilder(2)

	result := &domain.MatchResult{
		Matches: []domain.Match{
			matchWith("Clause three old.", "Clause three new.", 0.9),
		},
		OnlyInDoc1: []domain.Sentence{{ID: 0, Text: "Removed clause."}},
		OnlyInDoc2: []domain.Sentence{{ID: 1, Text: "Added clause."}},
		MatchScore: 0.5,
	}
	result.Matches[0].Index1 = 2
	result.Matches[0].Index2 = 2

	report := builder.Build(result, sentenceSeq("Removed clause.", "x", "Clause three old."), sentenceSeq("y", "Added clause.", "Clause three new."))

	if len(report.Differences) != 3 {
		t.Fatalf("expected 3 differences, got %d", len(report.Differences))
	}
	if report.Differences[0].Type != domain.DiffMissingInDoc2 {
		t.Fatalf("expected the doc1-only sentence first, got %s", report.Differences[0].Type)
	}
	if report.Differences[1].Type != domain.DiffMismatch {
		t.Fatalf("expected the mismatch second, got %s", report.Differences[1].Type)
	}
	if report.Differences[2].Type != domain.DiffMissingInDoc1 {
		t.Fatalf("expected the doc2-only sentence last, got %s", report.Differences[2].Type)
	}

	if got := *report.Differences[1].Position1; got != 3 {
		t.Fatalf("positions must be 1-indexed, got %d", got)
	}
	if report.Differences[0].Position2 != nil {
		t.Fatalf("doc1-only difference must not carry a doc2 position")
	}
	if report.Differences[0].Severity != domain.SeverityHigh {
		t.Fatalf("missing sentences are high severity, got %s", report.Differences[0].Severity)
	}
}

func TestBuildOmitsExactMatchesFromDifferences(t *testing.T) {
	builder := NewReportBuilder(2)

	result := &domain.MatchResult{
		Matches: []domain.Match{
			matchWith("Same clause.", "Same clause.", 1),
		},
		OnlyInDoc1: []domain.Sentence{},
		OnlyInDoc2: []domain.Sentence{},
		MatchScore: 1,
	}

	doc := sentenceSeq("Same clause.")
	report := builder.Build(result, doc, doc)
	if len(report.Differences) != 0 {
		t.Fatalf("exact matches are not differences, got %d", len(report.Differences))
	}
	if report.Summary.ExactMatches != 1 {
		t.Fatalf("expected exact match counted in summary, got %d", report.Summary.ExactMatches)
	}
}

func TestFindReorderingsUsesTolerance(t *testing.T) {
	builder := NewReportBuilder(2)

	within := matchWith("Stable clause.", "Stable clause.", 1)
	within.Index1 = 0
	within.Index2 = 4 // displacement 4 == tolerance, not flagged

	moved := matchWith("Moved clause.", "Moved clause.", 1)
	moved.Index1 = 1
	moved.Index2 = 6 // displacement 5 > tolerance

	reorderings := builder.findReorderings([]domain.Match{within, moved})
	if len(reorderings) != 1 {
		t.Fatalf("expected 1 reordering, got %d", len(reorderings))
	}
	if reorderings[0].Displacement != 5 {
		t.Fatalf("expected displacement 5, got %d", reorderings[0].Displacement)
	}
	if reorderings[0].ExpectedPosition != 1 || reorderings[0].ActualPosition != 6 {
		t.Fatalf("unexpected positions: %d -> %d", reorderings[0].ExpectedPosition, reorderings[0].ActualPosition)
	}
}

func TestBuildVerdictBuckets(t *testing.T) {
	tests := []struct {
		match  float64
		status string
		color  string
	}{
		{100, "identical", "green"},
		{98, "identical", "green"},
		{95, "very_similar", "green"},
		{80, "similar", "yellow"},
		{60, "different", "orange"},
		{10, "very_different", "red"},
	}
	for _, tt := range tests {
		verdict := buildVerdict(domain.Summary{OverallMatch: tt.match})
		if verdict.Status != tt.status || verdict.Color != tt.color {
			t.Fatalf("buildVerdict(%.0f) = %s/%s, want %s/%s",
				tt.match, verdict.Status, verdict.Color, tt.status, tt.color)
		}
	}
}

func TestBuildVerdictConfidence(t *testing.T) {
	low := buildVerdict(domain.Summary{OverallMatch: 95, MatchedSentences: 3})
	if low.Confidence != "medium" {
		t.Fatalf("expected medium confidence for few matches, got %s", low.Confidence)
	}
	high := buildVerdict(domain.Summary{OverallMatch: 95, MatchedSentences: 6})
	if high.Confidence != "high" {
		t.Fatalf("expected high confidence, got %s", high.Confidence)
	}
}

func TestRecommendationsForCleanMatch(t *testing.T) {
	recommendations := buildRecommendations(domain.Summary{OverallMatch: 99}, nil, nil)
	if len(recommendations) != 1 {
		t.Fatalf("expected exactly one recommendation, got %v", recommendations)
	}
	if !strings.Contains(recommendations[0], "No significant issues") {
		t.Fatalf("unexpected recommendation: %s", recommendations[0])
	}
}

func TestRecommendationsMentionMissingSentences(t *testing.T) {
	summary := domain.Summary{OverallMatch: 70, MissingInDoc1: 1, MissingInDoc2: 2}
	recommendations := buildRecommendations(summary, nil, nil)

	joined := strings.Join(recommendations, "\n")
	if !strings.Contains(joined, "1 sentence(s) appear only in document 2") {
		t.Fatalf("expected missing-in-doc1 recommendation, got %v", recommendations)
	}
	if !strings.Contains(joined, "2 sentence(s) appear only in document 1") {
		t.Fatalf("expected missing-in-doc2 recommendation, got %v", recommendations)
	}
	if !strings.Contains(joined, "Manual review recommended") {
		t.Fatalf("expected manual review recommendation below 90%%, got %v", recommendations)
	}
}

func TestRecommendationsFlagRepeatedOCRErrors(t *testing.T) {
	differences := make([]domain.Difference, 4)
	for i := range differences {
		differences[i] = domain.Difference{
			Suggestions: []string{"Possible OCR error: 'l' → '1'"},
		}
	}

	recommendations := buildRecommendations(domain.Summary{OverallMatch: 92}, differences, nil)
	if len(recommendations) == 0 || !strings.Contains(recommendations[0], "rescanning") {
		t.Fatalf("expected a rescan recommendation first, got %v", recommendations)
	}
}

func TestRecommendationsMentionReorderings(t *testing.T) {
	reorderings := []domain.Reordering{{Text: "Moved.", Displacement: 6}}
	recommendations := buildRecommendations(domain.Summary{OverallMatch: 95}, nil, reorderings)

	joined := strings.Join(recommendations, "\n")
	if !strings.Contains(joined, "different order") {
		t.Fatalf("expected a reordering recommendation, got %v", recommendations)
	}
}

func TestQualityAnalysisStats(t *testing.T) {
	builder := NewReportBuilder(2)

	match := matchWith("Rent is due.", "Rent is due.", 1)
	result := &domain.MatchResult{
		Matches:    []domain.Match{match},
		OnlyInDoc1: []domain.Sentence{},
		OnlyInDoc2: []domain.Sentence{},
		MatchScore: 1,
	}

	doc1 := []domain.Sentence{{ID: 0, Text: "Rent is due.", Length: 12}}
	doc2 := []domain.Sentence{{ID: 0, Text: "Rent is due.", Length: 12}}
	report := builder.Build(result, doc1, doc2)

	quality := report.QualityAnalysis
	if quality.TotalMatches != 1 || quality.ExactMatches != 1 {
		t.Fatalf("unexpected quality counts: %+v", quality)
	}
	if quality.AvgSimilarity != 1 {
		t.Fatalf("expected avg similarity 1, got %f", quality.AvgSimilarity)
	}
	if quality.Doc1Stats.TotalSentences != 1 || quality.Doc1Stats.AvgLength != 12 {
		t.Fatalf("unexpected doc1 stats: %+v", quality.Doc1Stats)
	}
	if quality.Doc1Stats.MinLength != 12 || quality.Doc1Stats.MaxLength != 12 {
		t.Fatalf("unexpected doc1 length bounds: %+v", quality.Doc1Stats)
	}
}

func TestBuildSummaryCounts(t *testing.T) {
	builder := NewReportBuilder(2)

	match := matchWith("Rent is due monthly.", "The monthly rent must be paid.", 0.9)
	result := &domain.MatchResult{
		Matches:    []domain.Match{match},
		OnlyInDoc1: []domain.Sentence{{ID: 1, Text: "Only left."}},
		OnlyInDoc2: []domain.Sentence{{ID: 1, Text: "Only right."}},
		MatchScore: 0.5,
	}

	report := builder.Build(result,
		sentenceSeq("Rent is due monthly.", "Only left."),
		sentenceSeq("The monthly rent must be paid.", "Only right."))

	summary := report.Summary
	if summary.OverallMatch != 50 {
		t.Fatalf("expected 50%% overall match, got %f", summary.OverallMatch)
	}
	if summary.Rewordings != 1 {
		t.Fatalf("expected 1 rewording, got %d", summary.Rewordings)
	}
	// Unmatched sentences count as significant.
	if summary.SignificantDifferences != 2 {
		t.Fatalf("expected 2 significant differences, got %d", summary.SignificantDifferences)
	}
	if summary.MissingInDoc1 != 1 || summary.MissingInDoc2 != 1 {
		t.Fatalf("unexpected missing counts: %d/%d", summary.MissingInDoc1, summary.MissingInDoc2)
	}
	if summary.AvgSimilarity != 0.9 {
		t.Fatalf("expected avg similarity 0.9, got %f", summary.AvgSimilarity)
	}
}
