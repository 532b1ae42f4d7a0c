package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

// classificationRule is one entry of the ordered decision table used
// to label matched pairs. The first rule that applies wins.
type classificationRule struct {
	name    string
	applies func(domain.Match) bool
	class   domain.Classification
}

var classificationRules = []classificationRule{
	{
		name:    "identical text",
		applies: func(m domain.Match) bool { return m.ExactMatch },
		class:   domain.ClassExactMatch,
	},
	{
		name:    "equal after normalization",
		applies: func(m domain.Match) bool { return m.NormalizedMatch },
		class:   domain.ClassMinorDifference,
	},
	{
		name:    "near identical",
		applies: func(m domain.Match) bool { return m.Similarity > 0.95 },
		class:   domain.ClassMinorDifference,
	},
	{
		name:    "paraphrase",
		applies: func(m domain.Match) bool { return m.Similarity > 0.85 },
		class:   domain.ClassRewording,
	},
}

// ClassifyMatch labels the divergence of a matched pair.
func ClassifyMatch(m domain.Match) domain.Classification {
	for _, rule := range classificationRules {
		if rule.applies(m) {
			return rule.class
		}
	}
	return domain.ClassSignificant
}

var severityByClassification = map[domain.Classification]domain.Severity{
	domain.ClassExactMatch:      domain.SeverityNone,
	domain.ClassMinorDifference: domain.SeverityLow,
	domain.ClassRewording:       domain.SeverityMedium,
	domain.ClassSignificant:     domain.SeverityHigh,
}

func severityFor(class domain.Classification) domain.Severity {
	if severity, ok := severityByClassification[class]; ok {
		return severity
	}
	return domain.SeverityMedium
}

// Character pairs that scanners routinely swap.
var ocrConfusions = [][2]string{
	{"l", "1"},
	{"O", "0"},
	{"S", "5"},
	{"I", "1"},
	{"Z", "2"},
	{"B", "8"},
}

// suggestCorrections proposes likely causes for a non-exact match.
// These are lexical heuristics over the raw texts, not inference.
func suggestCorrections(m domain.Match) []string {
	text1 := m.Sentence1.Text
	text2 := m.Sentence2.Text

	suggestions := []string{}
	for _, pair := range ocrConfusions {
		left, right := pair[0], pair[1]
		if strings.Contains(text1, left) && strings.Contains(text2, right) {
			suggestions = append(suggestions, fmt.Sprintf("Possible OCR error: '%s' → '%s'", left, right))
		}
		if strings.Contains(text1, right) && strings.Contains(text2, left) {
			suggestions = append(suggestions, fmt.Sprintf("Possible OCR error: '%s' → '%s'", right, left))
		}
	}

	if diff := absInt(utf8.RuneCountInString(text1) - utf8.RuneCountInString(text2)); diff > 10 {
		suggestions = append(suggestions, fmt.Sprintf("Length difference: %d characters", diff))
	}

	words1 := len(strings.Fields(text1))
	words2 := len(strings.Fields(text2))
	if absInt(words1-words2) > 3 {
		suggestions = append(suggestions, fmt.Sprintf("Word count difference: %d vs %d words", words1, words2))
	}
	return suggestions
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
