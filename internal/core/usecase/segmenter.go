package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
	"github.com/lnxalpha/legal-document-comparator/internal/core/ports"
)

// Segments shorter than this many runes are extraction noise.
const minSentenceRunes = 3

const defaultMaxSentenceLength = 500

// SentenceSegmenter turns raw text into an ordered sentence sequence.
// Boundary detection is delegated to the external splitter; this type
// owns the post-processing: noise discard, over-length re-splitting
// and id assignment.
type SentenceSegmenter struct {
	splitter ports.SentenceSplitter
	maxLen   int
}

func NewSentenceSegmenter(splitter ports.SentenceSplitter, maxSentenceLength int) *SentenceSegmenter {
	if maxSentenceLength <= 0 {
		maxSentenceLength = defaultMaxSentenceLength
	}
	return &SentenceSegmenter{
		splitter: splitter,
		maxLen:   maxSentenceLength,
	}
}

// Segment returns the post-processed sentences of text. Whitespace-only
// input yields an empty sequence without calling the splitter.
func (s *SentenceSegmenter) Segment(ctx context.Context, text string) ([]domain.Sentence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	spans, err := s.splitter.Split(ctx, text)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDependency, "segment text", err)
	}

	sentences := make([]domain.Sentence, 0, len(spans))
	for _, span := range spans {
		trimmed := strings.TrimSpace(span.Text)
		length := utf8.RuneCountInString(trimmed)
		if length < minSentenceRunes {
			continue
		}

		if length <= s.maxLen {
			sentences = append(sentences, domain.Sentence{
				ID:        len(sentences),
				Text:      trimmed,
				StartChar: span.StartChar,
				EndChar:   span.EndChar,
				Length:    length,
			})
			continue
		}

		// Abnormally long segments are usually broken boundary
		// detection over scanned text. Sub-parts inherit the parent
		// span and consume their own ids.
		for _, part := range splitLongSegment(trimmed, s.maxLen) {
			sentences = append(sentences, domain.Sentence{
				ID:        len(sentences),
				Text:      part,
				StartChar: span.StartChar,
				EndChar:   span.EndChar,
				Length:    utf8.RuneCountInString(part),
				IsSplit:   true,
			})
		}
	}
	return sentences, nil
}

// splitLongSegment breaks an over-length segment at natural break
// points: semicolons first, then colons, accepted only when every
// resulting part fits. Fixed-width rune slicing is the last resort.
func splitLongSegment(segment string, maxLen int) []string {
	for _, sep := range []string{";", ":"} {
		if !strings.Contains(segment, sep) {
			continue
		}
		parts := make([]string, 0)
		fits := true
		for _, part := range strings.Split(segment, sep) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if utf8.RuneCountInString(part) >= maxLen {
				fits = false
				break
			}
			parts = append(parts, part)
		}
		if fits && len(parts) > 0 {
			return parts
		}
	}

	runes := []rune(segment)
	out := make([]string, 0, len(runes)/maxLen+1)
	for start := 0; start < len(runes); start += maxLen {
		end := start + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

// NormalizeSentence lowercases, collapses whitespace runs to single
// spaces and strips terminal punctuation. Used for equality checks
// only, never for display.
func NormalizeSentence(sentence string) string {
	collapsed := strings.Join(strings.Fields(strings.ToLower(sentence)), " ")
	return strings.Trim(collapsed, " .,!?;:")
}
