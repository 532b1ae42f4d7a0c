package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
	"github.com/lnxalpha/legal-document-comparator/internal/core/ports"
)

const (
	defaultSimilarityThreshold = 0.85
	defaultContextWindow       = 2

	// Neighbors only need moderate similarity to corroborate a match.
	defaultContextSupportFloor = 0.7
)

// SimilarityMatcher derives an approximate one-to-one matching between
// two sentence sequences from their embedding cosine similarities.
// Candidate pairs are consumed greedily in descending similarity
// order; a positional context check guards against boilerplate text
// matching across unrelated document positions. This is deliberately
// not an optimal assignment: greedy acceptance is cheap and adequate
// at tens-to-low-hundreds of sentences per document.
type SimilarityMatcher struct {
	embedder      ports.Embedder
	threshold     float64
	contextWindow int
	supportFloor  float64
}

func NewSimilarityMatcher(embedder ports.Embedder, threshold float64, contextWindow int) *SimilarityMatcher {
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	if contextWindow <= 0 {
		contextWindow = defaultContextWindow
	}
	return &SimilarityMatcher{
		embedder:      embedder,
		threshold:     threshold,
		contextWindow: contextWindow,
		supportFloor:  defaultContextSupportFloor,
	}
}

// Match pairs sentences across both documents. If either side is
// empty the embedder is never called and every sentence lands in the
// corresponding only-in list with a zero match score.
func (m *SimilarityMatcher) Match(ctx context.Context, sentences1, sentences2 []domain.Sentence) (*domain.MatchResult, error) {
	if len(sentences1) == 0 || len(sentences2) == 0 {
		return &domain.MatchResult{
			Matches:    []domain.Match{},
			OnlyInDoc1: append([]domain.Sentence{}, sentences1...),
			OnlyInDoc2: append([]domain.Sentence{}, sentences2...),
			MatchScore: 0,
		}, nil
	}

	vectors1, err := m.embedSentences(ctx, sentences1)
	if err != nil {
		return nil, fmt.Errorf("embed document 1: %w", err)
	}
	vectors2, err := m.embedSentences(ctx, sentences2)
	if err != nil {
		return nil, fmt.Errorf("embed document 2: %w", err)
	}

	similarity := similarityMatrix(vectors1, vectors2)
	matches, used1, used2 := m.greedyMatch(sentences1, sentences2, similarity)

	score := float64(2*len(matches)) / float64(len(sentences1)+len(sentences2))
	return &domain.MatchResult{
		Matches:    matches,
		OnlyInDoc1: unmatched(sentences1, used1),
		OnlyInDoc2: unmatched(sentences2, used2),
		MatchScore: score,
	}, nil
}

func (m *SimilarityMatcher) embedSentences(ctx context.Context, sentences []domain.Sentence) ([][]float32, error) {
	texts := make([]string, len(sentences))
	for i, sentence := range sentences {
		texts[i] = sentence.Text
	}

	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, domain.WrapError(domain.ErrDependency, "embed sentences", err)
	}
	if len(vectors) != len(texts) {
		return nil, domain.WrapError(
			domain.ErrDependency,
			"embed sentences",
			fmt.Errorf("vectors/sentences mismatch: %d/%d", len(vectors), len(texts)),
		)
	}
	return vectors, nil
}

type scoredPair struct {
	similarity float64
	i, j       int
}

func (m *SimilarityMatcher) greedyMatch(
	sentences1, sentences2 []domain.Sentence,
	similarity [][]float64,
) ([]domain.Match, []bool, []bool) {
	pairs := make([]scoredPair, 0, len(sentences1)*len(sentences2))
	for i := range sentences1 {
		for j := range sentences2 {
			pairs = append(pairs, scoredPair{similarity: similarity[i][j], i: i, j: j})
		}
	}
	// Descending by similarity; ties resolve to the earliest document
	// positions so the walk is deterministic.
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].similarity != pairs[b].similarity {
			return pairs[a].similarity > pairs[b].similarity
		}
		if pairs[a].i != pairs[b].i {
			return pairs[a].i < pairs[b].i
		}
		return pairs[a].j < pairs[b].j
	})

	matches := make([]domain.Match, 0)
	used1 := make([]bool, len(sentences1))
	used2 := make([]bool, len(sentences2))

	for _, pair := range pairs {
		if pair.similarity < m.threshold {
			break
		}
		if used1[pair.i] || used2[pair.j] {
			continue
		}
		if !m.contextValid(pair.i, pair.j, similarity, used1, used2) {
			continue
		}

		s1 := sentences1[pair.i]
		s2 := sentences2[pair.j]
		matches = append(matches, domain.Match{
			Sentence1:       s1,
			Sentence2:       s2,
			Similarity:      pair.similarity,
			Index1:          pair.i,
			Index2:          pair.j,
			ExactMatch:      s1.Text == s2.Text,
			NormalizedMatch: NormalizeSentence(s1.Text) == NormalizeSentence(s2.Text),
		})
		used1[pair.i] = true
		used2[pair.j] = true
	}
	return matches, used1, used2
}

// contextValid inspects unconsumed neighbor pairs at symmetric offsets
// around (i, j). A high-similarity pair whose neighborhood shows no
// agreement at all is usually a repeated clause matched across
// incompatible positions, so it is rejected.
func (m *SimilarityMatcher) contextValid(i, j int, similarity [][]float64, used1, used2 []bool) bool {
	checks := 0
	support := 0

	for offset := -m.contextWindow; offset <= m.contextWindow; offset++ {
		if offset == 0 {
			continue
		}
		ci := i + offset
		cj := j + offset
		if ci < 0 || cj < 0 || ci >= len(used1) || cj >= len(used2) {
			continue
		}
		if used1[ci] || used2[cj] {
			continue
		}
		checks++
		if similarity[ci][cj] > m.supportFloor {
			support++
		}
	}

	return checks < 2 || support > 0
}

func unmatched(sentences []domain.Sentence, used []bool) []domain.Sentence {
	out := make([]domain.Sentence, 0)
	for i, sentence := range sentences {
		if !used[i] {
			out = append(out, sentence)
		}
	}
	return out
}

func similarityMatrix(vectors1, vectors2 [][]float32) [][]float64 {
	matrix := make([][]float64, len(vectors1))
	for i, v1 := range vectors1 {
		row := make([]float64, len(vectors2))
		for j, v2 := range vectors2 {
			row[j] = cosineSimilarity(v1, v2)
		}
		matrix[i] = row
	}
	return matrix
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for k := 0; k < n; k++ {
		dot += float64(a[k]) * float64(b[k])
		normA += float64(a[k]) * float64(a[k])
		normB += float64(b[k]) * float64(b[k])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
