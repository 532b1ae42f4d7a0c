package usecase

import (
	"context"
	"fmt"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

// CompareUseCase runs the full pipeline: segment both texts, match
// sentences by embedding similarity, build the report.
type CompareUseCase struct {
	segmenter *SentenceSegmenter
	matcher   *SimilarityMatcher
	reporter  *ReportBuilder
}

func NewCompareUseCase(segmenter *SentenceSegmenter, matcher *SimilarityMatcher, reporter *ReportBuilder) *CompareUseCase {
	return &CompareUseCase{
		segmenter: segmenter,
		matcher:   matcher,
		reporter:  reporter,
	}
}

func (uc *CompareUseCase) CompareTexts(ctx context.Context, text1, text2 string) (*domain.Report, error) {
	sentences1, err := uc.segmenter.Segment(ctx, text1)
	if err != nil {
		return nil, fmt.Errorf("segment document 1: %w", err)
	}
	sentences2, err := uc.segmenter.Segment(ctx, text2)
	if err != nil {
		return nil, fmt.Errorf("segment document 2: %w", err)
	}

	result, err := uc.matcher.Match(ctx, sentences1, sentences2)
	if err != nil {
		return nil, fmt.Errorf("match sentences: %w", err)
	}

	return uc.reporter.Build(result, sentences1, sentences2), nil
}
