package ports

import (
	"context"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

// DocumentComparator is the inbound contract for comparing two
// already-extracted texts. Empty texts segment to zero sentences and
// yield a valid zero-match report rather than an error.
type DocumentComparator interface {
	CompareTexts(ctx context.Context, text1, text2 string) (*domain.Report, error)
}

// FileComparisonService is the inbound contract for file-based
// comparison: validate, store, extract, compare, clean up.
type FileComparisonService interface {
	CompareFiles(ctx context.Context, file1, file2 domain.FileUpload) (*domain.Report, error)
	ExtractText(ctx context.Context, file domain.FileUpload) (*domain.Extraction, error)
}
