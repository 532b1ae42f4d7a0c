package ports

import (
	"context"
	"io"
	"time"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

// Embedder maps sentence texts to fixed-dimension vectors. Calls are
// batched and order-preserving; the result has one vector per input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Ping(ctx context.Context) error
}

// SentenceSplitter is the external sentence boundary service: raw
// text in, ordered spans out.
type SentenceSplitter interface {
	Split(ctx context.Context, text string) ([]domain.Span, error)
	Ping(ctx context.Context) error
}

// TextExtractor turns a stored document into plain text, routing on
// the filename extension.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// ObjectStorage holds uploaded documents for the duration of one
// comparison request.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
	RemoveOlderThan(ctx context.Context, age time.Duration) (int, error)
}
