package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

type fakeSplitter struct {
	spans []domain.Span
	err   error
	calls int
}

func (f *fakeSplitter) Split(_ context.Context, _ string) ([]domain.Span, error) {
	f.calls++
	return f.spans, f.err
}

func (f *fakeSplitter) Ping(context.Context) error { return nil }

func TestSegmentSkipsWhitespaceOnlyInput(t *testing.T) {
	splitter := &fakeSplitter{}
	seg := NewSentenceSegmenter(splitter, 500)

	sentences, err := seg.Segment(context.Background(), "   \n\t  ")
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(sentences) != 0 {
		t.Fatalf("expected no sentences, got %d", len(sentences))
	}
	if splitter.calls != 0 {
		t.Fatalf("splitter must not be called for blank input, got %d calls", splitter.calls)
	}
}

func TestSegmentDiscardsNoiseAndAssignsIDs(t *testing.T) {
	splitter := &fakeSplitter{spans: []domain.Span{
		{Text: "The tenant shall pay rent monthly.", StartChar: 0, EndChar: 34},
		{Text: " ok ", StartChar: 35, EndChar: 39},
		{Text: "Rent is due on the first.", StartChar: 40, EndChar: 65},
	}}
	seg := NewSentenceSegmenter(splitter, 500)

	sentences, err := seg.Segment(context.Background(), "irrelevant")
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
	for i, sentence := range sentences {
		if sentence.ID != i {
			t.Fatalf("expected sequential ids, got %d at position %d", sentence.ID, i)
		}
	}
	if sentences[1].Text != "Rent is due on the first." {
		t.Fatalf("unexpected second sentence: %q", sentences[1].Text)
	}
}

func TestSegmentSplitsLongSegmentsAtSemicolons(t *testing.T) {
	long := "the first clause of this agreement applies; the second clause applies too"
	splitter := &fakeSplitter{spans: []domain.Span{
		{Text: long, StartChar: 0, EndChar: len(long)},
	}}
	seg := NewSentenceSegmenter(splitter, 60)

	sentences, err := seg.Segment(context.Background(), long)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
	for _, sentence := range sentences {
		if !sentence.IsSplit {
			t.Fatalf("expected split flag on %q", sentence.Text)
		}
		if sentence.StartChar != 0 || sentence.EndChar != len(long) {
			t.Fatalf("split parts must inherit the parent span, got [%d,%d]", sentence.StartChar, sentence.EndChar)
		}
	}
}

func TestSegmentFallsBackToFixedWidthSlicing(t *testing.T) {
	long := strings.Repeat("abcde ", 20) // no semicolons or colons
	splitter := &fakeSplitter{spans: []domain.Span{
		{Text: long, StartChar: 0, EndChar: len(long)},
	}}
	seg := NewSentenceSegmenter(splitter, 50)

	sentences, err := seg.Segment(context.Background(), long)
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(sentences) < 2 {
		t.Fatalf("expected the segment to be sliced, got %d sentences", len(sentences))
	}
	for _, sentence := range sentences {
		if sentence.Length > 50 {
			t.Fatalf("slice %q exceeds the length cap", sentence.Text)
		}
	}
}

func TestSegmentWrapsSplitterError(t *testing.T) {
	splitter := &fakeSplitter{err: errors.New("sidecar down")}
	seg := NewSentenceSegmenter(splitter, 500)

	_, err := seg.Segment(context.Background(), "some text")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNormalizeSentence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "The Tenant SHALL pay", "the tenant shall pay"},
		{"collapses whitespace", "rent  is \t due", "rent is due"},
		{"strips terminal punctuation", "Rent is due.", "rent is due"},
		{"keeps interior punctuation", "clause 1.2 applies", "clause 1.2 applies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSentence(tt.input); got != tt.want {
				t.Fatalf("NormalizeSentence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
