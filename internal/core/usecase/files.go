package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
	"github.com/lnxalpha/legal-document-comparator/internal/core/ports"
)

const previewRunes = 500

// FileService handles uploaded documents: it stages them in scratch
// storage, extracts text and hands the texts to the comparator.
type FileService struct {
	storage       ports.ObjectStorage
	extractor     ports.TextExtractor
	comparator    ports.DocumentComparator
	maxUploadSize int64
}

func NewFileService(
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	comparator ports.DocumentComparator,
	maxUploadSize int64,
) *FileService {
	return &FileService{
		storage:       storage,
		extractor:     extractor,
		comparator:    comparator,
		maxUploadSize: maxUploadSize,
	}
}

func (s *FileService) CompareFiles(ctx context.Context, file1, file2 domain.FileUpload) (*domain.Report, error) {
	started := time.Now()

	text1, err := s.extractUpload(ctx, file1)
	if err != nil {
		return nil, fmt.Errorf("read document 1: %w", err)
	}
	text2, err := s.extractUpload(ctx, file2)
	if err != nil {
		return nil, fmt.Errorf("read document 2: %w", err)
	}

	report, err := s.comparator.CompareTexts(ctx, text1, text2)
	if err != nil {
		return nil, fmt.Errorf("compare documents: %w", err)
	}

	report.ProcessingTime = round2(time.Since(started).Seconds())
	report.File1Name = file1.Filename
	report.File2Name = file2.Filename
	return report, nil
}

func (s *FileService) ExtractText(ctx context.Context, file domain.FileUpload) (*domain.Extraction, error) {
	text, err := s.extractUpload(ctx, file)
	if err != nil {
		return nil, err
	}
	return &domain.Extraction{
		Filename: file.Filename,
		Text:     text,
		Length:   utf8.RuneCountInString(text),
		Preview:  preview(text, previewRunes),
	}, nil
}

// extractUpload stages the upload on disk, runs the extractor and
// removes the scratch file afterwards even when the request context
// is already cancelled.
func (s *FileService) extractUpload(ctx context.Context, file domain.FileUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !domain.ExtensionAllowed(ext) {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "check extension",
			fmt.Errorf("extension %q is not supported", ext))
	}

	key := uuid.NewString() + "_" + sanitizeFilename(file.Filename)
	written, err := s.storage.Save(ctx, key, io.LimitReader(file.Body, s.maxUploadSize+1))
	if err != nil {
		return "", domain.WrapError(domain.ErrDependency, "store upload", err)
	}
	defer func() {
		_ = s.storage.Remove(context.WithoutCancel(ctx), key)
	}()

	if written > s.maxUploadSize {
		return "", domain.WrapError(domain.ErrDocumentTooLarge, "store upload",
			fmt.Errorf("upload exceeds %d bytes", s.maxUploadSize))
	}

	reader, err := s.storage.Open(ctx, key)
	if err != nil {
		return "", domain.WrapError(domain.ErrDependency, "read upload", err)
	}
	data, err := io.ReadAll(reader)
	closeErr := reader.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return "", domain.WrapError(domain.ErrDependency, "read upload", err)
	}

	text, err := s.extractor.Extract(ctx, file.Filename, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text",
			errors.New("document contains no extractable text"))
	}
	return text, nil
}

// sanitizeFilename keeps the base name and replaces anything outside
// a conservative character set, so the key is safe as a file name.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
