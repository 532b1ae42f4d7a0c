package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lnxalpha/legal-document-comparator/internal/config"
	"github.com/lnxalpha/legal-document-comparator/internal/core/ports"
	"github.com/lnxalpha/legal-document-comparator/internal/core/usecase"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/embedding/ollama"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/extractor"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/resilience"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/segmenter/spacyd"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/storage/localfs"
	"github.com/lnxalpha/legal-document-comparator/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.ServerMetrics

	CompareUC ports.DocumentComparator
	Files     ports.FileComparisonService
	Embedder  ports.Embedder
	Segmenter ports.SentenceSplitter

	closeFn func()
}

func New(_ context.Context, cfg config.Config) (*App, error) {
	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	embedder := ollama.New(cfg.EmbedderURL, cfg.EmbedModel, executor)
	splitter := spacyd.New(cfg.SegmenterURL, executor)

	segmenter := usecase.NewSentenceSegmenter(splitter, cfg.MaxSentenceLength)
	matcher := usecase.NewSimilarityMatcher(embedder, cfg.SimilarityThreshold, cfg.ContextWindow)
	reporter := usecase.NewReportBuilder(cfg.ContextWindow)
	compareUC := usecase.NewCompareUseCase(segmenter, matcher, reporter)
	files := usecase.NewFileService(storage, extractor.New(), compareUC, cfg.MaxUploadSize)

	return &App{
		Config:    cfg,
		Metrics:   metrics.NewServerMetrics("api"),
		CompareUC: compareUC,
		Files:     files,
		Embedder:  embedder,
		Segmenter: splitter,

		closeFn: func() {
			removed, err := storage.RemoveOlderThan(context.Background(), cfg.UploadMaxAge)
			if err != nil {
				slog.Warn("upload_sweep_failed", "error", err)
				return
			}
			if removed > 0 {
				slog.Info("upload_sweep", "removed", removed)
			}
		},
	}, nil
}

// Preload pings both sidecars so that missing dependencies surface in
// the log at startup instead of on the first request.
func (a *App) Preload(ctx context.Context) {
	if err := a.Embedder.Ping(ctx); err != nil {
		slog.Warn("embedder_unreachable", "url", a.Config.EmbedderURL, "error", err)
	}
	if err := a.Segmenter.Ping(ctx); err != nil {
		slog.Warn("segmenter_unreachable", "url", a.Config.SegmenterURL, "error", err)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
