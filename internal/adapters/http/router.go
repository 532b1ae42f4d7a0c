package httpadapter

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/lnxalpha/legal-document-comparator/internal/config"
	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
	"github.com/lnxalpha/legal-document-comparator/internal/core/ports"
	"github.com/lnxalpha/legal-document-comparator/internal/observability/metrics"
)

const serviceName = "api"

const pingTimeout = 2 * time.Second

type Router struct {
	cfg       config.Config
	files     ports.FileComparisonService
	compare   ports.DocumentComparator
	embedder  ports.Embedder
	segmenter ports.SentenceSplitter
	metrics   *metrics.ServerMetrics
	limiter   *rate.Limiter
}

func NewRouter(
	cfg config.Config,
	files ports.FileComparisonService,
	compare ports.DocumentComparator,
	embedder ports.Embedder,
	segmenter ports.SentenceSplitter,
	serverMetrics *metrics.ServerMetrics,
) *Router {
	return &Router{
		cfg:       cfg,
		files:     files,
		compare:   compare,
		embedder:  embedder,
		segmenter: segmenter,
		metrics:   serverMetrics,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/compare", rt.compareFiles)
	mux.HandleFunc("/v1/compare/text", rt.compareText)
	mux.HandleFunc("/v1/extract", rt.extractText)
	mux.HandleFunc("/v1/config", rt.getConfig)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(serviceName, handler)
	handler = rateLimitMiddleware(rt.limiter, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	embedderUp := rt.embedder.Ping(ctx) == nil
	segmenterUp := rt.segmenter.Ping(ctx) == nil

	status := "ok"
	if !embedderUp || !segmenterUp {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"dependencies": map[string]bool{
			"embedder":  embedderUp,
			"segmenter": segmenterUp,
		},
	})
}

func (rt *Router) compareFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	// Two uploads plus multipart framing overhead.
	r.Body = http.MaxBytesReader(w, r.Body, 2*rt.cfg.MaxUploadSize+1024*1024)

	file1, header1, err := r.FormFile("file1")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file1' is required"})
		return
	}
	defer file1.Close()

	file2, header2, err := r.FormFile("file2")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file2' is required"})
		return
	}
	defer file2.Close()

	started := time.Now()
	report, err := rt.files.CompareFiles(r.Context(), upload(file1, header1), upload(file2, header2))
	if err != nil {
		writeError(w, err)
		return
	}

	rt.recordComparison(report, time.Since(started))
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) compareText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text1 string `json:"text1"`
		Text2 string `json:"text2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	started := time.Now()
	report, err := rt.compare.CompareTexts(r.Context(), req.Text1, req.Text2)
	if err != nil {
		writeError(w, err)
		return
	}

	rt.recordComparison(report, time.Since(started))
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) extractText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadSize+1024*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	extraction, err := rt.files.ExtractText(r.Context(), upload(file, header))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, extraction)
}

func (rt *Router) getConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"max_upload_size":      rt.cfg.MaxUploadSize,
		"allowed_extensions":   domain.AllowedExtensions(),
		"similarity_threshold": rt.cfg.SimilarityThreshold,
	})
}

func (rt *Router) recordComparison(report *domain.Report, duration time.Duration) {
	sentences := report.Summary.TotalSentencesDoc1 + report.Summary.TotalSentencesDoc2
	rt.metrics.RecordComparison(serviceName, report.Verdict.Status, report.Summary.OverallMatch/100, sentences, duration)
}

func upload(file multipart.File, header *multipart.FileHeader) domain.FileUpload {
	return domain.FileUpload{
		Filename: header.Filename,
		Body:     file,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
