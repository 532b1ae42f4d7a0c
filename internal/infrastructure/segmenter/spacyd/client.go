// Package spacyd is a client for the sentence segmentation sidecar, a
// small HTTP service wrapping a spaCy pipeline.
package spacyd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
	"github.com/lnxalpha/legal-document-comparator/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

func (c *Client) Split(ctx context.Context, text string) ([]domain.Span, error) {
	request := map[string]any{
		"text": text,
	}

	var response struct {
		Sentences []domain.Span `json:"sentences"`
	}
	err := c.executor.Execute(ctx, "spacyd.segment", func(ctx context.Context) error {
		return c.postJSON(ctx, "/v1/segment", request, &response, "segment")
	}, resilience.ClassifyHTTPError)
	if err != nil {
		return nil, resilience.WrapTemporary("split text", err)
	}
	return response.Sentences, nil
}

func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("segmenter ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("segmenter ping status: %s", resp.Status)
	}
	return nil
}
