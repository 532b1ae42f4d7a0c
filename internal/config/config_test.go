package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIPort != "8080" {
		t.Fatalf("unexpected default port %q", cfg.APIPort)
	}
	if cfg.SimilarityThreshold != 0.85 {
		t.Fatalf("unexpected default threshold %f", cfg.SimilarityThreshold)
	}
	if cfg.MaxUploadSize != 10*1024*1024 {
		t.Fatalf("unexpected default upload size %d", cfg.MaxUploadSize)
	}
	if cfg.UploadMaxAge != time.Hour {
		t.Fatalf("unexpected default upload max age %s", cfg.UploadMaxAge)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("CONTEXT_WINDOW", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIPort != "9999" {
		t.Fatalf("expected port override, got %q", cfg.APIPort)
	}
	if cfg.SimilarityThreshold != 0.9 {
		t.Fatalf("expected threshold override, got %f", cfg.SimilarityThreshold)
	}
	if cfg.ContextWindow != 3 {
		t.Fatalf("expected context window override, got %d", cfg.ContextWindow)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SIMILARITY_THRESHOLD", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SimilarityThreshold != 0.85 {
		t.Fatalf("expected fallback threshold, got %f", cfg.SimilarityThreshold)
	}
}

func TestFileOverlayWinsOverEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "similarity_threshold: 0.92\nmax_upload_size: 2048\nupload_max_age_hours: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("SIMILARITY_THRESHOLD", "0.8")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SimilarityThreshold != 0.92 {
		t.Fatalf("expected file value to win, got %f", cfg.SimilarityThreshold)
	}
	if cfg.MaxUploadSize != 2048 {
		t.Fatalf("expected file upload size, got %d", cfg.MaxUploadSize)
	}
	if cfg.UploadMaxAge != 4*time.Hour {
		t.Fatalf("expected file max age, got %s", cfg.UploadMaxAge)
	}
	// Keys absent from the file keep their environment values.
	if cfg.APIPort != "8080" {
		t.Fatalf("expected untouched default port, got %q", cfg.APIPort)
	}
}

func TestLoadFailsOnBrokenOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":::not yaml"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed overlay")
	}
}
