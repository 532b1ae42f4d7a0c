package extractor

import (
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/lnxalpha/legal-document-comparator/internal/core/domain"
)

func TestExtractPlaintext(t *testing.T) {
	text, err := New().Extract(context.Background(), "contract.txt", []byte("Rent is due monthly.\n"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "Rent is due monthly." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractPlaintextRejectsBinary(t *testing.T) {
	_, err := New().Extract(context.Background(), "contract.txt", []byte{0xff, 0xfe, 0x00, 0x01})
	if err == nil {
		t.Fatalf("expected error for invalid UTF-8")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input error, got %v", err)
	}
}

func TestExtractHTMLSkipsScripts(t *testing.T) {
	page := `<html><head><style>p{color:red}</style></head>
<body><script>alert("x")</script><p>Rent is due monthly.</p><p>The deposit is refundable.</p></body></html>`

	text, err := New().Extract(context.Background(), "contract.html", []byte(page))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "Rent is due monthly.") || !strings.Contains(text, "The deposit is refundable.") {
		t.Fatalf("expected paragraph text, got %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Fatalf("script/style content leaked into %q", text)
	}
}

func TestExtractXLSXJoinsRows(t *testing.T) {
	workbook := excelize.NewFile()
	if err := workbook.SetCellValue("Sheet1", "A1", "Tenant"); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}
	if err := workbook.SetCellValue("Sheet1", "B1", "pays monthly"); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	text, err := New().Extract(context.Background(), "schedule.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "Tenant pays monthly") {
		t.Fatalf("expected joined row text, got %q", text)
	}
}

func TestExtractRejectsImages(t *testing.T) {
	_, err := New().Extract(context.Background(), "scan.png", []byte{0x89, 0x50, 0x4e, 0x47})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported-format error, got %v", err)
	}
	if !strings.Contains(err.Error(), "OCR") {
		t.Fatalf("expected the error to mention OCR, got %v", err)
	}
}

func TestExtractRejectsUnknownExtension(t *testing.T) {
	_, err := New().Extract(context.Background(), "contract.docx", []byte("PK"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported-format error, got %v", err)
	}
}

func TestCleanExtractedText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses space runs", "a  \t b", "a b"},
		{"caps blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"form feed becomes paragraph break", "page one\fpage two", "page one\n\npage two"},
		{"trims line edges", "  a  \n  b  ", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanExtractedText(tt.input); got != tt.want {
				t.Fatalf("cleanExtractedText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
