package domain

import (
	"io"
	"sort"
	"strings"
)

// FileUpload is an incoming document before extraction. The body is
// consumed exactly once.
type FileUpload struct {
	Filename string
	Body     io.Reader
}

// Extraction is the result of the standalone text extraction
// operation.
type Extraction struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
	Length   int    `json:"length"`
	Preview  string `json:"preview"`
}

var allowedExtensions = map[string]struct{}{
	".txt":  {},
	".pdf":  {},
	".html": {},
	".htm":  {},
	".xlsx": {},
}

// ExtensionAllowed reports whether the lowercase file extension
// (including the dot) is accepted for extraction.
func ExtensionAllowed(ext string) bool {
	_, ok := allowedExtensions[strings.ToLower(ext)]
	return ok
}

// AllowedExtensions returns the accepted extensions in sorted order.
func AllowedExtensions() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
