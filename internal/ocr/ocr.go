// Package ocr extracts text from loan document files. Providers return
// per-page text whenever the source preserves page boundaries; the pages
// package turns the result into the page map the extraction engine consumes.
package ocr

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/loanlens/loanlens/internal/config"
	"github.com/loanlens/loanlens/internal/pages"
	"github.com/loanlens/loanlens/pkg/cloudparse"
)

// Result is the raw output of one extraction provider.
type Result struct {
	// Text is the flattened full document text.
	Text string
	// Pages carries per-page text when the provider preserved boundaries.
	Pages []pages.Page
	// Structured reports whether the text came from a page-structured
	// source. It selects the synthetic pagination budget when Pages is
	// empty and the text carries no inline markers.
	Structured bool
}

// ByPage resolves the result into the page-indexed map.
func (r *Result) ByPage(opts pages.Options) map[int]string {
	return pages.Resolve(r.Text, r.Pages, r.Structured, opts)
}

// Extractor extracts text content from document files.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Result, error)
}

// ExtractFile routes plain-text files straight to page reconstruction and
// everything else through the provider.
func ExtractFile(ctx context.Context, extractor Extractor, path string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ocr: read %s", path)
		}
		return &Result{Text: string(data)}, nil
	default:
		return extractor.Extract(ctx, path)
	}
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig, parse config.CloudParseConfig) (Extractor, error) {
	switch cfg.Provider {
	case "local", "":
		return NewPdfToText(cfg.PdfToTextPath), nil
	case "cloudparse":
		if parse.Key == "" {
			return nil, eris.New("ocr: cloudparse provider requires an API key")
		}
		var opts []cloudparse.Option
		if parse.BaseURL != "" {
			opts = append(opts, cloudparse.WithBaseURL(parse.BaseURL))
		}
		return NewCloudParse(parse.Key, opts...), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}
