package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/loanlens/loanlens/internal/pages"
)

// PdfToText extracts text from PDFs using the pdftotext CLI tool. Page
// boundaries survive as form feeds in the output.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty, "pdftotext" is used.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// Extract runs pdftotext -layout on the given PDF and splits stdout on form
// feeds into an ordered page list.
func (p *PdfToText) Extract(ctx context.Context, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, eris.Wrapf(err, "ocr: pdftotext failed for %s: %s", path, stderr.String())
	}

	return splitFormFeeds(stdout.String()), nil
}

// splitFormFeeds builds the provider result from raw pdftotext output.
// pdftotext terminates every page with \f, so the final chunk is usually
// empty and dropped.
func splitFormFeeds(raw string) *Result {
	chunks := strings.Split(raw, "\f")
	for len(chunks) > 0 && strings.TrimSpace(chunks[len(chunks)-1]) == "" {
		chunks = chunks[:len(chunks)-1]
	}

	pgs := make([]pages.Page, 0, len(chunks))
	for i, chunk := range chunks {
		pgs = append(pgs, pages.Page{Number: i + 1, Text: strings.TrimRight(chunk, "\n")})
	}

	return &Result{
		Text:       raw,
		Pages:      pgs,
		Structured: true,
	}
}
