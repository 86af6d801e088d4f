package ocr

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/pages"
	"github.com/loanlens/loanlens/internal/resilience"
	"github.com/loanlens/loanlens/pkg/cloudparse"
)

// CloudParse extracts text through the hosted parsing API: upload, poll the
// job to completion, fetch the per-page result.
type CloudParse struct {
	client   cloudparse.Client
	pollOpts []cloudparse.PollOption
}

// NewCloudParse creates a CloudParse extractor with a default API client.
func NewCloudParse(apiKey string, opts ...cloudparse.Option) *CloudParse {
	return &CloudParse{client: cloudparse.NewClient(apiKey, opts...)}
}

// NewCloudParseFromClient creates a CloudParse extractor over an existing
// client.
func NewCloudParseFromClient(client cloudparse.Client, pollOpts ...cloudparse.PollOption) *CloudParse {
	return &CloudParse{client: client, pollOpts: pollOpts}
}

// Extract uploads the file and waits for the parse job to settle. Upload
// and result fetches retry on transient failures.
func (c *CloudParse) Extract(ctx context.Context, path string) (*Result, error) {
	up, err := resilience.Call(ctx, resilience.ParsePolicy("upload"), func(ctx context.Context) (*cloudparse.UploadResponse, error) {
		return c.client.Upload(ctx, path)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "ocr: upload %s", path)
	}

	zap.L().Debug("ocr: parse job started", zap.String("job_id", up.ID), zap.String("path", path))

	if _, err := cloudparse.PollJob(ctx, c.client, up.ID, c.pollOpts...); err != nil {
		return nil, eris.Wrapf(err, "ocr: parse job %s", up.ID)
	}

	result, err := resilience.Call(ctx, resilience.ParsePolicy("get_result"), func(ctx context.Context) (*cloudparse.JobResultResponse, error) {
		return c.client.GetJobResult(ctx, up.ID)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "ocr: parse result %s", up.ID)
	}

	pgs := make([]pages.Page, 0, len(result.Pages))
	texts := make([]string, 0, len(result.Pages))
	for i, p := range result.Pages {
		n := p.Page
		if n <= 0 {
			n = i + 1
		}
		pgs = append(pgs, pages.Page{Number: n, Text: p.Text})
		texts = append(texts, p.Text)
	}

	return &Result{
		Text:       strings.Join(texts, "\n\n"),
		Pages:      pgs,
		Structured: true,
	}, nil
}
