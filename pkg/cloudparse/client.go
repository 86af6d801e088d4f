// Package cloudparse is a client for the hosted document parsing API. A
// parse is asynchronous: upload a file to create a job, poll the job until
// it settles, then fetch the per-page result.
package cloudparse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Default base URL for the parsing API.
const defaultBaseURL = "https://api.cloudparse.ai/v1"

// Job status values reported by the API.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Client defines the parsing API operations.
type Client interface {
	Upload(ctx context.Context, filePath string) (*UploadResponse, error)
	GetJobStatus(ctx context.Context, id string) (*JobStatusResponse, error)
	GetJobResult(ctx context.Context, id string) (*JobResultResponse, error)
}

// UploadResponse is the response from POST /parse/upload.
type UploadResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// JobStatusResponse is the response from GET /parse/job/{id}.
type JobStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// JobResultResponse is the response from GET /parse/job/{id}/result.
type JobResultResponse struct {
	Pages []ParsedPage `json:"pages"`
}

// ParsedPage is one page of a parsed document.
type ParsedPage struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// APIError is returned when the API responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cloudparse: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new cloudparse client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Upload(ctx context.Context, filePath string) (*UploadResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, eris.Wrapf(err, "cloudparse: read file %s", filePath)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, eris.Wrap(err, "cloudparse: create form file")
	}
	if _, err := fw.Write(data); err != nil {
		return nil, eris.Wrap(err, "cloudparse: write form file")
	}
	if err := mw.Close(); err != nil {
		return nil, eris.Wrap(err, "cloudparse: close multipart writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse/upload", &buf)
	if err != nil {
		return nil, eris.Wrap(err, "cloudparse: create upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var resp UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, eris.Wrap(err, "cloudparse: upload")
	}
	return &resp, nil
}

func (c *httpClient) GetJobStatus(ctx context.Context, id string) (*JobStatusResponse, error) {
	var resp JobStatusResponse
	if err := c.get(ctx, fmt.Sprintf("/parse/job/%s", id), &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("cloudparse: get job status %s", id))
	}
	return &resp, nil
}

func (c *httpClient) GetJobResult(ctx context.Context, id string) (*JobResultResponse, error) {
	var resp JobResultResponse
	if err := c.get(ctx, fmt.Sprintf("/parse/job/%s/result", id), &resp); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("cloudparse: get job result %s", id))
	}
	return &resp, nil
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return eris.Wrap(err, "rate limit wait")
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
