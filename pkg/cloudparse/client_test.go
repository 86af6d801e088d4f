package cloudparse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test content"), 0644))
	return path
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/parse/upload", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "doc.pdf", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(UploadResponse{ID: "job-1", Status: StatusPending}) //nolint:errcheck
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := c.Upload(context.Background(), writeTempPDF(t))
	require.NoError(t, err)
	assert.Equal(t, "job-1", resp.ID)
	assert.Equal(t, StatusPending, resp.Status)
}

func TestUpload_FileNotFound(t *testing.T) {
	c := NewClient("test-key")
	_, err := c.Upload(context.Background(), "/nonexistent/doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")
}

func TestGetJobStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parse/job/job-1", r.URL.Path)
		json.NewEncoder(w).Encode(JobStatusResponse{ID: "job-1", Status: StatusSuccess}) //nolint:errcheck
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	status, err := c.GetJobStatus(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status.Status)
}

func TestGetJobResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parse/job/job-1/result", r.URL.Path)
		json.NewEncoder(w).Encode(JobResultResponse{Pages: []ParsedPage{ //nolint:errcheck
			{Page: 1, Text: "first page"},
			{Page: 2, Text: "second page"},
		}})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	result, err := c.GetJobResult(context.Background(), "job-1")
	require.NoError(t, err)
	require.Len(t, result.Pages, 2)
	assert.Equal(t, 1, result.Pages[0].Page)
	assert.Equal(t, "second page", result.Pages[1].Text)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := c.GetJobStatus(context.Background(), "job-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{invalid json`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.GetJobStatus(context.Background(), "job-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestAPIError_Format(t *testing.T) {
	err := &APIError{StatusCode: 429, Body: "slow down"}
	assert.True(t, strings.Contains(err.Error(), "429"))
	assert.True(t, strings.Contains(err.Error(), "slow down"))
}
