package api

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/model"
	"github.com/loanlens/loanlens/internal/store"
)

// maxUploadBytes caps uploaded document size at 50 MB.
const maxUploadBytes = 50 << 20

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	doc, err := s.store.CreateDocument(r.Context(), header.Filename)
	if err != nil {
		zap.L().Error("api: create document", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create document")
		return
	}

	path := filepath.Join(s.uploadDir, doc.ID+filepath.Ext(header.Filename))
	if err := saveUpload(file, path); err != nil {
		zap.L().Error("api: save upload", zap.String("document_id", doc.ID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	// Process outlives the request.
	go func(ctx context.Context) {
		if _, err := s.processor.Process(ctx, doc.ID, path); err != nil {
			zap.L().Error("api: process document",
				zap.String("document_id", doc.ID),
				zap.Error(err),
			)
		}
	}(context.WithoutCancel(r.Context()))

	respondJSON(w, http.StatusAccepted, doc)
}

func saveUpload(src io.Reader, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	filter := store.DocumentFilter{
		Status: model.DocumentStatus(r.URL.Query().Get("status")),
		Limit:  50,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}

	docs, err := s.store.ListDocuments(r.Context(), filter)
	if err != nil {
		zap.L().Error("api: list documents", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}

	respondJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "document not found")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "id")
	ex, err := s.store.GetExtraction(r.Context(), docID)
	if err != nil {
		zap.L().Error("api: get extraction", zap.String("document_id", docID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load extraction")
		return
	}
	if ex == nil {
		respondError(w, http.StatusNotFound, "extraction not available")
		return
	}
	respondJSON(w, http.StatusOK, ex)
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	a := s.loadAnalysis(w, r)
	if a == nil {
		return
	}
	respondJSON(w, http.StatusOK, a.Summary)
}

func (s *Server) handleGetRedFlags(w http.ResponseWriter, r *http.Request) {
	a := s.loadAnalysis(w, r)
	if a == nil {
		return
	}
	flags := a.RedFlags
	if flags == nil {
		flags = []model.RedFlag{}
	}
	respondJSON(w, http.StatusOK, flags)
}

// loadAnalysis fetches the analysis or writes the error response and
// returns nil.
func (s *Server) loadAnalysis(w http.ResponseWriter, r *http.Request) *model.Analysis {
	docID := chi.URLParam(r, "id")
	a, err := s.store.GetAnalysis(r.Context(), docID)
	if err != nil {
		zap.L().Error("api: get analysis", zap.String("document_id", docID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load analysis")
		return nil
	}
	if a == nil {
		respondError(w, http.StatusNotFound, "analysis not available")
		return nil
	}
	return a
}
