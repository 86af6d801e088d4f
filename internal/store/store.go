package store

import (
	"context"

	"github.com/loanlens/loanlens/internal/model"
)

// DocumentFilter specifies criteria for listing documents.
type DocumentFilter struct {
	Status model.DocumentStatus `json:"status,omitempty"`
	Limit  int                  `json:"limit,omitempty"`
	Offset int                  `json:"offset,omitempty"`
}

// Store defines the persistence interface for documents and everything
// derived from them. Extraction and analysis getters return (nil, nil)
// when no row exists; document getters treat a missing row as an error.
type Store interface {
	// Documents
	CreateDocument(ctx context.Context, filename string) (*model.Document, error)
	UpdateDocumentStatus(ctx context.Context, docID string, status model.DocumentStatus) error
	GetDocument(ctx context.Context, docID string) (*model.Document, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]model.Document, error)

	// Extractions
	SaveExtraction(ctx context.Context, docID string, ex *model.DocumentExtraction) error
	GetExtraction(ctx context.Context, docID string) (*model.DocumentExtraction, error)

	// Analyses
	SaveAnalysis(ctx context.Context, a *model.Analysis) error
	GetAnalysis(ctx context.Context, docID string) (*model.Analysis, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
