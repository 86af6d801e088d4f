// Package pipeline runs a document end to end: OCR, page resolution,
// candidate extraction, analysis, persistence.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/analyze"
	"github.com/loanlens/loanlens/internal/extract"
	"github.com/loanlens/loanlens/internal/model"
	"github.com/loanlens/loanlens/internal/ocr"
	"github.com/loanlens/loanlens/internal/pages"
	"github.com/loanlens/loanlens/internal/store"
)

// Processor drives the full document pipeline.
type Processor struct {
	store     store.Store
	extractor ocr.Extractor
	engine    *extract.Engine
	analyzer  *analyze.Analyzer
	pagesOpts pages.Options
}

// New creates a Processor over the given components.
func New(st store.Store, extractor ocr.Extractor, engine *extract.Engine, analyzer *analyze.Analyzer, pagesOpts pages.Options) *Processor {
	return &Processor{
		store:     st,
		extractor: extractor,
		engine:    engine,
		analyzer:  analyzer,
		pagesOpts: pagesOpts,
	}
}

// Process runs the pipeline for one uploaded document and persists each
// stage. The document's status moves to complete or failed.
func (p *Processor) Process(ctx context.Context, docID, path string) (*model.Analysis, error) {
	res, err := ocr.ExtractFile(ctx, p.extractor, path)
	if err != nil {
		p.markFailed(ctx, docID)
		return nil, eris.Wrapf(err, "pipeline: ocr %s", docID)
	}

	byPage := res.ByPage(p.pagesOpts)
	ex := p.engine.ExtractDocument(byPage)

	zap.L().Info("pipeline: extraction complete",
		zap.String("document_id", docID),
		zap.Int("pages", len(byPage)),
		zap.Int("candidates", ex.Candidates.Total()),
	)

	if err := p.store.SaveExtraction(ctx, docID, ex); err != nil {
		p.markFailed(ctx, docID)
		return nil, eris.Wrapf(err, "pipeline: save extraction %s", docID)
	}

	analysis := p.analyzer.Analyze(ctx, docID, ex)
	if err := p.store.SaveAnalysis(ctx, analysis); err != nil {
		p.markFailed(ctx, docID)
		return nil, eris.Wrapf(err, "pipeline: save analysis %s", docID)
	}

	if err := p.store.UpdateDocumentStatus(ctx, docID, model.DocumentStatusComplete); err != nil {
		return nil, eris.Wrapf(err, "pipeline: mark complete %s", docID)
	}

	return analysis, nil
}

func (p *Processor) markFailed(ctx context.Context, docID string) {
	if err := p.store.UpdateDocumentStatus(ctx, docID, model.DocumentStatusFailed); err != nil {
		zap.L().Error("pipeline: mark failed", zap.String("document_id", docID), zap.Error(err))
	}
}
