package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanlens/loanlens/internal/analyze"
	"github.com/loanlens/loanlens/internal/extract"
	"github.com/loanlens/loanlens/internal/model"
	"github.com/loanlens/loanlens/internal/ocr"
	"github.com/loanlens/loanlens/internal/pages"
	"github.com/loanlens/loanlens/internal/store"
)

type fakeExtractor struct {
	res *ocr.Result
	err error
}

func (f *fakeExtractor) Extract(context.Context, string) (*ocr.Result, error) {
	return f.res, f.err
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { st.Close() })
	return st
}

func newProcessor(st store.Store, ext ocr.Extractor) *Processor {
	engine := extract.New(extract.DefaultConfig())
	return New(st, ext, engine, analyze.New(nil, engine, ""), pages.DefaultOptions())
}

func TestProcess(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	doc, err := st.CreateDocument(ctx, "agreement.pdf")
	require.NoError(t, err)

	ext := &fakeExtractor{res: &ocr.Result{
		Text: "The Loan Amount is $25,000.00 repayable over 60 months at an Interest Rate of 12.5% p.a.",
		Pages: []pages.Page{
			{Number: 1, Text: "The Loan Amount is $25,000.00 repayable over 60 months at an Interest Rate of 12.5% p.a."},
		},
		Structured: true,
	}}

	analysis, err := newProcessor(st, ext).Process(ctx, doc.ID, "/tmp/agreement.pdf")
	require.NoError(t, err)
	require.NotNil(t, analysis.Summary)
	assert.Equal(t, doc.ID, analysis.DocumentID)
	assert.Equal(t, 25000.0, analysis.Summary.KeyNumbers.TotalLoan)

	got, err := st.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DocumentStatusComplete, got.Status)

	ex, err := st.GetExtraction(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, ex)
	assert.NotEmpty(t, ex.Candidates.LoanAmounts)

	saved, err := st.GetAnalysis(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "heuristic", saved.Summary.Source)
}

func TestProcess_OCRFailureMarksFailed(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	doc, err := st.CreateDocument(ctx, "broken.pdf")
	require.NoError(t, err)

	ext := &fakeExtractor{err: eris.New("unreadable file")}

	_, err = newProcessor(st, ext).Process(ctx, doc.ID, "/tmp/broken.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreadable file")

	got, err := st.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DocumentStatusFailed, got.Status)
}

func TestProcess_EmptyDocument(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	doc, err := st.CreateDocument(ctx, "blank.pdf")
	require.NoError(t, err)

	ext := &fakeExtractor{res: &ocr.Result{}}

	analysis, err := newProcessor(st, ext).Process(ctx, doc.ID, "/tmp/blank.pdf")
	require.NoError(t, err)
	require.NotNil(t, analysis.Summary)
	assert.Equal(t, "No loan terms could be identified in this document.", analysis.Summary.Overview)

	got, err := st.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DocumentStatusComplete, got.Status)
}
