package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/loanlens/loanlens/internal/analyze"
	"github.com/loanlens/loanlens/internal/extract"
	"github.com/loanlens/loanlens/internal/ocr"
	"github.com/loanlens/loanlens/internal/pipeline"
	"github.com/loanlens/loanlens/internal/store"
	anthropicpkg "github.com/loanlens/loanlens/pkg/anthropic"
)

// appEnv bundles the wired components shared by commands.
type appEnv struct {
	Store     store.Store
	Extractor ocr.Extractor
	Engine    *extract.Engine
	Analyzer  *analyze.Analyzer
	Processor *pipeline.Processor
}

func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "loanlens.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initEnv wires the OCR provider, extraction engine, analyzer, and store
// into a ready pipeline.
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	extractor, err := ocr.NewExtractor(cfg.OCR, cfg.CloudParse)
	if err != nil {
		st.Close()
		return nil, err
	}

	engine := extract.New(cfg.Engine)

	var client anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		client = anthropicpkg.NewClient(cfg.Anthropic.Key)
	}
	analyzer := analyze.New(client, engine, cfg.Anthropic.Model)

	return &appEnv{
		Store:     st,
		Extractor: extractor,
		Engine:    engine,
		Analyzer:  analyzer,
		Processor: pipeline.New(st, extractor, engine, analyzer, cfg.Pages),
	}, nil
}
