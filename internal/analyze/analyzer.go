package analyze

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/extract"
	"github.com/loanlens/loanlens/internal/model"
	"github.com/loanlens/loanlens/internal/resilience"
	"github.com/loanlens/loanlens/pkg/anthropic"
)

const defaultMaxTokens = 2048

// Analyzer produces the analysis for a document. With a nil client it runs
// on heuristics alone.
type Analyzer struct {
	client    anthropic.Client
	engine    *extract.Engine
	model     string
	maxTokens int64
}

// New creates an Analyzer. client may be nil to disable the LLM path.
func New(client anthropic.Client, engine *extract.Engine, llmModel string) *Analyzer {
	return &Analyzer{
		client:    client,
		engine:    engine,
		model:     llmModel,
		maxTokens: defaultMaxTokens,
	}
}

// Analyze builds the summary and red flags for one extraction. It never
// fails: when the LLM path errors, the heuristic result stands in and the
// error is logged.
func (a *Analyzer) Analyze(ctx context.Context, docID string, ex *model.DocumentExtraction) *model.Analysis {
	in := a.engine.PrepareForLLM(ex)

	summary, err := a.summarize(ctx, in)
	if err != nil {
		zap.L().Warn("analyze: llm summary failed, using heuristic",
			zap.String("document_id", docID), zap.Error(err))
		summary = HeuristicSummary(ex)
	}

	flags, err := a.redFlags(ctx, in)
	if err != nil {
		zap.L().Warn("analyze: llm red flags failed, using heuristic",
			zap.String("document_id", docID), zap.Error(err))
		flags = HeuristicRedFlags(ex)
	}

	return &model.Analysis{
		DocumentID: docID,
		Summary:    summary,
		RedFlags:   flags,
		CreatedAt:  time.Now().UTC(),
	}
}

func (a *Analyzer) summarize(ctx context.Context, in extract.LLMInput) (*model.LoanSummary, error) {
	if a.client == nil {
		return nil, eris.New("analyze: no llm client configured")
	}

	prompt, err := buildUserPrompt(in)
	if err != nil {
		return nil, err
	}

	resp, err := a.createMessage(ctx, summarySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(a.model, "summary")

	return parseSummaryResponse(responseText(resp))
}

func (a *Analyzer) redFlags(ctx context.Context, in extract.LLMInput) ([]model.RedFlag, error) {
	if a.client == nil {
		return nil, eris.New("analyze: no llm client configured")
	}

	prompt, err := buildUserPrompt(in)
	if err != nil {
		return nil, err
	}

	resp, err := a.createMessage(ctx, redFlagSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(a.model, "red_flags")

	flags, err := parseRedFlagResponse(responseText(resp))
	if err != nil {
		return nil, err
	}
	for i := range flags {
		if flags[i].ID == "" {
			flags[i].ID = uuid.New().String()
		}
	}
	return flags, nil
}

func (a *Analyzer) createMessage(ctx context.Context, system, user string) (*anthropic.MessageResponse, error) {
	temp := 0.0
	req := anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		System:      anthropic.BuildCachedSystemBlocks(system),
		Messages:    []anthropic.Message{{Role: "user", Content: user}},
		Temperature: &temp,
	}

	return resilience.Call(ctx, resilience.LLMPolicy("create_message"), func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return a.client.CreateMessage(ctx, req)
	})
}

func responseText(resp *anthropic.MessageResponse) string {
	for _, b := range resp.Content {
		if b.Type == "text" {
			return b.Text
		}
	}
	return ""
}
