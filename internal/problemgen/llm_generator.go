package problemgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/probgen/internal/llm"
)

// ErrGenerationFailed means the provider answered but no GeneratedProblem
// could be taken from the answer. The message is part of the HTTP contract.
var ErrGenerationFailed = errors.New("Problem generation failed")

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
	newID    func() string
}

// New creates a new LLMGenerator. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{
		provider: provider,
		config:   cfg,
		logger:   logger.Named("problemgen"),
		newID:    uuid.NewString,
	}
}

func (g *LLMGenerator) Generate(ctx context.Context, req GenerationRequest) (*GeneratedProblem, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen")

	g.logger.Info("Generating problem",
		zap.String("difficulty", req.Difficulty),
		zap.String("category", req.Category),
		zap.Int("num_test_cases", req.NumTestCases),
		zap.Strings("languages", req.Languages),
		zap.Float64("time_limit", req.TimeLimit),
		zap.Float64("memory_limit", req.MemoryLimit),
	)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildInstruction(req)},
		},
		Schema:      ProblemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		var noOut *llm.ErrNoOutput
		if errors.As(err, &noOut) {
			g.logger.Warn("provider returned no output", zap.Error(err))
			return nil, ErrGenerationFailed
		}
		// Returned as is: the caller shows the provider's text.
		return nil, err
	}

	problem, err := decodeProblem(resp)
	if err != nil {
		g.logger.Warn("could not decode provider output", zap.Error(err))
		return nil, ErrGenerationFailed
	}

	problem.Problem.ID = g.newID()
	problem.normalize()
	return problem, nil
}

func decodeProblem(resp *llm.Response) (*GeneratedProblem, error) {
	if resp == nil {
		return nil, errors.New("nil response")
	}
	content := bytes.TrimSpace(resp.Content)
	if len(content) == 0 || bytes.Equal(content, []byte("null")) {
		return nil, errors.New("empty content")
	}

	var out GeneratedProblem
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
