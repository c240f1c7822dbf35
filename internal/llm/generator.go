package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sevigo/goframe/llms"

	"github.com/codemaster-gdg/codementor/internal/core"
)

// ModelGenerator implements core.Generator on top of a goframe llms.Model.
// One call, one feedback text or one explicit error; there is no retry and
// no caching of identical prompts.
type ModelGenerator struct {
	model   llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// NewModelGenerator wraps model with a hard per-call timeout.
func NewModelGenerator(model llms.Model, timeout time.Duration, logger *slog.Logger) *ModelGenerator {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelGenerator{model: model, timeout: timeout, logger: logger}
}

// GenerateReview sends the prompt to the model and returns its raw feedback
// text. Any failure, including an empty response, surfaces as a
// core.GenerationError carrying the upstream detail.
func (g *ModelGenerator) GenerateReview(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	g.logger.InfoContext(ctx, "requesting review from model", "prompt_chars", len(prompt))

	type result struct {
		resp string
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
		select {
		case resultCh <- result{resp, err}:
		case <-ctx.Done():
			// Do not block the goroutine if the caller timed out.
		}
	}()

	var resp string
	select {
	case res := <-resultCh:
		if res.err != nil {
			return "", &core.GenerationError{Err: res.err}
		}
		resp = res.resp
	case <-ctx.Done():
		return "", &core.GenerationError{Err: ctx.Err()}
	}

	if resp == "" {
		return "", &core.GenerationError{Err: fmt.Errorf("model returned empty feedback")}
	}

	g.logger.InfoContext(ctx, "review generated", "elapsed", time.Since(start).Round(time.Millisecond))
	return resp, nil
}
