package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// TagFallbackText marks a FallbackResult whose text came from the final tier
// after every tier failed to produce an acceptable result.
const TagFallbackText = "fallback-text"

// Outcome kinds recorded for each attempted tier.
const (
	OutcomeAccepted        = ""
	OutcomeEmpty           = "empty"
	OutcomeRejected        = "rejected"
	OutcomeGenerationError = "generation_error"
	OutcomeConfigError     = "config_error"
)

// AttemptOutcome records what happened at one tier.
type AttemptOutcome struct {
	Tier      int
	Model     string
	Result    ResultKind
	ErrorKind string
	Message   string
}

// Succeeded reports whether the tier produced the accepted result.
func (a AttemptOutcome) Succeeded() bool {
	return a.ErrorKind == OutcomeAccepted
}

// String renders the outcome for logs and error messages.
func (a AttemptOutcome) String() string {
	if a.Succeeded() {
		return fmt.Sprintf("tier %d (%s): %s", a.Tier, a.Model, a.Result)
	}
	if a.Message == "" {
		return fmt.Sprintf("tier %d (%s): %s", a.Tier, a.Model, a.ErrorKind)
	}
	return fmt.Sprintf("tier %d (%s): %s: %s", a.Tier, a.Model, a.ErrorKind, a.Message)
}

// FallbackResult is the successful outcome of Chain.Run.
type FallbackResult struct {
	// SucceededAtTier is 1-based.
	SucceededAtTier int
	Result          Result
	// Tag is TagFallbackText when Result is the final tier's text returned
	// in place of an acceptable result; otherwise empty.
	Tag      string
	Attempts []AttemptOutcome
}

// IsFallbackText reports whether the result is the degraded text answer.
func (r *FallbackResult) IsFallbackText() bool {
	return r.Tag == TagFallbackText
}

// Chain tries an ordered list of requests until one yields an acceptable
// result. Tiers never run concurrently.
type Chain struct {
	generator Generator
	// Accept is the result kind that ends the chain. KindEmpty means any
	// non-empty result is acceptable.
	Accept ResultKind
	logger *slog.Logger
}

// NewChain creates a Chain over generator that stops at the first result of
// kind accept.
func NewChain(generator Generator, accept ResultKind, logger *slog.Logger) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{
		generator: generator,
		Accept:    accept,
		logger:    logger.With("component", "fallback_chain"),
	}
}

func (c *Chain) accepts(r Result) bool {
	if r.IsEmpty() {
		return false
	}
	return c.Accept == KindEmpty || r.Kind == c.Accept
}

// Run executes tiers in order.
//
// The first acceptable result wins. Empty results, generation errors and
// results of the wrong kind move on to the next tier. A configuration error
// aborts the chain and is returned as is. When every tier is used up, text
// from the final tier is returned tagged TagFallbackText; otherwise the
// error is a *FallbackExhaustedError carrying one outcome per tier.
func (c *Chain) Run(ctx context.Context, tiers []Request) (*FallbackResult, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: fallback chain has no tiers", ErrInvalidConfig)
	}

	attempts := make([]AttemptOutcome, 0, len(tiers))
	var last Result

	for i, req := range tiers {
		tier := i + 1
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, AttemptOutcome{
				Tier:      tier,
				Model:     req.Model,
				ErrorKind: OutcomeGenerationError,
				Message:   err.Error(),
			})
			last = EmptyResult()
			continue
		}

		result, err := c.generator.Generate(ctx, req)
		outcome := AttemptOutcome{Tier: tier, Model: req.Model, Result: result.Kind}

		switch {
		case err != nil && IsConfigError(err):
			outcome.ErrorKind = OutcomeConfigError
			outcome.Message = err.Error()
			attempts = append(attempts, outcome)
			c.logger.ErrorContext(ctx, "fallback chain aborted by configuration error",
				"tier", tier, "model", req.Model, "error", err)
			return nil, err

		case err != nil:
			outcome.ErrorKind = OutcomeGenerationError
			outcome.Message = err.Error()
			var genErr *GenerationError
			if errors.As(err, &genErr) {
				outcome.Message = genErr.Detail
			}
			result = EmptyResult()

		case c.accepts(result):
			attempts = append(attempts, outcome)
			c.logger.InfoContext(ctx, "fallback tier succeeded",
				"tier", tier, "model", req.Model, "result", result.String())
			return &FallbackResult{SucceededAtTier: tier, Result: result, Attempts: attempts}, nil

		case result.IsEmpty():
			outcome.ErrorKind = OutcomeEmpty

		default:
			outcome.ErrorKind = OutcomeRejected
			outcome.Message = fmt.Sprintf("got %s, want %s", result.Kind, c.Accept)
		}

		attempts = append(attempts, outcome)
		last = result
		c.logger.WarnContext(ctx, "fallback tier did not produce an acceptable result",
			"tier", tier, "model", req.Model, "outcome", outcome.String())
	}

	if last.Kind == KindText {
		final := len(tiers)
		c.logger.InfoContext(ctx, "returning final tier text as fallback", "tier", final)
		return &FallbackResult{
			SucceededAtTier: final,
			Result:          last,
			Tag:             TagFallbackText,
			Attempts:        attempts,
		}, nil
	}

	return nil, &FallbackExhaustedError{Attempts: attempts}
}
