package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/vyasa-api/internal/redact"
)

// Backend is a provider adapter. Implementations translate a Request into a
// provider call and the provider's answer into a Response; they do not
// classify results.
type Backend interface {
	// Ready reports whether the backend can make calls at all. A missing
	// credential is reported here, wrapped in ErrInvalidConfig.
	Ready() error

	// Send performs a single provider call.
	Send(ctx context.Context, req Request) (*Response, error)
}

// Generator defines the interface for producing normalized results from
// generation requests.
type Generator interface {
	// Generate performs one generation call.
	//
	// Parameters:
	//   - ctx: Context for the operation, which carries the request deadline
	//   - req: The request to send
	//
	// Returns:
	//   - The normalized result (text, image or empty)
	//   - An error wrapping ErrInvalidConfig when the deployment is
	//     misconfigured, or a *GenerationError when the call failed
	Generate(ctx context.Context, req Request) (Result, error)
}

// Client implements Generator on top of a Backend.
type Client struct {
	backend Backend
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a Client. A zero timeout leaves the caller's deadline
// as the only bound on each call.
func NewClient(backend Backend, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		backend: backend,
		timeout: timeout,
		logger:  logger.With("component", "generation_client"),
	}
}

// Generate performs a single call. It never panics: backend panics and
// transport failures are returned as *GenerationError.
func (c *Client) Generate(ctx context.Context, req Request) (result Result, err error) {
	if c.backend == nil {
		return EmptyResult(), fmt.Errorf("%w: no generation backend configured", ErrInvalidConfig)
	}
	if err := c.backend.Ready(); err != nil {
		c.logger.ErrorContext(ctx, "generation backend not ready", "error", redact.Error(err))
		return EmptyResult(), asConfigError(err)
	}
	if err := req.Validate(); err != nil {
		return EmptyResult(), &GenerationError{Model: req.Model, Detail: err.Error(), Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.ErrorContext(ctx, "generation backend panicked",
				"model", req.Model,
				"panic", redact.String(fmt.Sprint(r)))
			result = EmptyResult()
			err = &GenerationError{
				Model:  req.Model,
				Detail: redact.String(fmt.Sprintf("backend panic: %v", r)),
				Err:    errors.New("backend panic"),
			}
		}
	}()

	start := time.Now()
	c.logger.DebugContext(ctx, "sending generation request",
		"model", req.Model,
		"shape", req.Shape.String(),
		"expect_image", req.ExpectImage,
		"prompt_length", len(req.PromptText))

	resp, sendErr := c.backend.Send(ctx, req)
	if sendErr != nil {
		if IsConfigError(sendErr) {
			return EmptyResult(), sendErr
		}
		genErr := &GenerationError{Model: req.Model, Detail: redact.Error(sendErr), Err: sendErr}
		c.logger.WarnContext(ctx, "generation request failed",
			"model", req.Model,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", genErr.Detail)
		return EmptyResult(), genErr
	}

	result = Normalize(resp)
	if result.IsEmpty() && resp != nil && resp.BlockReason != "" {
		return EmptyResult(), &GenerationError{
			Model:  req.Model,
			Detail: "prompt blocked: " + resp.BlockReason,
			Err:    ErrContentBlocked,
		}
	}

	c.logger.InfoContext(ctx, "generation request completed",
		"model", req.Model,
		"result", result.String(),
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

func asConfigError(err error) error {
	if IsConfigError(err) {
		return err
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, redact.Error(err))
}
