package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is matched by every *GenerationError.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrInvalidRequest is returned when a Request is missing a prompt or model.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrContentBlocked is returned when the provider blocks the prompt due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the deployment is misconfigured, most
	// commonly because the service credential is absent. It is never retried.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrFallbackExhausted is matched by *FallbackExhaustedError.
	ErrFallbackExhausted = errors.New("all generation tiers failed")
)

// IsConfigError reports whether err signals a misconfigured deployment
// rather than a failed attempt.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// GenerationError describes one failed call to the provider. Detail has been
// scrubbed of credentials and is safe to log; Err keeps the original cause
// for errors.Is checks.
type GenerationError struct {
	Model  string
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: %s", ErrGenerationFailed, e.Detail)
	}
	return fmt.Sprintf("%s (%s): %s", ErrGenerationFailed, e.Model, e.Detail)
}

// Unwrap returns the underlying cause.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is matches ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// FallbackExhaustedError is returned by Chain.Run when no tier produced any
// usable content. Attempts holds one entry per tier in tier order.
type FallbackExhaustedError struct {
	Attempts []AttemptOutcome
}

// Error implements the error interface.
func (e *FallbackExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrFallbackExhausted.Error()
	}
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s after %d attempts: %s", ErrFallbackExhausted, len(e.Attempts), strings.Join(parts, "; "))
}

// Is matches ErrFallbackExhausted.
func (e *FallbackExhaustedError) Is(target error) bool {
	return target == ErrFallbackExhausted
}
