// Package generation is the boundary between the application and the
// external generative service. Requests are value objects built fresh for
// every attempt; every provider response is reduced by Normalize to a Result
// that is exactly one of text, image or empty.
//
// Client wraps a Backend (the provider adapter, see platform/gemini) and
// converts every failure into either a configuration error (ErrInvalidConfig)
// or a *GenerationError. Chain runs an ordered list of request tiers until
// one yields an acceptable result, recording an AttemptOutcome per tier.
package generation
