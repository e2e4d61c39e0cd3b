// Package gemini provides a generation.Backend backed by Google's generative
// language service through google.golang.org/genai.
//
// Content-shaped requests go to Models.GenerateContent with sampling and
// safety settings translated from the provider-neutral request; requests that
// expect an image also ask for the IMAGE response modality. Image-shaped
// requests go to Models.GenerateImages (Imagen) and each generated image
// becomes an inline part of a single candidate, so that the generation
// package can normalize both shapes the same way.
//
// The adapter does not interpret results and does not retry; tier progression
// belongs to generation.Chain. A deployment without an API key still
// constructs a Backend, whose Ready method reports the missing credential as
// generation.ErrInvalidConfig on every call.
package gemini
