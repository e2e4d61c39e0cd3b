package generation

import (
	"fmt"
	"sort"
	"strings"
)

// HarmCategory names a class of content the provider can filter.
type HarmCategory string

const (
	HarmHarassment       HarmCategory = "HARASSMENT"
	HarmHateSpeech       HarmCategory = "HATE_SPEECH"
	HarmSexuallyExplicit HarmCategory = "SEXUALLY_EXPLICIT"
	HarmDangerousContent HarmCategory = "DANGEROUS_CONTENT"
)

// BlockThreshold is the probability at or above which content in a category
// is blocked.
type BlockThreshold string

const (
	BlockNone           BlockThreshold = "BLOCK_NONE"
	BlockOnlyHigh       BlockThreshold = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove BlockThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockLowAndAbove    BlockThreshold = "BLOCK_LOW_AND_ABOVE"
)

// SafetyPolicy maps harm categories to block thresholds. Categories not
// present use the provider default.
type SafetyPolicy map[HarmCategory]BlockThreshold

// Categories returns the policy's categories in a stable order.
func (p SafetyPolicy) Categories() []HarmCategory {
	out := make([]HarmCategory, 0, len(p))
	for c := range p {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StrictSafety blocks hate speech, sexual and dangerous content at medium
// probability and above.
func StrictSafety() SafetyPolicy {
	return SafetyPolicy{
		HarmHateSpeech:       BlockMediumAndAbove,
		HarmSexuallyExplicit: BlockMediumAndAbove,
		HarmDangerousContent: BlockMediumAndAbove,
	}
}

// RelaxedSafety disables blocking for every category.
func RelaxedSafety() SafetyPolicy {
	return SafetyPolicy{
		HarmHarassment:       BlockNone,
		HarmHateSpeech:       BlockNone,
		HarmSexuallyExplicit: BlockNone,
		HarmDangerousContent: BlockNone,
	}
}

// SamplingConfig controls decoding. Nil fields and a zero MaxOutputTokens
// leave the provider default in place.
type SamplingConfig struct {
	Temperature     *float32
	TopP            *float32
	TopK            *float32
	MaxOutputTokens int32
}

// Sampling builds a fully specified SamplingConfig.
func Sampling(temperature, topP, topK float32, maxOutputTokens int32) SamplingConfig {
	return SamplingConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		TopK:            &topK,
		MaxOutputTokens: maxOutputTokens,
	}
}

// Shape selects the provider endpoint a request is sent to.
type Shape int

const (
	// ShapeContent is the general content-generation endpoint.
	ShapeContent Shape = iota
	// ShapeImages is the dedicated image-generation endpoint.
	ShapeImages
)

// String implements fmt.Stringer.
func (s Shape) String() string {
	if s == ShapeImages {
		return "images"
	}
	return "content"
}

// Request is one call to the provider. Requests are values: build a new one
// per attempt rather than mutating a shared instance.
type Request struct {
	PromptText string
	Sampling   SamplingConfig
	Safety     SafetyPolicy
	Model      string
	Shape      Shape
	// ExpectImage asks a content-shaped request to return image parts.
	ExpectImage bool
}

// Validate checks the fields every provider call needs.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.PromptText) == "" {
		return fmt.Errorf("%w: prompt is empty", ErrInvalidRequest)
	}
	if r.Sampling.MaxOutputTokens < 0 {
		return fmt.Errorf("%w: max output tokens cannot be negative", ErrInvalidRequest)
	}
	return nil
}
