package gemini

import (
	"strings"

	"github.com/phrazzld/vyasa-api/internal/generation"
	"google.golang.org/genai"
)

var harmCategories = map[generation.HarmCategory]genai.HarmCategory{
	generation.HarmHarassment:       genai.HarmCategoryHarassment,
	generation.HarmHateSpeech:       genai.HarmCategoryHateSpeech,
	generation.HarmSexuallyExplicit: genai.HarmCategorySexuallyExplicit,
	generation.HarmDangerousContent: genai.HarmCategoryDangerousContent,
}

var blockThresholds = map[generation.BlockThreshold]genai.HarmBlockThreshold{
	generation.BlockNone:           genai.HarmBlockThresholdBlockNone,
	generation.BlockOnlyHigh:       genai.HarmBlockThresholdBlockOnlyHigh,
	generation.BlockMediumAndAbove: genai.HarmBlockThresholdBlockMediumAndAbove,
	generation.BlockLowAndAbove:    genai.HarmBlockThresholdBlockLowAndAbove,
}

// Imagen takes a single filter level; stricter levels rank higher.
var filterLevels = []struct {
	threshold generation.BlockThreshold
	level     genai.SafetyFilterLevel
}{
	{generation.BlockNone, genai.SafetyFilterLevelBlockNone},
	{generation.BlockOnlyHigh, genai.SafetyFilterLevelBlockOnlyHigh},
	{generation.BlockMediumAndAbove, genai.SafetyFilterLevelBlockMediumAndAbove},
	{generation.BlockLowAndAbove, genai.SafetyFilterLevelBlockLowAndAbove},
}

func safetySettings(policy generation.SafetyPolicy) []*genai.SafetySetting {
	if len(policy) == 0 {
		return nil
	}
	settings := make([]*genai.SafetySetting, 0, len(policy))
	for _, category := range policy.Categories() {
		c, ok := harmCategories[category]
		if !ok {
			continue
		}
		t, ok := blockThresholds[policy[category]]
		if !ok {
			continue
		}
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: t})
	}
	return settings
}

// filterLevel picks the strictest threshold in the policy; an empty policy
// leaves the provider default.
func filterLevel(policy generation.SafetyPolicy) genai.SafetyFilterLevel {
	strictest := -1
	for _, threshold := range policy {
		for i, fl := range filterLevels {
			if fl.threshold == threshold && i > strictest {
				strictest = i
			}
		}
	}
	if strictest < 0 {
		return ""
	}
	return filterLevels[strictest].level
}

func contentConfig(req generation.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     req.Sampling.Temperature,
		TopP:            req.Sampling.TopP,
		TopK:            req.Sampling.TopK,
		MaxOutputTokens: req.Sampling.MaxOutputTokens,
		SafetySettings:  safetySettings(req.Safety),
	}
	if req.ExpectImage {
		cfg.ResponseModalities = []string{"TEXT", "IMAGE"}
	}
	return cfg
}

func imagesConfig(req generation.Request) *genai.GenerateImagesConfig {
	return &genai.GenerateImagesConfig{
		NumberOfImages:    1,
		SafetyFilterLevel: filterLevel(req.Safety),
		IncludeRAIReason:  true,
	}
}

// fromContentResponse copies the candidates without thought parts. Text joins
// the first candidate's text fragments; genai's Text helper is avoided because
// it writes to the standard logger when image parts are present.
func fromContentResponse(resp *genai.GenerateContentResponse) *generation.Response {
	out := &generation.Response{}
	if resp == nil {
		return out
	}
	if resp.PromptFeedback != nil {
		out.BlockReason = string(resp.PromptFeedback.BlockReason)
	}

	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		cand := generation.Candidate{FinishReason: string(c.FinishReason)}
		if c.Content != nil {
			for _, p := range c.Content.Parts {
				if p == nil || p.Thought {
					continue
				}
				part := generation.Part{Text: p.Text}
				if p.InlineData != nil {
					part.InlineData = &generation.Blob{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}
				}
				cand.Parts = append(cand.Parts, part)
			}
		}
		out.Candidates = append(out.Candidates, cand)
	}

	if len(out.Candidates) > 0 {
		var text strings.Builder
		for _, part := range out.Candidates[0].Parts {
			text.WriteString(part.Text)
		}
		out.Text = text.String()
	}
	return out
}

// fromImagesResponse returns the images as inline parts of one candidate,
// along with the filter reasons of any images the provider withheld.
func fromImagesResponse(resp *genai.GenerateImagesResponse) (*generation.Response, []string) {
	out := &generation.Response{}
	if resp == nil {
		return out, nil
	}

	var cand generation.Candidate
	var filtered []string
	for _, img := range resp.GeneratedImages {
		if img == nil {
			continue
		}
		if img.Image == nil || len(img.Image.ImageBytes) == 0 {
			if img.RAIFilteredReason != "" {
				filtered = append(filtered, img.RAIFilteredReason)
			}
			continue
		}
		mimeType := img.Image.MIMEType
		if mimeType == "" {
			mimeType = "image/png"
		}
		cand.Parts = append(cand.Parts, generation.Part{
			InlineData: &generation.Blob{MIMEType: mimeType, Data: img.Image.ImageBytes},
		})
	}
	if len(cand.Parts) > 0 {
		out.Candidates = []generation.Candidate{cand}
	}
	return out, filtered
}
