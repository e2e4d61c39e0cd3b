package content

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Template names under prompts/.
const (
	promptNotes            = "notes.tmpl"
	promptAnalysis         = "analysis.tmpl"
	promptQuestions        = "questions.tmpl"
	promptRoadmapOverview  = "roadmap_overview.tmpl"
	promptRoadmapStages    = "roadmap_stages.tmpl"
	promptRoadmapResources = "roadmap_resources.tmpl"
	promptRoadmapProjects  = "roadmap_projects.tmpl"
	promptVisualImage      = "visual_image.tmpl"
	promptVisualImagen     = "visual_imagen.tmpl"
	promptVisualText       = "visual_text.tmpl"
)

// Source framings for the notes prompt.
const (
	sourceTranscript = "TRANSCRIPT"
	sourceMetadata   = "VIDEO METADATA (NO TRANSCRIPT AVAILABLE)"
)

var prompts = template.Must(template.New("prompts").ParseFS(promptFS, "prompts/*.tmpl"))

type notesData struct {
	Source  string
	VideoID string
	URL     string
	Content string
}

type documentData struct {
	FileName string
	Content  string
}

type topicData struct {
	Topic string
}

type visualData struct {
	Notes string
}

// render executes the named prompt template.
func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
