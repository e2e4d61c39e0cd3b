package api

// GenerateNotesRequest defines the payload for POST /api/generate-notes.
type GenerateNotesRequest struct {
	YouTubeURL string `json:"youtube_url" validate:"required"`
}

// RoadmapRequest defines the payload for POST /api/generate-roadmap.
type RoadmapRequest struct {
	Topic string `json:"topic" validate:"required,max=200"`
}

// VisualRequest defines the payload for POST /api/generate-visual.
type VisualRequest struct {
	NotesContent string `json:"notes_content" validate:"required"`
}

// MessageResponse is returned by the root endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// NotesResponse is the successful response for video notes.
type NotesResponse struct {
	Notes               string   `json:"notes"`
	VideoID             string   `json:"video_id"`
	TranscriptAvailable bool     `json:"transcript_available"`
	MetadataOnly        bool     `json:"metadata_only"`
	Warnings            []string `json:"warnings,omitempty"`
}

// DocumentAnalysisResponse is the successful response for document analysis.
type DocumentAnalysisResponse struct {
	Summary  string   `json:"summary"`
	FileName string   `json:"file_name"`
	Warnings []string `json:"warnings,omitempty"`
}

// QuestionBankResponse is the successful response for question generation.
type QuestionBankResponse struct {
	Questions string   `json:"questions"`
	FileName  string   `json:"file_name"`
	Warnings  []string `json:"warnings,omitempty"`
}

// RoadmapResponse carries every roadmap section that was generated. Errors
// lists the sections that were not, keyed by field name, with client-safe
// messages.
type RoadmapResponse struct {
	Topic                string            `json:"topic"`
	Overview             string            `json:"overview"`
	LearningStages       string            `json:"learning_stages"`
	RecommendedResources string            `json:"recommended_resources"`
	LearningProjects     string            `json:"learning_projects"`
	Errors               map[string]string `json:"errors,omitempty"`
}

// VisualResponse is either an image (ImageData, MIMEType) or, when no tier
// produced one, text (IsText, TextContent, Summary).
type VisualResponse struct {
	Success     bool   `json:"success"`
	ImageData   string `json:"image_data,omitempty"`
	MIMEType    string `json:"mime_type,omitempty"`
	IsText      bool   `json:"is_text,omitempty"`
	TextContent string `json:"text_content,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Tier        int    `json:"tier"`
	Model       string `json:"model"`
}
