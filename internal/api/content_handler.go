package api

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/phrazzld/vyasa-api/internal/api/shared"
	"github.com/phrazzld/vyasa-api/internal/content"
	"github.com/phrazzld/vyasa-api/internal/platform/logger"
	"github.com/phrazzld/vyasa-api/internal/redact"
	"github.com/phrazzld/vyasa-api/internal/source"
)

// ContentService is the subset of *content.Service the handlers call.
type ContentService interface {
	GenerateNotes(ctx context.Context, videoURL string) (*content.Notes, error)
	AnalyzeDocument(ctx context.Context, doc source.Document) (*content.DocumentAnalysis, error)
	GenerateQuestionBank(ctx context.Context, doc source.Document) (*content.QuestionBank, error)
	BuildRoadmap(ctx context.Context, topic string) (*content.Roadmap, error)
	GenerateVisual(ctx context.Context, notes string) (*content.Visual, error)
}

// ContentHandler handles the learning-content HTTP endpoints.
type ContentHandler struct {
	service        ContentService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(service ContentService, maxUploadBytes int64, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ContentHandler")
	}

	return &ContentHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "content_handler")),
	}
}

// Root handles GET / requests
func (h *ContentHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Hello World"})
}

// GenerateNotes handles POST /api/generate-notes requests
func (h *ContentHandler) GenerateNotes(w http.ResponseWriter, r *http.Request) {
	var req GenerateNotesRequest
	if !decodeAndValidate(w, r, &req, "Missing youtube_url parameter") {
		return
	}

	notes, err := h.service.GenerateNotes(r.Context(), req.YouTubeURL)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate notes")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NotesResponse{
		Notes:               notes.Markdown,
		VideoID:             notes.VideoID,
		TranscriptAvailable: notes.TranscriptAvailable,
		MetadataOnly:        notes.MetadataOnly,
		Warnings:            notes.Warnings,
	})
}

// AnalyzeDocument handles POST /api/analyze-document requests
func (h *ContentHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.upload(w, r)
	if !ok {
		return
	}

	analysis, err := h.service.AnalyzeDocument(r.Context(), doc)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to analyze document")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DocumentAnalysisResponse{
		Summary:  analysis.Summary,
		FileName: analysis.FileName,
		Warnings: analysis.Warnings,
	})
}

// GenerateQuestions handles POST /api/generate-questions requests
func (h *ContentHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.upload(w, r)
	if !ok {
		return
	}

	bank, err := h.service.GenerateQuestionBank(r.Context(), doc)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate questions")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuestionBankResponse{
		Questions: bank.Questions,
		FileName:  bank.FileName,
		Warnings:  bank.Warnings,
	})
}

// GenerateRoadmap handles POST /api/generate-roadmap requests.
// A roadmap with at least one generated section is returned with 200 and its
// failed sections listed under "errors".
func (h *ContentHandler) GenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)

	var req RoadmapRequest
	if !decodeAndValidate(w, r, &req, "Missing topic parameter") {
		return
	}

	roadmap, err := h.service.BuildRoadmap(r.Context(), req.Topic)
	if roadmap == nil || roadmap.Succeeded() == 0 {
		if err == nil {
			err = content.ErrNoContent
		}
		HandleAPIError(w, r, err, "Failed to generate roadmap")
		return
	}
	if err != nil {
		log.WarnContext(r.Context(), "returning partial roadmap",
			"topic", roadmap.Topic,
			"failed_sections", len(roadmap.Errors),
			"error", redact.Error(err))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RoadmapResponse{
		Topic:                roadmap.Topic,
		Overview:             roadmap.Overview,
		LearningStages:       roadmap.LearningStages,
		RecommendedResources: roadmap.Resources,
		LearningProjects:     roadmap.Projects,
		Errors:               sectionErrorMessages(roadmap.Errors),
	})
}

// sectionErrorMessages replaces each failed section's cause with the message
// a client may see.
func sectionErrorMessages(errs map[string]error) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = GetSafeErrorMessage(err)
	}
	return out
}

// GenerateVisual handles POST /api/generate-visual requests
func (h *ContentHandler) GenerateVisual(w http.ResponseWriter, r *http.Request) {
	var req VisualRequest
	if !decodeAndValidate(w, r, &req, "Notes content is required") {
		return
	}

	visual, err := h.service.GenerateVisual(r.Context(), req.NotesContent)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate visual")
		return
	}

	resp := VisualResponse{Success: true, Tier: visual.Tier, Model: visual.Model}
	if visual.IsText {
		resp.IsText = true
		resp.TextContent = visual.Result.Text
		resp.Summary = content.FallbackSummary
	} else {
		resp.ImageData = base64.StdEncoding.EncodeToString(visual.Result.ImageBytes)
		resp.MIMEType = visual.Result.MIMEType
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// upload limits the body, receives the document and writes an error
// response when that fails.
func (h *ContentHandler) upload(w http.ResponseWriter, r *http.Request) (source.Document, bool) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	doc, err := receiveUpload(r)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to read uploaded file")
		return source.Document{}, false
	}

	logger.FromContext(r.Context(), h.logger).DebugContext(r.Context(), "received upload",
		"file_name", doc.FileName,
		"media_type", doc.MediaType,
		"bytes", len(doc.Bytes))
	return doc, true
}
