package source

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	videoURLPattern = regexp.MustCompile(
		`^(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/(watch\?v=|embed/|v/|.+\?v=)?([^&=%\?]{11})($|&|\?)`,
	)
	videoIDPattern = regexp.MustCompile(
		`(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`,
	)
)

// Fallback values used when a video's metadata page lacks a field or cannot
// be fetched.
const (
	UnknownTitle           = "Unknown Title"
	NoDescription          = "No description available."
	UnavailableTitle       = "Video Information Unavailable"
	unavailableDescription = "Error retrieving video info: "
)

// VideoMetadata is the public title and description of a video.
type VideoMetadata struct {
	Title       string
	Description string
}

// VideoPlatform retrieves transcripts and metadata from a video host.
//
// Transcript must return an error matching ErrTranscriptsDisabled or
// ErrTranscriptNotFound when the video has no transcript, so that callers can
// distinguish that case from network or parsing failures.
type VideoPlatform interface {
	Transcript(ctx context.Context, videoID string) (string, error)
	Metadata(ctx context.Context, videoID string) (VideoMetadata, error)
}

// ParseVideoReference validates a video URL and returns its 11-character
// identifier. No network access takes place.
func ParseVideoReference(url string) (string, error) {
	url = strings.TrimSpace(url)
	if !videoURLPattern.MatchString(url) {
		return "", &ExtractionError{Kind: KindInvalidReference, Detail: "not a recognized video link"}
	}
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", &ExtractionError{Kind: KindInvalidReference, Detail: "could not find a video identifier"}
	}
	return m[1], nil
}

// NormalizeVideoReference returns the transcript of the referenced video.
//
// An unrecognized reference fails with KindInvalidReference. After that the
// method does not fail: a missing transcript is replaced by the video's
// title and description (MetadataOnly), and any other retrieval failure is
// described in the returned text.
func (n *Normalizer) NormalizeVideoReference(ctx context.Context, url string) (*ExtractedText, error) {
	videoID, err := ParseVideoReference(url)
	if err != nil {
		return nil, err
	}
	log := n.logger.With("video_id", videoID)

	if n.platform == nil {
		return nil, failed("", "no video platform configured", nil)
	}

	transcript, err := n.platform.Transcript(ctx, videoID)
	switch {
	case err == nil && strings.TrimSpace(transcript) != "":
		log.DebugContext(ctx, "transcript retrieved", "chars", len(transcript))
		return &ExtractedText{
			Text:                transcript,
			TranscriptAvailable: true,
			VideoID:             videoID,
		}, nil

	case err == nil, errors.Is(err, ErrTranscriptsDisabled), errors.Is(err, ErrTranscriptNotFound):
		reason := "empty transcript"
		if err != nil {
			reason = err.Error()
		}
		log.InfoContext(ctx, "transcript unavailable, using video metadata", "reason", reason)
		return &ExtractedText{
			Text:         n.metadataText(ctx, videoID),
			Warnings:     []string{"transcript unavailable: " + reason},
			MetadataOnly: true,
			VideoID:      videoID,
		}, nil

	default:
		log.WarnContext(ctx, "transcript retrieval failed", "error", err)
		return &ExtractedText{
			Text:     fmt.Sprintf("Error retrieving content: %v", err),
			Warnings: []string{"transcript retrieval failed"},
			VideoID:  videoID,
		}, nil
	}
}

func (n *Normalizer) metadataText(ctx context.Context, videoID string) string {
	meta, err := n.platform.Metadata(ctx, videoID)
	if err != nil {
		n.logger.WarnContext(ctx, "video metadata retrieval failed", "video_id", videoID, "error", err)
		meta = VideoMetadata{
			Title:       UnavailableTitle,
			Description: unavailableDescription + err.Error(),
		}
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = UnknownTitle
	}
	if strings.TrimSpace(meta.Description) == "" {
		meta.Description = NoDescription
	}
	return fmt.Sprintf("Title: %s\n\nDescription: %s", meta.Title, meta.Description)
}
