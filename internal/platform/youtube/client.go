// Package youtube implements source.VideoPlatform by scraping the public
// watch page of a video: the embedded player response lists caption tracks,
// and the page's meta tags carry the title and description.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/vyasa-api/internal/config"
	"github.com/phrazzld/vyasa-api/internal/source"
	"github.com/tidwall/gjson"
)

const (
	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	playerResponse = "ytInitialPlayerResponse"
)

// ErrUnexpectedPage is returned when a watch page does not have the expected structure.
var ErrUnexpectedPage = errors.New("unexpected watch page structure")

// Client fetches transcripts and metadata for public videos.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	maxPageBytes int64
	logger       *slog.Logger
}

var _ source.VideoPlatform = (*Client)(nil)

// NewClient creates a Client from the sources configuration.
//
// Parameters:
//   - cfg: base URL, fetch timeout and page size limit
//   - logger: structured logger; nil uses slog.Default()
//
// Returns:
//   - the client, or an error if the base URL cannot be parsed
func NewClient(cfg config.SourcesConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := url.Parse(strings.TrimRight(cfg.YouTubeBaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid youtube base url: %w", err)
	}
	maxBytes := cfg.MaxPageBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &Client{
		baseURL:      base,
		httpClient:   &http.Client{Timeout: cfg.FetchTimeout()},
		maxPageBytes: maxBytes,
		logger:       logger.With("component", "youtube_client"),
	}, nil
}

// Transcript returns the English transcript of a video as a single line of
// text. Manually created tracks are preferred over automatic ones.
//
// Errors wrap source.ErrTranscriptsDisabled when the video has no captions at
// all and source.ErrTranscriptNotFound when none of them is English.
func (c *Client) Transcript(ctx context.Context, videoID string) (string, error) {
	page, err := c.get(ctx, c.watchURL(videoID))
	if err != nil {
		return "", err
	}

	player, err := extractPlayerResponse(page)
	if err != nil {
		return "", err
	}

	if status := gjson.GetBytes(player, "playabilityStatus.status"); status.Exists() && status.String() != "OK" {
		reason := gjson.GetBytes(player, "playabilityStatus.reason").String()
		return "", fmt.Errorf("video %s is not playable: %s %s", videoID, status.String(), reason)
	}

	captions := gjson.GetBytes(player, "captions.playerCaptionsTracklistRenderer")
	if !captions.Exists() {
		return "", fmt.Errorf("video %s: %w", videoID, source.ErrTranscriptsDisabled)
	}

	track, ok := selectTrack(captions.Get("captionTracks").Array())
	if !ok {
		return "", fmt.Errorf("video %s: %w", videoID, source.ErrTranscriptNotFound)
	}

	trackURL, err := c.resolve(track.Get("baseUrl").String())
	if err != nil {
		return "", fmt.Errorf("caption track url: %w", err)
	}

	c.logger.DebugContext(ctx, "fetching caption track",
		"video_id", videoID,
		"language", track.Get("languageCode").String(),
		"kind", track.Get("kind").String())

	body, err := c.get(ctx, trackURL)
	if err != nil {
		return "", err
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("video %s: caption track is empty: %w", videoID, source.ErrTranscriptNotFound)
	}
	return strings.Join(segments, " "), nil
}

// Metadata returns the title and description declared on the watch page.
func (c *Client) Metadata(ctx context.Context, videoID string) (source.VideoMetadata, error) {
	page, err := c.get(ctx, c.watchURL(videoID))
	if err != nil {
		return source.VideoMetadata{}, err
	}

	meta := parseMetadata(page)

	// The player response carries the same fields for pages served without
	// meta tags (consent interstitials, some regional variants).
	if meta.Title == "" || meta.Description == "" {
		if player, err := extractPlayerResponse(page); err == nil {
			if meta.Title == "" {
				meta.Title = gjson.GetBytes(player, "videoDetails.title").String()
			}
			if meta.Description == "" {
				meta.Description = gjson.GetBytes(player, "videoDetails.shortDescription").String()
			}
		}
	}

	return meta, nil
}

func (c *Client) watchURL(videoID string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/watch"
	u.RawQuery = url.Values{"v": {videoID}}.Encode()
	return u.String()
}

// resolve turns a possibly relative caption URL into an absolute one.
func (c *Client) resolve(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: caption track has no url", ErrUnexpectedPage)
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// get performs a browser-like GET and returns at most maxPageBytes of body.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", req.URL.Path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// extractPlayerResponse returns the JSON object assigned to the player
// response variable in an inline script.
func extractPlayerResponse(page []byte) ([]byte, error) {
	idx := bytes.Index(page, []byte(playerResponse))
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s not found", ErrUnexpectedPage, playerResponse)
	}
	rest := page[idx+len(playerResponse):]
	start := bytes.IndexByte(rest, '{')
	if start < 0 {
		return nil, fmt.Errorf("%w: %s has no object", ErrUnexpectedPage, playerResponse)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(rest[start:])).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnexpectedPage, playerResponse, err)
	}
	return raw, nil
}

// selectTrack picks an English caption track, preferring manual captions
// over automatic speech recognition.
func selectTrack(tracks []gjson.Result) (gjson.Result, bool) {
	var generated gjson.Result
	found := false
	for _, t := range tracks {
		lang := strings.ToLower(t.Get("languageCode").String())
		if lang != "en" && !strings.HasPrefix(lang, "en-") {
			continue
		}
		if t.Get("kind").String() != "asr" {
			return t, true
		}
		if !found {
			generated, found = t, true
		}
	}
	return generated, found
}
