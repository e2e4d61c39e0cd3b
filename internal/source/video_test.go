package source

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	transcript    string
	transcriptErr error
	meta          VideoMetadata
	metaErr       error

	transcriptCalls int
	metadataCalls   int
}

func (f *fakePlatform) Transcript(_ context.Context, _ string) (string, error) {
	f.transcriptCalls++
	return f.transcript, f.transcriptErr
}

func (f *fakePlatform) Metadata(_ context.Context, _ string) (VideoMetadata, error) {
	f.metadataCalls++
	return f.meta, f.metaErr
}

func TestParseVideoReference(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"http://youtube.com/watch?v=dQw4w9WgXcQ&t=42": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                "dQw4w9WgXcQ",
		"youtu.be/dQw4w9WgXcQ?si=abc":                 "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":   "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ":       "dQw4w9WgXcQ",
		"  https://youtu.be/dQw4w9WgXcQ  ":            "dQw4w9WgXcQ",
	}
	for url, want := range valid {
		got, err := ParseVideoReference(url)
		require.NoError(t, err, url)
		assert.Equal(t, want, got, url)
	}

	invalid := []string{
		"not a url",
		"",
		"https://vimeo.com/123456789",
		"https://www.youtube.com/watch?v=short",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ",
	}
	for _, url := range invalid {
		_, err := ParseVideoReference(url)
		require.Error(t, err, url)
		assert.ErrorIs(t, err, ErrInvalidReference, url)
	}
}

func TestNormalizeVideoReferenceInvalidSkipsNetwork(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{transcript: "unused"}
	n := newTestNormalizer(t, platform)

	got, err := n.NormalizeVideoReference(context.Background(), "not a url")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Zero(t, platform.transcriptCalls)
	assert.Zero(t, platform.metadataCalls)
}

func TestNormalizeVideoReferenceTranscript(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{transcript: "hello and welcome"}
	n := newTestNormalizer(t, platform)

	got, err := n.NormalizeVideoReference(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	require.NoError(t, err)
	assert.Equal(t, "hello and welcome", got.Text)
	assert.True(t, got.TranscriptAvailable)
	assert.False(t, got.MetadataOnly)
	assert.Equal(t, "dQw4w9WgXcQ", got.VideoID)
	assert.Zero(t, platform.metadataCalls)
}

func TestNormalizeVideoReferenceMetadataFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		platform *fakePlatform
		want     string
	}{
		{
			name: "transcripts disabled",
			platform: &fakePlatform{
				transcriptErr: fmt.Errorf("video x: %w", ErrTranscriptsDisabled),
				meta:          VideoMetadata{Title: "Linked Lists", Description: "A short lesson."},
			},
			want: "Title: Linked Lists\n\nDescription: A short lesson.",
		},
		{
			name: "transcript not found",
			platform: &fakePlatform{
				transcriptErr: ErrTranscriptNotFound,
				meta:          VideoMetadata{Title: "Recursion"},
			},
			want: "Title: Recursion\n\nDescription: " + NoDescription,
		},
		{
			name: "empty transcript",
			platform: &fakePlatform{
				transcript: "   ",
				meta:       VideoMetadata{Description: "Only a description"},
			},
			want: "Title: " + UnknownTitle + "\n\nDescription: Only a description",
		},
		{
			name: "metadata fetch fails",
			platform: &fakePlatform{
				transcriptErr: ErrTranscriptsDisabled,
				metaErr:       errors.New("connection reset"),
			},
			want: "Title: " + UnavailableTitle + "\n\nDescription: Error retrieving video info: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNormalizer(t, tt.platform)

			got, err := n.NormalizeVideoReference(context.Background(), "https://youtu.be/dQw4w9WgXcQ")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
			assert.NotEmpty(t, got.Text)
			assert.False(t, got.TranscriptAvailable)
			assert.True(t, got.MetadataOnly)
			assert.NotEmpty(t, got.Warnings)
			assert.Equal(t, 1, tt.platform.metadataCalls)
		})
	}
}

func TestNormalizeVideoReferenceDegradesOnOtherErrors(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{transcriptErr: errors.New("dial tcp: i/o timeout")}
	n := newTestNormalizer(t, platform)

	got, err := n.NormalizeVideoReference(context.Background(), "https://youtu.be/dQw4w9WgXcQ")

	require.NoError(t, err)
	assert.Equal(t, "Error retrieving content: dial tcp: i/o timeout", got.Text)
	assert.False(t, got.TranscriptAvailable)
	assert.False(t, got.MetadataOnly)
	assert.Zero(t, platform.metadataCalls)
}

func TestNormalizeVideoReferenceWithoutPlatform(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t, nil)

	_, err := n.NormalizeVideoReference(context.Background(), "https://youtu.be/dQw4w9WgXcQ")

	assert.ErrorIs(t, err, ErrExtractionFailed)
}
