package source

// Kind identifies which variant of Artifact is populated.
type Kind int

const (
	// KindDocument is an uploaded file.
	KindDocument Kind = iota + 1
	// KindVideoReference is a link to a hosted video.
	KindVideoReference
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindVideoReference:
		return "video_reference"
	default:
		return "unknown"
	}
}

// Document is an uploaded file together with the media type the client
// declared for it.
type Document struct {
	Bytes     []byte
	MediaType string
	FileName  string
}

// VideoReference is a URL pointing at a hosted video.
type VideoReference struct {
	URL string
}

// Artifact is one unit of input for a single request. Exactly one of
// Document or Video is set, as indicated by Kind. Artifacts are built with
// NewDocument or NewVideoReference and not modified afterwards.
type Artifact struct {
	Kind     Kind
	Document Document
	Video    VideoReference
}

// NewDocument builds a document artifact. The byte slice is retained, not
// copied; callers must not modify it afterwards.
func NewDocument(data []byte, mediaType, fileName string) Artifact {
	return Artifact{
		Kind:     KindDocument,
		Document: Document{Bytes: data, MediaType: mediaType, FileName: fileName},
	}
}

// NewVideoReference builds a video reference artifact.
func NewVideoReference(url string) Artifact {
	return Artifact{Kind: KindVideoReference, Video: VideoReference{URL: url}}
}

// ExtractedText is the plain-text rendering of an Artifact.
type ExtractedText struct {
	Text string
	// Warnings are non-fatal observations made during extraction, in the
	// order they occurred.
	Warnings []string

	// TranscriptAvailable is true when Text holds a video transcript.
	TranscriptAvailable bool
	// MetadataOnly is true when Text was built from a video's title and
	// description because no transcript exists.
	MetadataOnly bool
	// VideoID is the canonical 11-character identifier for video input.
	VideoID string
}
