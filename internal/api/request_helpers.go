package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/vyasa-api/internal/api/shared"
	"github.com/phrazzld/vyasa-api/internal/platform/logger"
	"github.com/phrazzld/vyasa-api/internal/source"
)

// uploadField is the multipart form field carrying the document.
const uploadField = "file"

// Media types browsers send for files they cannot classify.
var genericMediaTypes = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
	"binary/octet-stream":      true,
}

// Extension fallbacks for uploads declared with a generic media type.
var extensionMediaTypes = map[string]string{
	".pdf":  source.MediaTypePDF,
	".doc":  source.MediaTypeMSWord,
	".docx": source.MediaTypeDOCX,
	".xls":  source.MediaTypeMSExcel,
	".xlsx": source.MediaTypeXLSX,
	".txt":  source.MediaTypePlainTxt,
}

// decodeAndValidate decodes a JSON body into v and validates it. On
// failure it writes the response and returns false. missingMsg is returned
// to the client when validation fails.
//
// Parameters:
//   - w: The HTTP response writer
//   - r: The HTTP request
//   - v: Pointer to the request struct
//   - missingMsg: Client message for a missing or invalid field
//
// Returns:
//   - true when v is ready to use
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}, missingMsg string) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, missingMsg, err)
			return false
		}
		HandleAPIError(w, r, fmt.Errorf("%w: %v", ErrInvalidRequest, err), "")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		logger.FromContext(r.Context(), slog.Default()).DebugContext(r.Context(), "request validation failed",
			"validation", SanitizeValidationError(err))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, missingMsg, err)
		return false
	}
	return true
}

// receiveUpload stores the uploaded file in a fresh temporary directory and
// reads it back as a source.Document. The directory is removed before
// returning on every path.
func receiveUpload(r *http.Request) (source.Document, error) {
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return source.Document{}, fmt.Errorf("%w: %v", ErrUploadTooLarge, err)
		case errors.Is(err, http.ErrMissingFile):
			return source.Document{}, ErrMissingFile
		case errors.Is(err, http.ErrNotMultipart):
			return source.Document{}, fmt.Errorf("%w: %v", ErrMissingFile, err)
		default:
			return source.Document{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	if header.Filename == "" || fileName == "." || fileName == string(filepath.Separator) {
		return source.Document{}, ErrNoFileSelected
	}

	dir, err := os.MkdirTemp("", "vyasa-upload-"+uuid.NewString())
	if err != nil {
		return source.Document{}, fmt.Errorf("create upload directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, fileName)
	if err := saveFile(path, file); err != nil {
		return source.Document{}, err
	}

	return source.OpenDocument(path, uploadMediaType(header), fileName)
}

func saveFile(path string, src multipart.File) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write upload file: %w", err)
	}
	return dst.Close()
}

// uploadMediaType returns the declared media type of a part, falling back to
// the file extension when the client declared nothing specific.
func uploadMediaType(header *multipart.FileHeader) string {
	declared := header.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(declared); err == nil {
		declared = mt
	}
	if !genericMediaTypes[strings.ToLower(declared)] {
		return declared
	}
	if mt, ok := extensionMediaTypes[strings.ToLower(filepath.Ext(header.Filename))]; ok {
		return mt
	}
	return declared
}
