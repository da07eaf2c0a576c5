package validation

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	_ "golang.org/x/image/webp"

	internal_errors "github.com/yatube-dev/yatube/internal/errors"
)

// ErrPayloadTooLarge is returned when the request body exceeds size limits
var ErrPayloadTooLarge = errors.New("payload too large")

// multipartOverhead is the room left for the text fields of a post form.
const multipartOverhead = 1 << 20

var extensions = map[string]string{
	"image/gif":  ".gif",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Image is an uploaded picture that passed validation. File is rewound.
type Image struct {
	File      multipart.File
	Filename  string
	MimeType  string
	Extension string
	Width     int
	Height    int
}

// ParseMultipart limits the request body and parses the multipart form.
func (v *Validator) ParseMultipart(w http.ResponseWriter, r *http.Request) error {
	maxSize := v.limits.MaxImageSize + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		return fmt.Errorf("%w: failed to parse multipart form", ErrPayloadTooLarge)
	}
	return nil
}

// Image checks size, declared type and actual content of an upload. The
// returned file must be closed by the caller. A nil header yields nil, nil.
func (v *Validator) Image(fh *multipart.FileHeader) (*Image, error) {
	if fh == nil {
		return nil, nil
	}
	if fh.Size > v.limits.MaxImageSize {
		return nil, internal_errors.NewValidationError("image",
			fmt.Sprintf("Image is too large. Maximum size is %.0f MB.", float64(v.limits.MaxImageSize)/(1024*1024)))
	}

	mimeType := DetectMimeType(fh)
	if !v.allowedMimes[mimeType] {
		return nil, internal_errors.NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	cfg, format, err := image.DecodeConfig(file)
	if err != nil || "image/"+format != normalizeMime(mimeType) {
		file.Close()
		return nil, internal_errors.NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	return &Image{
		File:      file,
		Filename:  fh.Filename,
		MimeType:  mimeType,
		Extension: extensions[normalizeMime(mimeType)],
		Width:     cfg.Width,
		Height:    cfg.Height,
	}, nil
}

// DetectMimeType uses the declared Content-Type, falling back to the extension.
func DetectMimeType(fh *multipart.FileHeader) string {
	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		if detected := mime.TypeByExtension(filepath.Ext(fh.Filename)); detected != "" {
			mimeType = detected
		}
	}
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}
	return mimeType
}

func normalizeMime(m string) string {
	if m == "image/jpg" || m == "image/pjpeg" {
		return "image/jpeg"
	}
	return m
}
