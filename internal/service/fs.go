package service

import "io"

type MediaStorage interface {
	// SaveImage stores the data under a generated name and returns the path
	// relative to the media root.
	SaveImage(data io.Reader, extension string) (string, error)

	// DeleteFile removes a single file. A missing file is not an error.
	DeleteFile(path string) error
}
