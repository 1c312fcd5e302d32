package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for image storage operations
type FileStorage interface {
	// SaveFile saves an uploaded file and returns its accessible URL path
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
