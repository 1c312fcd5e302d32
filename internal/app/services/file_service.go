package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/zhangjiang/campuswall/internal/app/models"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/filestorage"
)

// FileStore is the persistence surface FileService needs.
type FileStore interface {
	Create(ctx context.Context, file *models.File) (int64, error)
}

// FileService handles image uploads for posts
type FileService struct {
	fileRepo FileStore
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewFileService creates a new FileService
func NewFileService(fileRepo FileStore, storage filestorage.FileStorage, logger zerolog.Logger) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
		logger:   logger,
	}
}

// Upload validates, stores and records an uploaded image, returning the
// URL clients embed in posts.
func (s *FileService) Upload(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.FileUploadResponse, error) {
	url, err := s.storage.SaveFile(fileHeader)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		FileName:   fileHeader.Filename,
		FileURL:    url,
		FileSize:   fileHeader.Size,
		FileType:   fileHeader.Header.Get("Content-Type"),
		UploadedBy: userID,
	}

	if _, err := s.fileRepo.Create(ctx, file); err != nil {
		// The file is already on disk; drop it rather than leave an orphan.
		if delErr := s.storage.DeleteFile(url); delErr != nil {
			s.logger.Warn().Err(delErr).Str("url", url).Msg("Failed to remove orphaned upload")
		}
		return nil, err
	}

	return &dto.FileUploadResponse{URL: url}, nil
}
