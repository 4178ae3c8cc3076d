package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/client"
	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/response"
)

// OralHistoryService defines the interface for oral history business logic
type OralHistoryService interface {
	CreateOralHistory(ctx context.Context, actor *Actor, req *dto.CreateOralHistoryRequest) (*dto.OralHistoryResponse, error)
	GetOralHistory(ctx context.Context, id uuid.UUID) (*dto.OralHistoryResponse, error)
	ListOralHistories(ctx context.Context, language string, query *dto.ListQuery) (*dto.OralHistoryListResponse, error)
	UpdateOralHistory(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateOralHistoryRequest) (*dto.OralHistoryResponse, error)
	DeleteOralHistory(ctx context.Context, actor *Actor, id uuid.UUID) error
	RequestMediaUpload(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.MediaUploadRequest) (*dto.MediaUploadResponse, error)
	GetMediaDownload(ctx context.Context, id uuid.UUID) (*dto.MediaDownloadResponse, error)
}

// oralHistoryServiceImpl is the implementation of OralHistoryService
type oralHistoryServiceImpl struct {
	historyRepo repository.OralHistoryRepository
	s3Client    client.S3ClientInterface
	logger      *zap.Logger
}

// NewOralHistoryService creates a new instance of OralHistoryService
func NewOralHistoryService(
	historyRepo repository.OralHistoryRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) OralHistoryService {
	return &oralHistoryServiceImpl{
		historyRepo: historyRepo,
		s3Client:    s3Client,
		logger:      logger,
	}
}

// CreateOralHistory registers a new oral history record
func (s *oralHistoryServiceImpl) CreateOralHistory(ctx context.Context, actor *Actor, req *dto.CreateOralHistoryRequest) (*dto.OralHistoryResponse, error) {
	if !actor.CanPublish() {
		return nil, response.NewForbiddenError("Only contributors and admins may register oral histories")
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	history := &domain.OralHistory{
		ContributorID:   actor.UserID,
		Title:           req.Title,
		Narrator:        req.Narrator,
		Summary:         req.Summary,
		Language:        language,
		RecordedAt:      req.RecordedAt,
		DurationSeconds: req.DurationSeconds,
	}
	if err := s.historyRepo.Create(ctx, history); err != nil {
		return nil, response.NewStorageError("Failed to create oral history", err)
	}

	resp := dto.ToOralHistoryResponse(history)
	return &resp, nil
}

// GetOralHistory returns a single oral history
func (s *oralHistoryServiceImpl) GetOralHistory(ctx context.Context, id uuid.UUID) (*dto.OralHistoryResponse, error) {
	history, err := s.findOralHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToOralHistoryResponse(history)
	return &resp, nil
}

// ListOralHistories returns a page of oral histories, optionally filtered by
// language
func (s *oralHistoryServiceImpl) ListOralHistories(ctx context.Context, language string, query *dto.ListQuery) (*dto.OralHistoryListResponse, error) {
	query.Normalize()

	histories, total, err := s.historyRepo.List(ctx, language, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list oral histories", err)
	}

	responses := make([]dto.OralHistoryResponse, len(histories))
	for i, h := range histories {
		responses[i] = dto.ToOralHistoryResponse(h)
	}
	return &dto.OralHistoryListResponse{
		OralHistories: responses,
		Pagination:    dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateOralHistory applies a partial update. Only the contributor and admins
// may edit.
func (s *oralHistoryServiceImpl) UpdateOralHistory(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateOralHistoryRequest) (*dto.OralHistoryResponse, error) {
	history, err := s.findOwnedOralHistory(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		history.Title = *req.Title
	}
	if req.Narrator != nil {
		history.Narrator = *req.Narrator
	}
	if req.Summary != nil {
		history.Summary = *req.Summary
	}
	if req.Language != nil {
		history.Language = *req.Language
	}
	if req.RecordedAt != nil {
		history.RecordedAt = req.RecordedAt
	}
	if req.DurationSeconds != nil {
		history.DurationSeconds = *req.DurationSeconds
	}

	if err := s.historyRepo.Update(ctx, history); err != nil {
		return nil, response.NewStorageError("Failed to update oral history", err)
	}

	resp := dto.ToOralHistoryResponse(history)
	return &resp, nil
}

// DeleteOralHistory soft deletes the record and drops its stored recording
func (s *oralHistoryServiceImpl) DeleteOralHistory(ctx context.Context, actor *Actor, id uuid.UUID) error {
	history, err := s.findOwnedOralHistory(ctx, actor, id)
	if err != nil {
		return err
	}

	if history.MediaKey != "" {
		if err := s.s3Client.DeleteFile(ctx, history.MediaKey); err != nil {
			s.logger.Warn("Failed to delete oral history media from object storage",
				zap.String("oral_history_id", id.String()),
				zap.String("media_key", history.MediaKey),
				zap.Error(err))
		}
	}

	if err := s.historyRepo.Delete(ctx, id); err != nil {
		return response.NewStorageError("Failed to delete oral history", err)
	}
	return nil
}

// RequestMediaUpload issues a presigned upload URL for the recording and
// records the new media key.
func (s *oralHistoryServiceImpl) RequestMediaUpload(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.MediaUploadRequest) (*dto.MediaUploadResponse, error) {
	history, err := s.findOwnedOralHistory(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	uploadURL, key, expiresAt, err := s.s3Client.PresignUpload(ctx, client.MediaKindOralHistories, req.FileName, req.ContentType)
	if err != nil {
		return nil, response.NewStorageError("Failed to create upload URL", err)
	}

	previousKey := history.MediaKey
	history.MediaKey = key
	if err := s.historyRepo.Update(ctx, history); err != nil {
		return nil, response.NewStorageError("Failed to record media key", err)
	}

	if previousKey != "" {
		if err := s.s3Client.DeleteFile(ctx, previousKey); err != nil {
			s.logger.Warn("Failed to delete replaced oral history media",
				zap.String("oral_history_id", id.String()),
				zap.String("media_key", previousKey),
				zap.Error(err))
		}
	}

	return &dto.MediaUploadResponse{
		UploadURL: uploadURL,
		MediaKey:  key,
		ExpiresAt: expiresAt,
	}, nil
}

// GetMediaDownload issues a presigned download URL for the recording
func (s *oralHistoryServiceImpl) GetMediaDownload(ctx context.Context, id uuid.UUID) (*dto.MediaDownloadResponse, error) {
	history, err := s.findOralHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	if history.MediaKey == "" {
		return nil, response.NewNotFoundError("Oral history has no media")
	}

	downloadURL, expiresAt, err := s.s3Client.PresignDownload(ctx, history.MediaKey)
	if err != nil {
		return nil, response.NewStorageError("Failed to create download URL", err)
	}
	return &dto.MediaDownloadResponse{
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *oralHistoryServiceImpl) findOralHistory(ctx context.Context, id uuid.UUID) (*domain.OralHistory, error) {
	history, err := s.historyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Oral history not found")
		}
		return nil, response.NewStorageError("Failed to fetch oral history", err)
	}
	return history, nil
}

// findOwnedOralHistory loads the record and enforces the contributor-or-admin
// rule
func (s *oralHistoryServiceImpl) findOwnedOralHistory(ctx context.Context, actor *Actor, id uuid.UUID) (*domain.OralHistory, error) {
	history, err := s.findOralHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	if !actor.IsAdmin() && actor.UserID != history.ContributorID {
		return nil, response.NewForbiddenError("Only the contributor or an admin may modify this oral history")
	}
	return history, nil
}
