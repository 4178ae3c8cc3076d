package service

import (
	"context"
	"encoding/json"
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

// ArtifactService defines the interface for artifact business logic
type ArtifactService interface {
	CreateArtifact(ctx context.Context, actor *Actor, req *dto.CreateArtifactRequest) (*dto.ArtifactResponse, error)
	GetArtifact(ctx context.Context, id uuid.UUID) (*dto.ArtifactResponse, error)
	ListArtifacts(ctx context.Context, query *dto.ListQuery) (*dto.ArtifactListResponse, error)
	UpdateArtifact(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateArtifactRequest) (*dto.ArtifactResponse, error)
	DeleteArtifact(ctx context.Context, actor *Actor, id uuid.UUID) error
	RequestMediaUpload(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.MediaUploadRequest) (*dto.MediaUploadResponse, error)
	GetMediaDownload(ctx context.Context, id uuid.UUID) (*dto.MediaDownloadResponse, error)
}

// artifactServiceImpl is the implementation of ArtifactService
type artifactServiceImpl struct {
	artifactRepo repository.ArtifactRepository
	s3Client     client.S3ClientInterface
	logger       *zap.Logger
}

// NewArtifactService creates a new instance of ArtifactService
func NewArtifactService(
	artifactRepo repository.ArtifactRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) ArtifactService {
	return &artifactServiceImpl{
		artifactRepo: artifactRepo,
		s3Client:     s3Client,
		logger:       logger,
	}
}

// CreateArtifact catalogues a new artifact. Catalog numbers are unique across
// the collection.
func (s *artifactServiceImpl) CreateArtifact(ctx context.Context, actor *Actor, req *dto.CreateArtifactRequest) (*dto.ArtifactResponse, error) {
	if !actor.CanPublish() {
		return nil, response.NewForbiddenError("Only contributors and admins may catalogue artifacts")
	}

	exists, err := s.artifactRepo.ExistsByCatalogNumber(ctx, req.CatalogNumber)
	if err != nil {
		return nil, response.NewStorageError("Failed to check catalog number availability", err)
	}
	if exists {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Catalog number is already in use", "")
	}

	artifact := &domain.Artifact{
		CuratorID:     actor.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Origin:        req.Origin,
		Period:        req.Period,
		CatalogNumber: req.CatalogNumber,
	}
	if req.Metadata != nil {
		jsonBytes, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, response.NewValidationError("Metadata is not serializable")
		}
		artifact.Metadata = jsonBytes
	}

	if err := s.artifactRepo.Create(ctx, artifact); err != nil {
		return nil, response.NewStorageError("Failed to create artifact", err)
	}

	resp := dto.ToArtifactResponse(artifact)
	return &resp, nil
}

// GetArtifact returns a single artifact
func (s *artifactServiceImpl) GetArtifact(ctx context.Context, id uuid.UUID) (*dto.ArtifactResponse, error) {
	artifact, err := s.findArtifact(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToArtifactResponse(artifact)
	return &resp, nil
}

// ListArtifacts returns a page of artifacts
func (s *artifactServiceImpl) ListArtifacts(ctx context.Context, query *dto.ListQuery) (*dto.ArtifactListResponse, error) {
	query.Normalize()

	artifacts, total, err := s.artifactRepo.List(ctx, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list artifacts", err)
	}

	responses := make([]dto.ArtifactResponse, len(artifacts))
	for i, a := range artifacts {
		responses[i] = dto.ToArtifactResponse(a)
	}
	return &dto.ArtifactListResponse{
		Artifacts:  responses,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateArtifact applies a partial update. Only the curator who catalogued
// the artifact and admins may edit; the catalog number is immutable.
func (s *artifactServiceImpl) UpdateArtifact(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateArtifactRequest) (*dto.ArtifactResponse, error) {
	artifact, err := s.findOwnedArtifact(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		artifact.Title = *req.Title
	}
	if req.Description != nil {
		artifact.Description = *req.Description
	}
	if req.Origin != nil {
		artifact.Origin = *req.Origin
	}
	if req.Period != nil {
		artifact.Period = *req.Period
	}
	if req.Metadata != nil {
		jsonBytes, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, response.NewValidationError("Metadata is not serializable")
		}
		artifact.Metadata = jsonBytes
	}

	if err := s.artifactRepo.Update(ctx, artifact); err != nil {
		return nil, response.NewStorageError("Failed to update artifact", err)
	}

	resp := dto.ToArtifactResponse(artifact)
	return &resp, nil
}

// DeleteArtifact soft deletes the artifact and drops its stored media
func (s *artifactServiceImpl) DeleteArtifact(ctx context.Context, actor *Actor, id uuid.UUID) error {
	artifact, err := s.findOwnedArtifact(ctx, actor, id)
	if err != nil {
		return err
	}

	if artifact.MediaKey != "" {
		if err := s.s3Client.DeleteFile(ctx, artifact.MediaKey); err != nil {
			s.logger.Warn("Failed to delete artifact media from object storage",
				zap.String("artifact_id", id.String()),
				zap.String("media_key", artifact.MediaKey),
				zap.Error(err))
		}
	}

	if err := s.artifactRepo.Delete(ctx, id); err != nil {
		return response.NewStorageError("Failed to delete artifact", err)
	}
	return nil
}

// RequestMediaUpload issues a presigned upload URL and records the new media
// key on the artifact. The caller PUTs the file directly to object storage.
func (s *artifactServiceImpl) RequestMediaUpload(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.MediaUploadRequest) (*dto.MediaUploadResponse, error) {
	artifact, err := s.findOwnedArtifact(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	uploadURL, key, expiresAt, err := s.s3Client.PresignUpload(ctx, client.MediaKindArtifacts, req.FileName, req.ContentType)
	if err != nil {
		return nil, response.NewStorageError("Failed to create upload URL", err)
	}

	previousKey := artifact.MediaKey
	artifact.MediaKey = key
	if err := s.artifactRepo.Update(ctx, artifact); err != nil {
		return nil, response.NewStorageError("Failed to record media key", err)
	}

	if previousKey != "" {
		if err := s.s3Client.DeleteFile(ctx, previousKey); err != nil {
			s.logger.Warn("Failed to delete replaced artifact media",
				zap.String("artifact_id", id.String()),
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

// GetMediaDownload issues a presigned download URL for the artifact's media
func (s *artifactServiceImpl) GetMediaDownload(ctx context.Context, id uuid.UUID) (*dto.MediaDownloadResponse, error) {
	artifact, err := s.findArtifact(ctx, id)
	if err != nil {
		return nil, err
	}
	if artifact.MediaKey == "" {
		return nil, response.NewNotFoundError("Artifact has no media")
	}

	downloadURL, expiresAt, err := s.s3Client.PresignDownload(ctx, artifact.MediaKey)
	if err != nil {
		return nil, response.NewStorageError("Failed to create download URL", err)
	}
	return &dto.MediaDownloadResponse{
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *artifactServiceImpl) findArtifact(ctx context.Context, id uuid.UUID) (*domain.Artifact, error) {
	artifact, err := s.artifactRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Artifact not found")
		}
		return nil, response.NewStorageError("Failed to fetch artifact", err)
	}
	return artifact, nil
}

// findOwnedArtifact loads the artifact and enforces the curator-or-admin rule
func (s *artifactServiceImpl) findOwnedArtifact(ctx context.Context, actor *Actor, id uuid.UUID) (*domain.Artifact, error) {
	artifact, err := s.findArtifact(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	if !actor.IsAdmin() && actor.UserID != artifact.CuratorID {
		return nil, response.NewForbiddenError("Only the curator or an admin may modify this artifact")
	}
	return artifact, nil
}
