package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/response"
)

// EducationService defines the interface for education resource business logic
type EducationService interface {
	CreateResource(ctx context.Context, actor *Actor, req *dto.CreateEducationResourceRequest) (*dto.EducationResourceResponse, error)
	GetResource(ctx context.Context, id uuid.UUID) (*dto.EducationResourceResponse, error)
	ListResources(ctx context.Context, audience domain.EducationAudience, query *dto.ListQuery) (*dto.EducationResourceListResponse, error)
	UpdateResource(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateEducationResourceRequest) (*dto.EducationResourceResponse, error)
	DeleteResource(ctx context.Context, actor *Actor, id uuid.UUID) error
}

// educationServiceImpl is the implementation of EducationService
type educationServiceImpl struct {
	educationRepo repository.EducationRepository
	logger        *zap.Logger
}

// NewEducationService creates a new instance of EducationService
func NewEducationService(educationRepo repository.EducationRepository, logger *zap.Logger) EducationService {
	return &educationServiceImpl{educationRepo: educationRepo, logger: logger}
}

// CreateResource publishes a new learning resource
func (s *educationServiceImpl) CreateResource(ctx context.Context, actor *Actor, req *dto.CreateEducationResourceRequest) (*dto.EducationResourceResponse, error) {
	if !actor.CanPublish() {
		return nil, response.NewForbiddenError("Only contributors and admins may publish education resources")
	}

	audience := req.Audience
	if audience == "" {
		audience = domain.AudienceGeneral
	}

	resource := &domain.EducationResource{
		AuthorID:    actor.UserID,
		Title:       req.Title,
		Description: req.Description,
		Audience:    audience,
		ResourceURL: req.ResourceURL,
	}
	if err := s.educationRepo.Create(ctx, resource); err != nil {
		return nil, response.NewStorageError("Failed to create education resource", err)
	}

	resp := dto.ToEducationResourceResponse(resource)
	return &resp, nil
}

// GetResource returns a single learning resource
func (s *educationServiceImpl) GetResource(ctx context.Context, id uuid.UUID) (*dto.EducationResourceResponse, error) {
	resource, err := s.findResource(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToEducationResourceResponse(resource)
	return &resp, nil
}

// ListResources returns a page of learning resources, optionally filtered by
// audience
func (s *educationServiceImpl) ListResources(ctx context.Context, audience domain.EducationAudience, query *dto.ListQuery) (*dto.EducationResourceListResponse, error) {
	if audience != "" && !audience.IsValid() {
		return nil, response.NewValidationError("Unknown audience")
	}
	query.Normalize()

	resources, total, err := s.educationRepo.List(ctx, audience, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list education resources", err)
	}

	responses := make([]dto.EducationResourceResponse, len(resources))
	for i, r := range resources {
		responses[i] = dto.ToEducationResourceResponse(r)
	}
	return &dto.EducationResourceListResponse{
		Resources:  responses,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateResource applies a partial update. Only the author and admins may edit.
func (s *educationServiceImpl) UpdateResource(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateEducationResourceRequest) (*dto.EducationResourceResponse, error) {
	resource, err := s.findOwnedResource(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		resource.Title = *req.Title
	}
	if req.Description != nil {
		resource.Description = *req.Description
	}
	if req.Audience != nil {
		resource.Audience = *req.Audience
	}
	if req.ResourceURL != nil {
		resource.ResourceURL = *req.ResourceURL
	}

	if err := s.educationRepo.Update(ctx, resource); err != nil {
		return nil, response.NewStorageError("Failed to update education resource", err)
	}

	resp := dto.ToEducationResourceResponse(resource)
	return &resp, nil
}

// DeleteResource soft deletes a learning resource
func (s *educationServiceImpl) DeleteResource(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if _, err := s.findOwnedResource(ctx, actor, id); err != nil {
		return err
	}

	if err := s.educationRepo.Delete(ctx, id); err != nil {
		return response.NewStorageError("Failed to delete education resource", err)
	}
	return nil
}

func (s *educationServiceImpl) findResource(ctx context.Context, id uuid.UUID) (*domain.EducationResource, error) {
	resource, err := s.educationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Education resource not found")
		}
		return nil, response.NewStorageError("Failed to fetch education resource", err)
	}
	return resource, nil
}

func (s *educationServiceImpl) findOwnedResource(ctx context.Context, actor *Actor, id uuid.UUID) (*domain.EducationResource, error) {
	resource, err := s.findResource(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	if !actor.IsAdmin() && actor.UserID != resource.AuthorID {
		return nil, response.NewForbiddenError("Only the author or an admin may modify this resource")
	}
	return resource, nil
}
