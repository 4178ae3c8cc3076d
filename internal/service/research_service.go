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

// ResearchService defines the interface for research item business logic
type ResearchService interface {
	CreateResearchItem(ctx context.Context, actor *Actor, req *dto.CreateResearchItemRequest) (*dto.ResearchItemResponse, error)
	GetResearchItem(ctx context.Context, id uuid.UUID) (*dto.ResearchItemResponse, error)
	ListResearchItems(ctx context.Context, query *dto.ListQuery) (*dto.ResearchItemListResponse, error)
	UpdateResearchItem(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateResearchItemRequest) (*dto.ResearchItemResponse, error)
	DeleteResearchItem(ctx context.Context, actor *Actor, id uuid.UUID) error
}

// researchServiceImpl is the implementation of ResearchService
type researchServiceImpl struct {
	researchRepo repository.ResearchRepository
	logger       *zap.Logger
}

// NewResearchService creates a new instance of ResearchService
func NewResearchService(researchRepo repository.ResearchRepository, logger *zap.Logger) ResearchService {
	return &researchServiceImpl{researchRepo: researchRepo, logger: logger}
}

// CreateResearchItem registers a new research output
func (s *researchServiceImpl) CreateResearchItem(ctx context.Context, actor *Actor, req *dto.CreateResearchItemRequest) (*dto.ResearchItemResponse, error) {
	if !actor.CanPublish() {
		return nil, response.NewForbiddenError("Only contributors and admins may register research")
	}

	item := &domain.ResearchItem{
		AuthorID: actor.UserID,
		Title:    req.Title,
		Abstract: req.Abstract,
		Citation: req.Citation,
	}
	if err := s.researchRepo.Create(ctx, item); err != nil {
		return nil, response.NewStorageError("Failed to create research item", err)
	}

	resp := dto.ToResearchItemResponse(item)
	return &resp, nil
}

// GetResearchItem returns a single research item
func (s *researchServiceImpl) GetResearchItem(ctx context.Context, id uuid.UUID) (*dto.ResearchItemResponse, error) {
	item, err := s.findResearchItem(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToResearchItemResponse(item)
	return &resp, nil
}

// ListResearchItems returns a page of research items
func (s *researchServiceImpl) ListResearchItems(ctx context.Context, query *dto.ListQuery) (*dto.ResearchItemListResponse, error) {
	query.Normalize()

	items, total, err := s.researchRepo.List(ctx, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list research items", err)
	}

	responses := make([]dto.ResearchItemResponse, len(items))
	for i, item := range items {
		responses[i] = dto.ToResearchItemResponse(item)
	}
	return &dto.ResearchItemListResponse{
		ResearchItems: responses,
		Pagination:    dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateResearchItem applies a partial update. Only the author and admins may
// edit.
func (s *researchServiceImpl) UpdateResearchItem(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateResearchItemRequest) (*dto.ResearchItemResponse, error) {
	item, err := s.findOwnedResearchItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Abstract != nil {
		item.Abstract = *req.Abstract
	}
	if req.Citation != nil {
		item.Citation = *req.Citation
	}

	if err := s.researchRepo.Update(ctx, item); err != nil {
		return nil, response.NewStorageError("Failed to update research item", err)
	}

	resp := dto.ToResearchItemResponse(item)
	return &resp, nil
}

// DeleteResearchItem soft deletes a research item
func (s *researchServiceImpl) DeleteResearchItem(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if _, err := s.findOwnedResearchItem(ctx, actor, id); err != nil {
		return err
	}

	if err := s.researchRepo.Delete(ctx, id); err != nil {
		return response.NewStorageError("Failed to delete research item", err)
	}
	return nil
}

func (s *researchServiceImpl) findResearchItem(ctx context.Context, id uuid.UUID) (*domain.ResearchItem, error) {
	item, err := s.researchRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Research item not found")
		}
		return nil, response.NewStorageError("Failed to fetch research item", err)
	}
	return item, nil
}

func (s *researchServiceImpl) findOwnedResearchItem(ctx context.Context, actor *Actor, id uuid.UUID) (*domain.ResearchItem, error) {
	item, err := s.findResearchItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	if !actor.IsAdmin() && actor.UserID != item.AuthorID {
		return nil, response.NewForbiddenError("Only the author or an admin may modify this research item")
	}
	return item, nil
}
