package service

import (
	"context"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	CreateFunc             func(ctx context.Context, article *domain.Article) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	FindBySlugFunc         func(ctx context.Context, slug string) (*domain.Article, error)
	ExistsBySlugFunc       func(ctx context.Context, slug string) (bool, error)
	ListFunc               func(ctx context.Context, filter repository.ArticleFilter, offset, limit int) ([]*domain.Article, int64, error)
	UpdateFunc             func(ctx context.Context, article *domain.Article) error
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
	IncrementViewCountFunc func(ctx context.Context, id uuid.UUID, delta int64) error
}

func (m *MockArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, article)
	}
	return nil
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockArticleRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockArticleRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.ExistsBySlugFunc != nil {
		return m.ExistsBySlugFunc(ctx, slug)
	}
	return false, nil
}

func (m *MockArticleRepository) List(ctx context.Context, filter repository.ArticleFilter, offset, limit int) ([]*domain.Article, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, offset, limit)
	}
	return nil, 0, nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, article)
	}
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockArticleRepository) IncrementViewCount(ctx context.Context, id uuid.UUID, delta int64) error {
	if m.IncrementViewCountFunc != nil {
		return m.IncrementViewCountFunc(ctx, id, delta)
	}
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc                func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListApprovedByArticleFunc func(ctx context.Context, articleID uuid.UUID, sort string, offset, limit int) ([]*domain.Comment, int64, error)
	UpdateFunc                func(ctx context.Context, comment *domain.Comment) error
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	ApproveFunc               func(ctx context.Context, id uuid.UUID) error
	ListPendingFunc           func(ctx context.Context) ([]*domain.Comment, error)
	ToggleLikeFunc            func(ctx context.Context, commentID, userID uuid.UUID) (bool, int, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCommentRepository) ListApprovedByArticle(ctx context.Context, articleID uuid.UUID, sort string, offset, limit int) ([]*domain.Comment, int64, error) {
	if m.ListApprovedByArticleFunc != nil {
		return m.ListApprovedByArticleFunc(ctx, articleID, sort, offset, limit)
	}
	return nil, 0, nil
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCommentRepository) Approve(ctx context.Context, id uuid.UUID) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, id)
	}
	return nil
}

func (m *MockCommentRepository) ListPending(ctx context.Context) ([]*domain.Comment, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return nil, nil
}

func (m *MockCommentRepository) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (bool, int, error) {
	if m.ToggleLikeFunc != nil {
		return m.ToggleLikeFunc(ctx, commentID, userID)
	}
	return false, 0, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	UpdateFunc        func(ctx context.Context, user *domain.User) error
	UpdateRoleFunc    func(ctx context.Context, id uuid.UUID, role domain.UserRole) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, id, role)
	}
	return nil
}
