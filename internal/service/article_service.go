package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/metrics"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/response"
)

// viewCountKeyPrefix namespaces per-article view counters in Redis
const viewCountKeyPrefix = "article:views:"

// ArticleService defines the interface for article business logic
type ArticleService interface {
	CreateArticle(ctx context.Context, actor *Actor, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	GetArticle(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.ArticleResponse, error)
	GetArticleBySlug(ctx context.Context, actor *Actor, slug string) (*dto.ArticleResponse, error)
	ListArticles(ctx context.Context, actor *Actor, query *dto.ListQuery) (*dto.ArticleListResponse, error)
	UpdateArticle(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error)
	PublishArticle(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.ArticleResponse, error)
	ArchiveArticle(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.ArticleResponse, error)
	DeleteArticle(ctx context.Context, actor *Actor, id uuid.UUID) error
}

// Actor identifies the user performing a service call. A nil Actor means the
// caller is anonymous.
type Actor struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

// IsAdmin reports whether the actor has the admin role
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == domain.UserRoleAdmin
}

// CanPublish reports whether the actor may create archive content
func (a *Actor) CanPublish() bool {
	return a != nil && a.Role.CanPublishContent()
}

// articleServiceImpl is the implementation of ArticleService
type articleServiceImpl struct {
	articleRepo repository.ArticleRepository
	redis       *redis.Client
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewArticleService creates a new instance of ArticleService
func NewArticleService(
	articleRepo repository.ArticleRepository,
	redisClient *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) ArticleService {
	return &articleServiceImpl{
		articleRepo: articleRepo,
		redis:       redisClient,
		metrics:     m,
		logger:      logger,
	}
}

// CreateArticle creates a new article in draft status
func (s *articleServiceImpl) CreateArticle(ctx context.Context, actor *Actor, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if !actor.CanPublish() {
		return nil, response.NewForbiddenError("Only contributors and admins may create articles")
	}

	exists, err := s.articleRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, response.NewStorageError("Failed to check slug availability", err)
	}
	if exists {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Slug is already in use", "")
	}

	article := &domain.Article{
		AuthorID: actor.UserID,
		Slug:     req.Slug,
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Status:   domain.ArticleStatusDraft,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, response.NewStorageError("Failed to create article", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementArticleCreated()
	}

	if created, err := s.articleRepo.FindByID(ctx, article.ID); err == nil && created != nil {
		article = created
	}

	resp := dto.ToArticleResponse(article, false)
	return &resp, nil
}

// GetArticle returns a single article. Drafts and archived articles are
// visible only to their author and admins. Reads of published articles bump
// the Redis view counter; the cleanup job folds counters into the database.
func (s *articleServiceImpl) GetArticle(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Article not found")
		}
		return nil, response.NewStorageError("Failed to fetch article", err)
	}
	return s.renderArticle(ctx, actor, article)
}

// GetArticleBySlug returns a single article looked up by slug
func (s *articleServiceImpl) GetArticleBySlug(ctx context.Context, actor *Actor, slug string) (*dto.ArticleResponse, error) {
	article, err := s.articleRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Article not found")
		}
		return nil, response.NewStorageError("Failed to fetch article", err)
	}
	return s.renderArticle(ctx, actor, article)
}

func (s *articleServiceImpl) renderArticle(ctx context.Context, actor *Actor, article *domain.Article) (*dto.ArticleResponse, error) {
	if article.Status != domain.ArticleStatusPublished && !s.canSee(actor, article) {
		return nil, response.NewNotFoundError("Article not found")
	}

	if article.Status == domain.ArticleStatusPublished {
		article.ViewCount += s.recordView(ctx, article.ID)
	}

	resp := dto.ToArticleResponse(article, false)
	return &resp, nil
}

// canSee reports whether the actor may view a non-published article
func (s *articleServiceImpl) canSee(actor *Actor, article *domain.Article) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.UserID == article.AuthorID
}

// recordView increments the pending view counter and returns the pending
// delta so responses reflect views not yet flushed to the database.
func (s *articleServiceImpl) recordView(ctx context.Context, articleID uuid.UUID) int64 {
	if s.redis == nil {
		return 0
	}
	pending, err := s.redis.Incr(ctx, viewCountKeyPrefix+articleID.String()).Result()
	if err != nil {
		s.logger.Warn("Failed to record article view",
			zap.String("article_id", articleID.String()),
			zap.Error(err))
		return 0
	}
	return pending
}

// ListArticles returns a page of articles. Anonymous callers and plain users
// see published articles only; admins see everything; contributors also see
// their own drafts through the byAuthor path in the handler.
func (s *articleServiceImpl) ListArticles(ctx context.Context, actor *Actor, query *dto.ListQuery) (*dto.ArticleListResponse, error) {
	query.Normalize()

	filter := repository.ArticleFilter{Status: domain.ArticleStatusPublished}
	if actor.IsAdmin() {
		filter.Status = ""
	}

	articles, total, err := s.articleRepo.List(ctx, filter, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list articles", err)
	}

	responses := make([]dto.ArticleResponse, len(articles))
	for i, a := range articles {
		responses[i] = dto.ToArticleResponse(a, true)
	}
	return &dto.ArticleListResponse{
		Articles:   responses,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateArticle applies a partial update to the article. Only the author and
// admins may edit.
func (s *articleServiceImpl) UpdateArticle(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Summary != nil {
		article.Summary = *req.Summary
	}
	if req.Content != nil {
		article.Content = *req.Content
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, response.NewStorageError("Failed to update article", err)
	}

	resp := dto.ToArticleResponse(article, false)
	return &resp, nil
}

// PublishArticle moves the article to published status and stamps
// PublishedAt on the first transition.
func (s *articleServiceImpl) PublishArticle(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.ArticleResponse, error) {
	article, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if article.Status != domain.ArticleStatusPublished {
		article.Status = domain.ArticleStatusPublished
		if article.PublishedAt == nil {
			now := time.Now()
			article.PublishedAt = &now
		}
		if err := s.articleRepo.Update(ctx, article); err != nil {
			return nil, response.NewStorageError("Failed to publish article", err)
		}
	}

	resp := dto.ToArticleResponse(article, false)
	return &resp, nil
}

// ArchiveArticle moves the article to archived status. Archived articles keep
// their comments but accept no new ones.
func (s *articleServiceImpl) ArchiveArticle(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.ArticleResponse, error) {
	article, err := s.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if article.Status != domain.ArticleStatusArchived {
		article.Status = domain.ArticleStatusArchived
		if err := s.articleRepo.Update(ctx, article); err != nil {
			return nil, response.NewStorageError("Failed to archive article", err)
		}
	}

	resp := dto.ToArticleResponse(article, false)
	return &resp, nil
}

// DeleteArticle soft deletes the article together with its comments and likes
func (s *articleServiceImpl) DeleteArticle(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return response.NewStorageError("Failed to delete article", err)
	}

	if s.redis != nil {
		if err := s.redis.Del(ctx, viewCountKeyPrefix+id.String()).Err(); err != nil {
			s.logger.Warn("Failed to drop view counter for deleted article",
				zap.String("article_id", id.String()),
				zap.Error(err))
		}
	}
	return nil
}

// findOwned loads the article and enforces the author-or-admin rule
func (s *articleServiceImpl) findOwned(ctx context.Context, actor *Actor, id uuid.UUID) (*domain.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Article not found")
		}
		return nil, response.NewStorageError("Failed to fetch article", err)
	}
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	if !actor.IsAdmin() && actor.UserID != article.AuthorID {
		return nil, response.NewForbiddenError("Only the author or an admin may modify this article")
	}
	return article, nil
}
