package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// ArticleHandler serves the article endpoints
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// CreateArticle creates a new draft article
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, article)
}

// GetArticle returns a single article by ID
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(c.Request.Context(), optionalActor(c), articleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, article)
}

// GetArticleBySlug returns a single article by its slug
func (h *ArticleHandler) GetArticleBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Missing slug")
		return
	}

	article, err := h.articleService.GetArticleBySlug(c.Request.Context(), optionalActor(c), slug)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, article)
}

// ListArticles returns a page of articles, newest first
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	list, err := h.articleService.ListArticles(c.Request.Context(), optionalActor(c), &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateArticle applies a partial update to an article
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), actor, articleID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, article)
}

// PublishArticle transitions an article to published
func (h *ArticleHandler) PublishArticle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		return
	}

	article, err := h.articleService.PublishArticle(c.Request.Context(), actor, articleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, article)
}

// ArchiveArticle transitions an article to archived
func (h *ArticleHandler) ArchiveArticle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		return
	}

	article, err := h.articleService.ArchiveArticle(c.Request.Context(), actor, articleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, article)
}

// DeleteArticle removes an article along with its comments and likes
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		return
	}

	if err := h.articleService.DeleteArticle(c.Request.Context(), actor, articleID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Article deleted successfully"})
}
