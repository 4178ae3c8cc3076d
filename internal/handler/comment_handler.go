package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
	"heritage-archive-api/internal/service"
)

// CommentHandler serves the comment and moderation endpoints
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateComment posts a comment or reply on a published article.
// Comments from non-admin users enter the moderation queue.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, comment)
}

// ListComments returns the approved top-level comments of an article with
// their approved replies
func (h *CommentHandler) ListComments(c *gin.Context) {
	articleID, ok := parseUUIDParam(c, "articleId")
	if !ok {
		return
	}

	var query dto.CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid query parameters")
		return
	}

	list, err := h.commentService.ListComments(c.Request.Context(), optionalActor(c), articleID, &query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// UpdateComment replaces a comment's content
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), actor, commentID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, comment)
}

// DeleteComment removes a comment together with its replies and likes
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), actor, commentID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.DeleteCommentResponse{Message: "Comment deleted successfully"})
}

// ToggleLike likes a comment, or removes the caller's existing like
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	result, err := h.commentService.ToggleLike(c.Request.Context(), actor, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ApproveComment marks a pending comment as approved. Admin only.
func (h *CommentHandler) ApproveComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	commentID, ok := parseUUIDParam(c, "commentId")
	if !ok {
		return
	}

	result, err := h.commentService.ApproveComment(c.Request.Context(), actor, commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListPendingComments returns the moderation queue, oldest first. Admin only.
func (h *CommentHandler) ListPendingComments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	list, err := h.commentService.ListPendingComments(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}
