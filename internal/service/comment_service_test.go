package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/response"
)

func publishedArticle(id uuid.UUID) *domain.Article {
	now := time.Now()
	return &domain.Article{
		BaseModel:   domain.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		AuthorID:    uuid.New(),
		Slug:        "test-article",
		Title:       "Test Article",
		Content:     "body",
		Status:      domain.ArticleStatusPublished,
		PublishedAt: &now,
	}
}

func TestCommentService_CreateComment(t *testing.T) {
	articleID := uuid.New()
	parentID := uuid.New()
	userActor := &Actor{UserID: uuid.New(), Role: domain.UserRoleUser}
	adminActor := &Actor{UserID: uuid.New(), Role: domain.UserRoleAdmin}

	tests := []struct {
		name         string
		actor        *Actor
		req          *dto.CreateCommentRequest
		mockArticle  func(*MockArticleRepository)
		mockComment  func(*MockCommentRepository)
		wantErr      bool
		wantErrCode  string
		wantApproved bool
	}{
		{
			name:  "regular user comment lands in the moderation queue",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "Fascinating exhibit",
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.CreateFunc = func(ctx context.Context, comment *domain.Comment) error {
					comment.ID = uuid.New()
					comment.CreatedAt = time.Now()
					comment.UpdatedAt = time.Now()
					return nil
				}
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			wantApproved: false,
		},
		{
			name:  "admin comment is approved immediately",
			actor: adminActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "Curator's note",
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.CreateFunc = func(ctx context.Context, comment *domain.Comment) error {
					comment.ID = uuid.New()
					return nil
				}
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			wantApproved: true,
		},
		{
			name:  "anonymous caller is rejected",
			actor: nil,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "anonymous",
			},
			mockArticle: func(m *MockArticleRepository) {},
			mockComment: func(m *MockCommentRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeUnauthenticated,
		},
		{
			name:  "whitespace content fails validation",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "   \n\t  ",
			},
			mockArticle: func(m *MockArticleRepository) {},
			mockComment: func(m *MockCommentRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:  "content over the length cap fails validation",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   strings.Repeat("a", maxCommentLength+1),
			},
			mockArticle: func(m *MockArticleRepository) {},
			mockComment: func(m *MockCommentRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:  "commenting on a draft article reads as not found",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "too early",
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					article := publishedArticle(articleID)
					article.Status = domain.ArticleStatusDraft
					return article, nil
				}
			},
			mockComment: func(m *MockCommentRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeNotFound,
		},
		{
			name:  "missing article reads as not found",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "hello",
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			mockComment: func(m *MockCommentRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeNotFound,
		},
		{
			name:  "reply to an approved top-level comment succeeds",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "agreed",
				ParentID:  &parentID,
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
					if id == parentID {
						return &domain.Comment{
							BaseModel:  domain.BaseModel{ID: parentID},
							ArticleID:  articleID,
							IsApproved: true,
						}, nil
					}
					return nil, gorm.ErrRecordNotFound
				}
				m.CreateFunc = func(ctx context.Context, comment *domain.Comment) error {
					comment.ID = uuid.New()
					return nil
				}
			},
			wantApproved: false,
		},
		{
			name:  "reply to a reply is rejected",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "too deep",
				ParentID:  &parentID,
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				grandparent := uuid.New()
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
					return &domain.Comment{
						BaseModel:  domain.BaseModel{ID: parentID},
						ArticleID:  articleID,
						ParentID:   &grandparent,
						IsApproved: true,
					}, nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:  "reply to an unapproved parent is rejected",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "reply",
				ParentID:  &parentID,
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
					return &domain.Comment{
						BaseModel:  domain.BaseModel{ID: parentID},
						ArticleID:  articleID,
						IsApproved: false,
					}, nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:  "reply across articles is rejected",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "wrong thread",
				ParentID:  &parentID,
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
					return &domain.Comment{
						BaseModel:  domain.BaseModel{ID: parentID},
						ArticleID:  uuid.New(),
						IsApproved: true,
					}, nil
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeValidation,
		},
		{
			name:  "storage failure surfaces as storage error",
			actor: userActor,
			req: &dto.CreateCommentRequest{
				ArticleID: articleID,
				Content:   "hello",
			},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.CreateFunc = func(ctx context.Context, comment *domain.Comment) error {
					return errors.New("database error")
				}
			},
			wantErr:     true,
			wantErrCode: response.ErrCodeStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockArticleRepo := &MockArticleRepository{}
			mockCommentRepo := &MockCommentRepository{}
			tt.mockArticle(mockArticleRepo)
			tt.mockComment(mockCommentRepo)

			service := NewCommentService(mockCommentRepo, mockArticleRepo, nil, zap.NewNop())

			got, err := service.CreateComment(context.Background(), tt.actor, tt.req)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("CreateComment() error = nil, want code %v", tt.wantErrCode)
				}
				var appErr *response.AppError
				if errors.As(err, &appErr) && appErr.Code != tt.wantErrCode {
					t.Errorf("CreateComment() error code = %v, want %v", appErr.Code, tt.wantErrCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("CreateComment() unexpected error = %v", err)
			}
			if got == nil {
				t.Fatal("CreateComment() returned nil response")
			}
			if got.IsApproved != tt.wantApproved {
				t.Errorf("CreateComment() IsApproved = %v, want %v", got.IsApproved, tt.wantApproved)
			}
		})
	}
}

func TestCommentService_ListComments(t *testing.T) {
	articleID := uuid.New()

	tests := []struct {
		name        string
		actor       *Actor
		query       *dto.CommentListQuery
		mockArticle func(*MockArticleRepository)
		mockComment func(*MockCommentRepository)
		wantErr     bool
		wantErrCode string
		wantHasNext bool
		wantCount   int
	}{
		{
			name:  "lists approved comments with pagination",
			actor: nil,
			query: &dto.CommentListQuery{ListQuery: dto.ListQuery{Page: 1, Limit: 2}},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.ListApprovedByArticleFunc = func(ctx context.Context, aID uuid.UUID, sort string, offset, limit int) ([]*domain.Comment, int64, error) {
					return []*domain.Comment{
						{BaseModel: domain.BaseModel{ID: uuid.New()}, ArticleID: articleID, IsApproved: true, Content: "one"},
						{BaseModel: domain.BaseModel{ID: uuid.New()}, ArticleID: articleID, IsApproved: true, Content: "two"},
					}, 5, nil
				}
			},
			wantCount:   2,
			wantHasNext: true,
		},
		{
			name:  "last page has no next page",
			actor: nil,
			query: &dto.CommentListQuery{ListQuery: dto.ListQuery{Page: 3, Limit: 2}},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					return publishedArticle(articleID), nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.ListApprovedByArticleFunc = func(ctx context.Context, aID uuid.UUID, sort string, offset, limit int) ([]*domain.Comment, int64, error) {
					return []*domain.Comment{
						{BaseModel: domain.BaseModel{ID: uuid.New()}, ArticleID: articleID, IsApproved: true},
					}, 5, nil
				}
			},
			wantCount:   1,
			wantHasNext: false,
		},
		{
			name:  "anonymous listing on a draft article reads as not found",
			actor: nil,
			query: &dto.CommentListQuery{},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					article := publishedArticle(articleID)
					article.Status = domain.ArticleStatusDraft
					return article, nil
				}
			},
			mockComment: func(m *MockCommentRepository) {},
			wantErr:     true,
			wantErrCode: response.ErrCodeNotFound,
		},
		{
			name:  "admin can list comments on a draft article",
			actor: &Actor{UserID: uuid.New(), Role: domain.UserRoleAdmin},
			query: &dto.CommentListQuery{},
			mockArticle: func(m *MockArticleRepository) {
				m.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
					article := publishedArticle(articleID)
					article.Status = domain.ArticleStatusDraft
					return article, nil
				}
			},
			mockComment: func(m *MockCommentRepository) {
				m.ListApprovedByArticleFunc = func(ctx context.Context, aID uuid.UUID, sort string, offset, limit int) ([]*domain.Comment, int64, error) {
					return nil, 0, nil
				}
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockArticleRepo := &MockArticleRepository{}
			mockCommentRepo := &MockCommentRepository{}
			tt.mockArticle(mockArticleRepo)
			tt.mockComment(mockCommentRepo)

			service := NewCommentService(mockCommentRepo, mockArticleRepo, nil, zap.NewNop())

			got, err := service.ListComments(context.Background(), tt.actor, articleID, tt.query)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ListComments() error = nil, want code %v", tt.wantErrCode)
				}
				var appErr *response.AppError
				if errors.As(err, &appErr) && appErr.Code != tt.wantErrCode {
					t.Errorf("ListComments() error code = %v, want %v", appErr.Code, tt.wantErrCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("ListComments() unexpected error = %v", err)
			}
			if len(got.Comments) != tt.wantCount {
				t.Errorf("ListComments() returned %d comments, want %d", len(got.Comments), tt.wantCount)
			}
			if got.Pagination.HasNextPage != tt.wantHasNext {
				t.Errorf("ListComments() HasNextPage = %v, want %v", got.Pagination.HasNextPage, tt.wantHasNext)
			}
		})
	}
}

func TestCommentService_UpdateComment_Ownership(t *testing.T) {
	commentID := uuid.New()
	authorID := uuid.New()

	existing := func() *domain.Comment {
		return &domain.Comment{
			BaseModel:  domain.BaseModel{ID: commentID},
			ArticleID:  uuid.New(),
			UserID:     authorID,
			Content:    "original",
			IsApproved: true,
		}
	}

	tests := []struct {
		name        string
		actor       *Actor
		wantErr     bool
		wantErrCode string
	}{
		{
			name:  "author may edit",
			actor: &Actor{UserID: authorID, Role: domain.UserRoleUser},
		},
		{
			name:  "admin may edit",
			actor: &Actor{UserID: uuid.New(), Role: domain.UserRoleAdmin},
		},
		{
			name:        "stranger is forbidden",
			actor:       &Actor{UserID: uuid.New(), Role: domain.UserRoleUser},
			wantErr:     true,
			wantErrCode: response.ErrCodeForbidden,
		},
		{
			name:        "anonymous is unauthenticated",
			actor:       nil,
			wantErr:     true,
			wantErrCode: response.ErrCodeUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCommentRepo := &MockCommentRepository{
				FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
					return existing(), nil
				},
			}

			service := NewCommentService(mockCommentRepo, &MockArticleRepository{}, nil, zap.NewNop())

			got, err := service.UpdateComment(context.Background(), tt.actor, commentID, &dto.UpdateCommentRequest{Content: "edited"})

			if tt.wantErr {
				if err == nil {
					t.Fatalf("UpdateComment() error = nil, want code %v", tt.wantErrCode)
				}
				var appErr *response.AppError
				if errors.As(err, &appErr) && appErr.Code != tt.wantErrCode {
					t.Errorf("UpdateComment() error code = %v, want %v", appErr.Code, tt.wantErrCode)
				}
				return
			}

			if err != nil {
				t.Fatalf("UpdateComment() unexpected error = %v", err)
			}
			if got.Content != "edited" {
				t.Errorf("UpdateComment() Content = %v, want edited", got.Content)
			}
			// Editing never flips approval
			if !got.IsApproved {
				t.Error("UpdateComment() should preserve the approval state")
			}
		})
	}
}

func TestCommentService_ToggleLike(t *testing.T) {
	commentID := uuid.New()
	actor := &Actor{UserID: uuid.New(), Role: domain.UserRoleUser}

	approvedComment := func() *domain.Comment {
		return &domain.Comment{
			BaseModel:  domain.BaseModel{ID: commentID},
			ArticleID:  uuid.New(),
			UserID:     uuid.New(),
			IsApproved: true,
		}
	}

	t.Run("like then unlike", func(t *testing.T) {
		liked := false
		count := 0
		mockCommentRepo := &MockCommentRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
				return approvedComment(), nil
			},
			ToggleLikeFunc: func(ctx context.Context, cID, uID uuid.UUID) (bool, int, error) {
				liked = !liked
				if liked {
					count++
				} else {
					count--
				}
				return liked, count, nil
			},
		}

		service := NewCommentService(mockCommentRepo, &MockArticleRepository{}, nil, zap.NewNop())

		first, err := service.ToggleLike(context.Background(), actor, commentID)
		if err != nil {
			t.Fatalf("ToggleLike() unexpected error = %v", err)
		}
		if !first.Liked || first.LikeCount != 1 {
			t.Errorf("first toggle = (%v, %d), want (true, 1)", first.Liked, first.LikeCount)
		}

		second, err := service.ToggleLike(context.Background(), actor, commentID)
		if err != nil {
			t.Fatalf("ToggleLike() unexpected error = %v", err)
		}
		if second.Liked || second.LikeCount != 0 {
			t.Errorf("second toggle = (%v, %d), want (false, 0)", second.Liked, second.LikeCount)
		}
	})

	t.Run("unapproved comment reads as not found", func(t *testing.T) {
		mockCommentRepo := &MockCommentRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
				comment := approvedComment()
				comment.IsApproved = false
				return comment, nil
			},
		}

		service := NewCommentService(mockCommentRepo, &MockArticleRepository{}, nil, zap.NewNop())

		_, err := service.ToggleLike(context.Background(), actor, commentID)
		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeNotFound {
			t.Errorf("ToggleLike() error = %v, want NOT_FOUND", err)
		}
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		service := NewCommentService(&MockCommentRepository{}, &MockArticleRepository{}, nil, zap.NewNop())

		_, err := service.ToggleLike(context.Background(), nil, commentID)
		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeUnauthenticated {
			t.Errorf("ToggleLike() error = %v, want UNAUTHENTICATED", err)
		}
	})
}

func TestCommentService_ApproveComment(t *testing.T) {
	commentID := uuid.New()

	t.Run("admin approves a pending comment", func(t *testing.T) {
		approved := false
		mockCommentRepo := &MockCommentRepository{
			ApproveFunc: func(ctx context.Context, id uuid.UUID) error {
				approved = true
				return nil
			},
		}

		service := NewCommentService(mockCommentRepo, &MockArticleRepository{}, nil, zap.NewNop())

		got, err := service.ApproveComment(context.Background(), &Actor{UserID: uuid.New(), Role: domain.UserRoleAdmin}, commentID)
		if err != nil {
			t.Fatalf("ApproveComment() unexpected error = %v", err)
		}
		if !approved || !got.IsApproved {
			t.Error("ApproveComment() should mark the comment approved")
		}
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		service := NewCommentService(&MockCommentRepository{}, &MockArticleRepository{}, nil, zap.NewNop())

		_, err := service.ApproveComment(context.Background(), &Actor{UserID: uuid.New(), Role: domain.UserRoleContributor}, commentID)
		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeForbidden {
			t.Errorf("ApproveComment() error = %v, want FORBIDDEN", err)
		}
	})

	t.Run("missing comment reads as not found", func(t *testing.T) {
		mockCommentRepo := &MockCommentRepository{
			ApproveFunc: func(ctx context.Context, id uuid.UUID) error {
				return gorm.ErrRecordNotFound
			},
		}

		service := NewCommentService(mockCommentRepo, &MockArticleRepository{}, nil, zap.NewNop())

		_, err := service.ApproveComment(context.Background(), &Actor{UserID: uuid.New(), Role: domain.UserRoleAdmin}, commentID)
		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeNotFound {
			t.Errorf("ApproveComment() error = %v, want NOT_FOUND", err)
		}
	})
}

func TestCommentService_ListPendingComments(t *testing.T) {
	t.Run("admin sees the moderation queue", func(t *testing.T) {
		mockCommentRepo := &MockCommentRepository{
			ListPendingFunc: func(ctx context.Context) ([]*domain.Comment, error) {
				return []*domain.Comment{
					{
						BaseModel: domain.BaseModel{ID: uuid.New()},
						ArticleID: uuid.New(),
						UserID:    uuid.New(),
						Content:   "awaiting review",
						Article:   domain.Article{Title: "Exhibit Notes", Slug: "exhibit-notes"},
						User:      domain.User{DisplayName: "Visitor"},
					},
				}, nil
			},
		}

		service := NewCommentService(mockCommentRepo, &MockArticleRepository{}, nil, zap.NewNop())

		got, err := service.ListPendingComments(context.Background(), &Actor{UserID: uuid.New(), Role: domain.UserRoleAdmin})
		if err != nil {
			t.Fatalf("ListPendingComments() unexpected error = %v", err)
		}
		if got.Count != 1 || len(got.PendingComments) != 1 {
			t.Fatalf("ListPendingComments() Count = %d, want 1", got.Count)
		}
		if got.PendingComments[0].ArticleTitle != "Exhibit Notes" {
			t.Errorf("ListPendingComments() ArticleTitle = %v", got.PendingComments[0].ArticleTitle)
		}
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		service := NewCommentService(&MockCommentRepository{}, &MockArticleRepository{}, nil, zap.NewNop())

		_, err := service.ListPendingComments(context.Background(), &Actor{UserID: uuid.New(), Role: domain.UserRoleUser})
		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeForbidden {
			t.Errorf("ListPendingComments() error = %v, want FORBIDDEN", err)
		}
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	commentID := uuid.New()
	authorID := uuid.New()

	t.Run("author deletes own comment", func(t *testing.T) {
		deleted := false
		mockCommentRepo := &MockCommentRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
				return &domain.Comment{
					BaseModel: domain.BaseModel{ID: commentID},
					UserID:    authorID,
				}, nil
			},
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		}

		service := NewCommentService(mockCommentRepo, &MockArticleRepository{}, nil, zap.NewNop())

		err := service.DeleteComment(context.Background(), &Actor{UserID: authorID, Role: domain.UserRoleUser}, commentID)
		if err != nil {
			t.Fatalf("DeleteComment() unexpected error = %v", err)
		}
		if !deleted {
			t.Error("DeleteComment() should delete the comment")
		}
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		mockCommentRepo := &MockCommentRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
				return &domain.Comment{
					BaseModel: domain.BaseModel{ID: commentID},
					UserID:    authorID,
				}, nil
			},
		}

		service := NewCommentService(mockCommentRepo, &MockArticleRepository{}, nil, zap.NewNop())

		err := service.DeleteComment(context.Background(), &Actor{UserID: uuid.New(), Role: domain.UserRoleUser}, commentID)
		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.Code != response.ErrCodeForbidden {
			t.Errorf("DeleteComment() error = %v, want FORBIDDEN", err)
		}
	})
}
