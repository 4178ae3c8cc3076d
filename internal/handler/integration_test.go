package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/service"
)

// setupIntegrationTestDB creates an in-memory SQLite database for integration
// testing
func setupIntegrationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "Failed to connect to test database")

	// Register callback to generate UUIDs since SQLite has no gen_random_uuid().
	// Batch creates (nested association inserts) arrive as a slice, so each
	// element gets its own ID.
	db.Callback().Create().Before("gorm:create").Register("generate_uuid", func(db *gorm.DB) {
		if db.Statement.Schema == nil {
			return
		}
		fill := func(rv reflect.Value) {
			for _, field := range db.Statement.Schema.PrimaryFields {
				if field.DataType == "uuid" {
					fieldValue := field.ReflectValueOf(db.Statement.Context, rv)
					if fieldValue.IsZero() {
						field.Set(db.Statement.Context, rv, uuid.New())
					}
				}
			}
		}
		switch db.Statement.ReflectValue.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < db.Statement.ReflectValue.Len(); i++ {
				fill(db.Statement.ReflectValue.Index(i))
			}
		default:
			fill(db.Statement.ReflectValue)
		}
	})

	// Tables are created by hand for SQLite compatibility
	statements := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			display_name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			locale TEXT NOT NULL DEFAULT 'en',
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE articles (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			author_id TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			summary TEXT,
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			comment_count INTEGER NOT NULL DEFAULT 0,
			view_count INTEGER NOT NULL DEFAULT 0,
			published_at DATETIME
		)`,
		`CREATE TABLE comments (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			article_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			parent_id TEXT,
			content TEXT NOT NULL,
			is_approved INTEGER NOT NULL DEFAULT 0,
			like_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE comment_likes (
			id TEXT PRIMARY KEY,
			comment_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE(comment_id, user_id)
		)`,
		`CREATE TABLE products (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			name TEXT NOT NULL,
			description TEXT,
			price INTEGER NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			image_key TEXT,
			is_active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			deleted_at DATETIME,
			user_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			total INTEGER NOT NULL
		)`,
		`CREATE TABLE order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price INTEGER NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error, "Failed to create table")
	}

	return db
}

// setupIntegrationRouter creates a router with real services and repositories.
// A test middleware reads the identity from headers in place of the JWT
// middleware.
func setupIntegrationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		if userIDStr := c.GetHeader("X-User-ID"); userIDStr != "" {
			if userID, err := uuid.Parse(userIDStr); err == nil {
				c.Set("user_id", userID)
				role := domain.UserRole(c.GetHeader("X-User-Role"))
				if !role.IsValid() {
					role = domain.UserRoleUser
				}
				c.Set("user_role", role)
			}
		}
		c.Next()
	})

	logger := zap.NewNop()

	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	articleService := service.NewArticleService(articleRepo, nil, nil, logger)
	commentService := service.NewCommentService(commentRepo, articleRepo, nil, logger)
	shopService := service.NewShopService(productRepo, orderRepo, logger)

	articleHandler := NewArticleHandler(articleService)
	commentHandler := NewCommentHandler(commentService)
	shopHandler := NewShopHandler(shopService)

	api := router.Group("/api/archive")
	{
		articles := api.Group("/articles")
		{
			articles.POST("", articleHandler.CreateArticle)
			articles.GET("", articleHandler.ListArticles)
			articles.GET("/:articleId", articleHandler.GetArticle)
			articles.GET("/slug/:slug", articleHandler.GetArticleBySlug)
			articles.PUT("/:articleId", articleHandler.UpdateArticle)
			articles.POST("/:articleId/publish", articleHandler.PublishArticle)
			articles.POST("/:articleId/archive", articleHandler.ArchiveArticle)
			articles.DELETE("/:articleId", articleHandler.DeleteArticle)
			articles.GET("/:articleId/comments", commentHandler.ListComments)
		}

		comments := api.Group("/comments")
		{
			comments.POST("", commentHandler.CreateComment)
			comments.PUT("/:commentId", commentHandler.UpdateComment)
			comments.DELETE("/:commentId", commentHandler.DeleteComment)
			comments.POST("/:commentId/like", commentHandler.ToggleLike)
			comments.PUT("/:commentId/approve", commentHandler.ApproveComment)
			comments.GET("/pending", commentHandler.ListPendingComments)
		}

		products := api.Group("/products")
		{
			products.POST("", shopHandler.CreateProduct)
			products.GET("", shopHandler.ListProducts)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", shopHandler.PlaceOrder)
			orders.GET("/:orderId", shopHandler.GetOrder)
			orders.PATCH("/:orderId/status", shopHandler.UpdateOrderStatus)
		}
	}

	return router
}

func createIntegrationUser(t *testing.T, db *gorm.DB, role domain.UserRole) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		DisplayName:  "Integration " + string(role),
		Role:         role,
		Locale:       "en",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPublishedArticle(t *testing.T, db *gorm.DB, authorID uuid.UUID) *domain.Article {
	t.Helper()

	article := &domain.Article{
		AuthorID: authorID,
		Slug:     uuid.NewString(),
		Title:    "Published Article",
		Content:  "body",
		Status:   domain.ArticleStatusPublished,
	}
	require.NoError(t, db.Create(article).Error)
	return article
}

// doJSON performs a request with an optional JSON body and identity headers
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("X-User-ID", user.ID.String())
		req.Header.Set("X-User-Role", string(user.Role))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestIntegration_ArticleLifecycle(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router := setupIntegrationRouter(db)

	contributor := createIntegrationUser(t, db, domain.UserRoleContributor)
	reader := createIntegrationUser(t, db, domain.UserRoleUser)

	// Contributor drafts an article
	w := doJSON(t, router, http.MethodPost, "/api/archive/articles", dto.CreateArticleRequest{
		Title:   "Restoring the Mill",
		Slug:    "restoring-the-mill",
		Summary: "Notes from the restoration",
		Content: "Full text of the article",
	}, contributor)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.ArticleResponse
	decodeBody(t, w, &created)
	assert.Equal(t, domain.ArticleStatusDraft, created.Status)

	// Readers cannot create articles
	w = doJSON(t, router, http.MethodPost, "/api/archive/articles", dto.CreateArticleRequest{
		Title:   "Nope",
		Slug:    "nope",
		Content: "x",
	}, reader)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The draft is invisible to other users
	w = doJSON(t, router, http.MethodGet, "/api/archive/articles/"+created.ArticleID.String(), nil, reader)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Publish and read by slug
	w = doJSON(t, router, http.MethodPost, "/api/archive/articles/"+created.ArticleID.String()+"/publish", nil, contributor)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var published dto.ArticleResponse
	decodeBody(t, w, &published)
	assert.Equal(t, domain.ArticleStatusPublished, published.Status)
	assert.NotNil(t, published.PublishedAt)

	w = doJSON(t, router, http.MethodGet, "/api/archive/articles/slug/restoring-the-mill", nil, reader)
	require.Equal(t, http.StatusOK, w.Code)

	// Duplicate slugs are rejected
	w = doJSON(t, router, http.MethodPost, "/api/archive/articles", dto.CreateArticleRequest{
		Title:   "Another Mill",
		Slug:    "restoring-the-mill",
		Content: "x",
	}, contributor)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Only the author or an admin may archive
	w = doJSON(t, router, http.MethodPost, "/api/archive/articles/"+created.ArticleID.String()+"/archive", nil, reader)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/archive/articles/"+created.ArticleID.String()+"/archive", nil, contributor)
	require.Equal(t, http.StatusOK, w.Code)

	var archived dto.ArticleResponse
	decodeBody(t, w, &archived)
	assert.Equal(t, domain.ArticleStatusArchived, archived.Status)
}

func TestIntegration_CommentModerationFlow(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router := setupIntegrationRouter(db)

	admin := createIntegrationUser(t, db, domain.UserRoleAdmin)
	contributor := createIntegrationUser(t, db, domain.UserRoleContributor)
	visitor := createIntegrationUser(t, db, domain.UserRoleUser)
	article := createPublishedArticle(t, db, contributor.ID)

	// Anonymous callers cannot comment
	w := doJSON(t, router, http.MethodPost, "/api/archive/comments", dto.CreateCommentRequest{
		ArticleID: article.ID,
		Content:   "anonymous",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A visitor's comment lands in the moderation queue
	w = doJSON(t, router, http.MethodPost, "/api/archive/comments", dto.CreateCommentRequest{
		ArticleID: article.ID,
		Content:   "What a story",
	}, visitor)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var pending dto.CommentResponse
	decodeBody(t, w, &pending)
	assert.False(t, pending.IsApproved)

	// Hidden from the public listing until approved
	w = doJSON(t, router, http.MethodGet, "/api/archive/articles/"+article.ID.String()+"/comments", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list dto.CommentListResponse
	decodeBody(t, w, &list)
	assert.Len(t, list.Comments, 0)

	// Only admins see the moderation queue
	w = doJSON(t, router, http.MethodGet, "/api/archive/comments/pending", nil, visitor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/archive/comments/pending", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	var queue dto.PendingCommentListResponse
	decodeBody(t, w, &queue)
	require.Equal(t, 1, queue.Count)
	assert.Equal(t, pending.CommentID, queue.PendingComments[0].CommentID)
	assert.Equal(t, article.Title, queue.PendingComments[0].ArticleTitle)

	// Approval is admin only
	w = doJSON(t, router, http.MethodPut, "/api/archive/comments/"+pending.CommentID.String()+"/approve", nil, visitor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/archive/comments/"+pending.CommentID.String()+"/approve", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	// Now visible to everyone
	w = doJSON(t, router, http.MethodGet, "/api/archive/articles/"+article.ID.String()+"/comments", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &list)
	require.Len(t, list.Comments, 1)
	assert.True(t, list.Comments[0].IsApproved)

	// Admin comments skip the queue entirely
	w = doJSON(t, router, http.MethodPost, "/api/archive/comments", dto.CreateCommentRequest{
		ArticleID: article.ID,
		Content:   "Editor's note",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code)

	var adminComment dto.CommentResponse
	decodeBody(t, w, &adminComment)
	assert.True(t, adminComment.IsApproved)
}

func TestIntegration_CommentRepliesAndLikes(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router := setupIntegrationRouter(db)

	admin := createIntegrationUser(t, db, domain.UserRoleAdmin)
	visitor := createIntegrationUser(t, db, domain.UserRoleUser)
	article := createPublishedArticle(t, db, admin.ID)

	w := doJSON(t, router, http.MethodPost, "/api/archive/comments", dto.CreateCommentRequest{
		ArticleID: article.ID,
		Content:   "Top level",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code)

	var top dto.CommentResponse
	decodeBody(t, w, &top)

	// Reply to the approved top-level comment
	w = doJSON(t, router, http.MethodPost, "/api/archive/comments", dto.CreateCommentRequest{
		ArticleID: article.ID,
		Content:   "A reply",
		ParentID:  &top.CommentID,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code)

	var reply dto.CommentResponse
	decodeBody(t, w, &reply)

	// Replies to replies are rejected, threads stay one level deep
	w = doJSON(t, router, http.MethodPost, "/api/archive/comments", dto.CreateCommentRequest{
		ArticleID: article.ID,
		Content:   "Too deep",
		ParentID:  &reply.CommentID,
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Like, then unlike
	w = doJSON(t, router, http.MethodPost, "/api/archive/comments/"+top.CommentID.String()+"/like", nil, visitor)
	require.Equal(t, http.StatusOK, w.Code)

	var toggled dto.ToggleLikeResponse
	decodeBody(t, w, &toggled)
	assert.True(t, toggled.Liked)
	assert.Equal(t, 1, toggled.LikeCount)

	w = doJSON(t, router, http.MethodPost, "/api/archive/comments/"+top.CommentID.String()+"/like", nil, visitor)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &toggled)
	assert.False(t, toggled.Liked)
	assert.Equal(t, 0, toggled.LikeCount)

	// Strangers cannot delete someone else's comment
	w = doJSON(t, router, http.MethodDelete, "/api/archive/comments/"+top.CommentID.String(), nil, visitor)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Deleting the parent removes the reply too
	w = doJSON(t, router, http.MethodDelete, "/api/archive/comments/"+top.CommentID.String(), nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var article2 domain.Article
	require.NoError(t, db.First(&article2, article.ID).Error)
	assert.Equal(t, 0, article2.CommentCount)
}

func TestIntegration_OrderStockConflict(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router := setupIntegrationRouter(db)

	admin := createIntegrationUser(t, db, domain.UserRoleAdmin)
	buyer := createIntegrationUser(t, db, domain.UserRoleUser)

	w := doJSON(t, router, http.MethodPost, "/api/archive/products", dto.CreateProductRequest{
		Name:  "Archive Postcard Set",
		Price: 1200,
		Stock: 3,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product dto.ProductResponse
	decodeBody(t, w, &product)

	// First order takes most of the stock
	w = doJSON(t, router, http.MethodPost, "/api/archive/orders", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
	}, buyer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order dto.OrderResponse
	decodeBody(t, w, &order)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2400), order.Total)

	// Second order asks for more than what is left and fails whole
	w = doJSON(t, router, http.MethodPost, "/api/archive/orders", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
	}, buyer)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Stock reflects only the successful order
	var stored domain.Product
	require.NoError(t, db.First(&stored, product.ProductID).Error)
	assert.Equal(t, 1, stored.Stock)

	// Status updates are admin only
	path := fmt.Sprintf("/api/archive/orders/%s/status", order.OrderID)
	w = doJSON(t, router, http.MethodPatch, path, dto.UpdateOrderStatusRequest{Status: domain.OrderStatusPaid}, buyer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPatch, path, dto.UpdateOrderStatusRequest{Status: domain.OrderStatusPaid}, admin)
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.OrderResponse
	decodeBody(t, w, &updated)
	assert.Equal(t, domain.OrderStatusPaid, updated.Status)
}

func TestIntegration_OrderCancelRestoresStock(t *testing.T) {
	db := setupIntegrationTestDB(t)
	router := setupIntegrationRouter(db)

	admin := createIntegrationUser(t, db, domain.UserRoleAdmin)
	buyer := createIntegrationUser(t, db, domain.UserRoleUser)

	w := doJSON(t, router, http.MethodPost, "/api/archive/products", dto.CreateProductRequest{
		Name:  "Replica Amphora",
		Price: 4500,
		Stock: 5,
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product dto.ProductResponse
	decodeBody(t, w, &product)

	w = doJSON(t, router, http.MethodPost, "/api/archive/orders", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
	}, buyer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order dto.OrderResponse
	decodeBody(t, w, &order)

	var stored domain.Product
	require.NoError(t, db.First(&stored, product.ProductID).Error)
	require.Equal(t, 3, stored.Stock)

	path := fmt.Sprintf("/api/archive/orders/%s/status", order.OrderID)
	w = doJSON(t, router, http.MethodPatch, path, dto.UpdateOrderStatusRequest{Status: domain.OrderStatusCancelled}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cancelled dto.OrderResponse
	decodeBody(t, w, &cancelled)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)

	// The ordered quantity is back on the shelf
	require.NoError(t, db.First(&stored, product.ProductID).Error)
	assert.Equal(t, 5, stored.Stock, "cancelling the order must restore stock")

	// Cancelling again does not restock twice
	w = doJSON(t, router, http.MethodPatch, path, dto.UpdateOrderStatusRequest{Status: domain.OrderStatusCancelled}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&stored, product.ProductID).Error)
	assert.Equal(t, 5, stored.Stock)
}
