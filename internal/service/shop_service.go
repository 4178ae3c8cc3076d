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

// ShopService defines the interface for the archive shop business logic
type ShopService interface {
	CreateProduct(ctx context.Context, actor *Actor, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, actor *Actor, query *dto.ListQuery) (*dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, actor *Actor, id uuid.UUID) error
	PlaceOrder(ctx context.Context, actor *Actor, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.OrderResponse, error)
	ListMyOrders(ctx context.Context, actor *Actor, query *dto.ListQuery) (*dto.OrderListResponse, error)
	UpdateOrderStatus(ctx context.Context, actor *Actor, id uuid.UUID, status domain.OrderStatus) (*dto.OrderResponse, error)
}

// shopServiceImpl is the implementation of ShopService
type shopServiceImpl struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      *zap.Logger
}

// NewShopService creates a new instance of ShopService
func NewShopService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	logger *zap.Logger,
) ShopService {
	return &shopServiceImpl{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// CreateProduct adds a product to the shop. Admin only.
func (s *shopServiceImpl) CreateProduct(ctx context.Context, actor *Actor, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Only admins may manage products")
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    true,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, response.NewStorageError("Failed to create product", err)
	}

	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// GetProduct returns a single product
func (s *shopServiceImpl) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Product not found")
		}
		return nil, response.NewStorageError("Failed to fetch product", err)
	}

	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// ListProducts returns a page of products. Non-admins only see active ones.
func (s *shopServiceImpl) ListProducts(ctx context.Context, actor *Actor, query *dto.ListQuery) (*dto.ProductListResponse, error) {
	query.Normalize()

	products, total, err := s.productRepo.List(ctx, !actor.IsAdmin(), query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list products", err)
	}

	responses := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		responses[i] = dto.ToProductResponse(p)
	}
	return &dto.ProductListResponse{
		Products:   responses,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateProduct applies a partial update to a product. Admin only.
func (s *shopServiceImpl) UpdateProduct(ctx context.Context, actor *Actor, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Only admins may manage products")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Product not found")
		}
		return nil, response.NewStorageError("Failed to fetch product", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, response.NewStorageError("Failed to update product", err)
	}

	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// DeleteProduct soft deletes a product. Admin only. Existing order lines keep
// their captured price and name.
func (s *shopServiceImpl) DeleteProduct(ctx context.Context, actor *Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return response.NewForbiddenError("Only admins may manage products")
	}

	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Product not found")
		}
		return response.NewStorageError("Failed to fetch product", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return response.NewStorageError("Failed to delete product", err)
	}
	return nil
}

// PlaceOrder creates an order for the actor, capturing unit prices at order
// time and decrementing stock atomically. Ordering more than the remaining
// stock of any product fails the whole order.
func (s *shopServiceImpl) PlaceOrder(ctx context.Context, actor *Actor, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}

	// Collapse duplicate product lines before touching stock
	quantities := make(map[uuid.UUID]int, len(req.Items))
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		if _, seen := quantities[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, response.NewStorageError("Failed to fetch products", err)
	}
	if len(products) != len(ids) {
		return nil, response.NewNotFoundError("One or more products not found")
	}

	var total int64
	items := make([]domain.OrderItem, 0, len(ids))
	byID := make(map[uuid.UUID]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, id := range ids {
		product := byID[id]
		if !product.IsActive {
			return nil, response.NewNotFoundError("One or more products not found")
		}
		quantity := quantities[id]
		items = append(items, domain.OrderItem{
			ProductID: id,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * int64(quantity)
	}

	order := &domain.Order{
		UserID: actor.UserID,
		Status: domain.OrderStatusPending,
		Total:  total,
		Items:  items,
	}
	if err := s.orderRepo.CreateWithStock(ctx, order); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, response.NewAppError(response.ErrCodeConflict, "Insufficient stock for one or more products", "")
		}
		return nil, response.NewStorageError("Failed to place order", err)
	}

	if created, err := s.orderRepo.FindByID(ctx, order.ID); err == nil && created != nil {
		order = created
	}

	resp := dto.ToOrderResponse(order)
	return &resp, nil
}

// GetOrder returns a single order. Only the buyer and admins may view it.
func (s *shopServiceImpl) GetOrder(ctx context.Context, actor *Actor, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Order not found")
		}
		return nil, response.NewStorageError("Failed to fetch order", err)
	}
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	if !actor.IsAdmin() && actor.UserID != order.UserID {
		return nil, response.NewForbiddenError("Only the buyer or an admin may view this order")
	}

	resp := dto.ToOrderResponse(order)
	return &resp, nil
}

// ListMyOrders returns a page of the actor's own orders
func (s *shopServiceImpl) ListMyOrders(ctx context.Context, actor *Actor, query *dto.ListQuery) (*dto.OrderListResponse, error) {
	if actor == nil {
		return nil, response.NewAppError(response.ErrCodeUnauthenticated, "Authentication required", "")
	}
	query.Normalize()

	orders, total, err := s.orderRepo.ListByUser(ctx, actor.UserID, query.Offset(), query.Limit)
	if err != nil {
		return nil, response.NewStorageError("Failed to list orders", err)
	}

	responses := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = dto.ToOrderResponse(o)
	}
	return &dto.OrderListResponse{
		Orders:     responses,
		Pagination: dto.NewPagination(query.Page, query.Limit, total),
	}, nil
}

// UpdateOrderStatus moves an order through its lifecycle. Admin only.
func (s *shopServiceImpl) UpdateOrderStatus(ctx context.Context, actor *Actor, id uuid.UUID, status domain.OrderStatus) (*dto.OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("Only admins may update order status")
	}
	if !status.IsValid() {
		return nil, response.NewValidationError("Unknown order status")
	}

	// Cancelling returns the ordered quantities to stock; every other
	// transition only touches the status column.
	var err error
	if status == domain.OrderStatusCancelled {
		err = s.orderRepo.CancelWithRestock(ctx, id)
	} else {
		err = s.orderRepo.UpdateStatus(ctx, id, status)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("Order not found")
		}
		return nil, response.NewStorageError("Failed to update order status", err)
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, response.NewStorageError("Failed to fetch order", err)
	}

	resp := dto.ToOrderResponse(order)
	return &resp, nil
}
