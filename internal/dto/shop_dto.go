package dto

import (
	"time"

	"github.com/google/uuid"

	"heritage-archive-api/internal/domain"
)

// CreateProductRequest represents the admin request to add a shop product
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"omitempty"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Stock       int    `json:"stock" binding:"omitempty,min=0"`
}

// UpdateProductRequest is an explicit partial-update structure for products
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty" binding:"omitempty,min=1"`
	Stock       *int    `json:"stock,omitempty" binding:"omitempty,min=0"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ProductResponse represents a shop product
type ProductResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductListResponse represents a page of products
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}

// OrderItemRequest is one line of an order request
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents the request to place an order
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents the admin request to move an order
// through its lifecycle
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required,oneof=pending paid shipped cancelled"`
}

// OrderItemResponse represents one line of an order
type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
}

// OrderResponse represents an order
type OrderResponse struct {
	OrderID   uuid.UUID           `json:"orderId"`
	UserID    uuid.UUID           `json:"userId"`
	Status    domain.OrderStatus  `json:"status"`
	Total     int64               `json:"total"`
	Items     []OrderItemResponse `json:"items"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// OrderListResponse represents a page of orders
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Pagination Pagination      `json:"pagination"`
}

// ToProductResponse converts a domain product to its response shape
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToOrderResponse converts a domain order to its response shape
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := o.Items[i]
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return OrderResponse{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		Total:     o.Total,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
