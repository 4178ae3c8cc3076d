package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
)

// ErrInsufficientStock is returned when an order asks for more units than a
// product has left.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderRepository defines the interface for shop order data access
type OrderRepository interface {
	CreateWithStock(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	CancelWithRestock(ctx context.Context, id uuid.UUID) error
}

// orderRepositoryImpl is the GORM implementation of OrderRepository
type orderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepositoryImpl{db: db}
}

// CreateWithStock inserts the order and decrements the stock of every ordered
// product in one transaction. The guarded UPDATE keeps stock from going
// negative under concurrent orders; losing the guard rolls the whole order
// back with ErrInsufficientStock.
func (r *orderRepositoryImpl) CreateWithStock(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			result := tx.Model(&domain.Product{}).
				Where("id = ? AND is_active = ? AND stock >= ?", item.ProductID, true, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}
		return tx.Create(order).Error
	})
}

// FindByID finds an order by ID with its items and their products preloaded
func (r *orderRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns a page of the user's orders, newest first
func (r *orderRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*domain.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*domain.Order
	if err := query.
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus changes only the status of the order
func (r *orderRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CancelWithRestock marks the order cancelled and returns every ordered
// quantity to product stock in one transaction. The guarded UPDATE on the
// status column makes a repeated cancel a no-op instead of restocking twice.
func (r *orderRepositoryImpl) CancelWithRestock(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Order{}).
			Where("id = ? AND status <> ?", id, domain.OrderStatusCancelled).
			Update("status", domain.OrderStatusCancelled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			// Already cancelled, stock was restored the first time
			return nil
		}

		var items []domain.OrderItem
		if err := tx.Where("order_id = ?", id).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Model(&domain.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
