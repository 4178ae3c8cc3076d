package domain

import "github.com/google/uuid"

// Product represents an item sold in the archive shop
type Product struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	Stock       int    `gorm:"not null;default:0" json:"stock"`
	ImageKey    string `gorm:"type:text" json:"image_key,omitempty"`
	IsActive    bool   `gorm:"not null;default:true;index:idx_products_is_active" json:"is_active"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// OrderStatus represents the status of a shop order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a shop order placed by a user
type Order struct {
	BaseModel
	UserID uuid.UUID   `gorm:"type:uuid;not null;index:idx_orders_user_id" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_orders_status" json:"status"`
	Total  int64       `gorm:"not null" json:"total"`
	User   User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items  []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents a line item within an order. UnitPrice is the product
// price captured at order time so later price changes do not rewrite history.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_order_items_order_id" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_order_items_product_id" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice int64     `gorm:"not null" json:"unit_price"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName specifies the table name for OrderItem
func (OrderItem) TableName() string {
	return "order_items"
}
