package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. SellerID duplicates the product's
// seller at creation time and is never resynced.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_on_product"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_on_buyer"`
	SellerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_on_seller"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID"`
	Buyer   *UserModel    `gorm:"foreignKey:BuyerID"`
	Seller  *UserModel    `gorm:"foreignKey:SellerID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
