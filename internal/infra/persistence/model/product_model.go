package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. The coordinate pair is stored as
// plain columns; geographic queries build PostGIS points from them on the fly.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:decimal(12,2);not null"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_products_on_seller"`
	Longitude   float64   `gorm:"type:decimal(11,8);not null"`
	Latitude    float64   `gorm:"type:decimal(10,8);not null"`
	Image       []byte    `gorm:"type:bytea"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Seller *UserModel `gorm:"foreignKey:SellerID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
