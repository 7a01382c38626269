package usecase

import (
	"context"

	"easesupply/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput carries the fields for a new catalog item. Image is the
// optional raw payload (base64 over the wire).
type CreateProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	SellerID    uuid.UUID       `json:"seller"`
	Location    entity.GeoPoint `json:"location"`
	Image       []byte          `json:"image,omitempty"`
}

// UpdateProductInput carries optional product edits. Nil fields are untouched.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *float64         `json:"price,omitempty"`
	Location    *entity.GeoPoint `json:"location,omitempty"`
	Image       []byte           `json:"image,omitempty"`
}

// ProductUsecase manages the product catalog and proximity discovery.
type ProductUsecase interface {
	// Create adds a product to the catalog on behalf of the actor, who must
	// be the owning seller.
	Create(ctx context.Context, actor *entity.User, input *CreateProductInput) (*entity.Product, error)

	// ListBySeller returns a seller's products, newest first.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)

	// FindNearby returns products within maxDistanceMeters of (lat, lng),
	// nearest first, joined with seller identity. maxDistanceMeters <= 0
	// falls back to the configured default radius.
	FindNearby(ctx context.Context, lat, lng, maxDistanceMeters float64) ([]*entity.NearbyProduct, error)

	// Update applies edits to a product owned by the actor.
	Update(ctx context.Context, actor *entity.User, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// Delete removes a product owned by the actor.
	Delete(ctx context.Context, actor *entity.User, productID uuid.UUID) error

	// QRCode renders the product's "scan to order" PNG.
	QRCode(ctx context.Context, productID uuid.UUID) ([]byte, error)
}
