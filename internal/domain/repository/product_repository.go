package repository

import (
	"context"

	"easesupply/internal/domain/entity"
	"easesupply/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product does not exist in the store.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the persistence boundary for the product catalog.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// ListBySeller returns a seller's products, newest first. A nil seller
	// id returns the whole catalog.
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error)

	// FindNearby returns products within maxDistanceMeters of the query
	// point, each joined with its seller summary and carrying the computed
	// great-circle distance in meters, sorted ascending by distance.
	FindNearby(ctx context.Context, lat, lng, maxDistanceMeters float64) ([]*entity.NearbyProduct, error)

	// Update persists changes to an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by id.
	Delete(ctx context.Context, id uuid.UUID) error
}
