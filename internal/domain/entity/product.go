// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"easesupply/internal/errors"

	"github.com/google/uuid"
)

// Product is a sellable item owned by exactly one distributor. The stored
// location is where the stock physically sits and drives proximity search.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	SellerID    uuid.UUID `json:"seller"`
	Location    GeoPoint  `json:"location"`
	Image       []byte    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate enforces the catalog invariants: a name, a strictly positive
// price and a valid coordinate pair.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if p.Price <= 0 {
		return errors.New("product price must be positive")
	}
	if p.SellerID == uuid.Nil {
		return errors.New("product seller is required")
	}

	return p.Location.Validate()
}

// NearbyProduct is a proximity-search result: the product joined with its
// seller's identity and the great-circle distance in meters from the query point.
type NearbyProduct struct {
	Product
	Distance   float64      `json:"distance"`
	SellerInfo *UserSummary `json:"sellerInfo"`
}
