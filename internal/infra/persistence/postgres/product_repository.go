package postgres

import (
	"context"
	"time"

	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	"easesupply/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// nearbySQL finds catalog entries within the radius of a point and the
// distance to each, nearest first. Coordinates are stored as plain
// decimal columns; the geography cast makes the distance metric meters.
const nearbySQL = `
SELECT
	p.id, p.name, p.description, p.price, p.seller_id,
	p.longitude, p.latitude, p.created_at, p.updated_at,
	u.id AS seller_user_id, u.first_name, u.last_name, u.email,
	ST_Distance(
		ST_SetSRID(ST_MakePoint(p.longitude, p.latitude), 4326)::geography,
		ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
	) AS distance
FROM products p
INNER JOIN users u ON u.id = p.seller_id
WHERE ST_DWithin(
	ST_SetSRID(ST_MakePoint(p.longitude, p.latitude), 4326)::geography,
	ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
	?
)
ORDER BY distance ASC`

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("seller does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidArgument.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a single product by its ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// ListBySeller retrieves every product a seller has listed, newest first.
func (repo *productRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products by seller")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// nearbyRow is the scan target for the proximity query.
type nearbyRow struct {
	ID           uuid.UUID `gorm:"column:id"`
	Name         string    `gorm:"column:name"`
	Description  string    `gorm:"column:description"`
	Price        float64   `gorm:"column:price"`
	SellerID     uuid.UUID `gorm:"column:seller_id"`
	Longitude    float64   `gorm:"column:longitude"`
	Latitude     float64   `gorm:"column:latitude"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
	SellerUserID uuid.UUID `gorm:"column:seller_user_id"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Email        string    `gorm:"column:email"`
	Distance     float64   `gorm:"column:distance"`
}

// FindNearby returns products within maxDistanceMeters of the point, nearest
// first, each annotated with its distance and the seller's public summary.
func (repo *productRepository) FindNearby(ctx context.Context, lat, lng, maxDistanceMeters float64) ([]*entity.NearbyProduct, error) {
	var rows []nearbyRow
	err := repo.db.WithContext(ctx).
		Raw(nearbySQL, lng, lat, lng, lat, maxDistanceMeters).
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to search nearby products")
	}

	results := make([]*entity.NearbyProduct, 0, len(rows))
	for _, row := range rows {
		results = append(results, &entity.NearbyProduct{
			Product: entity.Product{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				Price:       row.Price,
				SellerID:    row.SellerID,
				Location:    entity.NewGeoPoint(row.Longitude, row.Latitude),
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			},
			Distance: row.Distance,
			SellerInfo: &entity.UserSummary{
				ID:        row.SellerUserID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				Email:     row.Email,
			},
		})
	}

	return results, nil
}

// Update persists changes to an existing product record.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Save(productM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Delete removes a product listing.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// toProductDomain maps the persistence model back to a pure domain entity.
func toProductDomain(productM *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:          productM.ID,
		Name:        productM.Name,
		Description: productM.Description,
		Price:       productM.Price,
		SellerID:    productM.SellerID,
		Location:    entity.NewGeoPoint(productM.Longitude, productM.Latitude),
		Image:       productM.Image,
		CreatedAt:   productM.CreatedAt,
		UpdatedAt:   productM.UpdatedAt,
	}
}

// fromProductDomain maps a domain entity to its persistence model.
func fromProductDomain(product *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		SellerID:    product.SellerID,
		Longitude:   product.Location.Lng(),
		Latitude:    product.Location.Lat(),
		Image:       product.Image,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
