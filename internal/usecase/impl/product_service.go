package impl

import (
	"context"
	"strings"

	"easesupply/config"
	"easesupply/internal/domain/entity"
	domainerrors "easesupply/internal/domain/errors"
	"easesupply/internal/domain/repository"
	"easesupply/internal/domain/service"
	"easesupply/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultRadiusMeters = 5000.0
	maxRadiusMeters     = 50000.0
)

type productService struct {
	productRepo   repository.ProductRepository
	qrcodeService service.QRCodeService
	config        *config.Config
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo   repository.ProductRepository
	QRCodeService service.QRCodeService
	Config        *config.Config
}

// NewProductService creates a new product service instance
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo:   params.ProductRepo,
		qrcodeService: params.QRCodeService,
		config:        params.Config,
	}
}

// Create lists a product on behalf of the actor, who must be a distributor
// listing under their own account.
func (s *productService) Create(ctx context.Context, actor *entity.User, input *usecase.CreateProductInput) (*entity.Product, error) {
	if actor == nil || actor.Role == nil || *actor.Role != entity.RoleDistributor {
		return nil, domainerrors.ErrPermissionDenied.WithDetails("only distributors can list products")
	}
	if input.SellerID != uuid.Nil && input.SellerID != actor.ID {
		return nil, domainerrors.ErrPermissionDenied.WithDetails("cannot list products for another seller")
	}
	if maxImage := s.maxImageBytes(); maxImage > 0 && len(input.Image) > maxImage {
		return nil, domainerrors.ErrInvalidArgument.WithDetails("product image exceeds size limit")
	}

	product := &entity.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		SellerID:    actor.ID,
		Location:    input.Location,
		Image:       input.Image,
	}

	if err := product.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidArgument.WithDetails(err.Error())
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ListBySeller returns a seller's products, newest first.
func (s *productService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	products, err := s.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products by seller")
	}

	return products, nil
}

// FindNearby returns products within the radius of the query point, nearest
// first. A non-positive radius falls back to the configured default, and
// every radius is clamped to the configured maximum.
func (s *productService) FindNearby(ctx context.Context, lat, lng, maxDistanceMeters float64) ([]*entity.NearbyProduct, error) {
	point := entity.NewGeoPoint(lng, lat)
	if err := point.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidCoordinates.WithDetails(err.Error())
	}

	radius := maxDistanceMeters
	if radius <= 0 {
		radius = s.defaultRadius()
	}
	if maxRadius := s.maxRadius(); radius > maxRadius {
		radius = maxRadius
	}

	results, err := s.productRepo.FindNearby(ctx, lat, lng, radius)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Update applies edits to a product owned by the actor.
func (s *productService) Update(ctx context.Context, actor *entity.User, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := s.findOwnedProduct(ctx, actor, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Location != nil {
		product.Location = *input.Location
	}
	if input.Image != nil {
		if maxImage := s.maxImageBytes(); maxImage > 0 && len(input.Image) > maxImage {
			return nil, domainerrors.ErrInvalidArgument.WithDetails("product image exceeds size limit")
		}
		product.Image = input.Image
	}

	if err := product.Validate(); err != nil {
		return nil, domainerrors.ErrInvalidArgument.WithDetails(err.Error())
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Delete removes a product owned by the actor.
func (s *productService) Delete(ctx context.Context, actor *entity.User, productID uuid.UUID) error {
	if _, err := s.findOwnedProduct(ctx, actor, productID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return err
	}

	return nil
}

// QRCode renders the product's "scan to order" PNG.
func (s *productService) QRCode(ctx context.Context, productID uuid.UUID) ([]byte, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to load product for QR code")
	}

	png, err := s.qrcodeService.GenerateProductQRCode(product.ID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate product QR code")
	}

	return png, nil
}

// findOwnedProduct loads the product and checks the actor owns it.
func (s *productService) findOwnedProduct(ctx context.Context, actor *entity.User, productID uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if actor == nil || product.SellerID != actor.ID {
		return nil, domainerrors.ErrPermissionDenied.WithDetails("product belongs to another seller")
	}

	return product, nil
}

func (s *productService) defaultRadius() float64 {
	if s.config != nil && s.config.Marketplace != nil && s.config.Marketplace.DefaultRadiusMeters > 0 {
		return s.config.Marketplace.DefaultRadiusMeters
	}

	return defaultRadiusMeters
}

func (s *productService) maxRadius() float64 {
	if s.config != nil && s.config.Marketplace != nil && s.config.Marketplace.MaxRadiusMeters > 0 {
		return s.config.Marketplace.MaxRadiusMeters
	}

	return maxRadiusMeters
}

func (s *productService) maxImageBytes() int {
	if s.config != nil && s.config.Marketplace != nil {
		return s.config.Marketplace.MaxImageBytes
	}

	return 0
}
