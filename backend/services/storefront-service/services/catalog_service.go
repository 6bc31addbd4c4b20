package services

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
)

// CatalogCache is the read-through cache for public listings. Lookups
// report the cache version they saw; a miss is filled under that version.
// *cache.CatalogCache satisfies it.
type CatalogCache interface {
	GetProducts(ctx context.Context, category string) ([]models.Product, int64, bool)
	SetProductsAsync(version int64, category string, products []models.Product)
	GetActiveCategories(ctx context.Context) ([]models.Category, int64, bool)
	SetActiveCategoriesAsync(version int64, categories []models.Category)
	Invalidate(ctx context.Context) error
}

var errCategoryNotFound = apperrors.NotFound("Category not found")

// CatalogService manages products and categories.
type CatalogService interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	AdminListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, input *models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListActiveCategories(ctx context.Context) ([]models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input *models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, input *models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type catalogServiceImpl struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	cache      CatalogCache
	validator  *RequestValidator
	logger     *zap.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil.
func NewCatalogService(products repository.ProductRepo, categories repository.CategoryRepo, cache CatalogCache, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{
		products:   products,
		categories: categories,
		cache:      cache,
		validator:  NewRequestValidator(),
		logger:     logger,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	var version int64
	if s.cache != nil {
		var products []models.Product
		var ok bool
		if products, version, ok = s.cache.GetProducts(ctx, category); ok {
			return products, nil
		}
	}
	products, err := s.products.List(ctx, category)
	if err != nil {
		s.logger.Error("Failed to list products", zap.String("category", category), zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	if s.cache != nil {
		s.cache.SetProductsAsync(version, category, products)
	}
	return products, nil
}

func (s *catalogServiceImpl) AdminListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.List(ctx, "")
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, apperrors.ErrProductNotFound)
	}
	return product, nil
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	product, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, s.mapErr(err, apperrors.ErrProductNotFound)
	}
	s.logger.Info("Product created", zap.String("product_id", product.ID.Hex()), zap.String("category", product.Category))
	s.invalidate(ctx)
	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, id string, input *models.ProductInput) (*models.Product, error) {
	product, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	updated, err := s.products.Replace(ctx, id, product)
	if err != nil {
		return nil, s.mapErr(err, apperrors.ErrProductNotFound)
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return s.mapErr(err, apperrors.ErrProductNotFound)
	}
	s.logger.Info("Product deleted", zap.String("product_id", id))
	s.invalidate(ctx)
	return nil
}

// buildProduct validates input and resolves its category to the stored
// category's canonical name.
func (s *catalogServiceImpl) buildProduct(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	if input == nil {
		return nil, apperrors.ErrInvalidInput
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	if err := s.validator.Check(input, "Invalid product"); err != nil {
		return nil, err
	}
	if input.MRP != nil && *input.MRP < *input.Price {
		return nil, apperrors.BadRequest("MRP cannot be less than price")
	}

	category, err := s.categories.FindByName(ctx, input.Category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.BadRequest("Unknown category: " + input.Category)
		}
		return nil, s.mapErr(err, errCategoryNotFound)
	}

	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}
	return &models.Product{
		Name:          input.Name,
		Category:      category.Name,
		Image:         input.Image,
		Price:         *input.Price,
		MRP:           input.MRP,
		Weight:        input.Weight,
		Quantity:      input.Quantity,
		Description:   input.Description,
		InStock:       inStock,
		Recommended:   input.Recommended,
		PurchaseLimit: input.PurchaseLimit,
	}, nil
}

func (s *catalogServiceImpl) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	var version int64
	if s.cache != nil {
		var categories []models.Category
		var ok bool
		if categories, version, ok = s.cache.GetActiveCategories(ctx); ok {
			return categories, nil
		}
	}
	categories, err := s.categories.List(ctx, true)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	if s.cache != nil {
		s.cache.SetActiveCategoriesAsync(version, categories)
	}
	return categories, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx, false)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, input *models.CategoryInput) (*models.Category, error) {
	category, err := s.buildCategory(input)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, s.mapCategoryWriteErr(err)
	}
	s.logger.Info("Category created", zap.String("name", category.Name))
	s.invalidate(ctx)
	return category, nil
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, id string, input *models.CategoryInput) (*models.Category, error) {
	category, err := s.buildCategory(input)
	if err != nil {
		return nil, err
	}
	updated, err := s.categories.Replace(ctx, id, category)
	if err != nil {
		return nil, s.mapCategoryWriteErr(err)
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return s.mapErr(err, errCategoryNotFound)
	}
	s.logger.Info("Category deleted", zap.String("category_id", id))
	s.invalidate(ctx)
	return nil
}

func (s *catalogServiceImpl) buildCategory(input *models.CategoryInput) (*models.Category, error) {
	if input == nil {
		return nil, apperrors.ErrInvalidInput
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validator.Check(input, "Invalid category"); err != nil {
		return nil, err
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	return &models.Category{
		Name:         input.Name,
		Icon:         input.Icon,
		Image:        input.Image,
		DisplayOrder: input.DisplayOrder,
		IsActive:     active,
	}, nil
}

func (s *catalogServiceImpl) mapCategoryWriteErr(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.BadRequest("Category already exists")
	}
	return s.mapErr(err, errCategoryNotFound)
}

func (s *catalogServiceImpl) mapErr(err error, notFound *apperrors.Error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	s.logger.Error("Catalog persistence failed", zap.Error(err))
	return apperrors.Internal(err)
}

func (s *catalogServiceImpl) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Catalog cache invalidation failed", zap.Error(err))
	}
}
