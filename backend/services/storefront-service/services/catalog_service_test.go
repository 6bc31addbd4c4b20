package services_test

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCatalogCache keeps only entries for the current version. Writes for
// an older version are counted and dropped.
type fakeCatalogCache struct {
	version     int64
	products    map[string][]models.Product
	categories  []models.Category
	invalidated int
	staleWrites int
}

func (c *fakeCatalogCache) current() int64 {
	if c.version == 0 {
		c.version = 1
	}
	return c.version
}

func (c *fakeCatalogCache) GetProducts(_ context.Context, category string) ([]models.Product, int64, bool) {
	p, ok := c.products[category]
	return p, c.current(), ok
}

func (c *fakeCatalogCache) SetProductsAsync(version int64, category string, products []models.Product) {
	if version != c.current() {
		c.staleWrites++
		return
	}
	if c.products == nil {
		c.products = map[string][]models.Product{}
	}
	c.products[category] = products
}

func (c *fakeCatalogCache) GetActiveCategories(_ context.Context) ([]models.Category, int64, bool) {
	return c.categories, c.current(), c.categories != nil
}

func (c *fakeCatalogCache) SetActiveCategoriesAsync(version int64, categories []models.Category) {
	if version != c.current() {
		c.staleWrites++
		return
	}
	c.categories = categories
}

func (c *fakeCatalogCache) Invalidate(_ context.Context) error {
	c.version = c.current() + 1
	c.products = nil
	c.categories = nil
	c.invalidated++
	return nil
}

// listHookRepo runs onList while a listing is being loaded.
type listHookRepo struct {
	*fakeProductRepo
	onList func()
}

func (r *listHookRepo) List(ctx context.Context, category string) ([]models.Product, error) {
	out, err := r.fakeProductRepo.List(ctx, category)
	if r.onList != nil {
		r.onList()
	}
	return out, err
}

func TestCreateProduct_CanonicalizesCategory(t *testing.T) {
	products := newFakeProductRepo()
	svc := services.NewCatalogService(products, newFakeCategoryRepo("Dairy", "Food"), nil, zap.NewNop())

	p, err := svc.CreateProduct(context.Background(), &models.ProductInput{
		Name:     "  Milk ",
		Category: "dairy",
		Price:    ptr(30.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Milk", p.Name)
	assert.Equal(t, "Dairy", p.Category)
	assert.True(t, p.InStock)
	assert.Nil(t, p.PurchaseLimit)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := services.NewCatalogService(newFakeProductRepo(), newFakeCategoryRepo("Dairy"), nil, zap.NewNop())

	tests := []struct {
		name  string
		input *models.ProductInput
		msg   string
	}{
		{"unknown category", &models.ProductInput{Name: "Milk", Category: "Beverages", Price: ptr(30.0)}, "Unknown category: Beverages"},
		{"missing price", &models.ProductInput{Name: "Milk", Category: "Dairy"}, "Invalid product: price is required"},
		{"missing name", &models.ProductInput{Name: "  ", Category: "Dairy", Price: ptr(30.0)}, "Invalid product: name is required"},
		{"mrp below price", &models.ProductInput{Name: "Milk", Category: "Dairy", Price: ptr(30.0), MRP: ptr(20.0)}, "MRP cannot be less than price"},
		{"negative price", &models.ProductInput{Name: "Milk", Category: "Dairy", Price: ptr(-5.0)}, "Invalid product: price must satisfy gte=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.input)
			appErr := apperrors.As(err)
			assert.Equal(t, 400, appErr.Code)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
}

func TestUpdateDeleteProduct_NotFound(t *testing.T) {
	svc := services.NewCatalogService(newFakeProductRepo(), newFakeCategoryRepo("Dairy"), nil, zap.NewNop())

	_, err := svc.UpdateProduct(context.Background(), "missing", &models.ProductInput{Name: "Milk", Category: "Dairy", Price: ptr(1.0)})
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), "missing"), apperrors.ErrProductNotFound)
	_, err = svc.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
}

// A product goes out of stock after being listed; orders naming it are refused.
func TestMilkOutOfStockRejectsOrder(t *testing.T) {
	ctx := context.Background()
	products := newFakeProductRepo()
	catalog := services.NewCatalogService(products, newFakeCategoryRepo("Dairy"), nil, zap.NewNop())
	orders := newFakeOrderRepo()
	orderSvc := services.NewOrderService(orders, products, nil, nil, nil, services.OrderPolicy{}, time.UTC, zap.NewNop())

	milk, err := catalog.CreateProduct(ctx, &models.ProductInput{Name: "Milk", Category: "Dairy", Price: ptr(30.0)})
	require.NoError(t, err)

	listed, err := catalog.ListProducts(ctx, "Dairy")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Milk", listed[0].Name)

	_, err = catalog.UpdateProduct(ctx, milk.ID.Hex(), &models.ProductInput{
		Name: "Milk", Category: "Dairy", Price: ptr(30.0), InStock: ptr(false),
	})
	require.NoError(t, err)

	_, err = orderSvc.CreateOrder(ctx, "u1", &models.CreateOrderRequest{
		Items:           []models.LineItem{{ProductID: milk.ID.Hex(), Name: "Milk", Price: 30, Quantity: 1}},
		Total:           30,
		ShippingAddress: testAddress(),
	})
	appErr := apperrors.As(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "Milk")
	assert.Equal(t, 0, orders.created)
}

func TestCatalogCache_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := &fakeCatalogCache{}
	svc := services.NewCatalogService(newFakeProductRepo(), newFakeCategoryRepo("Dairy"), cache, zap.NewNop())

	first, err := svc.ListActiveCategories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Len(t, cache.categories, 1)

	_, err = svc.CreateProduct(ctx, &models.ProductInput{Name: "Paneer", Category: "Dairy", Price: ptr(80.0)})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)
	assert.Nil(t, cache.categories)

	cache.products = map[string][]models.Product{"": {{Name: "From cache"}}}
	listed, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "From cache", listed[0].Name)
}

func TestCatalogCache_ListingLoadedBeforeInvalidateIsNotCached(t *testing.T) {
	ctx := context.Background()
	cache := &fakeCatalogCache{}
	products := &listHookRepo{fakeProductRepo: newFakeProductRepo(models.Product{Name: "Old Paneer", Category: "Dairy"})}
	products.onList = func() { _ = cache.Invalidate(ctx) }
	svc := services.NewCatalogService(products, newFakeCategoryRepo("Dairy"), cache, zap.NewNop())

	listed, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	assert.Equal(t, 1, cache.staleWrites)
	assert.Nil(t, cache.products)

	products.onList = nil
	_, err = svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cache.products[""], 1)
	assert.Equal(t, 1, cache.staleWrites)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	categories := newFakeCategoryRepo("Food")
	svc := services.NewCatalogService(newFakeProductRepo(), categories, nil, zap.NewNop())

	created, err := svc.CreateCategory(ctx, &models.CategoryInput{Name: "Snacks", DisplayOrder: 3})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = svc.CreateCategory(ctx, &models.CategoryInput{Name: "snacks"})
	appErr := apperrors.As(err)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Category already exists", appErr.Message)

	_, err = svc.UpdateCategory(ctx, created.ID.Hex(), &models.CategoryInput{Name: "Snacks", IsActive: ptr(false)})
	require.NoError(t, err)

	active, err := svc.ListActiveCategories(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Food", active[0].Name)

	all, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteCategory(ctx, created.ID.Hex()))
	err = svc.DeleteCategory(ctx, created.ID.Hex())
	appErr = apperrors.As(err)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, "Category not found", appErr.Message)
}

func TestRemainingAllowance(t *testing.T) {
	p := models.Product{PurchaseLimit: ptr(2)}

	remaining, limited := p.RemainingAllowance(1)
	assert.True(t, limited)
	assert.Equal(t, 1, remaining)

	remaining, _ = p.RemainingAllowance(5)
	assert.Equal(t, 0, remaining)

	unlimited := models.Product{}
	_, limited = unlimited.RemainingAllowance(100)
	assert.False(t, limited)
}
