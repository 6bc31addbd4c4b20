package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
)

// ErrNotFound is returned when a lookup matches no document, including when
// the id is not a valid object id.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate key")

// UserRepo defines the user operations used by the auth, profile and admin services.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListCustomers(ctx context.Context) ([]models.User, error)
	CountCustomers(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.User, error)
	SetBlocked(ctx context.Context, id string, blocked bool) (*models.User, error)
}

// ProductRepo defines the catalog product operations.
type ProductRepo interface {
	List(ctx context.Context, category string) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	// FindByIDs resolves ids in one query. Unknown or malformed ids are absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Replace(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// CategoryRepo defines the catalog category operations.
type CategoryRepo interface {
	List(ctx context.Context, activeOnly bool) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	// FindByName matches case-insensitively.
	FindByName(ctx context.Context, name string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Replace(ctx context.Context, id string, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// CartRepo persists one cart per user with replace semantics.
type CartRepo interface {
	FindByUserID(ctx context.Context, userID string) (*models.Cart, error)
	ReplaceItems(ctx context.Context, userID string, items []models.LineItem) (*models.Cart, error)
	Delete(ctx context.Context, userID string) error
}

// OrderFilter narrows order scans used by reports. Zero values match everything.
type OrderFilter struct {
	Since         time.Time
	ExcludeStatus string
}

// OrderRepo persists orders. Orders are never deleted.
type OrderRepo interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	Find(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	ApplyStatusChange(ctx context.Context, id string, change models.StatusChange) (*models.Order, error)
	UpdateDelivery(ctx context.Context, id string, update models.DeliveryUpdate) (*models.Order, error)
	Count(ctx context.Context, status string) (int64, error)
}

// ContactRepo stores the singleton contact record.
type ContactRepo interface {
	Get(ctx context.Context) (*models.Contact, error)
	Upsert(ctx context.Context, contact *models.Contact) (*models.Contact, error)
}
