package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedOptions controls what Seed creates on an empty database.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	SampleCatalog bool
}

var sampleCategories = []models.Category{
	{Name: "Food", Icon: "🍚", DisplayOrder: 1, IsActive: true},
	{Name: "Cook", Icon: "🍳", DisplayOrder: 2, IsActive: true},
	{Name: "Wash", Icon: "🧼", DisplayOrder: 3, IsActive: true},
	{Name: "Care", Icon: "💅", DisplayOrder: 4, IsActive: true},
	{Name: "Drinks", Icon: "🥤", DisplayOrder: 5, IsActive: true},
	{Name: "Snacks", Icon: "🍿", DisplayOrder: 6, IsActive: true},
	{Name: "Dairy", Icon: "🥛", DisplayOrder: 7, IsActive: true},
}

var sampleProducts = []models.Product{
	{Name: "Basmati Rice", Category: "Food", Image: "🍚", Price: 299, Weight: "1 kg", Quantity: "Pack of 1", Description: "Premium quality aged basmati rice", InStock: true},
	{Name: "Cooking Oil", Category: "Cook", Image: "🫒", Price: 189, Weight: "1 L", Quantity: "Bottle", Description: "Refined sunflower cooking oil", InStock: true},
	{Name: "Detergent Powder", Category: "Wash", Image: "🧼", Price: 249, Weight: "2 kg", Quantity: "Pack", Description: "Powerful cleaning detergent", InStock: true},
}

// Seed ensures a default admin exists and, when the catalog is empty, inserts
// the sample categories and products. It is safe to run on every start.
func Seed(ctx context.Context, users repository.UserRepo, categories repository.CategoryRepo, products repository.ProductRepo, opts SeedOptions, logger *zap.Logger) error {
	if err := seedAdmin(ctx, users, opts, logger); err != nil {
		return err
	}
	if !opts.SampleCatalog {
		return nil
	}

	for _, c := range sampleCategories {
		category := c
		if _, err := categories.FindByName(ctx, category.Name); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("seed categories: %w", err)
		}
		if err := categories.Create(ctx, &category); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("seed category %s: %w", category.Name, err)
		}
	}

	count, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, p := range sampleProducts {
		product := p
		if err := products.Create(ctx, &product); err != nil {
			return fmt.Errorf("seed product %s: %w", product.Name, err)
		}
	}
	logger.Info("Sample catalog seeded", zap.Int("products", len(sampleProducts)))
	return nil
}

func seedAdmin(ctx context.Context, users repository.UserRepo, opts SeedOptions, logger *zap.Logger) error {
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return nil
	}

	if _, err := users.FindByEmail(ctx, opts.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	admin := &models.User{
		Name:         "Admin",
		Username:     "admin",
		Email:        opts.AdminEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := users.Create(ctx, admin); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.Info("Default admin created", zap.String("email", admin.Email))
	return nil
}
