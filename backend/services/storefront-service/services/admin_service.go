package services

import (
	"context"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
)

// AdminService computes the dashboard counters.
type AdminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
}

type adminServiceImpl struct {
	users    repository.UserRepo
	products repository.ProductRepo
	orders   repository.OrderRepo
	logger   *zap.Logger
}

func NewAdminService(users repository.UserRepo, products repository.ProductRepo, orders repository.OrderRepo, logger *zap.Logger) AdminService {
	return &adminServiceImpl{users: users, products: products, orders: orders, logger: logger}
}

func (s *adminServiceImpl) Stats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	var err error

	if stats.TotalCustomers, err = s.users.CountCustomers(ctx); err != nil {
		return nil, s.fail(err)
	}
	if stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return nil, s.fail(err)
	}
	if stats.TotalOrders, err = s.orders.Count(ctx, ""); err != nil {
		return nil, s.fail(err)
	}
	if stats.PendingOrders, err = s.orders.Count(ctx, models.StatusPending); err != nil {
		return nil, s.fail(err)
	}
	return &stats, nil
}

func (s *adminServiceImpl) fail(err error) error {
	s.logger.Error("Failed to compute admin stats", zap.Error(err))
	return apperrors.Internal(err)
}
