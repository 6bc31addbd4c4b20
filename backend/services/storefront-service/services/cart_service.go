package services

import (
	"context"
	"errors"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
)

// CartService keeps one server-side cart per user. Saves replace the whole
// item list.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, userID string, req *models.SaveCartRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

type cartServiceImpl struct {
	carts     repository.CartRepo
	validator *RequestValidator
	logger    *zap.Logger
}

func NewCartService(carts repository.CartRepo, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, validator: NewRequestValidator(), logger: logger}
}

// GetCart returns the stored cart, or an empty one if the user never saved.
func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: []models.LineItem{}}, nil
		}
		s.logger.Error("Failed to load cart", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	if cart.Items == nil {
		cart.Items = []models.LineItem{}
	}
	return cart, nil
}

func (s *cartServiceImpl) SaveCart(ctx context.Context, userID string, req *models.SaveCartRequest) (*models.Cart, error) {
	if req == nil {
		return nil, apperrors.ErrInvalidInput
	}
	if err := s.validator.Check(req, "Invalid cart items"); err != nil {
		return nil, err
	}
	cart, err := s.carts.ReplaceItems(ctx, userID, req.Items)
	if err != nil {
		s.logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return cart, nil
}

func (s *cartServiceImpl) ClearCart(ctx context.Context, userID string) error {
	if err := s.carts.Delete(ctx, userID); err != nil {
		s.logger.Error("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
		return apperrors.Internal(err)
	}
	return nil
}
