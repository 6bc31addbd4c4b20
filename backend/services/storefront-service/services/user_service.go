package services

import (
	"context"
	"errors"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
)

// UserService covers the signed-in user's profile and the admin customer list.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error)
	ListCustomers(ctx context.Context) ([]models.User, error)
	SetBlocked(ctx context.Context, userID string, req *models.BlockUserRequest) (*models.User, error)
}

type userServiceImpl struct {
	users     repository.UserRepo
	validator *RequestValidator
	logger    *zap.Logger
}

func NewUserService(users repository.UserRepo, logger *zap.Logger) UserService {
	return &userServiceImpl{users: users, validator: NewRequestValidator(), logger: logger}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := s.validator.Check(req, "Invalid profile"); err != nil {
		return nil, err
	}
	user, err := s.users.UpdateProfile(ctx, userID, *req)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	return user, nil
}

func (s *userServiceImpl) ListCustomers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListCustomers(ctx)
	if err != nil {
		s.logger.Error("Failed to list customers", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

func (s *userServiceImpl) SetBlocked(ctx context.Context, userID string, req *models.BlockUserRequest) (*models.User, error) {
	if req == nil || req.Blocked == nil {
		return nil, apperrors.BadRequest("blocked must be a boolean")
	}
	user, err := s.users.SetBlocked(ctx, userID, *req.Blocked)
	if err != nil {
		return nil, s.mapUserErr(err)
	}
	s.logger.Info("Customer block state changed",
		zap.String("user_id", userID),
		zap.Bool("blocked", *req.Blocked),
	)
	return user, nil
}

func (s *userServiceImpl) mapUserErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrUserNotFound
	}
	s.logger.Error("User persistence failed", zap.Error(err))
	return apperrors.Internal(err)
}
