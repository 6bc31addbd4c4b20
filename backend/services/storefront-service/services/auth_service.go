package services

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	errMissingFields      = apperrors.BadRequest("Missing fields")
	errInvalidEmail       = apperrors.BadRequest("Invalid email")
	errEmailRegistered    = apperrors.BadRequest("Email already registered")
	errInvalidCredentials = apperrors.BadRequest("Invalid credentials")
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

type authServiceImpl struct {
	users     repository.UserRepo
	tokens    *TokenService
	validator *RequestValidator
	logger    *zap.Logger
}

func NewAuthService(users repository.UserRepo, tokens *TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, tokens: tokens, validator: NewRequestValidator(), logger: logger}
}

func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, errMissingFields
	}
	if !s.validator.ValidVar(email, "email") {
		return nil, errInvalidEmail
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errEmailRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Name:         name,
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errEmailRegistered
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.Hex()))
	return s.issue(user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, errMissingFields
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, apperrors.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	if user.IsBlocked {
		return nil, apperrors.ErrBlocked
	}
	return s.issue(user)
}

func (s *authServiceImpl) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID.Hex())
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.AuthResponse{Token: token, User: user.Public()}, nil
}
