package services

import (
	"context"
	"errors"

	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"go.uber.org/zap"
)

// ContactService serves the store's public contact details.
type ContactService interface {
	Get(ctx context.Context) (*models.Contact, error)
	Save(ctx context.Context, contact *models.Contact) (*models.Contact, error)
}

type contactServiceImpl struct {
	contacts  repository.ContactRepo
	validator *RequestValidator
	logger    *zap.Logger
}

func NewContactService(contacts repository.ContactRepo, logger *zap.Logger) ContactService {
	return &contactServiceImpl{contacts: contacts, validator: NewRequestValidator(), logger: logger}
}

// Get falls back to the built-in defaults until an admin saves a record.
func (s *contactServiceImpl) Get(ctx context.Context) (*models.Contact, error) {
	contact, err := s.contacts.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			def := models.DefaultContact()
			return &def, nil
		}
		s.logger.Error("Failed to load contact info", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	return contact, nil
}

func (s *contactServiceImpl) Save(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	if contact == nil {
		return nil, apperrors.ErrInvalidInput
	}
	if err := s.validator.Check(contact, "Invalid contact info"); err != nil {
		return nil, err
	}
	saved, err := s.contacts.Upsert(ctx, contact)
	if err != nil {
		s.logger.Error("Failed to save contact info", zap.Error(err))
		return nil, apperrors.Internal(err)
	}
	s.logger.Info("Contact info updated")
	return saved, nil
}
