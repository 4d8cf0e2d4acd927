package service

import (
	"context"
	"fmt"
	"net/http"

	"contacts_api/internal/common"
	"contacts_api/internal/domain/model"
	"contacts_api/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ContactListCache caches a user's contact list between reads. Implementations
// are best-effort; a miss just means hitting the database.
type ContactListCache interface {
	Get(ctx context.Context, ownerID string) ([]model.Contact, bool)
	Set(ctx context.Context, ownerID string, contacts []model.Contact)
	Invalidate(ctx context.Context, ownerID string)
}

type ContactService struct {
	contactRepo repository.ContactRepository
	cache       ContactListCache
	validate    *validator.Validate
}

// NewContactService builds the contact service. cache may be nil, in which
// case every list read goes to the database.
func NewContactService(contactRepo repository.ContactRepository, cache ContactListCache) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		cache:       cache,
		validate:    validator.New(),
	}
}

// ContactRequest is the write payload for both create and update. Update is
// full-replace: all three fields are required.
type ContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// parseContactID rejects malformed identifiers before any repository call,
// so a bad id is a 400, never a 404.
func parseContactID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.WrapError(http.StatusBadRequest, "Invalid ID format", err)
	}
	return nil
}

// authorizeOwner is the single ownership check used by every read/update/
// delete path, so mismatches yield the same 403 everywhere.
func authorizeOwner(user model.AuthUser, contact *model.Contact) error {
	if contact.OwnerID != user.ID {
		return common.Forbidden("User doesn't have permission to access this contact")
	}
	return nil
}

func (s *ContactService) List(ctx context.Context, user model.AuthUser) ([]model.Contact, error) {
	if s.cache != nil {
		if contacts, ok := s.cache.Get(ctx, user.ID); ok {
			return contacts, nil
		}
	}

	contacts, err := s.contactRepo.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, user.ID, contacts)
	}
	return contacts, nil
}

func (s *ContactService) Get(ctx context.Context, user model.AuthUser, id string) (*model.Contact, error) {
	if err := parseContactID(id); err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(user, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Create(ctx context.Context, user model.AuthUser, req ContactRequest) (*model.Contact, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.WrapError(http.StatusBadRequest, "All fields are required", err)
	}

	// Owner always comes from the authenticated identity, never the payload.
	contact := &model.Contact{
		ID:      uuid.NewString(),
		OwnerID: user.ID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, user.ID)
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, user model.AuthUser, id string, req ContactRequest) (*model.Contact, error) {
	if err := parseContactID(id); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, common.WrapError(http.StatusBadRequest, "All fields are required", err)
	}

	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(user, contact); err != nil {
		return nil, err
	}

	contact.Name = req.Name
	contact.Email = req.Email
	contact.Phone = req.Phone
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, user.ID)
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, user model.AuthUser, id string) (*model.Contact, error) {
	if err := parseContactID(id); err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(user, contact); err != nil {
		return nil, err
	}

	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, user.ID)
	}
	return contact, nil
}
