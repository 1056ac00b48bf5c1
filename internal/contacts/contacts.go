package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/pkg/db/models"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
)

// CreateContactInput is the contact form payload.
type CreateContactInput struct {
	Name    string `json:"name" validate:"required,min=1,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// ContactDTO is the transport projection of a contact message.
type ContactDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository handles contact persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to contact operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a contact message.
func (r *Repository) Create(ctx context.Context, input CreateContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Message: input.Message,
	}
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

// FindByID loads a contact message.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// List returns all contact messages, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Contact, error) {
	var rows []models.Contact
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes a contact message.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id).Error
}

type contactRepository interface {
	Create(ctx context.Context, input CreateContactInput) (*models.Contact, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes contact form operations.
type Service interface {
	Create(ctx context.Context, input CreateContactInput) (*ContactDTO, error)
	List(ctx context.Context) ([]ContactDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo contactRepository
}

// NewService builds a contact service.
func NewService(repo contactRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateContactInput) (*ContactDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Message = strings.TrimSpace(input.Message)
	if input.Name == "" || input.Message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and message are required")
	}

	contact, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact")
	}
	return fromModel(contact), nil
}

func (s *service) List(ctx context.Context) ([]ContactDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contacts")
	}
	out := make([]ContactDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact")
	}
	return nil
}

func fromModel(contact *models.Contact) *ContactDTO {
	return &ContactDTO{
		ID:        contact.ID,
		Name:      contact.Name,
		Email:     contact.Email,
		Message:   contact.Message,
		CreatedAt: contact.CreatedAt,
	}
}
