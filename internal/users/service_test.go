package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/pkg/db/models"
	"github.com/geocart/geocart-backend/pkg/enums"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
)

type fakeUserRepo struct {
	users   []models.User
	listErr error
	deleted []uuid.UUID
}

func (f *fakeUserRepo) Create(_ context.Context, dto CreateUserDTO) (*models.User, error) {
	user := models.User{
		ID:           uuid.New(),
		Email:        dto.Email,
		Name:         dto.Name,
		Phone:        dto.Phone,
		PasswordHash: dto.PasswordHash,
		SystemRole:   dto.SystemRole,
		IsActive:     true,
	}
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func seededUser(email string) models.User {
	return models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Asha",
		PasswordHash: "argon2id$unused",
		SystemRole:   enums.SystemRoleCustomer,
		IsActive:     true,
	}
}

func TestGetOmitsPasswordHash(t *testing.T) {
	user := seededUser("asha@example.com")
	svc, err := NewService(&fakeUserRepo{users: []models.User{user}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	got, err := svc.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Email != "asha@example.com" || got.SystemRole != enums.SystemRoleCustomer {
		t.Fatalf("unexpected projection %+v", got)
	}
}

func TestGetUnknownUser(t *testing.T) {
	svc, _ := NewService(&fakeUserRepo{})

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND got %v", err)
	}
}

func TestListSurfacesRepoFailure(t *testing.T) {
	svc, _ := NewService(&fakeUserRepo{listErr: errors.New("connection reset")})

	_, err := svc.List(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected DEPENDENCY got %v", err)
	}
}

func TestDeleteChecksExistenceFirst(t *testing.T) {
	repo := &fakeUserRepo{}
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("delete should not run for missing users, got %v", repo.deleted)
	}
}

func TestDeleteExistingUser(t *testing.T) {
	user := seededUser("gone@example.com")
	repo := &fakeUserRepo{users: []models.User{user}}
	svc, _ := NewService(repo)

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != user.ID {
		t.Fatalf("expected delete of %s got %v", user.ID, repo.deleted)
	}
}
