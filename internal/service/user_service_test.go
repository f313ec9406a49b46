package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/commerce-mesh/internal/domain"
)

type fakeUserRepo struct {
	byID   map[int64]*domain.User
	nextID int64
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.byID == nil {
		f.byID = map[int64]*domain.User{}
	}
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.byID {
		result = append(result, *user)
	}
	return result, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func TestCreateUser_Success(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user := &domain.User{Email: "bob@example.com", Name: "Bob", Surname: "Smith"}
	require.NoError(t, svc.CreateUser(context.Background(), user))
	assert.NotZero(t, user.ID)
}

func TestCreateUser_Validation(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	err := svc.CreateUser(context.Background(), &domain.User{Name: "Bob"})
	requireDomainError(t, err, "VALIDATION", 400)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	require.NoError(t, svc.CreateUser(context.Background(), &domain.User{Email: "bob@example.com", Name: "Bob"}))

	err := svc.CreateUser(context.Background(), &domain.User{Email: "bob@example.com", Name: "Robert"})
	requireDomainError(t, err, "CONFLICT", 409)
}

func TestGetUser_NotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	_, err := svc.GetUser(context.Background(), 999)
	requireDomainError(t, err, "NOT_FOUND", 404)
}

func TestDeleteUser_RemovesProfile(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user := &domain.User{Email: "bob@example.com", Name: "Bob"}
	require.NoError(t, svc.CreateUser(context.Background(), user))
	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	_, err := svc.GetUser(context.Background(), user.ID)
	requireDomainError(t, err, "NOT_FOUND", 404)

	err = svc.DeleteUser(context.Background(), user.ID)
	requireDomainError(t, err, "NOT_FOUND", 404)
}
