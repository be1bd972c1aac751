package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/you/learnsphere/domain"
)

// UserRepositoryImpl implements domain.UserRepository over a flat user list.
type UserRepositoryImpl struct {
	store domain.Store
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store domain.Store) domain.UserRepository {
	return &UserRepositoryImpl{store: store}
}

func (r *UserRepositoryImpl) all(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.store.Load(ctx, UsersRecord, &users)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Append implements domain.UserRepository.
func (r *UserRepositoryImpl) Append(ctx context.Context, user *domain.User) error {
	users, err := r.all(ctx)
	if err != nil {
		return err
	}
	users = append(users, *user)
	return r.store.Save(ctx, UsersRecord, users)
}

// FindByEmail implements domain.UserRepository. The caller is expected to
// have lowercased the email already; the compare is exact.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByUsername implements domain.UserRepository. Usernames are compared
// case-insensitively.
func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}
