package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tavola-dev/tavola/internal/models"
	"github.com/tavola-dev/tavola/internal/store"
	"github.com/tavola-dev/tavola/internal/types"
	"golang.org/x/crypto/bcrypt"
)

var passwordCost = bcrypt.DefaultCost

type RegisterInput struct {
	Name       string `validate:"required"`
	Email      string `validate:"required"`
	Address    string `validate:"required"`
	Password   string `validate:"required"`
	Contact    string `validate:"required"`
	NationalID string `validate:"required"`
}

type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) error {
	if err := validateRequired(in); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)

	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return store.Update(ctx, s.store, types.CollectionUsers, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == in.Email {
				return nil, fmt.Errorf("%w: email already registered", ErrConflict)
			}
			if u.NationalID == in.NationalID {
				return nil, fmt.Errorf("%w: national ID already registered", ErrConflict)
			}
		}

		return append(users, models.User{
			Name:       in.Name,
			Email:      in.Email,
			Address:    in.Address,
			Password:   string(passwordHash),
			Contact:    in.Contact,
			NationalID: in.NationalID,
		}), nil
	})
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Get(ctx, email)

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: wrong email or password", ErrAuth)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: wrong email or password", ErrAuth)
	}

	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordCost)

	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return store.Update(ctx, s.store, types.CollectionUsers, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Email != email {
				continue
			}

			if bcrypt.CompareHashAndPassword([]byte(users[i].Password), []byte(oldPassword)) != nil {
				break
			}

			users[i].Password = string(passwordHash)
			return users, nil
		}

		return nil, fmt.Errorf("%w: wrong email or password", ErrAuth)
	})
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return store.LoadAll[models.User](ctx, s.store, types.CollectionUsers)
}

func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	users, err := s.List(ctx)

	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}

	return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
}

func (s *UserService) Delete(ctx context.Context, email string) error {
	return store.Update(ctx, s.store, types.CollectionUsers, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Email == email {
				return append(users[:i], users[i+1:]...), nil
			}
		}

		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	})
}
