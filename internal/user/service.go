package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, in Input) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	UpdateUser(ctx context.Context, id int64, in Input) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type service struct {
	repo      Repository
	validator *Validator
	hashCost  int
}

type Option func(*service)

// WithHashCost overrides the bcrypt cost used for new password hashes.
func WithHashCost(cost int) Option {
	return func(s *service) {
		s.hashCost = cost
	}
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:      repo,
		validator: NewValidator(repo),
		hashCost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) hashPassword(plain string) (string, error) {
	hash, err := HashPassword(plain, s.hashCost)
	if err != nil {
		return "", fmt.Errorf("service: %w", err)
	}

	return hash, nil
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list users in repository")
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}

	return users, nil
}

func (s *service) CreateUser(ctx context.Context, in Input) (*User, error) {
	if err := s.validator.ValidateCreate(ctx, in); err != nil {
		return nil, s.validationFailure(err)
	}

	hash, err := s.hashPassword(*in.Password)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to generate password hash")
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	created, err := s.repo.Create(ctx, &User{
		Name:         *in.Name,
		Email:        *in.Email,
		Phone:        *in.Phone,
		IsActive:     isActive,
		Department:   *in.Department,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			log.Warn().Str("email", *in.Email).Msg("service: email taken at insert time")
			return nil, ErrEmailExists
		}

		log.Error().Err(err).Msg("service: failed to create user in repository")
		return nil, fmt.Errorf("service: failed to create user: %w", err)
	}

	log.Info().Int64("user_id", created.ID).Msg("service: user created")

	return created, nil
}

func (s *service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("user_id", id).Msg("service: user not found by id")
			return nil, ErrNotFound
		}

		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to get user by id in repository")
		return nil, fmt.Errorf("service: failed to get user by id %d: %w", id, err)
	}

	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, id int64, in Input) (*User, error) {
	if err := s.validator.ValidateUpdate(ctx, id, in); err != nil {
		return nil, s.validationFailure(err)
	}

	patch := Patch{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		IsActive:   in.IsActive,
		Department: in.Department,
	}

	if in.Password != nil {
		hash, err := s.hashPassword(*in.Password)
		if err != nil {
			log.Error().Err(err).Int64("user_id", id).Msg("service: failed to generate password hash")
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			log.Warn().Int64("user_id", id).Msg("service: user not found, cannot update")
			return nil, ErrNotFound
		case errors.Is(err, ErrEmailExists):
			log.Warn().Int64("user_id", id).Msg("service: email taken at update time")
			return nil, ErrEmailExists
		}

		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to update user in repository")
		return nil, fmt.Errorf("service: failed to update user %d: %w", id, err)
	}

	log.Info().Int64("user_id", id).Msg("service: user updated")

	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("user_id", id).Msg("service: user not found, cannot delete")
			return ErrNotFound
		}

		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to delete user in repository")
		return fmt.Errorf("service: failed to delete user %d: %w", id, err)
	}

	log.Info().Int64("user_id", id).Msg("service: user deleted")

	return nil
}

// validationFailure passes rule violations through and wraps lookup failures.
func (s *service) validationFailure(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	log.Error().Err(err).Msg("service: validation could not complete")
	return fmt.Errorf("service: %w", err)
}
