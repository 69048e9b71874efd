package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

// UserService implements user administration with per-operation policy
// checks against the requesting principal.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if !p.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	return s.users.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
	if !p.CanAccessUser(id) {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, p domain.Principal, input ports.CreateUserInput) (*domain.User, error) {
	if !p.CanManageUsers() {
		return nil, domain.ErrForbidden
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		DisplayName:  input.DisplayName,
		Email:        input.Email,
		Role:         role,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Int64("id", created.ID).Msg("user created by admin")
	return created, nil
}

// Update applies the non-nil fields. Non-admins can only touch their own
// record and can never change role or active status.
func (s *UserService) Update(ctx context.Context, p domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	if !p.CanAccessUser(id) {
		return nil, domain.ErrForbidden
	}
	if p.Role != domain.RoleAdmin && (input.Role != nil || input.Active != nil) {
		return nil, domain.ErrForbidden
	}
	if input.Role != nil && !domain.ValidRole(*input.Role) {
		return nil, domain.ErrInvalidRole
	}

	cmd := ports.UserUpdate{
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Role:        input.Role,
		Active:      input.Active,
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hash)
		cmd.PasswordHash = &h
	}
	if cmd.Empty() {
		return s.users.FindByID(ctx, id)
	}

	return s.users.Update(ctx, id, cmd)
}

func (s *UserService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if !p.CanManageUsers() {
		return domain.ErrForbidden
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Str("deleted_by", p.Username).Msg("user deleted")
	return nil
}

// ToggleStatus flips the active flag. Deactivated users fail login and the
// access guard immediately, without waiting for token expiry.
func (s *UserService) ToggleStatus(ctx context.Context, p domain.Principal, id int64) (*domain.User, error) {
	if !p.CanManageUsers() {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	active := !user.Active
	return s.users.Update(ctx, id, ports.UserUpdate{Active: &active})
}
