package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// UserUpdate is an explicit update command: only non-nil fields are written.
// Repositories must refresh updated_at on every successful update.
type UserUpdate struct {
	Username     *string
	DisplayName  *string
	Email        *string
	PasswordHash *string
	Role         *domain.Role
	Active       *bool
}

// Empty reports whether the command carries no field changes.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.DisplayName == nil && u.Email == nil &&
		u.PasswordHash == nil && u.Role == nil && u.Active == nil
}

// UserRepository defines persistence for user accounts. Uniqueness of
// username and email is enforced by the store itself; Create and Update
// translate the store's unique-violation into domain.ErrUsernameTaken or
// domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id int64, cmd UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
