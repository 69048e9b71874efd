package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

type CreateUserInput struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
	Role        domain.Role
	Active      *bool
}

type UpdateUserInput struct {
	Username    *string
	Password    *string
	DisplayName *string
	Email       *string
	Role        *domain.Role
	Active      *bool
}

// UserService is user administration. Every method takes the requesting
// principal and enforces policy before touching the store; policy denials
// surface as domain.ErrForbidden.
type UserService interface {
	List(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	Get(ctx context.Context, p domain.Principal, id int64) (*domain.User, error)
	Create(ctx context.Context, p domain.Principal, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, p domain.Principal, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
	ToggleStatus(ctx context.Context, p domain.Principal, id int64) (*domain.User, error)
}
