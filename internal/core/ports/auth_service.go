package ports

import (
	"context"

	"github.com/biblioteca/library-system/internal/core/domain"
)

// SessionTicket is the payload returned on successful register or login.
type SessionTicket struct {
	Token       string      `json:"token"`
	Type        string      `json:"type"`
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
}

type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
	Role        domain.Role // optional; defaults to USER
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*SessionTicket, error)
	Login(ctx context.Context, username, password string) (*SessionTicket, error)
}
