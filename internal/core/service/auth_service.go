package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/biblioteca/library-system/internal/core/domain"
	"github.com/biblioteca/library-system/internal/core/ports"
)

// dummyHash is compared against when the username does not exist, so a
// failed lookup costs the same as a wrong password and the error is
// indistinguishable from the wrong-password case.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("credential-padding"), bcrypt.DefaultCost)

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	codec    ports.TokenCodec
	limiter  ports.LoginLimiter
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec ports.TokenCodec, limiter ports.LoginLimiter, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, codec: codec, limiter: limiter, tokenTTL: tokenTTL, logger: logger}
}

// Register creates a new active account and returns a session ticket for it.
// The duplicate pre-checks are early exits only; the store's unique indexes
// decide the race between concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.SessionTicket, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		DisplayName:  input.DisplayName,
		Email:        input.Email,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")

	return s.ticket(created)
}

// Login verifies the credentials and returns a session ticket. Unknown
// usernames and wrong passwords produce the same error. Inactive accounts
// are rejected here; the access guard rejects their existing tokens too.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.SessionTicket, error) {
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, username)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		} else if !ok {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a bcrypt compare anyway so the two failure paths cost
			// the same.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return s.ticket(user)
}

func (s *AuthService) ticket(user *domain.User) (*ports.SessionTicket, error) {
	token, err := s.codec.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &ports.SessionTicket{
		Token:       token,
		Type:        "Bearer",
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        user.Role,
	}, nil
}
