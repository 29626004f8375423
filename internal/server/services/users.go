// Package services contains server-side business logic: registration, login,
// and owner-scoped conversation/memory operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sentivox/sentivox/internal/common"
	"github.com/sentivox/sentivox/internal/server/auth"
	"github.com/sentivox/sentivox/internal/server/config"
	"github.com/sentivox/sentivox/internal/server/mailer"
	"github.com/sentivox/sentivox/internal/server/models"
	"github.com/sentivox/sentivox/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
// - Register: create users and mint a token
// - Login: verify credentials and mint a token
// - GetByID: resolve a verified token to the stored user
type UserService struct {
	repo                  users.Repository
	mailer                mailer.Mailer
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the credential store, an
// outbound mailer, and server config.
func NewUserService(repo users.Repository, m mailer.Mailer, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		mailer:                m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// RegisterResult bundles the created user with its freshly minted token.
type RegisterResult struct {
	User  *models.User
	Token string
}

// Register validates the payload, hashes the password, and creates the user.
// A duplicate email yields common.ErrDuplicateEmail (the unique index also
// catches the concurrent race); invalid input is wrapped in
// common.ErrValidation.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*RegisterResult, error) {
	email = models.NormalizeEmail(email)

	if err := models.ValidateRegistration(name, email, password); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, err.Error())
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: digest,
		Role:     models.RoleUser,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	// delivery failures never fail the registration
	_ = s.mailer.Send(ctx, mailer.Message{
		To:      user.Email,
		Subject: "Welcome to Sentivox",
		Body:    fmt.Sprintf("Hi %s,\n\nYour Sentivox account is ready.\n", user.Name),
	})

	return &RegisterResult{User: user, Token: token}, nil
}

// Login verifies the credentials and returns a new token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.Password)
	if err != nil {
		return "", fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	return s.generateToken(user)
}

// GetByID loads the user referenced by a verified token. The password digest
// is never loaded.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenValidityDuration)
}
