package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/gather/internal/helpers"
	"github.com/joshua-takyi/gather/internal/models"
)

const invalidCredentials = "Invalid credentials"

type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token string             `json:"token"`
	User  *models.UserPublic `json:"user"`
}

type AuthService struct {
	users      models.UserRepo
	tokens     *helpers.TokenManager
	bcryptCost int
	logger     *slog.Logger
}

func NewAuthService(users models.UserRepo, tokens *helpers.TokenManager, bcryptCost int, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Signup registers a user and returns its public projection. No token is
// issued; callers log in separately.
func (as *AuthService) Signup(ctx context.Context, in SignupInput) (*models.UserPublic, error) {
	in.Name = helpers.StringTrim(in.Name)
	in.Email = helpers.NormalizeEmail(in.Email)
	if err := models.Validate.Struct(in); err != nil {
		return nil, models.NewValidationError("All fields are required")
	}

	_, err := as.users.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, models.NewConflictError(models.EmailTakenMessage)
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password, as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := as.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	as.logger.Info("User signed up", "user_id", user.ID.Hex())
	return user.Public(), nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password produce the same error.
func (as *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = helpers.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.NewValidationError("All fields are required")
	}

	user, err := as.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewAuthError(invalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !helpers.CheckPassword(user.PasswordHash, password) {
		return nil, models.NewAuthError(invalidCredentials)
	}

	token, err := as.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// Verify resolves an Authorization header value to an Identity.
func (as *AuthService) Verify(header string) (*helpers.Identity, error) {
	tokenStr, err := helpers.TokenFromHeader(header)
	switch {
	case errors.Is(err, helpers.ErrMissingToken):
		return nil, models.NewAuthError("No token provided")
	case err != nil:
		return nil, models.NewAuthError("Invalid token format")
	}

	claims, err := as.tokens.Validate(tokenStr)
	if err != nil {
		return nil, models.NewAuthError("Token invalid or expired")
	}
	identity, err := claims.Identity()
	if err != nil {
		return nil, models.NewAuthError("Token invalid or expired")
	}
	return identity, nil
}

// Me returns the caller's own user record.
func (as *AuthService) Me(ctx context.Context, identity *helpers.Identity) (*models.UserPublic, error) {
	user, err := as.users.GetUserByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}
