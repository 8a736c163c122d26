package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/joshua-takyi/gather/internal/helpers"
	"github.com/joshua-takyi/gather/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	repo   *models.MemoryRepo
	auth   *AuthService
	events *EventService
	tokens *helpers.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := models.NewMemoryRepo()
	tokens := helpers.NewTokenManager("test-secret", helpers.DefaultTokenTTL)
	return &testEnv{
		repo:   repo,
		auth:   NewAuthService(repo, tokens, bcrypt.MinCost, logger),
		events: NewEventService(repo, repo, logger),
		tokens: tokens,
	}
}

// register signs up and logs in, returning the caller's identity.
func (e *testEnv) register(t *testing.T, name, email string) *helpers.Identity {
	t.Helper()
	ctx := context.Background()
	_, err := e.auth.Signup(ctx, SignupInput{Name: name, Email: email, Password: "password1"})
	require.NoError(t, err)
	res, err := e.auth.Login(ctx, email, "password1")
	require.NoError(t, err)
	identity, err := e.auth.Verify("Bearer " + res.Token)
	require.NoError(t, err)
	return identity
}

func requireAppError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, message, appErr.Message)
}

func TestSignup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Signup(ctx, SignupInput{Name: " Alice ", Email: " Alice@Example.com ", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)

	stored, err := env.repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored.PasswordHash)
	assert.True(t, helpers.CheckPassword(stored.PasswordHash, "password1"))
}

func TestSignupRejectsDuplicateEmailInAnyCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Signup(ctx, SignupInput{Name: "Alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	for _, email := range []string{"alice@example.com", "ALICE@example.com", " Alice@Example.Com "} {
		_, err := env.auth.Signup(ctx, SignupInput{Name: "Other", Email: email, Password: "password2"})
		requireAppError(t, err, models.ErrConflict, models.EmailTakenMessage)
	}
}

func TestSignupAcceptsLongPasswords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	password := strings.Repeat("correct horse battery staple ", 3)
	require.Greater(t, len(password), 72)

	_, err := env.auth.Signup(ctx, SignupInput{Name: "Alice", Email: "alice@example.com", Password: password})
	require.NoError(t, err)

	res, err := env.auth.Login(ctx, "alice@example.com", password)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestSignupRequiresAllFields(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		in   SignupInput
	}{
		{"missing name", SignupInput{Email: "a@example.com", Password: "pw"}},
		{"blank name", SignupInput{Name: "  ", Email: "a@example.com", Password: "pw"}},
		{"missing email", SignupInput{Name: "A", Password: "pw"}},
		{"missing password", SignupInput{Name: "A", Email: "a@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Signup(context.Background(), tt.in)
			requireAppError(t, err, models.ErrValidation, "All fields are required")
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.Signup(ctx, SignupInput{Name: "Alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	res, err := env.auth.Login(ctx, "ALICE@example.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice@example.com", res.User.Email)

	claims, err := env.tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.Signup(ctx, SignupInput{Name: "Alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	_, wrongPassword := env.auth.Login(ctx, "alice@example.com", "nope")
	_, unknownEmail := env.auth.Login(ctx, "nobody@example.com", "password1")

	requireAppError(t, wrongPassword, models.ErrAuth, "Invalid credentials")
	requireAppError(t, unknownEmail, models.ErrAuth, "Invalid credentials")
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestVerify(t *testing.T) {
	env := newTestEnv(t)
	identity := env.register(t, "Alice", "alice@example.com")
	assert.Equal(t, "alice@example.com", identity.Email)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing", "", "No token provided"},
		{"wrong scheme", "Token abc", "Invalid token format"},
		{"garbage token", "Bearer abc", "Token invalid or expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Verify(tt.header)
			requireAppError(t, err, models.ErrAuth, tt.message)
		})
	}

	t.Run("expired", func(t *testing.T) {
		past := env.tokens.WithClock(func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) })
		token, err := past.Issue(identity.UserID.Hex(), identity.Email)
		require.NoError(t, err)
		_, err = env.auth.Verify("Bearer " + token)
		requireAppError(t, err, models.ErrAuth, "Token invalid or expired")
	})
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	identity := env.register(t, "Alice", "alice@example.com")

	me, err := env.auth.Me(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID.Hex(), me.ID)
	assert.Equal(t, "Alice", me.Name)
}
