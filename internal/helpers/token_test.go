package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenRoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	userID := primitive.NewObjectID()
	tm := NewTokenManager(testSecret, DefaultTokenTTL).WithClock(fixedClock(issuedAt))

	token, err := tm.Issue(userID.Hex(), "alice@example.com")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	identity, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.True(t, identity.IsOwner(userID))
	assert.False(t, identity.IsOwner(primitive.NewObjectID()))
}

func TestTokenValidForSevenDays(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager(testSecret, 0).WithClock(fixedClock(issuedAt))

	token, err := tm.Issue(primitive.NewObjectID().Hex(), "bob@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr bool
	}{
		{"just issued", issuedAt, false},
		{"six days later", issuedAt.Add(6 * 24 * time.Hour), false},
		{"one minute before expiry", issuedAt.Add(DefaultTokenTTL - time.Minute), false},
		{"one minute after expiry", issuedAt.Add(DefaultTokenTTL + time.Minute), true},
		{"a month later", issuedAt.Add(30 * 24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.WithClock(fixedClock(tt.at)).Validate(token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	token, err := tm.Issue(primitive.NewObjectID().Hex(), "carol@example.com")
	require.NoError(t, err)

	other := NewTokenManager("another-secret", time.Hour)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Validate(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &CustomClaims{
		UserID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).Validate(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRequiresExpiry(t *testing.T) {
	claims := &CustomClaims{UserID: primitive.NewObjectID().Hex()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaimsIdentityRejectsBadID(t *testing.T) {
	_, err := (&CustomClaims{UserID: "nope"}).Identity()
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"extra spaces", "  Bearer   abc  ", "abc", nil},
		{"empty", "", "", ErrMissingToken},
		{"blank", "   ", "", ErrMissingToken},
		{"no scheme", "abc.def.ghi", "", ErrMalformedToken},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", ErrMalformedToken},
		{"lowercase scheme", "bearer abc", "", ErrMalformedToken},
		{"scheme only", "Bearer", "", ErrMalformedToken},
		{"too many parts", "Bearer a b", "", ErrMalformedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
