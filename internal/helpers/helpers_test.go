package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Board games night ", "Board games night"},
		{"<b>Bold</b> plan", "Bold plan"},
		{"<script>alert(1)</script>Picnic", "Picnic"},
		{"<p></p>", ""},
		{"Tom & Jerry's party", "Tom & Jerry's party"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeText(tt.in), tt.in)
	}
}

func TestParseObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	got, ok := ParseObjectID(id.Hex())
	require.True(t, ok)
	assert.Equal(t, id, got)

	for _, bad := range []string{"", "123", "not-an-object-id-at-all!", id.Hex() + "00", `"` + id.Hex() + `"`, " " + id.Hex()} {
		_, ok := ParseObjectID(bad)
		assert.False(t, ok, bad)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, CheckPassword(hash, "s3cret!"))
	assert.False(t, CheckPassword(hash, "S3cret!"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret!"))
}

func TestLongPasswordsAreCutAt72Bytes(t *testing.T) {
	long := strings.Repeat("a", 80)
	hash, err := HashPassword(long, bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, long))
	assert.True(t, CheckPassword(hash, long[:72]))
	assert.False(t, CheckPassword(hash, long[:71]))
}

func TestParseEventDate(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	got, err := ParseEventDate("2026-11-02T18:30:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 2, 18, 30, 0, 0, time.UTC), got)

	got, err = ParseEventDate("2026-11-02T18:30:00+02:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 2, 16, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())

	got, err = ParseEventDate("2026-11-02 18:30", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 2, 18, 30, 0, 0, time.UTC), got)

	_, err = ParseEventDate("   ", now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
