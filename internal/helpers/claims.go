package helpers

import (
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller, taken from verified token claims.
// It is trusted without re-reading the user record.
type Identity struct {
	UserID primitive.ObjectID
	Email  string
}

func (c *CustomClaims) Identity() (*Identity, error) {
	id, err := primitive.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &Identity{UserID: id, Email: c.Email}, nil
}

func (i *Identity) IsOwner(userID primitive.ObjectID) bool {
	return i.UserID == userID
}
