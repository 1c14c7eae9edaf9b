package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity payload carried by both token classes.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}

type Issuer interface {
	IssueAccessToken(userID uuid.UUID, name, email string) (token string, err error)
	IssueRefreshToken(userID uuid.UUID, name, email string) (token string, err error)
	VerifyAccessToken(token string) (Claims, error)
	VerifyRefreshToken(token string) (Claims, error)
}
