package token

import (
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/errors"
	domtoken "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/token"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JwtIssuer signs the two token classes with independent HMAC secrets so
// that compromise of one cannot forge the other.
type JwtIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewJwtIssuer(cfg *config.Config) (*JwtIssuer, error) {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, customErrors.NewInvalidArgument("token secrets must be set")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, customErrors.NewInvalidArgument("access and refresh secrets must differ")
	}

	return &JwtIssuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}, nil
}

func (j *JwtIssuer) IssueAccessToken(userID uuid.UUID, name, email string) (string, error) {
	return j.sign(userID, name, email, j.accessTTL, j.accessSecret)
}

func (j *JwtIssuer) IssueRefreshToken(userID uuid.UUID, name, email string) (string, error) {
	return j.sign(userID, name, email, j.refreshTTL, j.refreshSecret)
}

func (j *JwtIssuer) sign(userID uuid.UUID, name, email string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()

	claims := domtoken.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Name:   name,
		Email:  email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", customErrors.WrapInternal(err, "sign token")
	}
	return signed, nil
}

func (j *JwtIssuer) VerifyAccessToken(raw string) (domtoken.Claims, error) {
	return j.verify(raw, j.accessSecret)
}

func (j *JwtIssuer) VerifyRefreshToken(raw string) (domtoken.Claims, error) {
	return j.verify(raw, j.refreshSecret)
}

// verify folds bad signature, expiry and malformed input into one
// ErrInvalidToken outcome; callers never learn which it was.
func (j *JwtIssuer) verify(raw string, secret []byte) (domtoken.Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &domtoken.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithIssuedAt())

	if err != nil || !parsed.Valid {
		return domtoken.Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*domtoken.Claims)
	if !ok || claims.UserID == uuid.Nil {
		return domtoken.Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
