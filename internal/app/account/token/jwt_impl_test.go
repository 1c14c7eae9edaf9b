package token

import (
	"testing"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
	}
}

func TestJwtIssuer_IssueVerify(t *testing.T) {
	issuer, err := NewJwtIssuer(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	uid := uuid.New()
	tok, err := issuer.IssueAccessToken(uid, "Ann", "ann@x.com")
	if err != nil || tok == "" {
		t.Fatalf("bad issue: %v", err)
	}
	claims, err := issuer.VerifyAccessToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != uid || claims.Name != "Ann" || claims.Email != "ann@x.com" {
		t.Fatalf("claims do not round-trip: %+v", claims)
	}
}

func TestJwtIssuer_SecretsAreIndependent(t *testing.T) {
	issuer, _ := NewJwtIssuer(testConfig())
	uid := uuid.New()

	rTok, err := issuer.IssueRefreshToken(uid, "Ann", "ann@x.com")
	if err != nil {
		t.Fatal(err)
	}
	// a refresh token must never pass as an access token
	if _, err := issuer.VerifyAccessToken(rTok); !customErrors.IsInvalidToken(err) {
		t.Fatal("expected invalid token")
	}
	if _, err := issuer.VerifyRefreshToken(rTok); err != nil {
		t.Fatal(err)
	}
}

func TestJwtIssuer_VerifyErrors(t *testing.T) {
	issuer, _ := NewJwtIssuer(testConfig())

	if _, err := issuer.VerifyAccessToken("bad"); !customErrors.IsInvalidToken(err) {
		t.Fatal("expected invalid token for malformed input")
	}

	expired, _ := NewJwtIssuer(&config.Config{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     -time.Minute,
		RefreshTokenTTL:    -time.Minute,
	})
	tok, _ := expired.IssueAccessToken(uuid.New(), "n", "e@e")
	if _, err := issuer.VerifyAccessToken(tok); !customErrors.IsInvalidToken(err) {
		t.Fatal("expected invalid token for expired input")
	}
}

func TestJwtIssuer_InvalidAlg(t *testing.T) {
	issuer, _ := NewJwtIssuer(testConfig())
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := issuer.VerifyAccessToken(tok); !customErrors.IsInvalidToken(err) {
		t.Fatal("expected invalid alg to be rejected")
	}
}

func TestNewJwtIssuer_RejectsSharedSecret(t *testing.T) {
	_, err := NewJwtIssuer(&config.Config{
		AccessTokenSecret:  "same",
		RefreshTokenSecret: "same",
		AccessTokenTTL:     time.Minute,
		RefreshTokenTTL:    time.Hour,
	})
	if err == nil {
		t.Fatal("expected error")
	}
}
