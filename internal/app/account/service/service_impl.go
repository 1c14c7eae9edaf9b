package service

import (
	"context"
	"errors"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/app/account/authz"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/app/account/password"
	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/model"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/repo"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/token"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/config"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type accountService struct {
	userRepo repo.UserRepo
	tokens   token.Issuer
	hasher   *password.Hasher
	guard    *authz.Guard
	cfg      *config.Config
	v        *validator.Validate
}

type Service interface {
	Register(context.Context, dto.RegisterDTO) error
	Login(context.Context, dto.LoginDTO) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) (cleared bool, err error)
	UpdateAccount(ctx context.Context, claims token.Claims, targetID uuid.UUID, in dto.UpdateAccountDTO) error
	DeleteAccount(ctx context.Context, claims token.Claims, targetID uuid.UUID) error
}

func New(
	ur repo.UserRepo,
	ti token.Issuer,
	h *password.Hasher,
	g *authz.Guard,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &accountService{
		userRepo: ur, tokens: ti, hasher: h, guard: g, cfg: cfg, v: v,
	}
}

// Register creates the account only; it never starts a session.
func (a *accountService) Register(ctx context.Context, in dto.RegisterDTO) error {
	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}
	if in.Password != in.ConfPassword {
		return customErrors.ErrPasswordMismatch
	}

	_, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return customErrors.ErrAlreadyExists
	case !errors.Is(err, customErrors.ErrNotFound):
		return customErrors.WrapInternal(err, "Register")
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return customErrors.WrapInternal(err, "Register")
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return customErrors.ErrAlreadyExists
		}
		return customErrors.WrapInternal(err, "Register")
	}
	return nil
}

// Login is the sole token-issuance path. Persisting the fresh refresh
// token overwrites any prior one, which is what rotates out an older
// session for the same account.
func (a *accountService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrNotFound
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}

	at, err := a.tokens.IssueAccessToken(user.ID, user.Name, user.Email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueAccessToken")
	}
	rt, err := a.tokens.IssueRefreshToken(user.ID, user.Name, user.Email)
	if err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "IssueRefreshToken")
	}

	if err = a.userRepo.UpdateRefreshToken(ctx, user.ID, rt); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "StoreRefreshToken")
	}

	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    a.cfg.AccessTokenTTL,
		RefreshTTL:   a.cfg.RefreshTokenTTL,
		UserId:       user.ID,
	}, nil
}

// Refresh mints a new access token from the claims riding in the refresh
// token itself; the user row is consulted only to prove the token is the
// account's current one. The refresh token is not rotated here.
func (a *accountService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", customErrors.ErrUnauthorized
	}

	_, err := a.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// logged out or rotated out by a newer login
		return "", customErrors.ErrForbidden
	case err != nil:
		return "", customErrors.WrapInternal(err, "Refresh")
	}

	claims, err := a.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", customErrors.ErrForbidden
	}

	at, err := a.tokens.IssueAccessToken(claims.UserID, claims.Name, claims.Email)
	if err != nil {
		return "", customErrors.WrapInternal(err, "IssueAccessToken")
	}
	return at, nil
}

// Logout is idempotent: an absent or unknown token is a no-op success.
func (a *accountService) Logout(ctx context.Context, refreshToken string) (bool, error) {
	if refreshToken == "" {
		return false, nil
	}

	user, err := a.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return false, nil
	case err != nil:
		return false, customErrors.WrapInternal(err, "Logout")
	}

	if err = a.userRepo.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
		return false, customErrors.WrapInternal(err, "Logout")
	}
	return true, nil
}

func (a *accountService) UpdateAccount(ctx context.Context, claims token.Claims, targetID uuid.UUID, in dto.UpdateAccountDTO) error {
	if err := a.guard.Authorize(claims, targetID); err != nil {
		return err
	}

	user, err := a.userRepo.GetUserByID(ctx, targetID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "UpdateAccount")
	}

	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	var patch model.ProfilePatch

	if in.Email != "" && in.Email != user.Email {
		_, err := a.userRepo.GetUserByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return customErrors.ErrAlreadyExists
		case !errors.Is(err, customErrors.ErrNotFound):
			return customErrors.WrapInternal(err, "UpdateAccount")
		}
		patch.Email = &in.Email
	}
	if in.Name != "" {
		patch.Name = &in.Name
	}
	if in.Password != "" {
		hash, err := a.hasher.Hash(in.Password)
		if err != nil {
			return customErrors.WrapInternal(err, "UpdateAccount")
		}
		patch.PasswordHash = &hash
	}

	if patch.Name == nil && patch.Email == nil && patch.PasswordHash == nil {
		return nil
	}
	if err := a.userRepo.UpdateProfile(ctx, targetID, patch); err != nil {
		return customErrors.WrapInternal(err, "UpdateAccount")
	}
	return nil
}

func (a *accountService) DeleteAccount(ctx context.Context, claims token.Claims, targetID uuid.UUID) error {
	if err := a.guard.Authorize(claims, targetID); err != nil {
		return err
	}

	err := a.userRepo.DeleteUser(ctx, targetID)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "DeleteAccount")
	}
	return nil
}
