package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/model"
	"github.com/google/uuid"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// GetUserByRefreshToken matches the stored token byte-for-byte.
	GetUserByRefreshToken(ctx context.Context, token string) (model.User, error)

	// UpdateRefreshToken overwrites the stored refresh token for the user.
	// An empty token clears the session.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	UpdateProfile(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) error

	DeleteUser(ctx context.Context, id uuid.UUID) error
}
