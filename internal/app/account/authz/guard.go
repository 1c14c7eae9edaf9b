package authz

import (
	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/token"
	"github.com/google/uuid"
)

// Guard decides whether a verified identity may act on a target account.
// It assumes token verification already happened; a missing or bad token
// is the transport's ErrUnauthorized, not ours.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// Authorize allows the operation iff the verified claims identify the
// owner of the target account. The comparison is uuid equality, never a
// string or numeric coercion.
func (Guard) Authorize(claims token.Claims, targetID uuid.UUID) error {
	if claims.UserID == uuid.Nil || targetID == uuid.Nil {
		return customErrors.ErrForbidden
	}
	if claims.UserID != targetID {
		return customErrors.ErrForbidden
	}
	return nil
}
