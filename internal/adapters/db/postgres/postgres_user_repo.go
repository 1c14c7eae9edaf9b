package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/model"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return p.getUserBy(ctx, "email = ?", email, "GetUserByEmail")
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return p.getUserBy(ctx, "id = ?", id, "GetUserByID")
}

func (p *PostgresUserRepo) GetUserByRefreshToken(ctx context.Context, token string) (model.User, error) {
	// the empty string marks "no session" and must never match a row
	if token == "" {
		return model.User{}, customErrors.ErrNotFound
	}
	return p.getUserBy(ctx, "refresh_token = ?", token, "GetUserByRefreshToken")
}

func (p *PostgresUserRepo) getUserBy(ctx context.Context, cond string, arg interface{}, op string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where(cond, arg).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, op)
	}

	return u, nil
}

// UpdateRefreshToken is a single UPDATE, so concurrent logins for the
// same account resolve to last-write-wins at the database.
func (p *PostgresUserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}

func (p *PostgresUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) error {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.PasswordHash != nil {
		fields["password_hash"] = *patch.PasswordHash
	}
	if len(fields) == 0 {
		return nil
	}

	res := p.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return customErrors.ErrAlreadyExists
		}
		return customErrors.WrapInternal(err, "UpdateProfile")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}

func (p *PostgresUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&model.User{}, id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteUser")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}
