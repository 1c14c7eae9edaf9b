package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/model"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestPostgresUserRepo_CRUD(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "e@e", Name: "n", PasswordHash: "h", CreatedAt: time.Now()}
	id, err := repo.CreateUser(ctx, user)
	if err != nil || id != user.ID {
		t.Fatalf("create %v", err)
	}
	got, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil || got.ID != user.ID {
		t.Fatalf("get by email %v", err)
	}
	got2, err := repo.GetUserByID(ctx, user.ID)
	if err != nil || got2.Email != user.Email {
		t.Fatalf("get by id %v", err)
	}
	name := "renamed"
	if err := repo.UpdateProfile(ctx, user.ID, model.ProfilePatch{Name: &name}); err != nil {
		t.Fatalf("update %v", err)
	}
	got3, _ := repo.GetUserByID(ctx, user.ID)
	if got3.Name != "renamed" || got3.Email != user.Email {
		t.Fatalf("patch must only touch supplied fields: %+v", got3)
	}
	if err := repo.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete %v", err)
	}
	if _, err := repo.GetUserByID(ctx, user.ID); !errors.IsNotFound(err) {
		t.Fatalf("expected not found")
	}
	if err := repo.DeleteUser(ctx, user.ID); !errors.IsNotFound(err) {
		t.Fatalf("delete of missing row must be not found")
	}
}

func TestPostgresUserRepo_RefreshTokenColumn(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "r@e", Name: "n", PasswordHash: "h"}
	if _, err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create %v", err)
	}

	if err := repo.UpdateRefreshToken(ctx, user.ID, "tok-1"); err != nil {
		t.Fatalf("set token %v", err)
	}
	got, err := repo.GetUserByRefreshToken(ctx, "tok-1")
	if err != nil || got.ID != user.ID {
		t.Fatalf("find by token %v", err)
	}

	// overwrite rotates the old value out
	if err := repo.UpdateRefreshToken(ctx, user.ID, "tok-2"); err != nil {
		t.Fatalf("rotate %v", err)
	}
	if _, err := repo.GetUserByRefreshToken(ctx, "tok-1"); !errors.IsNotFound(err) {
		t.Fatalf("rotated token must not match")
	}

	// clear to absent
	if err := repo.UpdateRefreshToken(ctx, user.ID, ""); err != nil {
		t.Fatalf("clear %v", err)
	}
	if _, err := repo.GetUserByRefreshToken(ctx, ""); !errors.IsNotFound(err) {
		t.Fatalf("empty token must never match a row")
	}

	if err := repo.UpdateRefreshToken(ctx, uuid.New(), "x"); !errors.IsNotFound(err) {
		t.Fatalf("unknown user must be not found")
	}
}
