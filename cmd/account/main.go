package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	myPostgresRepo "github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/db/postgres"
	myHTTP "github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/app/account/authz"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/app/account/password"
	appsvc "github.com/Miraines/MoonyAndStarry/account-service/internal/app/account/service"
	apptoken "github.com/Miraines/MoonyAndStarry/account-service/internal/app/account/token"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/config"
	lg "github.com/Miraines/MoonyAndStarry/account-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/migrate"
	"golang.org/x/sync/errgroup"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	issuer, err := apptoken.NewJwtIssuer(cfg)
	if err != nil {
		zapLog.Fatal("failed to init token issuer", zap.Error(err))
	}

	userRepo := myPostgresRepo.NewPostgresUserRepo(db)
	svc := appsvc.New(
		userRepo,
		issuer,
		password.NewHasher(cfg.PasswordPepper),
		authz.NewGuard(),
		cfg,
		validator.New(),
	)

	router := myHTTP.NewRouter(svc, issuer, cfg, zapLog)

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}
	rootCtx, cancel := context.WithCancel(context.Background())
	g, _ := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
