package http

import (
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/adapters/transport/http/middleware"
	appsvc "github.com/Miraines/MoonyAndStarry/account-service/internal/app/account/service"
	accErrors "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/token"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/infra/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const refreshCookie = "refresh_token"

// NewRouter wires the HTTP surface. All session semantics live in the
// service; this layer only parses bodies, moves the refresh token in and
// out of its cookie, and maps error categories to statuses.
func NewRouter(svc appsvc.Service, tokens token.Issuer, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
			},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.POST("/register", func(c *gin.Context) {
		var body dto.RegisterDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.Register(c.Request.Context(), body); err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "registration successful"})
	})

	router.POST("/login", func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pair, err := svc.Login(c.Request.Context(), body)
		if err != nil {
			handleError(c, err)
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(
			refreshCookie,
			pair.RefreshToken,
			int(pair.RefreshTTL.Seconds()),
			"/",
			cfg.CookieDomain,
			true, // secure
			true, // httpOnly
		)
		c.JSON(http.StatusOK, gin.H{"accessToken": pair.AccessToken})
	})

	router.GET("/token", func(c *gin.Context) {
		raw, _ := c.Cookie(refreshCookie)
		at, err := svc.Refresh(c.Request.Context(), raw)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": at})
	})

	router.DELETE("/logout", func(c *gin.Context) {
		raw, _ := c.Cookie(refreshCookie)
		cleared, err := svc.Logout(c.Request.Context(), raw)
		if err != nil {
			handleError(c, err)
			return
		}
		if !cleared {
			c.Status(http.StatusNoContent)
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(refreshCookie, "", -1, "/", cfg.CookieDomain, true, true)
		c.Status(http.StatusOK)
	})

	authorized := router.Group("/users", middleware.RequireAccessToken(tokens))

	authorized.PUT("/:id", func(c *gin.Context) {
		claims, targetID, ok := ownerRequest(c)
		if !ok {
			return
		}
		var body dto.UpdateAccountDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.UpdateAccount(c.Request.Context(), claims, targetID, body); err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "account updated"})
	})

	authorized.DELETE("/:id", func(c *gin.Context) {
		claims, targetID, ok := ownerRequest(c)
		if !ok {
			return
		}
		if err := svc.DeleteAccount(c.Request.Context(), claims, targetID); err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "account deleted"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	return router
}

// ownerRequest pulls the verified claims and the target account id out
// of an authorized request. The id must parse as a uuid; nothing else is
// ever compared against claims.
func ownerRequest(c *gin.Context) (token.Claims, uuid.UUID, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return token.Claims{}, uuid.Nil, false
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed account id"})
		return token.Claims{}, uuid.Nil, false
	}
	return claims, targetID, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case accErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case accErrors.IsPasswordMismatch(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "password and confirmation do not match"})
	case accErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already in use"})
	case accErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong password"})
	case accErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case accErrors.IsUnauthorized(err):
		c.AbortWithStatus(http.StatusUnauthorized)
	case accErrors.IsForbidden(err):
		c.AbortWithStatus(http.StatusForbidden)
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
