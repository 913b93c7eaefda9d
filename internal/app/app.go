package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/igor-IT/wi-auth-ms/internal/config"
	"github.com/igor-IT/wi-auth-ms/internal/delivery"
	httpx "github.com/igor-IT/wi-auth-ms/internal/http"
	"github.com/igor-IT/wi-auth-ms/internal/http/handlers"
	"github.com/igor-IT/wi-auth-ms/internal/http/middleware"
	"github.com/igor-IT/wi-auth-ms/internal/infrastructure/auth"
	"github.com/igor-IT/wi-auth-ms/internal/infrastructure/database"
	"github.com/igor-IT/wi-auth-ms/internal/infrastructure/messaging"
	"github.com/igor-IT/wi-auth-ms/internal/infrastructure/notifications"
	"github.com/igor-IT/wi-auth-ms/internal/infrastructure/repositories"
	"github.com/igor-IT/wi-auth-ms/internal/services"
)

func Run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	// Infrastructure
	passwordSvc := auth.NewPasswordService()
	jwtSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)
	publisher := messaging.NewRedisPublisher(rdb.Client)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	codeRepo := repositories.NewCodeRepository(gdb)
	tokenRepo := repositories.NewTokenRepository(rdb.Client)

	// Services
	limiter := services.NewLimiterService(services.LimiterConfig{
		Capacity:      cfg.LimiterCapacity,
		RefillWindow:  cfg.LimiterRefillWindow,
		SweepInterval: cfg.LimiterSweepInterval,
		Retention:     cfg.LimiterRetention,
	})
	limiter.Start()
	defer limiter.Stop()

	codeSvc := services.NewCodeService(codeRepo, userRepo, publisher, logger)
	tokenSvc := services.NewTokenService(tokenRepo, userRepo, jwtSvc, cfg.RefreshTTL, logger)
	authSvc := services.NewAuthService(userRepo, codeSvc, tokenSvc, passwordSvc, limiter, logger)

	// Out-of-band code delivery
	worker := delivery.NewWorker(rdb.Client, notificationSvc, logger)
	worker.Start(context.Background())
	defer worker.Stop()

	authH := handlers.NewAuthHandlers(authSvc, handlers.TokenHeaders{
		Access:  cfg.AccessHeader,
		Refresh: cfg.RefreshHeader,
	})
	jwtMW := middleware.NewAuthMW(jwtSvc)

	r := httpx.BuildRouter(authH, jwtMW)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
