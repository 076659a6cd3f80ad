// Package dashboard собирает и запускает HTTP-приложение дашборда:
// хранилище, кеш, сервисы и маршруты.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/gym-dashboard/internal/access"
	"github.com/magabrotheeeer/gym-dashboard/internal/cache"
	"github.com/magabrotheeeer/gym-dashboard/internal/config"
	"github.com/magabrotheeeer/gym-dashboard/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-dashboard/internal/migrations"
	accessservice "github.com/magabrotheeeer/gym-dashboard/internal/services/access"
	authservice "github.com/magabrotheeeer/gym-dashboard/internal/services/auth"
	"github.com/magabrotheeeer/gym-dashboard/internal/storage"
)

// App агрегирует ресурсы HTTP-приложения дашборда.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает хранилище, применяет миграции,
// инициализирует кеш и сервисы, регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	accessService := accessservice.NewAccessService(db, cacheRedis, logger, access.SystemClock{}, accessservice.GuardConfig{
		ManageSubscriptionPath: cfg.ManageSubscriptionPath,
		LoginPath:              cfg.LoginPath,
		DeniedPath:             cfg.DeniedPath,
		ExemptPaths:            cfg.ExemptPaths,
	})

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, accessService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокирует до отмены контекста или ошибки.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
