// Package dashboard предоставляет маршруты основного приложения.
package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/handlers/accesscheck"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/handlers/featureslist"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/handlers/featureupdate"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/handlers/login"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/handlers/menu"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/handlers/register"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/handlers/substatus"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/middlewarectx"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
	accessservice "github.com/magabrotheeeer/gym-dashboard/internal/services/access"
	authservice "github.com/magabrotheeeer/gym-dashboard/internal/services/auth"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, accessService *accessservice.AccessService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/menu", menu.New(logger, accessService).ServeHTTP)
			r.Get("/access/check", accesscheck.New(logger, accessService).ServeHTTP)
			r.Get("/subscription/status", substatus.New(logger, accessService).ServeHTTP)

			// Управление фичефлагами доступно только владельцу зала
			// и супер-администратору
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleSuperAdmin, models.RoleOwner))
				r.Use(middlewarectx.SubscriptionGuardMiddleware(logger, accessService))
				r.Get("/features", featureslist.New(logger, accessService).ServeHTTP)
				r.Put("/features/{key}", featureupdate.New(logger, accessService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
