package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-dashboard/internal/access"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// SubscriptionResolver определяет интерфейс вычисления состояния подписки.
type SubscriptionResolver interface {
	SubscriptionStatus(ctx context.Context, user *models.User) models.ResolvedStatus
}

// SubscriptionGuardMiddleware создает middleware, закрывающий группу
// маршрутов от залов с заблокированной подпиской. Супер-администратор и
// участники залов проверку не проходят: их доступ от подписки зала не
// зависит. Предупреждение о скором истечении не блокирует запрос и
// возвращается заголовком X-Subscription-Warning.
func SubscriptionGuardMiddleware(log *slog.Logger, resolver SubscriptionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}
			if user.Role == models.RoleSuperAdmin || user.Role == models.RoleMember {
				next.ServeHTTP(w, r)
				return
			}

			resolved := resolver.SubscriptionStatus(r.Context(), user)
			if !access.AllowsAccess(resolved.State) {
				log.Error("subscription blocked, access denied",
					slog.String("state", string(resolved.State)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("subscription "+string(resolved.State)+", access denied"))
				return
			}
			if resolved.Warning != "" {
				w.Header().Set("X-Subscription-Warning", resolved.Warning)
			}
			next.ServeHTTP(w, r)
		})
	}
}
