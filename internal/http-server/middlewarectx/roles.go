package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-dashboard/internal/access"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// RequireRoles возвращает middleware, пропускающий запрос только если роль
// пользователя входит в allowed. Пустой список ролей пропускает всех
// аутентифицированных пользователей.
func RequireRoles(log *slog.Logger, allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}
			if !access.RoleAllowed(user.Role, allowed) {
				log.Error("role not permitted", slog.String("role", string(user.Role)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("role not permitted"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
