// Package substatus реализует HTTP-обработчик выдачи вычисленного состояния
// подписки зала текущего пользователя. Ответ используется дашбордом для
// баннера с предупреждением об истечении.
package substatus

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/middlewarectx"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// Handler обрабатывает запросы на получение состояния подписки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис вычисления доступа
}

// Service описывает интерфейс бизнес-логики состояния подписки.
type Service interface {
	SubscriptionStatus(ctx context.Context, user *models.User) models.ResolvedStatus
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Состояние подписки
// @Description Возвращает вычисленное состояние жизненного цикла подписки зала и текст предупреждения.
// @Tags Subscription
// @Produce json
// @Success 200 {object} response.Response "Состояние подписки"
// @Failure 401 {object} response.ErrorResponse "Нет аутентификации"
// @Router /subscription/status [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.substatus.ServeHTTP"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.UserFromContext(r.Context())
	if user == nil {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	resolved := h.service.SubscriptionStatus(r.Context(), user)

	log.Info("subscription status resolved", slog.String("state", string(resolved.State)))
	render.JSON(w, r, response.StatusOKWithData(resolved))
}
