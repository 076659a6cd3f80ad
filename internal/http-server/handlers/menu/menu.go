// Package menu реализует HTTP-обработчик выдачи навигационного меню,
// отфильтрованного по роли, фичефлагам и состоянию подписки зала.
package menu

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

// Handler обрабатывает запросы на получение меню пользователя.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис вычисления доступа
}

// Service описывает интерфейс бизнес-логики построения меню.
type Service interface {
	Menu(ctx context.Context, user *models.User) []models.MenuEntry
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Навигационное меню
// @Description Возвращает пункты меню, видимые текущему пользователю, в порядке показа.
// @Tags Access
// @Produce json
// @Success 200 {object} response.Response "Список пунктов меню"
// @Failure 401 {object} response.ErrorResponse "Нет аутентификации"
// @Router /menu [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.menu.ServeHTTP"

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

	entries := h.service.Menu(r.Context(), user)

	log.Info("menu built", slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"entries": entries,
	}))
}
