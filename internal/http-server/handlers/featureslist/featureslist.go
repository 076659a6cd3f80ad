// Package featureslist реализует HTTP-обработчик выдачи фичефлагов зала.
package featureslist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/middlewarectx"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/gym-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// Handler обрабатывает запросы на получение фичефлагов зала.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис вычисления доступа
}

// Service описывает интерфейс бизнес-логики списка фичефлагов.
type Service interface {
	ListFeatures(ctx context.Context, gymUID string) ([]models.FeatureFlag, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Фичефлаги зала
// @Description Возвращает список фичефлагов зала текущего пользователя.
// @Tags Features
// @Produce json
// @Success 200 {object} response.Response "Список фичефлагов"
// @Failure 401 {object} response.ErrorResponse "Нет аутентификации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /features [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.featureslist.ServeHTTP"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := middlewarectx.UserFromContext(r.Context())
	if user == nil || user.GymUID == nil {
		log.Error("user is not linked to a gym")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user is not linked to a gym"))
		return
	}

	flags, err := h.service.ListFeatures(r.Context(), *user.GymUID)
	if err != nil {
		log.Error("failed to list feature flags", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list feature flags"))
		return
	}

	log.Info("feature flags listed", slog.Int("count", len(flags)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"features": flags,
	}))
}
