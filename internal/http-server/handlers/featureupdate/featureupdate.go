// Package featureupdate реализует HTTP-обработчик изменения фичефлага зала.
//
// Обработчик извлекает ключ фичи из URL-параметра, валидирует тело запроса
// и делегирует запись сервису вычисления доступа.
package featureupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/middlewarectx"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/gym-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// Handler обрабатывает запросы на изменение фичефлага.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис вычисления доступа
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики изменения фичефлага.
type Service interface {
	SetFeature(ctx context.Context, gymUID, key string, enabled bool) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменение фичефлага
// @Description Включает или выключает фичу зала текущего пользователя.
// @Tags Features
// @Accept json
// @Produce json
// @Param key path string true "Ключ фичи, например crm"
// @Param request body models.DummyFeatureUpdate true "Новое значение флага"
// @Success 200 {object} response.Response "Флаг обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /features/{key} [put]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.featureupdate.ServeHTTP"

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

	key := chi.URLParam(r, "key")
	if key == "" {
		log.Error("missing feature key in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing feature key in url"))
		return
	}

	var req models.DummyFeatureUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.SetFeature(r.Context(), *user.GymUID, key, *req.Enabled); err != nil {
		log.Error("failed to update feature flag", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update feature flag"))
		return
	}

	log.Info("feature flag updated",
		slog.String("key", key),
		slog.Bool("enabled", *req.Enabled))
	render.JSON(w, r, response.OK())
}
