// Package accesscheck реализует HTTP-обработчик проверки доступа к маршруту.
//
// Обработчик принимает путь маршрута в query-параметре и возвращает решение
// route guard: показывать маршрут, перенаправить или подождать загрузки.
package accesscheck

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-dashboard/internal/access"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/middlewarectx"
	"github.com/magabrotheeeer/gym-dashboard/internal/http-server/response"
	"github.com/magabrotheeeer/gym-dashboard/internal/models"
)

// Handler обрабатывает запросы на проверку доступа к маршруту.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис вычисления доступа
}

// Service описывает интерфейс бизнес-логики проверки маршрута.
type Service interface {
	CheckPath(ctx context.Context, user *models.User, path string) (access.Decision, bool)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверка доступа к маршруту
// @Description Возвращает решение route guard для переданного пути: render, redirect или pending.
// @Tags Access
// @Produce json
// @Param path query string true "Путь маршрута, например /billing"
// @Success 200 {object} response.Response "Решение guard"
// @Failure 400 {object} response.ErrorResponse "Не передан путь"
// @Failure 404 {object} response.ErrorResponse "Маршрут не найден"
// @Router /access/check [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.accesscheck.ServeHTTP"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	path := r.URL.Query().Get("path")
	if path == "" {
		log.Error("missing path query parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing path query parameter"))
		return
	}

	user := middlewarectx.UserFromContext(r.Context())

	decision, ok := h.service.CheckPath(r.Context(), user, path)
	if !ok {
		log.Error("unknown route", slog.String("path", path))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("unknown route"))
		return
	}

	log.Info("access checked",
		slog.String("path", path),
		slog.String("decision", string(decision.Kind)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"decision": decision,
	}))
}
