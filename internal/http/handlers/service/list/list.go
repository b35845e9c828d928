// Package list реализует HTTP-обработчик постраничного списка сервисов.
//
// Выборка автоматически ограничивается вызывающим: id и роль берутся
// из проверенного токена. Администратор видит страницу всех сервисов.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// Service описывает интерфейс ролевого листинга сервисов.
type Service interface {
	ListByUserAndRole(ctx context.Context, userID string, page, limit int, role string) ([]*models.Service, error)
}

// Handler обрабатывает HTTP-запросы списка сервисов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список сервисов
// @Description Постраничный список сервисов вызывающего; администратор видит все сервисы.
// @Tags Services
// @Produce  json
// @Param page query int false "Номер страницы (по умолчанию 1)"
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Success 200 {object} map[string]any "Список сервисов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /services [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.service.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, ok := r.Context().Value(middlewarectx.Role).(string)
	if !ok || role == "" {
		log.Error("role not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	services, err := h.service.ListByUserAndRole(r.Context(), userUID, page, limit, role)
	if err != nil {
		log.Error("failed to list services", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list services"))
		return
	}

	log.Info("list services", slog.Int("count", len(services)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(services),
		"services":   services,
	}))
}
