// Package assign реализует HTTP-обработчик привязки набора сервисов к пользователю.
//
// Набор разрешается целиком: любой неизвестный id отменяет операцию.
package assign

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/account-service/internal/errs"
	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// Request — входные данные привязки: непустой список id сервисов.
type Request struct {
	ServiceIDs []string `json:"serviceIds" validate:"required,min=1,dive,uuid4"`
}

// Service описывает интерфейс бизнес-логики привязки сервисов.
type Service interface {
	AssignServices(ctx context.Context, userID string, serviceIDs []string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы привязки сервисов к пользователю.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Привязать сервисы к пользователю
// @Description Привязывает набор сервисов по id. Уже привязанные не дублируются. Только для администраторов.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param idUser path string true "ID пользователя"
// @Param request body Request true "Список id сервисов"
// @Success 200 {object} map[string]any "Пользователь с обновленным набором сервисов"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или id"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Пользователь или сервис не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /users/{idUser}/services [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.assign"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "idUser")
	if err := h.validate.Var(id, "required,uuid4"); err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
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

	user, err := h.service.AssignServices(r.Context(), id, req.ServiceIDs)
	if err != nil {
		log.Error("failed to assign services", sl.Err(err))
		w.WriteHeader(errs.HTTPStatus(err))
		render.JSON(w, r, response.Error(errs.Message(err)))
		return
	}

	log.Info("services assigned",
		slog.String("user_id", id), slog.Int("count", len(req.ServiceIDs)))
	render.JSON(w, r, response.StatusOKWithData(user))
}
