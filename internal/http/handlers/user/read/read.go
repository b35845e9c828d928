// Package read реализует HTTP-обработчик чтения пользователя по id.
//
// Доступен любому аутентифицированному вызывающему: ограничение по владению
// здесь намеренно не применяется.
package read

import (
	"context"
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

// Service описывает интерфейс бизнес-логики чтения пользователя.
type Service interface {
	FindOne(ctx context.Context, id string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы чтения пользователя.
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
// @Summary Пользователь по id
// @Description Возвращает активного пользователя с привязанными сервисами.
// @Tags Users
// @Produce  json
// @Param idUser path string true "ID пользователя"
// @Success 200 {object} map[string]any "Пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный id"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /users/{idUser} [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"

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

	user, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		log.Error("failed to find user", sl.Err(err))
		w.WriteHeader(errs.HTTPStatus(err))
		render.JSON(w, r, response.Error(errs.Message(err)))
		return
	}

	log.Info("found user", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(user))
}
