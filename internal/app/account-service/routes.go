// Package accountservice предоставляет маршруты для основного приложения.
package accountservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/account-service/internal/http/handlers/auth/register"
	servicecreate "github.com/magabrotheeeer/account-service/internal/http/handlers/service/create"
	servicelist "github.com/magabrotheeeer/account-service/internal/http/handlers/service/list"
	serviceremove "github.com/magabrotheeeer/account-service/internal/http/handlers/service/remove"
	usercreate "github.com/magabrotheeeer/account-service/internal/http/handlers/user/create"
	userassign "github.com/magabrotheeeer/account-service/internal/http/handlers/user/assign"
	userlist "github.com/magabrotheeeer/account-service/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/account-service/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/account-service/internal/http/handlers/user/remove"
	userservices "github.com/magabrotheeeer/account-service/internal/http/handlers/user/services"
	userupdate "github.com/magabrotheeeer/account-service/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/lib/jwt"
	"github.com/magabrotheeeer/account-service/internal/models"
	authservice "github.com/magabrotheeeer/account-service/internal/services/auth"
	serviceservice "github.com/magabrotheeeer/account-service/internal/services/service"
	userservice "github.com/magabrotheeeer/account-service/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	auth *authservice.AuthService, users *userservice.UserService, services *serviceservice.ServiceService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users/{idUser}", userread.New(logger, users).ServeHTTP)

			r.Get("/services", servicelist.New(logger, services).ServeHTTP)
			r.Post("/services", servicecreate.New(logger, services).ServeHTTP)
			r.Delete("/services/{idService}", serviceremove.New(logger, services).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleAdmin, logger))
				r.Get("/users", userlist.New(logger, users).ServeHTTP)
				r.Post("/users", usercreate.New(logger, users).ServeHTTP)
				r.Patch("/users/{idUser}", userupdate.New(logger, users).ServeHTTP)
				r.Delete("/users/{idUser}", userremove.New(logger, users).ServeHTTP)
				r.Post("/users/{idUser}/services", userassign.New(logger, users).ServeHTTP)
				r.Get("/users/{idUser}/services", userservices.New(logger, services).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
