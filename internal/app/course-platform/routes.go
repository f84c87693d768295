// Package courseplatform предоставляет маршруты основного приложения.
package courseplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/coursecreate"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/courseremove"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/lectureadd"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/lectureremove"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/roleupdate"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/stats"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/admin/userslist"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/course-platform/internal/http/handlers/auth/register"
	checkoutcreate "github.com/magabrotheeeer/course-platform/internal/http/handlers/checkout/create"
	courselist "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/list"
	coursemy "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/my"
	courseread "github.com/magabrotheeeer/course-platform/internal/http/handlers/course/read"
	lecturelist "github.com/magabrotheeeer/course-platform/internal/http/handlers/lecture/list"
	lectureread "github.com/magabrotheeeer/course-platform/internal/http/handlers/lecture/read"
	paymentlist "github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/list"
	paymentverify "github.com/magabrotheeeer/course-platform/internal/http/handlers/payment/verify"
	progressadd "github.com/magabrotheeeer/course-platform/internal/http/handlers/progress/add"
	progressget "github.com/magabrotheeeer/course-platform/internal/http/handlers/progress/get"
	"github.com/magabrotheeeer/course-platform/internal/http/middlewarectx"
	adminservice "github.com/magabrotheeeer/course-platform/internal/services/admin"
	authservice "github.com/magabrotheeeer/course-platform/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/course-platform/internal/services/catalog"
	checkoutservice "github.com/magabrotheeeer/course-platform/internal/services/checkout"
	paymentservice "github.com/magabrotheeeer/course-platform/internal/services/payment"
	progressservice "github.com/magabrotheeeer/course-platform/internal/services/progress"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	catalogService *catalogservice.CatalogService,
	checkoutService *checkoutservice.CheckoutService,
	paymentService *paymentservice.PaymentService,
	progressService *progressservice.ProgressService,
	adminService *adminservice.AdminService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/courses", courselist.New(logger, catalogService).ServeHTTP)
		r.Get("/course/{id}", courseread.New(logger, catalogService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/lectures/{id}", lecturelist.New(logger, catalogService).ServeHTTP)
			r.Get("/lecture/{id}", lectureread.New(logger, catalogService).ServeHTTP)
			r.Get("/mycourses", coursemy.New(logger, catalogService).ServeHTTP)
			r.Post("/checkout/{id}", checkoutcreate.New(logger, checkoutService).ServeHTTP)
			r.Post("/verify", paymentverify.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/list", paymentlist.New(logger, paymentService).ServeHTTP)
			r.Post("/progress", progressadd.New(logger, progressService).ServeHTTP)
			r.Get("/progress", progressget.New(logger, progressService).ServeHTTP)
		})

		// Административная группа
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.AdminOnlyMiddleware(logger))
			r.Post("/admin/course", coursecreate.New(logger, adminService).ServeHTTP)
			r.Delete("/admin/course/{id}", courseremove.New(logger, adminService).ServeHTTP)
			r.Post("/admin/course/{id}/lecture", lectureadd.New(logger, adminService).ServeHTTP)
			r.Delete("/admin/lecture/{id}", lectureremove.New(logger, adminService).ServeHTTP)
			r.Get("/admin/stats", stats.New(logger, adminService).ServeHTTP)
			r.Get("/admin/users", userslist.New(logger, adminService).ServeHTTP)
			r.Put("/admin/user/{id}", roleupdate.New(logger, adminService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
