// Package membership собирает HTTP-приложение договоров, начислений, посещений и мандатов.
package membership

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/membership-engine/docs"
	"github.com/magabrotheeeer/membership-engine/internal/config"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/attendance/refresh"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/attendance/stats"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/billing/member"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/billing/projection"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/billing/record"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/contract/list"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/contract/remove"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/contract/transition"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/health"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/mandate/issue"
	"github.com/magabrotheeeer/membership-engine/internal/http/handlers/mandate/revoke"
	"github.com/magabrotheeeer/membership-engine/internal/http/middlewarectx"
	attendanceservice "github.com/magabrotheeeer/membership-engine/internal/services/attendance"
	billingservice "github.com/magabrotheeeer/membership-engine/internal/services/billing"
	contractservice "github.com/magabrotheeeer/membership-engine/internal/services/contract"
	mandateservice "github.com/magabrotheeeer/membership-engine/internal/services/mandate"
)

// Services набор сервисов, которые обслуживает API.
type Services struct {
	Contracts  *contractservice.ContractService
	Billing    *billingservice.BillingService
	Attendance *attendanceservice.AttendanceService
	Mandates   *mandateservice.MandateService
	Health     health.Checker
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, limit config.RateLimit, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, limit.RPS, limit.Burst))

		r.Get("/members/{memberID}/contracts", list.New(logger, s.Contracts).ServeHTTP)
		r.Post("/contracts/{id}/transitions", transition.New(logger, s.Contracts).ServeHTTP)
		r.Delete("/contracts/{id}", remove.New(logger, s.Contracts).ServeHTTP)

		r.Get("/contracts/{id}/projection", projection.New(logger, s.Billing).ServeHTTP)
		r.Get("/members/{memberID}/billing", member.New(logger, s.Billing).ServeHTTP)
		r.Post("/billing-entries", record.New(logger, s.Billing).ServeHTTP)

		r.Get("/members/{memberID}/attendance/stats", stats.New(logger, s.Attendance).ServeHTTP)
		r.Post("/members/{memberID}/attendance/refresh", refresh.New(logger, s.Attendance).ServeHTTP)

		r.Post("/members/{memberID}/mandates", issue.New(logger, s.Mandates).ServeHTTP)
		r.Delete("/mandates/{id}", revoke.New(logger, s.Mandates).ServeHTTP)
	})

	r.Get("/health", health.New(logger, s.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
