// Package membersapi предоставляет маршруты для основного приложения.
package membersapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gymhub/members-api/internal/http/handlers/health"
	"github.com/gymhub/members-api/internal/http/handlers/member/activities"
	"github.com/gymhub/members-api/internal/http/handlers/member/assignplan"
	"github.com/gymhub/members-api/internal/http/handlers/member/create"
	"github.com/gymhub/members-api/internal/http/handlers/member/list"
	"github.com/gymhub/members-api/internal/http/handlers/member/planinfo"
	"github.com/gymhub/members-api/internal/http/handlers/member/read"
	"github.com/gymhub/members-api/internal/http/handlers/member/remove"
	"github.com/gymhub/members-api/internal/http/handlers/member/update"
	planlist "github.com/gymhub/members-api/internal/http/handlers/plan/list"
	planread "github.com/gymhub/members-api/internal/http/handlers/plan/read"
	"github.com/gymhub/members-api/internal/http/middlewarectx"
	attendanceservice "github.com/gymhub/members-api/internal/services/attendance"
	memberservice "github.com/gymhub/members-api/internal/services/member"
	planservice "github.com/gymhub/members-api/internal/services/plan"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, memberService *memberservice.MemberService, planService *planservice.PlanService, source attendanceservice.Source) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/members", create.New(logger, memberService).ServeHTTP)
		r.Get("/members", list.New(logger, memberService).ServeHTTP)
		r.Get("/members/{id}", read.New(logger, memberService).ServeHTTP)
		r.Patch("/members/{id}", update.New(logger, memberService).ServeHTTP)
		r.Delete("/members/{id}", remove.New(logger, memberService).ServeHTTP)

		r.Post("/members/{id}/plan/{planID}", assignplan.New(logger, planService).ServeHTTP)
		r.Get("/members/{id}/plan", planinfo.New(logger, planService).ServeHTTP)
		r.Get("/members/{id}/activities", activities.New(logger, source).ServeHTTP)

		r.Get("/plans", planlist.New(logger, planService).ServeHTTP)
		r.Get("/plans/{id}", planread.New(logger, planService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
