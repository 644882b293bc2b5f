// Package membersapi собирает приложение: хранилище, кеш, брокер событий,
// сервисы и HTTP-сервер с маршрутами.
package membersapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/gymhub/members-api/internal/cache"
	activityclient "github.com/gymhub/members-api/internal/clients/activity"
	"github.com/gymhub/members-api/internal/config"
	"github.com/gymhub/members-api/internal/events"
	"github.com/gymhub/members-api/internal/migrations"
	attendanceservice "github.com/gymhub/members-api/internal/services/attendance"
	memberservice "github.com/gymhub/members-api/internal/services/member"
	planservice "github.com/gymhub/members-api/internal/services/plan"
	"github.com/gymhub/members-api/internal/storage/repository"
)

// App — собранное приложение сервиса участников.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	pub    *events.Publisher
}

// New инициализирует зависимости и возвращает готовое к запуску приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var pub *events.Publisher
	if cfg.RabbitURL != "" {
		pub, err = events.New(cfg.RabbitURL, logger)
		if err != nil {
			return nil, err
		}
	}

	memberService := memberservice.NewMemberService(db, cacheRedis, pub, logger)
	planService := planservice.NewPlanService(db, cacheRedis, pub, logger)

	var source attendanceservice.Source
	switch cfg.AttendanceSource {
	case "remote":
		client := activityclient.New(cfg.ActivityServices)
		source = attendanceservice.NewRemoteSource(db, client, logger)
	default:
		source = attendanceservice.NewLocalSource(db, logger)
	}
	logger.Info("attendance source selected", slog.String("source", cfg.AttendanceSource))

	router := chi.NewRouter()
	RegisterRoutes(router, logger, memberService, planService, source)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		pub:    pub,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// или ошибки сервера. Остановка контекста запускает graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.pub.Close()
		_ = a.db.DB.Close()
		return err
	}
}
