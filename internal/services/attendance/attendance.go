// Package services содержит агрегацию истории посещений участника.
// Существуют две стратегии за одним интерфейсом Source: локальная выборка
// с join на справочник занятий и сборка из двух внешних сервисов.
// Какая из них активна, решает конфигурация развёртывания.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gymhub/members-api/internal/apperr"
	"github.com/gymhub/members-api/internal/models"
)

// Source — стратегия получения истории посещений участника.
type Source interface {
	History(ctx context.Context, memberID string) (*models.ActivityHistory, error)
}

// MemberGetter — минимальный срез хранилища для проверки существования
// участника.
type MemberGetter interface {
	GetMember(ctx context.Context, id string) (*models.Member, error)
}

// AttendanceRepository — локальная выборка посещённых занятий.
type AttendanceRepository interface {
	MemberGetter
	ListAttendedActivities(ctx context.Context, memberID string) ([]models.AttendedActivity, error)
}

// LocalSource собирает историю из локальных таблиц attendance и activities.
type LocalSource struct {
	repo AttendanceRepository
	log  *slog.Logger
}

// NewLocalSource создает локальную стратегию.
func NewLocalSource(repo AttendanceRepository, log *slog.Logger) *LocalSource {
	return &LocalSource{repo: repo, log: log}
}

// History возвращает посещённые занятия участника, отсортированные по дате
// по убыванию. Записи с asistio = false исключены на уровне запроса.
func (s *LocalSource) History(ctx context.Context, memberID string) (*models.ActivityHistory, error) {
	if _, err := s.repo.GetMember(ctx, memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, err
	}

	records, err := s.repo.ListAttendedActivities(ctx, memberID)
	if err != nil {
		return nil, err
	}

	s.log.Info("collected local activity history",
		slog.String("member_id", memberID), slog.Int("total", len(records)))

	return &models.ActivityHistory{
		Records: records,
		Total:   len(records),
	}, nil
}

// ActivityClient — клиент внешних сервисов посещений и занятий.
type ActivityClient interface {
	ListAttendances(ctx context.Context, memberID string) ([]models.RemoteAttendance, error)
	GetActivity(ctx context.Context, activityID string) (map[string]any, error)
}

// RemoteSource собирает историю из внешнего сервиса посещений и внешнего
// сервиса занятий. Карточки занятий запрашиваются параллельно; любой отказ
// внешней стороны — ошибка агрегации без частичного результата.
type RemoteSource struct {
	repo   MemberGetter
	client ActivityClient
	log    *slog.Logger
	nowFn  func() time.Time
}

// NewRemoteSource создает внешнюю стратегию.
func NewRemoteSource(repo MemberGetter, client ActivityClient, log *slog.Logger) *RemoteSource {
	return &RemoteSource{repo: repo, client: client, log: log, nowFn: time.Now}
}

// History возвращает участника и карточки посещённых занятий.
// Внешний сервис не гарантирует фильтрацию по asistio, поэтому она
// выполняется локально; дубликаты activity_id сворачиваются до одного
// запроса карточки.
func (s *RemoteSource) History(ctx context.Context, memberID string) (*models.ActivityHistory, error) {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, err
	}
	member.Derive(s.nowFn().UTC())

	rows, err := s.client.ListAttendances(ctx, memberID)
	if err != nil {
		return nil, apperr.Aggregation("failed to fetch attendances from external service", err)
	}

	seen := make(map[string]struct{})
	var activityIDs []string
	for _, row := range rows {
		if !row.Attended {
			continue
		}
		if _, ok := seen[row.ActivityID]; ok {
			continue
		}
		seen[row.ActivityID] = struct{}{}
		activityIDs = append(activityIDs, row.ActivityID)
	}

	details := make([]map[string]any, len(activityIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, activityID := range activityIDs {
		g.Go(func() error {
			detail, err := s.client.GetActivity(gctx, activityID)
			if err != nil {
				return err
			}
			mu.Lock()
			details[i] = detail
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.Aggregation("failed to fetch activity details from external service", err)
	}

	s.log.Info("collected remote activity history",
		slog.String("member_id", memberID), slog.Int("total", len(details)))

	return &models.ActivityHistory{
		Member:  member,
		Details: details,
		Total:   len(details),
	}, nil
}
