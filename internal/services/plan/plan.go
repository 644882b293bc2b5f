// Package services содержит бизнес-логику тарифных планов: чтение
// справочника, назначение плана участнику с вычислением даты окончания
// и выдачу сокращённого представления "план участника".
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gymhub/members-api/internal/apperr"
	"github.com/gymhub/members-api/internal/events"
	"github.com/gymhub/members-api/internal/models"
)

// PlanRepository определяет методы хранилища, нужные логике планов.
type PlanRepository interface {
	// GetPlan возвращает тарифный план по ID.
	GetPlan(ctx context.Context, id string) (*models.Plan, error)
	// ListPlans возвращает все тарифные планы.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	// GetMember возвращает участника по ID.
	GetMember(ctx context.Context, id string) (*models.Member, error)
	// AssignPlan атомарно записывает план и обе даты одним UPDATE.
	AssignPlan(ctx context.Context, memberID, planID string, contractedAt, expiresAt time.Time) (*models.Member, error)
}

// Cache описывает методы для инвалидации кеша участников.
type Cache interface {
	Invalidate(key string) error
}

// Publisher публикует события назначения плана.
type Publisher interface {
	Publish(event, memberID, planID string)
}

// PlanService реализует бизнес-логику тарифных планов.
type PlanService struct {
	repo  PlanRepository
	cache Cache
	pub   Publisher
	log   *slog.Logger
	nowFn func() time.Time
}

// NewPlanService создает новый экземпляр PlanService.
// pub может быть nil, если брокер событий не настроен.
func NewPlanService(repo PlanRepository, cache Cache, pub Publisher, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:  repo,
		cache: cache,
		pub:   pub,
		log:   log,
		nowFn: time.Now,
	}
}

// Read возвращает тарифный план по ID.
func (s *PlanService) Read(ctx context.Context, id string) (*models.Plan, error) {
	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("plan not found")
		}
		return nil, err
	}
	return plan, nil
}

// List возвращает справочник тарифных планов.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// Assign назначает участнику тарифный план: fecha_plan_contratado — момент
// назначения, fecha_caducidad_plan — плюс duracion_dias календарных дней
// (AddDate, с корректным переходом через границы месяцев и лет).
// Все три поля записываются одним UPDATE.
func (s *PlanService) Assign(ctx context.Context, memberID, planID string) (*models.MemberWithPlan, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("plan not found")
		}
		return nil, err
	}

	contractedAt := s.nowFn().UTC()
	expiresAt := contractedAt.AddDate(0, 0, plan.DurationDays)

	member, err := s.repo.AssignPlan(ctx, memberID, planID, contractedAt, expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, err
	}
	member.Derive(contractedAt)

	s.log.Info("assigned plan to member",
		slog.String("member_id", memberID),
		slog.String("plan_id", planID),
		slog.Time("expires_at", expiresAt))

	if err := s.cache.Invalidate(fmt.Sprintf("member:%s", memberID)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("err", err))
	}
	if s.pub != nil {
		s.pub.Publish(events.EventPlanAssigned, memberID, planID)
	}

	return &models.MemberWithPlan{Member: *member, Plan: plan}, nil
}

// Lookup возвращает сокращённое представление плана участника.
// Участник без назначенного плана — доменный not-found "no plan assigned".
// Установленные поля отдаются как есть, неустановленные — явным null.
func (s *PlanService) Lookup(ctx context.Context, memberID string) (*models.MemberPlanView, error) {
	member, err := s.repo.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, err
	}

	if member.PlanID == nil && member.PlanContractedAt == nil && member.PlanExpiresAt == nil {
		return nil, apperr.NotFound("no plan assigned")
	}

	return &models.MemberPlanView{
		Name:             member.Name,
		PlanID:           member.PlanID,
		PlanContractedAt: member.PlanContractedAt,
		PlanExpiresAt:    member.PlanExpiresAt,
	}, nil
}
