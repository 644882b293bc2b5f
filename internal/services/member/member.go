// Package services содержит бизнес-логику жизненного цикла участника:
// создание с проверкой уникальности, частичное обновление, удаление
// и чтение с кешированием.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gymhub/members-api/internal/apperr"
	"github.com/gymhub/members-api/internal/events"
	"github.com/gymhub/members-api/internal/models"
)

// BirthDateLayout — единственный принимаемый формат fecha_nacimiento.
const BirthDateLayout = "2006-01-02"

// MemberRepository определяет методы для работы с участниками в хранилище.
type MemberRepository interface {
	// CreateMember сохраняет нового участника и возвращает его ID.
	CreateMember(ctx context.Context, m models.Member) (string, error)
	// GetMember возвращает участника по ID.
	GetMember(ctx context.Context, id string) (*models.Member, error)
	// ListMembers возвращает список участников с пагинацией.
	ListMembers(ctx context.Context, limit, offset int) ([]*models.Member, error)
	// ExistsByDNI проверяет занятость dni, excludeID исключает свою строку.
	ExistsByDNI(ctx context.Context, dni, excludeID string) (bool, error)
	// ExistsByEmail проверяет занятость correo_electronico.
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	// UpdateMember перезаписывает изменяемые поля и возвращает число строк.
	UpdateMember(ctx context.Context, m models.Member) (int64, error)
	// DeleteMember удаляет участника и возвращает число строк.
	DeleteMember(ctx context.Context, id string) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Publisher публикует события жизненного цикла участника.
type Publisher interface {
	Publish(event, memberID, planID string)
}

// MemberService реализует бизнес-логику работы с участниками.
type MemberService struct {
	repo  MemberRepository
	cache Cache
	pub   Publisher
	log   *slog.Logger
	nowFn func() time.Time
}

// NewMemberService создает новый экземпляр MemberService.
// pub может быть nil, если брокер событий не настроен.
func NewMemberService(repo MemberRepository, cache Cache, pub Publisher, log *slog.Logger) *MemberService {
	return &MemberService{
		repo:  repo,
		cache: cache,
		pub:   pub,
		log:   log,
		nowFn: time.Now,
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("member:%s", id)
}

func isCleared(field *string) bool {
	return field != nil && *field == ""
}

// checkUniqueness запускает обе проверки уникальности параллельно и ждёт
// завершения обеих. Конфликт по dni всегда отдаётся раньше конфликта
// по correo_electronico.
func (s *MemberService) checkUniqueness(ctx context.Context, dni, email, excludeID string) error {
	var dniTaken, emailTaken bool

	g, gctx := errgroup.WithContext(ctx)
	if dni != "" {
		g.Go(func() error {
			var err error
			dniTaken, err = s.repo.ExistsByDNI(gctx, dni, excludeID)
			return err
		})
	}
	if email != "" {
		g.Go(func() error {
			var err error
			emailTaken, err = s.repo.ExistsByEmail(gctx, email, excludeID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if dniTaken {
		return apperr.Conflict("member with this dni already exists")
	}
	if emailTaken {
		return apperr.Conflict("member with this correo_electronico already exists")
	}
	return nil
}

// Create регистрирует нового участника: парсит дату рождения, параллельно
// проверяет уникальность dni и correo_electronico, вычисляет edad
// и сохраняет запись.
func (s *MemberService) Create(ctx context.Context, req models.DummyMember) (*models.Member, error) {
	birthDate, err := time.Parse(BirthDateLayout, req.BirthDate)
	if err != nil {
		return nil, apperr.Validation("fecha_nacimiento is not a valid date, expected format 2006-01-02")
	}

	if err := s.checkUniqueness(ctx, req.DNI, req.Email, ""); err != nil {
		return nil, err
	}

	now := s.nowFn().UTC()
	member := models.Member{
		ID:               uuid.New().String(),
		Name:             req.Name,
		Surname:          req.Surname,
		DNI:              req.DNI,
		Email:            req.Email,
		BirthDate:        birthDate,
		Phone:            req.Phone,
		HasHealthRisks:   req.HasHealthRisks,
		Profession:       req.Profession,
		RegistrationDate: now,
	}
	member.Derive(now)

	id, err := s.repo.CreateMember(ctx, member)
	if err != nil {
		return nil, err
	}
	member.ID = id
	s.log.Info("created new member", slog.String("id", id))

	if err := s.cache.Set(cacheKey(id), member, time.Hour); err != nil {
		s.log.Warn("failed to cache member", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	if s.pub != nil {
		s.pub.Publish(events.EventMemberCreated, id, "")
	}

	return &member, nil
}

// Read возвращает участника по ID, используя кеш или репозиторий.
// Производные поля пересчитываются на момент чтения.
func (s *MemberService) Read(ctx context.Context, id string) (*models.Member, error) {
	var result *models.Member
	found, err := s.cache.Get(cacheKey(id), &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	if !found || result == nil {
		result, err = s.repo.GetMember(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.NotFound("member not found")
			}
			return nil, err
		}
		if err := s.cache.Set(cacheKey(id), result, time.Hour); err != nil {
			s.log.Warn("failed to cache member", slog.String("key", cacheKey(id)), slog.Any("err", err))
		}
	}

	result.Derive(s.nowFn().UTC())
	return result, nil
}

// List возвращает страницу участников.
func (s *MemberService) List(ctx context.Context, limit, offset int) ([]*models.Member, error) {
	members, err := s.repo.ListMembers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	now := s.nowFn().UTC()
	for _, m := range members {
		m.Derive(now)
	}
	return members, nil
}

// Update применяет частичное обновление. Поля, отсутствующие в патче,
// не трогаются. Патч dni или correo_electronico повторно проходит обе
// проверки уникальности, исключая собственную запись участника.
func (s *MemberService) Update(ctx context.Context, id string, patch models.MemberPatch) (*models.Member, error) {
	if patch.IsEmpty() {
		return nil, apperr.Validation("patch contains no fields")
	}
	// Обязательное поле можно изменить, но нельзя очистить.
	if isCleared(patch.Name) || isCleared(patch.Surname) || isCleared(patch.DNI) ||
		isCleared(patch.Email) || isCleared(patch.BirthDate) {
		return nil, apperr.Validation("mandatory fields cannot be cleared")
	}

	member, err := s.repo.GetMember(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("member not found")
		}
		return nil, err
	}

	var newDNI, newEmail string
	if patch.DNI != nil && *patch.DNI != member.DNI {
		newDNI = *patch.DNI
	}
	if patch.Email != nil && *patch.Email != member.Email {
		newEmail = *patch.Email
	}
	if newDNI != "" || newEmail != "" {
		if err := s.checkUniqueness(ctx, newDNI, newEmail, id); err != nil {
			return nil, err
		}
	}

	if patch.Name != nil {
		member.Name = *patch.Name
	}
	if patch.Surname != nil {
		member.Surname = *patch.Surname
	}
	if patch.DNI != nil {
		member.DNI = *patch.DNI
	}
	if patch.Email != nil {
		member.Email = *patch.Email
	}
	if patch.BirthDate != nil {
		birthDate, err := time.Parse(BirthDateLayout, *patch.BirthDate)
		if err != nil {
			return nil, apperr.Validation("fecha_nacimiento is not a valid date, expected format 2006-01-02")
		}
		member.BirthDate = birthDate
	}
	if patch.Phone != nil {
		member.Phone = *patch.Phone
	}
	if patch.HasHealthRisks != nil {
		member.HasHealthRisks = *patch.HasHealthRisks
	}
	if patch.Profession != nil {
		member.Profession = *patch.Profession
	}

	count, err := s.repo.UpdateMember(ctx, *member)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("member not found")
	}
	s.log.Info("updated member in storage", slog.String("id", id))

	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}

	member.Derive(s.nowFn().UTC())
	return member, nil
}

// Delete удаляет участника. Записи посещений намеренно не каскадируются.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	count, err := s.repo.DeleteMember(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound("member not found")
	}

	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	if s.pub != nil {
		s.pub.Publish(events.EventMemberDeleted, id, "")
	}
	s.log.Info("deleted member", slog.String("id", id))
	return nil
}
