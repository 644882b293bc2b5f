package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gymhub/members-api/internal/models"
)

const memberColumns = `id, nombre, apellido, dni, correo_electronico,
			      fecha_nacimiento, telefono, enfermedades_base, profesion,
			      fecha_inscripcion, plan_id, fecha_plan_contratado, fecha_caducidad_plan`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	m := &models.Member{}
	var phone, profession, planID sql.NullString
	var contractedAt, expiresAt sql.NullTime
	if err := row.Scan(&m.ID, &m.Name, &m.Surname, &m.DNI, &m.Email,
		&m.BirthDate, &phone, &m.HasHealthRisks, &profession,
		&m.RegistrationDate, &planID, &contractedAt, &expiresAt); err != nil {
		return nil, err
	}

	if phone.Valid {
		m.Phone = phone.String
	}
	if profession.Valid {
		m.Profession = profession.String
	}
	if planID.Valid {
		m.PlanID = &planID.String
	}
	if contractedAt.Valid {
		m.PlanContractedAt = &contractedAt.Time
	}
	if expiresAt.Valid {
		m.PlanExpiresAt = &expiresAt.Time
	}
	return m, nil
}

// CreateMember сохраняет нового участника и возвращает его ID.
func (s *Storage) CreateMember(ctx context.Context, m models.Member) (string, error) {
	const op = "storage.CreateMember"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO members (id, nombre, apellido, dni, correo_electronico,
			      fecha_nacimiento, telefono, enfermedades_base, profesion, fecha_inscripcion)
			  VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, NULLIF($9, ''), $10)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		m.ID, m.Name, m.Surname, m.DNI, m.Email, m.BirthDate,
		m.Phone, m.HasHealthRisks, m.Profession, m.RegistrationDate).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetMember возвращает участника по его ID.
// Отсутствие строки отдаётся как обёрнутый sql.ErrNoRows.
func (s *Storage) GetMember(ctx context.Context, id string) (*models.Member, error) {
	const op = "storage.GetMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + `
			  FROM members
			  WHERE id = $1`
	m, err := scanMember(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMembers возвращает список участников с пагинацией.
func (s *Storage) ListMembers(ctx context.Context, limit, offset int) ([]*models.Member, error) {
	const op = "storage.ListMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + memberColumns + `
			  FROM members
			  ORDER BY fecha_inscripcion DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ExistsByDNI сообщает, есть ли участник с таким dni.
// excludeID исключает из проверки собственную строку участника при патче;
// пустая строка означает "без исключений".
func (s *Storage) ExistsByDNI(ctx context.Context, dni, excludeID string) (bool, error) {
	const op = "storage.ExistsByDNI"

	var exists bool
	query := `SELECT EXISTS(
			      SELECT 1 FROM members
			      WHERE dni = $1 AND ($2 = '' OR id::TEXT <> $2)
			  )`
	if err := s.DB.QueryRowContext(ctx, query, dni, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ExistsByEmail сообщает, есть ли участник с таким correo_electronico.
func (s *Storage) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	const op = "storage.ExistsByEmail"

	var exists bool
	query := `SELECT EXISTS(
			      SELECT 1 FROM members
			      WHERE correo_electronico = $1 AND ($2 = '' OR id::TEXT <> $2)
			  )`
	if err := s.DB.QueryRowContext(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateMember перезаписывает изменяемые поля участника и возвращает
// количество затронутых строк. Поля плана этим методом не трогаются.
func (s *Storage) UpdateMember(ctx context.Context, m models.Member) (int64, error) {
	const op = "storage.UpdateMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE members
			  SET nombre = $1,
			      apellido = $2,
			      dni = $3,
			      correo_electronico = $4,
			      fecha_nacimiento = $5,
			      telefono = NULLIF($6, ''),
			      enfermedades_base = $7,
			      profesion = NULLIF($8, '')
			  WHERE id = $9`
	res, err := s.DB.ExecContext(ctx, query,
		m.Name, m.Surname, m.DNI, m.Email, m.BirthDate,
		m.Phone, m.HasHealthRisks, m.Profession, m.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeleteMember удаляет участника и возвращает количество удалённых строк.
// Записи посещений не каскадируются и остаются в таблице attendance.
func (s *Storage) DeleteMember(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteMember"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// AssignPlan атомарно записывает plan_id и обе даты плана одним UPDATE
// и возвращает обновлённого участника. Отсутствие участника отдаётся
// как обёрнутый sql.ErrNoRows из того же запроса.
func (s *Storage) AssignPlan(ctx context.Context, memberID, planID string, contractedAt, expiresAt time.Time) (*models.Member, error) {
	const op = "storage.AssignPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE members
			  SET plan_id = $1,
			      fecha_plan_contratado = $2,
			      fecha_caducidad_plan = $3
			  WHERE id = $4
			  RETURNING ` + memberColumns
	m, err := scanMember(s.DB.QueryRowContext(ctx, query, planID, contractedAt, expiresAt, memberID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}
