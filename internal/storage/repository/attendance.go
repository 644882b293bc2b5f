package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gymhub/members-api/internal/models"
)

// ListAttendedActivities возвращает посещённые занятия участника,
// обогащённые данными занятия: только строки с asistio = TRUE,
// отсортированные по дате по убыванию.
func (s *Storage) ListAttendedActivities(ctx context.Context, memberID string) ([]models.AttendedActivity, error) {
	const op = "storage.ListAttendedActivities"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.fecha, act.id, act.nombre, act.descripcion
			  FROM attendance a
			  JOIN activities act ON act.id = a.activity_id
			  WHERE a.user_id = $1 AND a.asistio = TRUE
			  ORDER BY a.fecha DESC`
	rows, err := s.DB.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.AttendedActivity
	for rows.Next() {
		var rec models.AttendedActivity
		var description sql.NullString
		if err = rows.Scan(&rec.ID, &rec.Date, &rec.Activity.ID,
			&rec.Activity.Name, &description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if description.Valid {
			rec.Activity.Description = description.String
		}
		result = append(result, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
