package repository

import (
	"context"
	"fmt"

	"github.com/gymhub/members-api/internal/models"
)

// GetPlan возвращает тарифный план по его ID.
func (s *Storage) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	const op = "storage.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, nombre, descripcion, precio, duracion_dias,
			      acceso_piscina, acceso_clases_grupales, acceso_personal_trainer
			  FROM plans
			  WHERE id = $1`
	p := &models.Plan{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name,
		&p.Description, &p.Price, &p.DurationDays, &p.PoolAccess,
		&p.GroupClassesAccess, &p.TrainerAccess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListPlans возвращает все тарифные планы клуба.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, nombre, descripcion, precio, duracion_dias,
			      acceso_piscina, acceso_clases_grupales, acceso_personal_trainer
			  FROM plans
			  ORDER BY precio`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		p := &models.Plan{}
		if err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price,
			&p.DurationDays, &p.PoolAccess, &p.GroupClassesAccess,
			&p.TrainerAccess); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
