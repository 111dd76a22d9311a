package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slovko/tutor-admin/internal/model"
	"github.com/slovko/tutor-admin/internal/repository/base"
)

// TemplateRepository stores weekly availability templates, one JSON document
// per tutor, replaced wholesale on every save.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// Upsert replaces the tutor's template.
func (r *TemplateRepository) Upsert(ctx context.Context, template *model.WeeklyTemplate) error {
	payload, err := json.Marshal(template.Days)
	if err != nil {
		return fmt.Errorf("marshal weekly template: %w", err)
	}

	query := `
		INSERT INTO schedule_templates (tutor_id, schedule, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (tutor_id) DO UPDATE SET schedule = EXCLUDED.schedule, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, template.TutorID, payload); err != nil {
		return fmt.Errorf("upsert weekly template: %w", err)
	}

	return nil
}

// GetByTutorID returns the tutor's template, or nil when none was saved yet.
func (r *TemplateRepository) GetByTutorID(ctx context.Context, tutorID int64) (*model.WeeklyTemplate, error) {
	query := `SELECT schedule FROM schedule_templates WHERE tutor_id = $1`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, tutorID).Scan(&payload)
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weekly template: %w", err)
	}

	template := &model.WeeklyTemplate{TutorID: tutorID}
	if err := json.Unmarshal(payload, &template.Days); err != nil {
		return nil, fmt.Errorf("unmarshal weekly template: %w", err)
	}

	return template, nil
}
