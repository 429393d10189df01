package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo adaptador pgx para la configuración del taller.
// La tabla guarda una sola fila; off_peak_days es un text[].
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración actual (nil, nil si aún no existe).
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	query := `SELECT id, off_peak_days, updated_at FROM shop_settings LIMIT 1`
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), query).Scan(&s.ID, &s.OffPeakDays, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza la fila de configuración.
func (r *SettingsRepo) Upsert(settings *entity.Settings) error {
	query := `
		INSERT INTO shop_settings (id, off_peak_days, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET off_peak_days = EXCLUDED.off_peak_days, updated_at = now()
		RETURNING updated_at`
	err := r.q.QueryRow(context.Background(), query, settings.ID, settings.OffPeakDays).
		Scan(&settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
