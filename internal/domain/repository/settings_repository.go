package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// SettingsRepository puerto para la configuración del taller (fila única).
type SettingsRepository interface {
	// Get devuelve la configuración actual; nil, nil si aún no existe.
	Get() (*entity.Settings, error)
	Upsert(settings *entity.Settings) error
}
