package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// Valores por defecto al crear la configuración por primera vez.
var defaultOffPeakDays = []string{"Monday", "Tuesday"}

// SettingsUseCase configuración del taller (días de baja demanda).
// Es estado propio de este módulo: el ciclo de vida de las citas nunca lo lee.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve la configuración, creándola con defaults la primera vez.
func (uc *SettingsUseCase) Get(ctx context.Context) (*entity.Settings, error) {
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.Settings{
			ID:          uuid.New().String(),
			OffPeakDays: defaultOffPeakDays,
			UpdatedAt:   time.Now(),
		}
		if err := uc.repo.Upsert(settings); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// Update reemplaza los días de baja demanda validando contra el calendario.
func (uc *SettingsUseCase) Update(ctx context.Context, offPeakDays []string) (*entity.Settings, error) {
	if offPeakDays == nil {
		return nil, fmt.Errorf("%w: offPeakDays es obligatorio", domain.ErrInvalidInput)
	}
	for _, day := range offPeakDays {
		if !entity.ValidWeekday(day) {
			return nil, fmt.Errorf("%w: día inválido %q", domain.ErrInvalidInput, day)
		}
	}
	settings, err := uc.Get(ctx)
	if err != nil {
		return nil, err
	}
	settings.OffPeakDays = offPeakDays
	settings.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
