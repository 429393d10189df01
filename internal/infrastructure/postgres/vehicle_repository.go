package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo adaptador de solo-lectura para vehículos.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// GetByID obtiene un vehículo (nil, nil si no existe).
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `
		SELECT id, owner_id, make, model, vehicle_no, year, created_at
		FROM vehicles WHERE id = $1`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.VehicleNo, &v.Year, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}
