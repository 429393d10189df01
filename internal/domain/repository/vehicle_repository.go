package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// VehicleRepository puerto de solo-lectura para vehículos (entidad externa al core).
type VehicleRepository interface {
	GetByID(id string) (*entity.Vehicle, error)
}
