package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// AppointmentRepository define el puerto de persistencia para Appointment
// y sus líneas hijas (parts_used, labor_items).
type AppointmentRepository interface {
	Create(appt *entity.Appointment) error
	// GetByID carga la cita con sus partes y mano de obra.
	GetByID(id string) (*entity.Appointment, error)
	// GetForUpdate carga la cita bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido sobre un repositorio atado a una transacción.
	GetForUpdate(id string) (*entity.Appointment, error)
	ListByMechanic(mechanicID string) ([]*entity.Appointment, error)
	ListUnassigned() ([]*entity.Appointment, error)
	// SetMechanic fija el mecánico asignado; la guarda de "una sola vez"
	// vive en el caso de uso, no aquí.
	SetMechanic(id, mechanicID string) error
	MarkStarted(id string, at time.Time) error
	AddPartUsage(usage *entity.PartUsage) error
	AddLaborItem(item *entity.LaborItem) error
	// MarkCompleted congela los totales y cierra la cita en una sola sentencia.
	MarkCompleted(id string, subtotal, finalCost decimal.Decimal, at time.Time) error
	MarkCancelled(id string) error
	CountByStatus(mechanicID string) (*entity.AppointmentStats, error)
}
