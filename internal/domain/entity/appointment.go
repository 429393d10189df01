package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus estado del ciclo de vida de una cita de servicio.
type AppointmentStatus string

// Estados posibles de una cita. Completed y Cancelled son terminales.
const (
	StatusScheduled  AppointmentStatus = "Scheduled"
	StatusInProgress AppointmentStatus = "In Progress"
	StatusCompleted  AppointmentStatus = "Completed"
	StatusCancelled  AppointmentStatus = "Cancelled"
)

// Terminal indica si el estado no admite más transiciones.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment representa una cita de servicio (el "job" del taller).
// PartsUsed y LaborItems solo se mutan mientras Status es In Progress;
// Subtotal y FinalCost se fijan una única vez al completar y no se recalculan.
type Appointment struct {
	ID               string
	CustomerID       string
	VehicleID        string
	ServiceType      string
	Date             time.Time
	TimeSlot         string
	Status           AppointmentStatus
	AssignedMechanic *string // nil = sin asignar; se asigna una sola vez
	PartsUsed        []PartUsage
	LaborItems       []LaborItem
	DiscountEligible bool // lo decide un colaborador externo, aquí solo se aplica
	Subtotal         decimal.NullDecimal
	FinalCost        decimal.NullDecimal
	StartedAt        *time.Time
	FinishedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAssignedTo indica si el usuario es el mecánico asignado de la cita.
func (a *Appointment) IsAssignedTo(userID string) bool {
	return a.AssignedMechanic != nil && *a.AssignedMechanic == userID
}

// PartUsage repuesto consumido por una cita. Name y SalePrice son una
// fotografía del ítem al momento del consumo: ediciones posteriores del
// catálogo no alteran citas históricas.
type PartUsage struct {
	ID              string
	AppointmentID   string
	InventoryItemID string
	Name            string
	Quantity        int
	SalePrice       decimal.Decimal
	CreatedAt       time.Time
}

// LaborItem línea de mano de obra facturable de una cita.
type LaborItem struct {
	ID            string
	AppointmentID string
	Description   string
	Cost          decimal.Decimal
	CreatedAt     time.Time
}

// AppointmentStats conteos de citas por estado (tablero del mecánico o del manager).
type AppointmentStats struct {
	Total      int
	Scheduled  int
	InProgress int
	Completed  int
	Cancelled  int
	Unassigned int
}
