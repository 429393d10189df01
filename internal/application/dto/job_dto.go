package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// AddPartRequest cuerpo de POST /api/mechanic/jobs/:id/parts.
type AddPartRequest struct {
	InventoryItemID string `json:"inventoryItemId"`
	Quantity        int    `json:"quantity"`
}

// AddLaborRequest cuerpo de POST /api/mechanic/jobs/:id/labor.
type AddLaborRequest struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// AssignRequest cuerpo de PUT /api/manager/appointments/:id/assign.
type AssignRequest struct {
	MechanicID string `json:"mechanicId"`
}

// PartUsageResponse línea de repuesto consumido.
type PartUsageResponse struct {
	ID              string          `json:"id"`
	InventoryItemID string          `json:"inventoryItemId"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	SalePrice       decimal.Decimal `json:"salePrice"`
}

// LaborItemResponse línea de mano de obra.
type LaborItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// AppointmentResponse representación de una cita en la API.
type AppointmentResponse struct {
	ID               string               `json:"id"`
	CustomerID       string               `json:"customerId"`
	VehicleID        string               `json:"vehicleId"`
	ServiceType      string               `json:"serviceType"`
	Date             time.Time            `json:"date"`
	TimeSlot         string               `json:"timeSlot,omitempty"`
	Status           string               `json:"status"`
	AssignedMechanic string               `json:"assignedMechanic,omitempty"`
	PartsUsed        []PartUsageResponse  `json:"partsUsed"`
	LaborItems       []LaborItemResponse  `json:"laborItems"`
	DiscountEligible bool                 `json:"discountEligible"`
	Subtotal         *decimal.Decimal     `json:"subtotal,omitempty"`
	FinalCost        *decimal.Decimal     `json:"finalCost,omitempty"`
	StartedAt        *time.Time           `json:"startedAt,omitempty"`
	FinishedAt       *time.Time           `json:"finishedAt,omitempty"`
}

// ToAppointmentResponse mapea la entidad al DTO de salida.
func ToAppointmentResponse(a *entity.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	resp := &AppointmentResponse{
		ID:               a.ID,
		CustomerID:       a.CustomerID,
		VehicleID:        a.VehicleID,
		ServiceType:      a.ServiceType,
		Date:             a.Date,
		TimeSlot:         a.TimeSlot,
		Status:           string(a.Status),
		DiscountEligible: a.DiscountEligible,
		StartedAt:        a.StartedAt,
		FinishedAt:       a.FinishedAt,
		PartsUsed:        make([]PartUsageResponse, 0, len(a.PartsUsed)),
		LaborItems:       make([]LaborItemResponse, 0, len(a.LaborItems)),
	}
	if a.AssignedMechanic != nil {
		resp.AssignedMechanic = *a.AssignedMechanic
	}
	if a.Subtotal.Valid {
		v := a.Subtotal.Decimal
		resp.Subtotal = &v
	}
	if a.FinalCost.Valid {
		v := a.FinalCost.Decimal
		resp.FinalCost = &v
	}
	for _, p := range a.PartsUsed {
		resp.PartsUsed = append(resp.PartsUsed, PartUsageResponse{
			ID:              p.ID,
			InventoryItemID: p.InventoryItemID,
			Name:            p.Name,
			Quantity:        p.Quantity,
			SalePrice:       p.SalePrice,
		})
	}
	for _, l := range a.LaborItems {
		resp.LaborItems = append(resp.LaborItems, LaborItemResponse{
			ID:          l.ID,
			Description: l.Description,
			Cost:        l.Cost,
		})
	}
	return resp
}

// ToAppointmentList mapea un listado.
func ToAppointmentList(appts []*entity.Appointment) []*AppointmentResponse {
	out := make([]*AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, ToAppointmentResponse(a))
	}
	return out
}

// StatsResponse conteos de citas por estado.
type StatsResponse struct {
	Total      int `json:"total"`
	Scheduled  int `json:"scheduled"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled,omitempty"`
	Unassigned int `json:"unassigned,omitempty"`
}
