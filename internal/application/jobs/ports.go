package jobs

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// TxRunner ejecuta una función con un AppointmentRepository atado a una
// transacción. Junto con GetForUpdate serializa las mutaciones por cita:
// dos llamadas concurrentes sobre el mismo job id se ejecutan una después
// de la otra, nunca entrelazadas.
type TxRunner interface {
	Run(ctx context.Context, fn func(appts repository.AppointmentRepository) error) error
}

// StockLedger contrato con el libro de inventario. Deduct es
// "verificar-y-descontar" en una sola unidad atómica por ítem; Restore
// existe únicamente para compensar una deducción cuyo paso posterior falló.
type StockLedger interface {
	Deduct(ctx context.Context, itemID string, quantity int) (*entity.StockSnapshot, error)
	Restore(ctx context.Context, itemID string, quantity int) error
}

// CompletionNotifier colaborador externo que recibe la cita completada
// (genera y envía la factura). Un fallo aquí se registra y se descarta:
// jamás revierte la completación.
type CompletionNotifier interface {
	NotifyJobCompleted(ctx context.Context, appt *entity.Appointment) error
}
