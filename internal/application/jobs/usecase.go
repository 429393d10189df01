package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/billing"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// UseCase máquina de estados del ciclo de vida de una cita:
// Scheduled → In Progress → Completed, con Scheduled → Cancelled como
// camino lateral. Cada transición valida su estado predecesor exacto, de
// modo que reintentos duplicados de start/complete fallan con
// ErrInvalidTransition en vez de facturar o descontar stock dos veces.
type UseCase struct {
	txRunner TxRunner
	appts    repository.AppointmentRepository // lecturas fuera de transacción
	users    repository.UserRepository
	ledger   StockLedger
	notifier CompletionNotifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	appts repository.AppointmentRepository,
	users repository.UserRepository,
	ledger StockLedger,
	notifier CompletionNotifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		appts:    appts,
		users:    users,
		ledger:   ledger,
		notifier: notifier,
		log:      log,
	}
}

// errTransition anota el estado actual en el error de transición.
func errTransition(current entity.AppointmentStatus) error {
	return fmt.Errorf("%w: estado actual %q", domain.ErrInvalidTransition, current)
}

// Assign asigna un mecánico a una cita Scheduled sin mecánico. Reasignar
// una cita ya asignada se rechaza con ErrAlreadyAssigned: nunca se
// sobreescribe en silencio.
func (uc *UseCase) Assign(ctx context.Context, jobID, mechanicID string) (*entity.Appointment, error) {
	if jobID == "" || mechanicID == "" {
		return nil, domain.ErrInvalidInput
	}
	mechanic, err := uc.users.GetByIDAndRole(mechanicID, entity.RoleMechanic)
	if err != nil {
		return nil, fmt.Errorf("buscar mecánico: %w", err)
	}
	if mechanic == nil {
		return nil, fmt.Errorf("%w: mecánico %s", domain.ErrNotFound, mechanicID)
	}

	var appt *entity.Appointment
	err = uc.txRunner.Run(ctx, func(appts repository.AppointmentRepository) error {
		appt, err = appts.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if appt == nil {
			return domain.ErrNotFound
		}
		if appt.AssignedMechanic != nil {
			return domain.ErrAlreadyAssigned
		}
		if appt.Status != entity.StatusScheduled {
			return errTransition(appt.Status)
		}
		if err := appts.SetMechanic(jobID, mechanicID); err != nil {
			return fmt.Errorf("asignar mecánico: %w", err)
		}
		appt.AssignedMechanic = &mechanicID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// Start pasa la cita de Scheduled a In Progress. Solo el mecánico asignado
// puede iniciarla.
func (uc *UseCase) Start(ctx context.Context, jobID, callerID string) (*entity.Appointment, error) {
	var appt *entity.Appointment
	err := uc.txRunner.Run(ctx, func(appts repository.AppointmentRepository) error {
		var err error
		appt, err = appts.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if appt == nil {
			return domain.ErrNotFound
		}
		if !appt.IsAssignedTo(callerID) {
			return domain.ErrNotAuthorized
		}
		if appt.Status != entity.StatusScheduled {
			return errTransition(appt.Status)
		}
		now := time.Now()
		if err := appts.MarkStarted(jobID, now); err != nil {
			return fmt.Errorf("iniciar cita: %w", err)
		}
		appt.Status = entity.StatusInProgress
		appt.StartedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// AddPart descuenta stock del ítem y agrega a la cita una fotografía
// (nombre, precio de venta, cantidad) del consumo.
//
// Orquestación en dos pasos: la deducción se confirma primero (sentencia
// atómica del libro de inventario) y el alta de la línea después, dentro de
// la transacción de la cita. Si el segundo paso falla con el stock ya
// descontado, se emite RestoreStock como compensación y el fallo se
// propaga: inventario y cita no quedan divergentes de forma permanente.
func (uc *UseCase) AddPart(ctx context.Context, jobID, callerID, itemID string, quantity int) (*entity.Appointment, error) {
	if itemID == "" || quantity <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}

	var (
		appt     *entity.Appointment
		deducted bool
	)
	err := uc.txRunner.Run(ctx, func(appts repository.AppointmentRepository) error {
		var err error
		appt, err = appts.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if appt == nil {
			return domain.ErrNotFound
		}
		if !appt.IsAssignedTo(callerID) {
			return domain.ErrNotAuthorized
		}
		if appt.Status != entity.StatusInProgress {
			return errTransition(appt.Status)
		}

		snap, err := uc.ledger.Deduct(ctx, itemID, quantity)
		if err != nil {
			return err
		}
		deducted = true

		usage := &entity.PartUsage{
			ID:              uuid.New().String(),
			AppointmentID:   jobID,
			InventoryItemID: snap.InventoryItemID,
			Name:            snap.Name,
			Quantity:        quantity,
			SalePrice:       snap.SalePrice,
			CreatedAt:       time.Now(),
		}
		if err := appts.AddPartUsage(usage); err != nil {
			return fmt.Errorf("%w: guardar parte usada: %v", domain.ErrDependencyFailure, err)
		}
		appt.PartsUsed = append(appt.PartsUsed, *usage)
		return nil
	})
	if err != nil {
		if deducted {
			// Compensación best-effort: el stock ya salió pero la cita no lo registró.
			if rErr := uc.ledger.Restore(ctx, itemID, quantity); rErr != nil {
				uc.log.Error().Err(rErr).
					Str("appointment_id", jobID).
					Str("item_id", itemID).
					Int("quantity", quantity).
					Msg("compensación de stock falló; requiere ajuste manual")
			}
		}
		return nil, err
	}
	return appt, nil
}

// AddLabor agrega una línea de mano de obra a una cita In Progress.
func (uc *UseCase) AddLabor(ctx context.Context, jobID, callerID, description string, cost decimal.Decimal) (*entity.Appointment, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: descripción requerida", domain.ErrInvalidInput)
	}
	if cost.IsNegative() {
		return nil, fmt.Errorf("%w: costo no puede ser negativo", domain.ErrInvalidInput)
	}

	var appt *entity.Appointment
	err := uc.txRunner.Run(ctx, func(appts repository.AppointmentRepository) error {
		var err error
		appt, err = appts.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if appt == nil {
			return domain.ErrNotFound
		}
		if !appt.IsAssignedTo(callerID) {
			return domain.ErrNotAuthorized
		}
		if appt.Status != entity.StatusInProgress {
			return errTransition(appt.Status)
		}
		item := &entity.LaborItem{
			ID:            uuid.New().String(),
			AppointmentID: jobID,
			Description:   strings.TrimSpace(description),
			Cost:          cost,
			CreatedAt:     time.Now(),
		}
		if err := appts.AddLaborItem(item); err != nil {
			return fmt.Errorf("guardar mano de obra: %w", err)
		}
		appt.LaborItems = append(appt.LaborItems, *item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// Complete cierra la cita: calcula subtotal y total final (descuento del 5%
// si la cita es elegible), congela los totales y pasa a Completed. Después
// del commit entrega la cita al notificador en una goroutine; un fallo del
// envío se registra y se descarta — la completación es definitiva aunque la
// factura nunca llegue por correo.
func (uc *UseCase) Complete(ctx context.Context, jobID, callerID string) (*entity.Appointment, error) {
	var appt *entity.Appointment
	err := uc.txRunner.Run(ctx, func(appts repository.AppointmentRepository) error {
		var err error
		appt, err = appts.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if appt == nil {
			return domain.ErrNotFound
		}
		if !appt.IsAssignedTo(callerID) {
			return domain.ErrNotAuthorized
		}
		if appt.Status != entity.StatusInProgress {
			return errTransition(appt.Status)
		}

		totals := billing.Calculate(appt.PartsUsed, appt.LaborItems, appt.DiscountEligible)
		now := time.Now()
		if err := appts.MarkCompleted(jobID, totals.Subtotal, totals.FinalCost, now); err != nil {
			return fmt.Errorf("%w: completar cita: %v", domain.ErrDependencyFailure, err)
		}
		appt.Status = entity.StatusCompleted
		appt.Subtotal = decimal.NewNullDecimal(totals.Subtotal)
		appt.FinalCost = decimal.NewNullDecimal(totals.FinalCost)
		appt.FinishedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: la notificación no participa de la transacción ni del
	// contexto de la petición.
	go uc.dispatchCompletion(appt)

	return appt, nil
}

func (uc *UseCase) dispatchCompletion(appt *entity.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := uc.notifier.NotifyJobCompleted(ctx, appt); err != nil {
		uc.log.Error().Err(err).
			Str("appointment_id", appt.ID).
			Msg("envío de factura falló; la cita queda completada igual")
	}
}

// Cancel camino lateral Scheduled → Cancelled (lo dispara el manager).
func (uc *UseCase) Cancel(ctx context.Context, jobID string) (*entity.Appointment, error) {
	var appt *entity.Appointment
	err := uc.txRunner.Run(ctx, func(appts repository.AppointmentRepository) error {
		var err error
		appt, err = appts.GetForUpdate(jobID)
		if err != nil {
			return err
		}
		if appt == nil {
			return domain.ErrNotFound
		}
		if appt.Status != entity.StatusScheduled {
			return errTransition(appt.Status)
		}
		if err := appts.MarkCancelled(jobID); err != nil {
			return fmt.Errorf("cancelar cita: %w", err)
		}
		appt.Status = entity.StatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// ListMyJobs citas asignadas al mecánico.
func (uc *UseCase) ListMyJobs(ctx context.Context, mechanicID string) ([]*entity.Appointment, error) {
	return uc.appts.ListByMechanic(mechanicID)
}

// ListUnassigned citas Scheduled sin mecánico (vista del manager).
func (uc *UseCase) ListUnassigned(ctx context.Context) ([]*entity.Appointment, error) {
	return uc.appts.ListUnassigned()
}

// Stats conteos por estado. mechanicID vacío = todo el taller.
func (uc *UseCase) Stats(ctx context.Context, mechanicID string) (*entity.AppointmentStats, error) {
	return uc.appts.CountByStatus(mechanicID)
}

// GetJob carga una cita con sus líneas.
func (uc *UseCase) GetJob(ctx context.Context, jobID string) (*entity.Appointment, error) {
	appt, err := uc.appts.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	return appt, nil
}
