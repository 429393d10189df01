package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas hijas viven en appointment_parts y
// appointment_labor.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const apptColumns = `
	id, customer_id, vehicle_id, service_type, date, time_slot, status,
	assigned_mechanic, discount_eligible, subtotal, final_cost,
	started_at, finished_at, created_at, updated_at`

// Create persiste una cita nueva (la crea el flujo de reservas, externo al core).
func (r *AppointmentRepo) Create(appt *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, customer_id, vehicle_id, service_type, date, time_slot,
			status, assigned_mechanic, discount_eligible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		appt.ID, appt.CustomerID, appt.VehicleID, appt.ServiceType, appt.Date, appt.TimeSlot,
		appt.Status, appt.AssignedMechanic, appt.DiscountEligible, appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID carga la cita con partes y mano de obra.
func (r *AppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	return r.get(id, false)
}

// GetForUpdate carga la cita bloqueando su fila (SELECT FOR UPDATE). Las
// filas hijas no se bloquean: solo las muta quien ya sostiene el lock del padre.
func (r *AppointmentRepo) GetForUpdate(id string) (*entity.Appointment, error) {
	return r.get(id, true)
}

func (r *AppointmentRepo) get(id string, forUpdate bool) (*entity.Appointment, error) {
	query := `SELECT ` + apptColumns + ` FROM appointments WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	appt, err := scanAppointment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if err := r.loadLines(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID, &a.CustomerID, &a.VehicleID, &a.ServiceType, &a.Date, &a.TimeSlot, &a.Status,
		&a.AssignedMechanic, &a.DiscountEligible, &a.Subtotal, &a.FinalCost,
		&a.StartedAt, &a.FinishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) loadLines(appt *entity.Appointment) error {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT id, appointment_id, inventory_item_id, name, quantity, sale_price, created_at
		FROM appointment_parts WHERE appointment_id = $1 ORDER BY created_at, id`, appt.ID)
	if err != nil {
		return fmt.Errorf("query appointment parts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.PartUsage
		if err := rows.Scan(&p.ID, &p.AppointmentID, &p.InventoryItemID, &p.Name, &p.Quantity, &p.SalePrice, &p.CreatedAt); err != nil {
			return fmt.Errorf("scan part usage: %w", err)
		}
		appt.PartsUsed = append(appt.PartsUsed, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, appointment_id, description, cost, created_at
		FROM appointment_labor WHERE appointment_id = $1 ORDER BY created_at, id`, appt.ID)
	if err != nil {
		return fmt.Errorf("query appointment labor: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.LaborItem
		if err := rows.Scan(&l.ID, &l.AppointmentID, &l.Description, &l.Cost, &l.CreatedAt); err != nil {
			return fmt.Errorf("scan labor item: %w", err)
		}
		appt.LaborItems = append(appt.LaborItems, l)
	}
	return rows.Err()
}

// ListByMechanic citas de un mecánico ordenadas por fecha y franja (sin líneas).
func (r *AppointmentRepo) ListByMechanic(mechanicID string) ([]*entity.Appointment, error) {
	query := `SELECT ` + apptColumns + `
		FROM appointments WHERE assigned_mechanic = $1 ORDER BY date, time_slot`
	return r.list(query, mechanicID)
}

// ListUnassigned citas Scheduled sin mecánico (sin líneas).
func (r *AppointmentRepo) ListUnassigned() ([]*entity.Appointment, error) {
	query := `SELECT ` + apptColumns + `
		FROM appointments
		WHERE assigned_mechanic IS NULL AND status = 'Scheduled'
		ORDER BY date, time_slot`
	return r.list(query)
}

func (r *AppointmentRepo) list(query string, args ...any) ([]*entity.Appointment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, appt)
	}
	return out, rows.Err()
}

// SetMechanic fija el mecánico asignado.
func (r *AppointmentRepo) SetMechanic(id, mechanicID string) error {
	return r.exec(`UPDATE appointments SET assigned_mechanic = $2, updated_at = now() WHERE id = $1`,
		id, mechanicID)
}

// MarkStarted pasa la cita a In Progress.
func (r *AppointmentRepo) MarkStarted(id string, at time.Time) error {
	return r.exec(`UPDATE appointments
		SET status = 'In Progress', started_at = $2, updated_at = now() WHERE id = $1`, id, at)
}

// AddPartUsage agrega una línea de repuesto consumido (append-only).
func (r *AppointmentRepo) AddPartUsage(usage *entity.PartUsage) error {
	query := `
		INSERT INTO appointment_parts (id, appointment_id, inventory_item_id, name, quantity, sale_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		usage.ID, usage.AppointmentID, usage.InventoryItemID, usage.Name, usage.Quantity, usage.SalePrice, usage.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert part usage: %w", err)
	}
	return nil
}

// AddLaborItem agrega una línea de mano de obra (append-only).
func (r *AppointmentRepo) AddLaborItem(item *entity.LaborItem) error {
	query := `
		INSERT INTO appointment_labor (id, appointment_id, description, cost, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.AppointmentID, item.Description, item.Cost, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert labor item: %w", err)
	}
	return nil
}

// MarkCompleted congela totales y cierra la cita en una sola sentencia.
func (r *AppointmentRepo) MarkCompleted(id string, subtotal, finalCost decimal.Decimal, at time.Time) error {
	return r.exec(`UPDATE appointments
		SET status = 'Completed', subtotal = $2, final_cost = $3, finished_at = $4, updated_at = now()
		WHERE id = $1`, id, subtotal, finalCost, at)
}

// MarkCancelled camino lateral Scheduled -> Cancelled.
func (r *AppointmentRepo) MarkCancelled(id string) error {
	return r.exec(`UPDATE appointments SET status = 'Cancelled', updated_at = now() WHERE id = $1`, id)
}

func (r *AppointmentRepo) exec(query string, args ...any) error {
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update appointment: fila no encontrada")
	}
	return nil
}

// CountByStatus conteos por estado. mechanicID vacío = todo el taller.
func (r *AppointmentRepo) CountByStatus(mechanicID string) (*entity.AppointmentStats, error) {
	query := `
		SELECT count(*),
			count(*) FILTER (WHERE status = 'Scheduled'),
			count(*) FILTER (WHERE status = 'In Progress'),
			count(*) FILTER (WHERE status = 'Completed'),
			count(*) FILTER (WHERE status = 'Cancelled'),
			count(*) FILTER (WHERE assigned_mechanic IS NULL AND status = 'Scheduled')
		FROM appointments
		WHERE ($1 = '' OR assigned_mechanic = $1)`
	var s entity.AppointmentStats
	err := r.q.QueryRow(context.Background(), query, mechanicID).Scan(
		&s.Total, &s.Scheduled, &s.InProgress, &s.Completed, &s.Cancelled, &s.Unassigned,
	)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	return &s, nil
}
