package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.FeedbackRepository = (*FeedbackRepo)(nil)

// FeedbackRepo adaptador pgx para calificaciones.
type FeedbackRepo struct {
	q Querier
}

// NewFeedbackRepository construye el adaptador.
func NewFeedbackRepository(q Querier) *FeedbackRepo {
	return &FeedbackRepo{q: q}
}

const feedbackColumns = `id, appointment_id, customer_id, mechanic_id, rating, comment, created_at`

// Create inserta una calificación. La restricción única sobre
// appointment_id garantiza una calificación por cita.
func (r *FeedbackRepo) Create(fb *entity.Feedback) error {
	query := `
		INSERT INTO feedback (id, appointment_id, customer_id, mechanic_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err := r.q.QueryRow(context.Background(), query,
		fb.ID, fb.AppointmentID, fb.CustomerID, fb.MechanicID, fb.Rating, fb.Comment,
	).Scan(&fb.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("feedback para la cita %s: %w", fb.AppointmentID, domain.ErrDuplicate)
		}
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// GetByAppointment devuelve la calificación de una cita (nil, nil si no hay).
func (r *FeedbackRepo) GetByAppointment(appointmentID string) (*entity.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE appointment_id = $1`
	var fb entity.Feedback
	err := r.q.QueryRow(context.Background(), query, appointmentID).Scan(
		&fb.ID, &fb.AppointmentID, &fb.CustomerID, &fb.MechanicID, &fb.Rating, &fb.Comment, &fb.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return &fb, nil
}

// ListAll lista todas las calificaciones, más recientes primero.
func (r *FeedbackRepo) ListAll() ([]*entity.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback ORDER BY created_at DESC`
	return r.list(query)
}

// ListByCustomer lista las calificaciones enviadas por un cliente.
func (r *FeedbackRepo) ListByCustomer(customerID string) ([]*entity.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.list(query, customerID)
}

func (r *FeedbackRepo) list(query string, args ...any) ([]*entity.Feedback, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var out []*entity.Feedback
	for rows.Next() {
		var fb entity.Feedback
		if err := rows.Scan(
			&fb.ID, &fb.AppointmentID, &fb.CustomerID, &fb.MechanicID, &fb.Rating, &fb.Comment, &fb.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, &fb)
	}
	return out, rows.Err()
}

// MechanicRatings agrega el promedio y el conteo de calificaciones por
// mecánico; solo incluye mecánicos con al menos una calificación.
func (r *FeedbackRepo) MechanicRatings() ([]*entity.MechanicRating, error) {
	query := `
		SELECT f.mechanic_id, u.name, avg(f.rating)::float8, count(*)
		FROM feedback f
		JOIN users u ON u.id = f.mechanic_id
		GROUP BY f.mechanic_id, u.name
		ORDER BY avg(f.rating) DESC, u.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("mechanic ratings: %w", err)
	}
	defer rows.Close()

	var out []*entity.MechanicRating
	for rows.Next() {
		var mr entity.MechanicRating
		if err := rows.Scan(&mr.MechanicID, &mr.MechanicName, &mr.Average, &mr.Count); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		out = append(out, &mr)
	}
	return out, rows.Err()
}
