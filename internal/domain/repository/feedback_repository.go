package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// FeedbackRepository puerto de persistencia para calificaciones.
type FeedbackRepository interface {
	Create(fb *entity.Feedback) error
	GetByAppointment(appointmentID string) (*entity.Feedback, error)
	ListAll() ([]*entity.Feedback, error)
	ListByCustomer(customerID string) ([]*entity.Feedback, error)
	MechanicRatings() ([]*entity.MechanicRating, error)
}
