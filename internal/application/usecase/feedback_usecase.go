package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// FeedbackUseCase calificaciones de clientes sobre citas completadas.
type FeedbackUseCase struct {
	repo  repository.FeedbackRepository
	appts repository.AppointmentRepository
}

// NewFeedbackUseCase construye el caso de uso.
func NewFeedbackUseCase(repo repository.FeedbackRepository, appts repository.AppointmentRepository) *FeedbackUseCase {
	return &FeedbackUseCase{repo: repo, appts: appts}
}

// Submit registra la calificación. Solo el cliente dueño de una cita
// Completed puede calificar, y una sola vez por cita.
func (uc *FeedbackUseCase) Submit(ctx context.Context, customerID string, in dto.SubmitFeedbackRequest) (*entity.Feedback, error) {
	if in.AppointmentID == "" || in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating debe estar entre 1 y 5", domain.ErrInvalidInput)
	}
	appt, err := uc.appts.GetByID(in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	if appt.CustomerID != customerID {
		return nil, domain.ErrNotAuthorized
	}
	if appt.Status != entity.StatusCompleted {
		return nil, fmt.Errorf("%w: solo se califican citas completadas", domain.ErrInvalidTransition)
	}
	existing, err := uc.repo.GetByAppointment(in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: la cita ya fue calificada", domain.ErrDuplicate)
	}
	mechanicID := ""
	if appt.AssignedMechanic != nil {
		mechanicID = *appt.AssignedMechanic
	}
	fb := &entity.Feedback{
		ID:            uuid.New().String(),
		AppointmentID: in.AppointmentID,
		CustomerID:    customerID,
		MechanicID:    mechanicID,
		Rating:        in.Rating,
		Comment:       in.Comment,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(fb); err != nil {
		return nil, err
	}
	return fb, nil
}

// ListAll todas las calificaciones (manager).
func (uc *FeedbackUseCase) ListAll(ctx context.Context) ([]*entity.Feedback, error) {
	return uc.repo.ListAll()
}

// ListMine calificaciones del cliente.
func (uc *FeedbackUseCase) ListMine(ctx context.Context, customerID string) ([]*entity.Feedback, error) {
	return uc.repo.ListByCustomer(customerID)
}

// MechanicRatings promedio de calificaciones por mecánico (manager).
func (uc *FeedbackUseCase) MechanicRatings(ctx context.Context) ([]*entity.MechanicRating, error) {
	return uc.repo.MechanicRatings()
}
