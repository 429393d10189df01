package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// SubmitFeedbackRequest cuerpo de POST /api/feedback.
type SubmitFeedbackRequest struct {
	AppointmentID string `json:"appointmentId"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// FeedbackResponse calificación en la API.
type FeedbackResponse struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	CustomerID    string    `json:"customerId"`
	MechanicID    string    `json:"mechanicId"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// MechanicRatingResponse promedio por mecánico.
type MechanicRatingResponse struct {
	MechanicID   string  `json:"mechanicId"`
	MechanicName string  `json:"mechanicName"`
	Average      float64 `json:"average"`
	Count        int     `json:"count"`
}

// ToFeedbackResponse mapea la entidad al DTO.
func ToFeedbackResponse(f *entity.Feedback) *FeedbackResponse {
	if f == nil {
		return nil
	}
	return &FeedbackResponse{
		ID:            f.ID,
		AppointmentID: f.AppointmentID,
		CustomerID:    f.CustomerID,
		MechanicID:    f.MechanicID,
		Rating:        f.Rating,
		Comment:       f.Comment,
		CreatedAt:     f.CreatedAt,
	}
}

// ToFeedbackList mapea un listado.
func ToFeedbackList(fbs []*entity.Feedback) []*FeedbackResponse {
	out := make([]*FeedbackResponse, 0, len(fbs))
	for _, f := range fbs {
		out = append(out, ToFeedbackResponse(f))
	}
	return out
}
