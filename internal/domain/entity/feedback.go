package entity

import "time"

// Feedback calificación de un cliente sobre una cita completada.
type Feedback struct {
	ID            string
	AppointmentID string
	CustomerID    string
	MechanicID    string
	Rating        int // 1..5
	Comment       string
	CreatedAt     time.Time
}

// MechanicRating promedio de calificaciones por mecánico.
type MechanicRating struct {
	MechanicID   string
	MechanicName string
	Average      float64
	Count        int
}
