package entity

import "time"

// ValidWeekdays días aceptados en OffPeakDays.
var ValidWeekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Settings configuración del taller (fila única). El ciclo de vida de las
// citas no la consulta: quien la necesite la recibe explícitamente.
type Settings struct {
	ID          string
	OffPeakDays []string
	UpdatedAt   time.Time
}

// ValidWeekday indica si el día pertenece al calendario.
func ValidWeekday(day string) bool {
	for _, d := range ValidWeekdays {
		if d == day {
			return true
		}
	}
	return false
}
