package entity

import "time"

// Vehicle vehículo de un cliente. El core lo trata como solo-lectura:
// se consulta para presentar citas y armar la factura.
type Vehicle struct {
	ID        string
	OwnerID   string
	Make      string
	Model     string
	VehicleNo string // placa
	Year      int
	CreatedAt time.Time
}
