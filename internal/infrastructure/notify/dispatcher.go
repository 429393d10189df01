// Package notify arma y despacha la notificación de cita completada:
// carga cliente y vehículo, genera la factura PDF y la envía por correo.
package notify

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/application/jobs"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// InvoiceGenerator genera la factura de servicio en PDF.
type InvoiceGenerator interface {
	GenerateServiceInvoice(ctx context.Context, appt *entity.Appointment, customer *entity.User, vehicle *entity.Vehicle) ([]byte, error)
}

// MailSender envía un correo con adjunto opcional.
type MailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string, attachment []byte, filename string) error
}

var _ jobs.CompletionNotifier = (*Dispatcher)(nil)

// Dispatcher implementación del notificador de completación.
type Dispatcher struct {
	users    repository.UserRepository
	vehicles repository.VehicleRepository
	pdf      InvoiceGenerator
	mail     MailSender
	shop     config.ShopConfig
	log      *logger.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(
	users repository.UserRepository,
	vehicles repository.VehicleRepository,
	pdf InvoiceGenerator,
	mail MailSender,
	shop config.ShopConfig,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{users: users, vehicles: vehicles, pdf: pdf, mail: mail, shop: shop, log: log}
}

// NotifyJobCompleted genera la factura y la envía al cliente de la cita.
func (d *Dispatcher) NotifyJobCompleted(ctx context.Context, appt *entity.Appointment) error {
	customer, err := d.users.GetByID(appt.CustomerID)
	if err != nil {
		return fmt.Errorf("cargar cliente %s: %w", appt.CustomerID, err)
	}
	if customer == nil {
		return fmt.Errorf("cliente %s no existe", appt.CustomerID)
	}

	vehicle, err := d.vehicles.GetByID(appt.VehicleID)
	if err != nil {
		return fmt.Errorf("cargar vehículo %s: %w", appt.VehicleID, err)
	}

	invoice, err := d.pdf.GenerateServiceInvoice(ctx, appt, customer, vehicle)
	if err != nil {
		return fmt.Errorf("generar factura: %w", err)
	}

	subject := fmt.Sprintf("%s — su servicio fue completado", d.shop.Name)
	body := completionBody(appt, customer, vehicle, d.shop)
	filename := fmt.Sprintf("factura-%s.pdf", appt.ID)
	if err := d.mail.Send(ctx, customer.Email, subject, body, invoice, filename); err != nil {
		return err
	}

	d.log.Info().
		Str("appointment_id", appt.ID).
		Str("customer_id", customer.ID).
		Msg("factura de servicio enviada")
	return nil
}

func completionBody(appt *entity.Appointment, customer *entity.User, vehicle *entity.Vehicle, shop config.ShopConfig) string {
	vehicleDesc := "su vehículo"
	if vehicle != nil {
		vehicleDesc = fmt.Sprintf("%s %s (%s)", vehicle.Make, vehicle.Model, vehicle.VehicleNo)
	}
	total := ""
	if appt.FinalCost.Valid {
		total = fmt.Sprintf("<p>Total a pagar: <strong>$%s</strong></p>", appt.FinalCost.Decimal.StringFixed(2))
	}
	return fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>El servicio <strong>%s</strong> de %s fue completado.
		Adjuntamos la factura con el detalle de repuestos y mano de obra.</p>
		%s
		<p>Gracias por confiar en %s.</p>`,
		customer.Name, appt.ServiceType, vehicleDesc, total, shop.Name,
	)
}
