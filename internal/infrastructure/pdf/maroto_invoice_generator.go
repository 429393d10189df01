// Package pdf implementa la generación de la factura de servicio del taller.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller  │  N° Factura + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Email                                     │
//	│  VEHÍCULO: Marca Modelo (Año) + Placa + Servicio            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / TOTAL A PAGAR               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appcfg "github.com/jhoicas/Taller-api/pkg/config"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoInvoiceGenerator genera la factura de servicio usando Maroto v2.
type MarotoInvoiceGenerator struct {
	shop appcfg.ShopConfig
}

// NewMarotoInvoiceGenerator construye el generador con la identidad del taller.
func NewMarotoInvoiceGenerator(shop appcfg.ShopConfig) *MarotoInvoiceGenerator {
	return &MarotoInvoiceGenerator{shop: shop}
}

// GenerateServiceInvoice genera el PDF y devuelve sus bytes. La cita debe
// estar completada: Subtotal y FinalCost ya fijados.
func (g *MarotoInvoiceGenerator) GenerateServiceInvoice(
	_ context.Context,
	appt *entity.Appointment,
	customer *entity.User,
	vehicle *entity.Vehicle,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de Servicio", true).
		WithAuthor(g.shop.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(appt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(vehicleRow(appt, vehicle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range partRows(appt.PartsUsed) {
		m.AddRows(r)
	}
	for _, r := range laborRows(appt.LaborItems) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(appt))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(g.shop))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller (izq) y N° factura + fecha (der).
func (g *MarotoInvoiceGenerator) headerRow(appt *entity.Appointment) core.Row {
	fecha := appt.Date.Format("02/01/2006")
	if appt.FinishedAt != nil {
		fecha = appt.FinishedAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Servicio automotriz", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoiceNumber(appt.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(customer *entity.User) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Email: %s",
				customer.Name,
				nonEmpty(customer.Email, "—"),
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// vehicleRow: vehículo atendido y tipo de servicio.
func vehicleRow(appt *entity.Appointment, vehicle *entity.Vehicle) core.Row {
	desc := "—"
	placa := "—"
	if vehicle != nil {
		desc = fmt.Sprintf("%s %s (%d)", vehicle.Make, vehicle.Model, vehicle.Year)
		placa = nonEmpty(vehicle.VehicleNo, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("VEHÍCULO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(desc, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Placa: %s   |   Servicio: %s",
				placa, appt.ServiceType,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de repuestos y mano de obra.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// partRows: una fila por repuesto consumido, a precio de la fotografía.
func partRows(parts []entity.PartUsage) []core.Row {
	result := make([]core.Row, 0, len(parts))
	for _, p := range parts {
		lineTotal := p.SalePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
		result = append(result, detailRow(
			fmt.Sprintf("%d", p.Quantity),
			p.Name,
			"$"+p.SalePrice.StringFixed(2),
			"$"+lineTotal.StringFixed(2),
		))
	}
	return result
}

// laborRows: una fila por línea de mano de obra.
func laborRows(labor []entity.LaborItem) []core.Row {
	result := make([]core.Row, 0, len(labor))
	for _, l := range labor {
		result = append(result, detailRow(
			"1",
			"Mano de obra: "+l.Description,
			"$"+l.Cost.StringFixed(2),
			"$"+l.Cost.StringFixed(2),
		))
	}
	return result
}

func detailRow(qty, desc, unit, subtotal string) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(subtotal, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalsRow: bloque de totales alineado a la derecha, con la línea de
// descuento solo cuando aplicó.
func totalsRow(appt *entity.Appointment) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 14,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 14,
		})
	}

	subtotal := decimal.Zero
	if appt.Subtotal.Valid {
		subtotal = appt.Subtotal.Decimal
	}
	final := subtotal
	if appt.FinalCost.Valid {
		final = appt.FinalCost.Decimal
	}
	descuento := subtotal.Sub(final)

	labels := []core.Component{label("Subtotal:")}
	values := []core.Component{value("$" + subtotal.StringFixed(2))}
	if appt.DiscountEligible {
		labels = append(labels, text.New("Descuento cliente frecuente:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 7,
		}))
		values = append(values, text.New("-$"+descuento.StringFixed(2), props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: 7,
		}))
	}
	labels = append(labels, grandLabel("TOTAL A PAGAR:"))
	values = append(values, grandValue("$"+final.StringFixed(2)))

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(labels...),
		col.New(3).Add(values...),
		col.New(2),
	)
}

// footerRow: datos de contacto del taller.
func footerRow(shop appcfg.ShopConfig) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s   |   %s   |   Tel: %s",
			shop.Name,
			nonEmpty(shop.Address, "—"),
			nonEmpty(shop.Phone, "—"),
		), props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2}),
		text.New("Gracias por confiar en nosotros. Conserve este documento como soporte del servicio.",
			props.Text{Size: 6.5, Align: align.Center, Color: colorGray, Top: 6}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// invoiceNumber deriva un número legible del id de la cita.
func invoiceNumber(appointmentID string) string {
	id := appointmentID
	if len(id) > 8 {
		id = id[:8]
	}
	return "SRV-" + id
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
