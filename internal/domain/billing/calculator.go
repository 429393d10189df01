package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// DiscountRate descuento fijo del 5% aplicado cuando la cita es elegible.
// La elegibilidad la decide un colaborador externo; aquí solo se aplica.
var DiscountRate = decimal.NewFromFloat(0.05)

// Totals totales de una cita al completarse. Subtotal y FinalCost van
// redondeados a 2 decimales de moneda.
type Totals struct {
	PartsTotal decimal.Decimal
	LaborTotal decimal.Decimal
	Subtotal   decimal.Decimal
	FinalCost  decimal.Decimal
}

// Calculate calcula los totales de la factura (servicio de dominio, puro):
//
//	PartsTotal = Σ Quantity_i * SalePrice_i
//	LaborTotal = Σ Cost_j
//	Subtotal   = PartsTotal + LaborTotal
//	FinalCost  = Subtotal * 0.95 si discountEligible, si no Subtotal
//
// Mismo input produce siempre el mismo output (auditoría y tests).
func Calculate(parts []entity.PartUsage, labor []entity.LaborItem, discountEligible bool) Totals {
	partsTotal := decimal.Zero
	for _, p := range parts {
		partsTotal = partsTotal.Add(p.SalePrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	laborTotal := decimal.Zero
	for _, l := range labor {
		laborTotal = laborTotal.Add(l.Cost)
	}
	subtotal := partsTotal.Add(laborTotal).Round(2)

	finalCost := subtotal
	if discountEligible {
		finalCost = subtotal.Mul(decimal.NewFromInt(1).Sub(DiscountRate)).Round(2)
	}
	return Totals{
		PartsTotal: partsTotal.Round(2),
		LaborTotal: laborTotal.Round(2),
		Subtotal:   subtotal,
		FinalCost:  finalCost,
	}
}
