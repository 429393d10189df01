package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain/billing"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del cálculo de totales de factura (servicio de dominio puro).
//
// Escenario de referencia: una cita con PartUsage(cantidad=2, precio=20.00)
// y LaborItem(costo=50.00) con descuento elegible debe producir
// subtotal=90.00 y total final=85.50 (5% de descuento).
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculate_ConDescuento(t *testing.T) {
	parts := []entity.PartUsage{
		{Name: "Pastillas de freno", Quantity: 2, SalePrice: dec("20.00")},
	}
	labor := []entity.LaborItem{
		{Description: "Cambio de pastillas", Cost: dec("50.00")},
	}

	totals := billing.Calculate(parts, labor, true)

	assert.True(t, dec("40.00").Equal(totals.PartsTotal), "partes: esperado 40.00, got %s", totals.PartsTotal)
	assert.True(t, dec("50.00").Equal(totals.LaborTotal), "mano de obra: esperado 50.00, got %s", totals.LaborTotal)
	assert.True(t, dec("90.00").Equal(totals.Subtotal), "subtotal: esperado 90.00, got %s", totals.Subtotal)
	assert.True(t, dec("85.50").Equal(totals.FinalCost), "total final: esperado 85.50, got %s", totals.FinalCost)
}

func TestCalculate_SinDescuento(t *testing.T) {
	parts := []entity.PartUsage{
		{Name: "Filtro de aceite", Quantity: 1, SalePrice: dec("15.75")},
	}
	labor := []entity.LaborItem{
		{Description: "Cambio de aceite", Cost: dec("30.00")},
	}

	totals := billing.Calculate(parts, labor, false)

	require.True(t, dec("45.75").Equal(totals.Subtotal))
	assert.True(t, totals.Subtotal.Equal(totals.FinalCost),
		"sin descuento el total final debe ser igual al subtotal")
}

// El redondeo a 2 decimales se aplica después del descuento, no por línea.
func TestCalculate_RedondeoA2Decimales(t *testing.T) {
	parts := []entity.PartUsage{
		{Name: "Bujía", Quantity: 3, SalePrice: dec("3.33")},
	}

	totals := billing.Calculate(parts, nil, true)

	// 9.99 * 0.95 = 9.4905 → 9.49
	assert.True(t, dec("9.99").Equal(totals.Subtotal))
	assert.True(t, dec("9.49").Equal(totals.FinalCost), "esperado 9.49, got %s", totals.FinalCost)
}

func TestCalculate_CitaSinLineas(t *testing.T) {
	totals := billing.Calculate(nil, nil, true)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.FinalCost.IsZero())
}

// Mismo input debe producir siempre el mismo resultado (idempotente).
func TestCalculate_Determinista(t *testing.T) {
	parts := []entity.PartUsage{
		{Name: "Correa", Quantity: 1, SalePrice: dec("47.13")},
		{Name: "Tensor", Quantity: 2, SalePrice: dec("12.40")},
	}
	labor := []entity.LaborItem{
		{Description: "Distribución", Cost: dec("120.00")},
	}

	a := billing.Calculate(parts, labor, true)
	b := billing.Calculate(parts, labor, true)

	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, a.FinalCost.Equal(b.FinalCost))
}
