package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un repuesto del catálogo del taller.
// Quantity nunca es negativo: solo lo mutan DeductStock/RestoreStock
// del repositorio (update condicional) y las ediciones de catálogo.
type InventoryItem struct {
	ID                string
	Name              string // único
	PartNumber        string
	Supplier          string
	Quantity          int
	Unit              string
	CostPrice         decimal.Decimal
	SalePrice         decimal.Decimal
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LowStock indica si el ítem está en o por debajo de su umbral de reposición.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// StockSnapshot fotografía de nombre y precio de venta devuelta por una
// deducción exitosa; es lo que se copia al PartUsage.
type StockSnapshot struct {
	InventoryItemID string
	Name            string
	SalePrice       decimal.Decimal
}
