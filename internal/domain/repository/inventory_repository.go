package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// InventoryRepository define el puerto de persistencia del catálogo de
// repuestos y del libro de stock.
//
// DeductStock y RestoreStock son las únicas vías de mutación de Quantity
// fuera de las ediciones de catálogo: ambas son sentencias atómicas, de modo
// que dos deducciones concurrentes sobre el mismo ítem nunca observan un
// stock obsoleto ni lo dejan negativo.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByName(name string) (*entity.InventoryItem, error)
	List() ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	Delete(id string) error

	// DeductStock descuenta quantity del ítem de forma condicional
	// ("restar N donde quantity >= N") y devuelve la fotografía de
	// nombre/precio al momento del consumo. Retorna
	// domain.ErrInsufficientStock si el stock no alcanza y
	// domain.ErrNotFound si el ítem no existe.
	DeductStock(itemID string, quantity int) (*entity.StockSnapshot, error)
	// RestoreStock devuelve quantity al ítem; solo para compensar una
	// deducción cuyo paso posterior falló.
	RestoreStock(itemID string, quantity int) error
	// ListLowStock ítems con quantity <= low_stock_threshold, ascendente por quantity.
	ListLowStock() ([]*entity.InventoryItem, error)
}
