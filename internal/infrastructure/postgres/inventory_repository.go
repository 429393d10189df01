package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de catálogo y stock.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const itemColumns = `
	id, name, part_number, supplier, quantity, unit, cost_price, sale_price,
	low_stock_threshold, created_at, updated_at`

// Create alta de catálogo. El nombre tiene constraint único.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, name, part_number, supplier, quantity, unit,
			cost_price, sale_price, low_stock_threshold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.PartNumber, item.Supplier, item.Quantity, item.Unit,
		item.CostPrice, item.SalePrice, item.LowStockThreshold, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por id (nil, nil si no existe).
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetByName obtiene un ítem por nombre (nil, nil si no existe).
func (r *InventoryRepo) GetByName(name string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM inventory_items WHERE name = $1`, name)
}

func (r *InventoryRepo) getOne(query string, arg any) (*entity.InventoryItem, error) {
	item, err := scanItem(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(
		&i.ID, &i.Name, &i.PartNumber, &i.Supplier, &i.Quantity, &i.Unit,
		&i.CostPrice, &i.SalePrice, &i.LowStockThreshold, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// List catálogo completo ordenado por nombre.
func (r *InventoryRepo) List() ([]*entity.InventoryItem, error) {
	return r.listQuery(`SELECT ` + itemColumns + ` FROM inventory_items ORDER BY name`)
}

// ListLowStock ítems en o por debajo del umbral, ascendente por cantidad.
func (r *InventoryRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	return r.listQuery(`SELECT ` + itemColumns + `
		FROM inventory_items WHERE quantity <= low_stock_threshold ORDER BY quantity`)
}

func (r *InventoryRepo) listQuery(query string) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("query inventory items: %w", err)
	}
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Update edición de catálogo (no pasa por aquí el stock de las citas).
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, part_number = $3, supplier = $4, quantity = $5, unit = $6,
			cost_price = $7, sale_price = $8, low_stock_threshold = $9, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.PartNumber, item.Supplier, item.Quantity, item.Unit,
		item.CostPrice, item.SalePrice, item.LowStockThreshold,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete baja de catálogo.
func (r *InventoryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeductStock descuenta stock con una única sentencia condicional:
// "restar N donde quantity >= N". La verificación y el descuento son
// atómicos a nivel de fila, así dos deducciones concurrentes del mismo
// ítem se serializan en la DB y el stock jamás queda negativo.
func (r *InventoryRepo) DeductStock(itemID string, quantity int) (*entity.StockSnapshot, error) {
	query := `
		UPDATE inventory_items
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING name, sale_price`
	snap := entity.StockSnapshot{InventoryItemID: itemID}
	err := r.q.QueryRow(context.Background(), query, itemID, quantity).Scan(&snap.Name, &snap.SalePrice)
	if err == nil {
		return &snap, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("deduct stock: %w", err)
	}
	// Cero filas: o el ítem no existe o el stock no alcanza.
	item, getErr := r.GetByID(itemID)
	if getErr != nil {
		return nil, getErr
	}
	if item == nil {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	return nil, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, item.Quantity, quantity)
}

// RestoreStock devuelve stock descontado (compensación de una deducción
// cuyo paso posterior falló).
func (r *InventoryRepo) RestoreStock(itemID string, quantity int) error {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	return nil
}
