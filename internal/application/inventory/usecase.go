package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// UseCase libro de inventario del taller: catálogo de repuestos más las
// operaciones atómicas de stock (Deduct/Restore) que consume el ciclo de
// vida de las citas. Implementa jobs.StockLedger.
type UseCase struct {
	repo repository.InventoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.InventoryRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Deduct descuenta stock de forma condicional y devuelve la fotografía
// nombre/precio del ítem. La verificación y el descuento son una sola
// unidad atómica respecto a otras deducciones del mismo ítem.
func (uc *UseCase) Deduct(ctx context.Context, itemID string, quantity int) (*entity.StockSnapshot, error) {
	if itemID == "" || quantity <= 0 {
		return nil, fmt.Errorf("%w: cantidad a descontar debe ser positiva", domain.ErrInvalidInput)
	}
	return uc.repo.DeductStock(itemID, quantity)
}

// Restore devuelve stock descontado; solo para compensar un paso posterior fallido.
func (uc *UseCase) Restore(ctx context.Context, itemID string, quantity int) error {
	if itemID == "" || quantity <= 0 {
		return fmt.Errorf("%w: cantidad a restaurar debe ser positiva", domain.ErrInvalidInput)
	}
	return uc.repo.RestoreStock(itemID, quantity)
}

// ListLowStock ítems en o por debajo de su umbral, ascendente por cantidad.
func (uc *UseCase) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.repo.ListLowStock()
}

// CreateItemInput datos para crear un ítem de catálogo.
type CreateItemInput struct {
	Name              string
	PartNumber        string
	Supplier          string
	Quantity          int
	Unit              string
	CostPrice         decimal.Decimal
	SalePrice         decimal.Decimal
	LowStockThreshold int
}

// CreateItem alta de catálogo. El nombre es único.
func (uc *UseCase) CreateItem(ctx context.Context, in CreateItemInput) (*entity.InventoryItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CostPrice.LessThanOrEqual(decimal.Zero) || in.SalePrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: name, costPrice y salePrice son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe un ítem con ese nombre", domain.ErrDuplicate)
	}

	unit := in.Unit
	if unit == "" {
		unit = "units"
	}
	threshold := in.LowStockThreshold
	if threshold == 0 {
		threshold = 5
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:                uuid.New().String(),
		Name:              name,
		PartNumber:        in.PartNumber,
		Supplier:          in.Supplier,
		Quantity:          in.Quantity,
		Unit:              unit,
		CostPrice:         in.CostPrice,
		SalePrice:         in.SalePrice,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemInput campos opcionales de edición; nil = sin cambio.
type UpdateItemInput struct {
	Name              *string
	PartNumber        *string
	Supplier          *string
	Quantity          *int
	Unit              *string
	CostPrice         *decimal.Decimal
	SalePrice         *decimal.Decimal
	LowStockThreshold *int
}

// UpdateItem edición de catálogo. No toca citas históricas: las PartUsage
// guardan su propia fotografía de nombre y precio.
func (uc *UseCase) UpdateItem(ctx context.Context, id string, in UpdateItemInput) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != item.Name {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: ya existe un ítem con ese nombre", domain.ErrDuplicate)
		}
		item.Name = name
	}
	if in.PartNumber != nil {
		item.PartNumber = *in.PartNumber
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, fmt.Errorf("%w: cantidad no puede ser negativa", domain.ErrInvalidInput)
		}
		item.Quantity = *in.Quantity
	}
	if in.Unit != nil && *in.Unit != "" {
		item.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		item.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		item.SalePrice = *in.SalePrice
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.LowStockThreshold = *in.LowStockThreshold
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem baja de catálogo.
func (uc *UseCase) DeleteItem(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// GetItem consulta un ítem.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ListItems catálogo completo ordenado por nombre.
func (uc *UseCase) ListItems(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.repo.List()
}
