package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateItemRequest cuerpo de POST /api/inventory.
type CreateItemRequest struct {
	Name              string          `json:"name"`
	PartNumber        string          `json:"partNumber"`
	Supplier          string          `json:"supplier"`
	Quantity          int             `json:"quantity"`
	Unit              string          `json:"unit"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	SalePrice         decimal.Decimal `json:"salePrice"`
	LowStockThreshold int             `json:"lowStockThreshold"`
}

// UpdateItemRequest cuerpo de PUT /api/inventory/:id; punteros = campo opcional.
type UpdateItemRequest struct {
	Name              *string          `json:"name"`
	PartNumber        *string          `json:"partNumber"`
	Supplier          *string          `json:"supplier"`
	Quantity          *int             `json:"quantity"`
	Unit              *string          `json:"unit"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	SalePrice         *decimal.Decimal `json:"salePrice"`
	LowStockThreshold *int             `json:"lowStockThreshold"`
}

// InventoryItemResponse ítem de catálogo en la API.
type InventoryItemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	PartNumber        string          `json:"partNumber,omitempty"`
	Supplier          string          `json:"supplier,omitempty"`
	Quantity          int             `json:"quantity"`
	Unit              string          `json:"unit"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	SalePrice         decimal.Decimal `json:"salePrice"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	LowStock          bool            `json:"lowStock"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ToInventoryItemResponse mapea la entidad al DTO.
func ToInventoryItemResponse(i *entity.InventoryItem) *InventoryItemResponse {
	if i == nil {
		return nil
	}
	return &InventoryItemResponse{
		ID:                i.ID,
		Name:              i.Name,
		PartNumber:        i.PartNumber,
		Supplier:          i.Supplier,
		Quantity:          i.Quantity,
		Unit:              i.Unit,
		CostPrice:         i.CostPrice,
		SalePrice:         i.SalePrice,
		LowStockThreshold: i.LowStockThreshold,
		LowStock:          i.LowStock(),
		UpdatedAt:         i.UpdatedAt,
	}
}

// ToInventoryItemList mapea un listado.
func ToInventoryItemList(items []*entity.InventoryItem) []*InventoryItemResponse {
	out := make([]*InventoryItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToInventoryItemResponse(i))
	}
	return out
}
