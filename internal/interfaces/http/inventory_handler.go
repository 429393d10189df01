package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del catálogo de repuestos
// (protegido; lectura con view_inventory, escritura con manage_inventory).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Catálogo completo de repuestos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToInventoryItemList(items))
}

// ListLowStock godoc
// @Summary      Ítems en o por debajo de su umbral de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToInventoryItemList(items))
}

// Get godoc
// @Summary      Detalle de un ítem de catálogo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToInventoryItemResponse(item))
}

// Create godoc
// @Summary      Alta de un ítem de catálogo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  true  "datos del ítem"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), inventory.CreateItemInput{
		Name:              in.Name,
		PartNumber:        in.PartNumber,
		Supplier:          in.Supplier,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		CostPrice:         in.CostPrice,
		SalePrice:         in.SalePrice,
		LowStockThreshold: in.LowStockThreshold,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToInventoryItemResponse(item))
}

// Update godoc
// @Summary      Edición de un ítem de catálogo
// @Description  No altera citas históricas: las líneas de repuesto guardan su propia fotografía de nombre y precio.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del ítem"
// @Param        body  body      dto.UpdateItemRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("id"), inventory.UpdateItemInput{
		Name:              in.Name,
		PartNumber:        in.PartNumber,
		Supplier:          in.Supplier,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		CostPrice:         in.CostPrice,
		SalePrice:         in.SalePrice,
		LowStockThreshold: in.LowStockThreshold,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToInventoryItemResponse(item))
}

// Delete godoc
// @Summary      Baja de un ítem de catálogo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del ítem"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ítem eliminado"})
}
