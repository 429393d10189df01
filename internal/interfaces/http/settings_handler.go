package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// SettingsHandler maneja la configuración del taller (protegido, capacidad
// manage_settings).
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración actual del taller
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.uc.Get(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.SettingsResponse{OffPeakDays: settings.OffPeakDays})
}

// Update godoc
// @Summary      Reemplazar los días de baja demanda
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateSettingsRequest  true  "offPeakDays (nombres de día en inglés)"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	settings, err := h.uc.Update(c.Context(), in.OffPeakDays)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.SettingsResponse{OffPeakDays: settings.OffPeakDays})
}
