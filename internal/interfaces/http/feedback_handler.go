package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// FeedbackHandler maneja las calificaciones de clientes (protegido,
// capacidad submit_feedback).
type FeedbackHandler struct {
	uc *usecase.FeedbackUseCase
}

// NewFeedbackHandler construye el handler.
func NewFeedbackHandler(uc *usecase.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

// Submit godoc
// @Summary      Calificar una cita completada
// @Tags         feedback
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SubmitFeedbackRequest  true  "appointmentId, rating (1-5) y comment"
// @Success      201   {object}  dto.FeedbackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/feedback [post]
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitFeedbackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fb, err := h.uc.Submit(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToFeedbackResponse(fb))
}

// ListMine godoc
// @Summary      Calificaciones enviadas por el cliente autenticado
// @Tags         feedback
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.FeedbackResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/feedback/mine [get]
func (h *FeedbackHandler) ListMine(c *fiber.Ctx) error {
	fbs, err := h.uc.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToFeedbackList(fbs))
}
