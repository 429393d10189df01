package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/jobs"
)

// JobHandler maneja las peticiones HTTP del ciclo de vida de citas desde el
// lado del mecánico (protegido, capacidad work_jobs).
type JobHandler struct {
	uc *jobs.UseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *jobs.UseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// ListMyJobs godoc
// @Summary      Citas asignadas al mecánico autenticado
// @Tags         mechanic
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AppointmentResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/mechanic/jobs [get]
func (h *JobHandler) ListMyJobs(c *fiber.Ctx) error {
	appts, err := h.uc.ListMyJobs(c.Context(), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentList(appts))
}

// GetJob godoc
// @Summary      Detalle de una cita con repuestos y mano de obra
// @Tags         mechanic
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/mechanic/jobs/{id} [get]
func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	appt, err := h.uc.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentResponse(appt))
}

// Start godoc
// @Summary      Iniciar una cita (Scheduled → In Progress)
// @Tags         mechanic
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/mechanic/jobs/{id}/start [put]
func (h *JobHandler) Start(c *fiber.Ctx) error {
	appt, err := h.uc.Start(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentResponse(appt))
}

// AddPart godoc
// @Summary      Registrar un repuesto consumido (descuenta stock)
// @Tags         mechanic
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ID de la cita"
// @Param        body  body      dto.AddPartRequest  true  "inventoryItemId y quantity"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/mechanic/jobs/{id}/parts [post]
func (h *JobHandler) AddPart(c *fiber.Ctx) error {
	var in dto.AddPartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	appt, err := h.uc.AddPart(c.Context(), c.Params("id"), GetUserID(c), in.InventoryItemID, in.Quantity)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentResponse(appt))
}

// AddLabor godoc
// @Summary      Registrar una línea de mano de obra
// @Tags         mechanic
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "ID de la cita"
// @Param        body  body      dto.AddLaborRequest  true  "description y cost"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/mechanic/jobs/{id}/labor [post]
func (h *JobHandler) AddLabor(c *fiber.Ctx) error {
	var in dto.AddLaborRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	appt, err := h.uc.AddLabor(c.Context(), c.Params("id"), GetUserID(c), in.Description, in.Cost)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentResponse(appt))
}

// Complete godoc
// @Summary      Completar una cita (congela totales y envía la factura)
// @Tags         mechanic
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/mechanic/jobs/{id}/complete [put]
func (h *JobHandler) Complete(c *fiber.Ctx) error {
	appt, err := h.uc.Complete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentResponse(appt))
}

// Stats godoc
// @Summary      Conteos de citas del mecánico por estado
// @Tags         mechanic
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/mechanic/stats [get]
func (h *JobHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context(), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StatsResponse{
		Total:      stats.Total,
		Scheduled:  stats.Scheduled,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
		Cancelled:  stats.Cancelled,
	})
}
