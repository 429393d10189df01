package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/jobs"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

// ManagerHandler maneja las peticiones HTTP del manager: plantel de
// mecánicos, asignación/cancelación de citas y tablero (protegido,
// capacidad assign_jobs).
type ManagerHandler struct {
	jobs     *jobs.UseCase
	manager  *usecase.ManagerUseCase
	feedback *usecase.FeedbackUseCase
}

// NewManagerHandler construye el handler.
func NewManagerHandler(jobsUC *jobs.UseCase, manager *usecase.ManagerUseCase, feedback *usecase.FeedbackUseCase) *ManagerHandler {
	return &ManagerHandler{jobs: jobsUC, manager: manager, feedback: feedback}
}

// ListMechanics godoc
// @Summary      Listar mecánicos del taller
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/manager/mechanics [get]
func (h *ManagerHandler) ListMechanics(c *fiber.Ctx) error {
	mechanics, err := h.manager.ListMechanics(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToUserList(mechanics))
}

// CreateMechanic godoc
// @Summary      Alta de un mecánico
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateMechanicRequest  true  "name, email y password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/mechanics [post]
func (h *ManagerHandler) CreateMechanic(c *fiber.Ctx) error {
	var in dto.CreateMechanicRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mechanic, err := h.manager.CreateMechanic(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUserResponse(mechanic))
}

// ListUnassigned godoc
// @Summary      Citas Scheduled sin mecánico asignado
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.AppointmentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/manager/appointments/unassigned [get]
func (h *ManagerHandler) ListUnassigned(c *fiber.Ctx) error {
	appts, err := h.jobs.ListUnassigned(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentList(appts))
}

// Assign godoc
// @Summary      Asignar un mecánico a una cita Scheduled
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID de la cita"
// @Param        body  body      dto.AssignRequest  true  "mechanicId"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/appointments/{id}/assign [put]
func (h *ManagerHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	appt, err := h.jobs.Assign(c.Context(), c.Params("id"), in.MechanicID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentResponse(appt))
}

// Cancel godoc
// @Summary      Cancelar una cita Scheduled
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la cita"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/manager/appointments/{id}/cancel [put]
func (h *ManagerHandler) Cancel(c *fiber.Ctx) error {
	appt, err := h.jobs.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToAppointmentResponse(appt))
}

// Stats godoc
// @Summary      Conteo global de citas por estado
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/manager/stats [get]
func (h *ManagerHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.jobs.Stats(c.Context(), "")
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.StatsResponse{
		Total:      stats.Total,
		Scheduled:  stats.Scheduled,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
		Cancelled:  stats.Cancelled,
		Unassigned: stats.Unassigned,
	})
}

// Dashboard godoc
// @Summary      Tablero del manager: citas por estado y tamaños de plantel
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/manager/dashboard [get]
func (h *ManagerHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.manager.Dashboard(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{
		"appointments": dto.StatsResponse{
			Total:      stats.Appointments.Total,
			Scheduled:  stats.Appointments.Scheduled,
			InProgress: stats.Appointments.InProgress,
			Completed:  stats.Appointments.Completed,
			Cancelled:  stats.Appointments.Cancelled,
			Unassigned: stats.Appointments.Unassigned,
		},
		"customers": stats.Customers,
		"mechanics": stats.Mechanics,
	})
}

// ListFeedback godoc
// @Summary      Todas las calificaciones de clientes
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.FeedbackResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/manager/feedback [get]
func (h *ManagerHandler) ListFeedback(c *fiber.Ctx) error {
	fbs, err := h.feedback.ListAll(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ToFeedbackList(fbs))
}

// MechanicRatings godoc
// @Summary      Promedio de calificaciones por mecánico
// @Tags         manager
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.MechanicRatingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/manager/mechanics/ratings [get]
func (h *ManagerHandler) MechanicRatings(c *fiber.Ctx) error {
	ratings, err := h.feedback.MechanicRatings(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.MechanicRatingResponse, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, dto.MechanicRatingResponse{
			MechanicID:   r.MechanicID,
			MechanicName: r.MechanicName,
			Average:      r.Average,
			Count:        r.Count,
		})
	}
	return c.JSON(out)
}
