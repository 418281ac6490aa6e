package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
)

// ScheduleHandler endpoints de horarios del restaurante del admin.
type ScheduleHandler struct {
	uc *usecase.ScheduleUseCase
}

// NewScheduleHandler construye el handler de horarios.
func NewScheduleHandler(uc *usecase.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

// List godoc
// @Summary      Listar horarios
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.ScheduleResponse
// @Router       /api/schedules [get]
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear horario
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateScheduleRequest  true  "name, start_date, end_date"
// @Success      201   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/schedules [post]
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateScheduleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar horario
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID del horario"
// @Param        body  body  dto.UpdateScheduleRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ScheduleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/schedules/{id} [put]
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateScheduleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar horario
// @Tags         schedules
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del horario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddShift godoc
// @Summary      Asociar turno a un horario
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string  true  "ID del horario"
// @Param        shiftId  path  string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schedules/{id}/shifts/{shiftId} [post]
func (h *ScheduleHandler) AddShift(c *fiber.Ctx) error {
	out, err := h.uc.AddShift(c.UserContext(), GetActor(c), c.Params("id"), c.Params("shiftId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveShift godoc
// @Summary      Quitar turno de su horario
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        shiftId  path  string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schedules/shifts/{shiftId} [delete]
func (h *ScheduleHandler) RemoveShift(c *fiber.Ctx) error {
	out, err := h.uc.RemoveShift(c.UserContext(), GetActor(c), c.Params("shiftId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Horas por empleado del horario
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del horario"
// @Success      200  {object}  dto.ScheduleSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schedules/{id}/summary [get]
func (h *ScheduleHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Descargar horario en PDF
// @Tags         schedules
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del horario"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schedules/{id}/pdf [get]
func (h *ScheduleHandler) ExportPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportPDF(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
