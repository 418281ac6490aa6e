package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
)

// ShiftHandler endpoints de turnos.
type ShiftHandler struct {
	uc *usecase.ShiftUseCase
}

// NewShiftHandler construye el handler de turnos.
func NewShiftHandler(uc *usecase.ShiftUseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// List godoc
// @Summary      Listar turnos del restaurante
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        date         query  string  false  "YYYY-MM-DD"
// @Param        schedule_id  query  string  false  "ID del horario"
// @Success      200  {array}   dto.ShiftResponse
// @Router       /api/shifts [get]
func (h *ShiftHandler) List(c *fiber.Ctx) error {
	var f dto.ShiftFilter
	if ok, err := bindQuery(c, &f); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear turno
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateShiftRequest  true  "date, start_time, end_time, role"
// @Success      201   {object}  dto.ShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shifts [post]
func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShiftRequest
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
// @Summary      Actualizar turno
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID del turno"
// @Param        body  body  dto.UpdateShiftRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shifts/{id} [put]
func (h *ShiftHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShiftRequest
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
// @Summary      Eliminar turno
// @Tags         shifts
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del turno"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id} [delete]
func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMine godoc
// @Summary      Turnos asignados al empleado
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ShiftResponse
// @Router       /api/me/shifts [get]
func (h *ShiftHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
