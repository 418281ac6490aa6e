package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
)

// AvailabilityHandler ventanas de disponibilidad de empleados.
type AvailabilityHandler struct {
	uc *usecase.AvailabilityUseCase
}

// NewAvailabilityHandler construye el handler de disponibilidad.
func NewAvailabilityHandler(uc *usecase.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

// ListMine godoc
// @Summary      Disponibilidad del empleado
// @Tags         me
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.AvailabilityResponse
// @Router       /api/me/availability [get]
func (h *AvailabilityHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar disponibilidad
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AvailabilityRequest  true  "date, start_time, end_time"
// @Success      201   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/me/availability [post]
func (h *AvailabilityHandler) Create(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
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
// @Summary      Reemplazar una ventana de disponibilidad
// @Tags         me
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la disponibilidad"
// @Param        body  body  dto.AvailabilityRequest  true  "date, start_time, end_time"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/me/availability/{id} [put]
func (h *AvailabilityHandler) Update(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
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
// @Summary      Eliminar una ventana de disponibilidad
// @Tags         me
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la disponibilidad"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me/availability/{id} [delete]
func (h *AvailabilityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListForUser godoc
// @Summary      Disponibilidad de un empleado (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {array}   dto.AvailabilityResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/availability [get]
func (h *AvailabilityHandler) ListForUser(c *fiber.Ctx) error {
	out, err := h.uc.ListForUser(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
