package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Horarios-api/internal/application/approval"
	"github.com/jhoicas/Horarios-api/internal/application/dto"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
)

// RestaurantHandler endpoints de restaurantes (super-admin).
type RestaurantHandler struct {
	uc       *usecase.RestaurantUseCase
	workflow *approval.Workflow
}

// NewRestaurantHandler construye el handler de restaurantes.
func NewRestaurantHandler(uc *usecase.RestaurantUseCase, workflow *approval.Workflow) *RestaurantHandler {
	return &RestaurantHandler{uc: uc, workflow: workflow}
}

// List godoc
// @Summary      Listar restaurantes
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pending | approved"
// @Success      200  {array}   dto.RestaurantResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      Restaurantes pendientes de aprobación
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.RestaurantResponse
// @Router       /api/restaurants/pending [get]
func (h *RestaurantHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear restaurante
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRestaurantRequest  true  "name, location, phone_number"
// @Success      201   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/restaurants [post]
func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRestaurantRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener restaurante
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del restaurante"
// @Success      200  {object}  dto.RestaurantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c *fiber.Ctx) error {
	id, err := restaurantIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar restaurante
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                          true  "ID del restaurante"
// @Param        body  body  dto.UpdateRestaurantRequest  true  "campos a modificar"
// @Success      200   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [put]
func (h *RestaurantHandler) Update(c *fiber.Ctx) error {
	id, err := restaurantIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateRestaurantRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar restaurante
// @Tags         restaurants
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del restaurante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c *fiber.Ctx) error {
	id, err := restaurantIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Approve godoc
// @Summary      Aprobar restaurante junto con su admin
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del restaurante"
// @Success      200  {object}  dto.RestaurantWithAdminResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id}/approve [post]
func (h *RestaurantHandler) Approve(c *fiber.Ctx) error {
	id, err := restaurantIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.workflow.ApproveRestaurant(c.UserContext(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
