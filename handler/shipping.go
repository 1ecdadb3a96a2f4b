package handler

import (
	"Storefront/config"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Shipping struct {
	Config          *config.Config
	ShippingService service.IShippingService
}

func (h *Shipping) RegisterRouter(r gin.IRouter) {
	r.GET("/shipping-options", context.Wrap(h.List))

	admin := adminGroup(r, h.Config, "/shipping-options")
	admin.POST("", context.Wrap(h.Create))
	admin.PUT("/:id", context.Wrap(h.Update))
	admin.DELETE("/:id", context.Wrap(h.Delete))
}

func (h *Shipping) List(c *gin.Context) error {
	items, err := h.ShippingService.List(c.Request.Context(), true)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (h *Shipping) Create(c *gin.Context) error {
	var req types.ShippingOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	option, err := h.ShippingService.Create(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, option)
	return nil
}

func (h *Shipping) Update(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req types.ShippingOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	option, err := h.ShippingService.Update(c.Request.Context(), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, option)
	return nil
}

func (h *Shipping) Delete(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.ShippingService.Delete(c.Request.Context(), id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
