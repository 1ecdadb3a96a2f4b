package handler

import (
	"Storefront/config"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Cart struct {
	Config      *config.Config
	CartService service.ICartService
}

func (h *Cart) RegisterRouter(r gin.IRouter) {
	cart := userGroup(r, h.Config, "/cart")
	cart.GET("", context.Wrap(h.Get))
	cart.DELETE("", context.Wrap(h.Clear))
	cart.POST("/items", context.Wrap(h.AddItem))
	cart.PUT("/items/:id", context.Wrap(h.UpdateItem))
	cart.DELETE("/items/:id", context.Wrap(h.RemoveItem))
}

func (h *Cart) Get(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	cart, err := h.CartService.GetCart(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, cart)
	return nil
}

func (h *Cart) AddItem(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	item, err := h.CartService.AddItem(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Created(c, item)
	return nil
}

func (h *Cart) UpdateItem(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	item, err := h.CartService.UpdateItem(c.Request.Context(), uid, id, &req)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Cart) RemoveItem(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.CartService.RemoveItem(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Cart) Clear(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	if err := h.CartService.ClearCart(c.Request.Context(), uid); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
