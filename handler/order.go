package handler

import (
	"Storefront/config"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Order struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (h *Order) RegisterRouter(r gin.IRouter) {
	orders := userGroup(r, h.Config, "/orders")
	orders.POST("", context.Wrap(h.Checkout))
	orders.GET("", context.Wrap(h.List))
	orders.GET("/:id", context.Wrap(h.Detail))
	orders.POST("/:id/cancel", context.Wrap(h.Cancel))

	adminGroup(r, h.Config, "/orders").PUT("/:id/status", context.Wrap(h.UpdateStatus))
}

func (h *Order) Checkout(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	order, err := h.OrderService.Checkout(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Created(c, order)
	return nil
}

func (h *Order) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	q, err := bindCursor(c)
	if err != nil {
		return err
	}
	page, err := h.OrderService.List(c.Request.Context(), uid, q.Cursor, q.Limit)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

func (h *Order) Detail(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.OrderService.Get(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, order)
	return nil
}

func (h *Order) Cancel(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.OrderService.Cancel(c.Request.Context(), uid, id)
	if err != nil {
		return err
	}
	response.Success(c, order)
	return nil
}

func (h *Order) UpdateStatus(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	order, err := h.OrderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		return err
	}
	response.Success(c, order)
	return nil
}
