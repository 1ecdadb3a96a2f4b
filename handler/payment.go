package handler

import (
	"Storefront/config"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Payment struct {
	Config         *config.Config
	PaymentService service.IPaymentService
}

func (h *Payment) RegisterRouter(r gin.IRouter) {
	pay := userGroup(r, h.Config, "/payment-methods")
	pay.GET("", context.Wrap(h.List))
	pay.POST("", context.Wrap(h.Create))
	pay.PUT("/:id/default", context.Wrap(h.SetDefault))
	pay.DELETE("/:id", context.Wrap(h.Delete))
}

func (h *Payment) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	items, err := h.PaymentService.List(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (h *Payment) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	method, err := h.PaymentService.Create(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Created(c, method)
	return nil
}

func (h *Payment) SetDefault(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.PaymentService.SetDefault(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Payment) Delete(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.PaymentService.Delete(c.Request.Context(), uid, id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
