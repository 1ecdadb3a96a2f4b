package handler

import (
	"Storefront/config"
	"Storefront/models"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Coupon struct {
	Config        *config.Config
	CouponService service.ICouponService
}

func (h *Coupon) RegisterRouter(r gin.IRouter) {
	user := userGroup(r, h.Config, "/coupons")
	user.POST("/validate", context.Wrap(h.Validate))
	user.GET("/mine", context.Wrap(h.Mine))
	user.POST("/:code/use", context.Wrap(h.MarkUsed))

	admin := adminGroup(r, h.Config, "/coupons")
	admin.POST("", context.Wrap(h.Create))
	admin.GET("", context.Wrap(h.List))
	admin.DELETE("/:id", context.Wrap(h.Delete))
}

func (h *Coupon) Validate(c *gin.Context) error {
	var req types.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	res, err := h.CouponService.Validate(c.Request.Context(), caller, req.Code, req.OrderAmount)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *Coupon) MarkUsed(c *gin.Context) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}
	coupon, err := h.CouponService.MarkUsed(c.Request.Context(), caller, c.Param("code"))
	if err != nil {
		return err
	}
	response.Success(c, coupon)
	return nil
}

func callerOf(c *gin.Context) (service.Caller, error) {
	uid, err := context.GetUserID(c)
	if err != nil {
		return service.Caller{}, err
	}
	return service.Caller{UserID: uid, IsAdmin: context.GetRole(c) == models.RoleAdmin}, nil
}

func (h *Coupon) Mine(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	items, err := h.CouponService.ListMine(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (h *Coupon) Create(c *gin.Context) error {
	var req types.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	coupon, err := h.CouponService.Create(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, coupon)
	return nil
}

func (h *Coupon) List(c *gin.Context) error {
	items, err := h.CouponService.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (h *Coupon) Delete(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.CouponService.Delete(c.Request.Context(), id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
