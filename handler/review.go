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

type Review struct {
	Config        *config.Config
	ReviewService service.IReviewService
}

func (h *Review) RegisterRouter(r gin.IRouter) {
	r.GET("/products/:id/reviews", context.Wrap(h.List))
	userGroup(r, h.Config, "/products").POST("/:id/reviews", context.Wrap(h.Create))
	userGroup(r, h.Config, "/reviews").DELETE("/:id", context.Wrap(h.Delete))
}

func (h *Review) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	productID, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req types.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	review, err := h.ReviewService.Create(c.Request.Context(), uid, productID, &req)
	if err != nil {
		return err
	}
	response.Created(c, review)
	return nil
}

func (h *Review) List(c *gin.Context) error {
	productID, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	q, err := bindCursor(c)
	if err != nil {
		return err
	}
	page, err := h.ReviewService.ListByProduct(c.Request.Context(), productID, q.Cursor, q.Limit)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

func (h *Review) Delete(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	isAdmin := context.GetRole(c) == models.RoleAdmin
	if err := h.ReviewService.Delete(c.Request.Context(), uid, isAdmin, id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
