package handler

import (
	"Storefront/config"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Category struct {
	Config          *config.Config
	CategoryService service.ICategoryService
}

func (h *Category) RegisterRouter(r gin.IRouter) {
	r.GET("/categories", context.Wrap(h.List))

	admin := adminGroup(r, h.Config, "/categories")
	admin.POST("", context.Wrap(h.Create))
	admin.PUT("/:id", context.Wrap(h.Update))
	admin.DELETE("/:id", context.Wrap(h.Delete))
}

func (h *Category) List(c *gin.Context) error {
	items, err := h.CategoryService.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}

func (h *Category) Create(c *gin.Context) error {
	var req types.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	category, err := h.CategoryService.Create(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, category)
	return nil
}

func (h *Category) Update(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req types.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	category, err := h.CategoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, category)
	return nil
}

func (h *Category) Delete(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
