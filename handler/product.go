package handler

import (
	"Storefront/config"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Product struct {
	Config         *config.Config
	ProductService service.IProductService
	ImageService   service.IImageService
}

func (h *Product) RegisterRouter(r gin.IRouter) {
	r.GET("/products", context.Wrap(h.List))
	r.GET("/products/:id", context.Wrap(h.Detail))

	admin := adminGroup(r, h.Config, "/products")
	admin.POST("", context.Wrap(h.Create))
	admin.PUT("/:id", context.Wrap(h.Update))
	admin.DELETE("/:id", context.Wrap(h.Delete))
	admin.POST("/:id/cover", context.Wrap(h.UploadCover))
}

func (h *Product) List(c *gin.Context) error {
	var q types.ProductListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return response.BadRequest(err.Error())
	}
	page, err := h.ProductService.List(c.Request.Context(), &q, true)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

func (h *Product) Detail(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.ProductService.Get(c.Request.Context(), id, true)
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}

func (h *Product) Create(c *gin.Context) error {
	var req types.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	detail, err := h.ProductService.Create(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, detail)
	return nil
}

func (h *Product) Update(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req types.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	detail, err := h.ProductService.Update(c.Request.Context(), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}

func (h *Product) Delete(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

// UploadCover multipart 字段名 file
func (h *Product) UploadCover(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest("missing file")
	}
	resp, err := h.ImageService.UploadProductCover(c.Request.Context(), id, file)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
