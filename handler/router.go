package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/pkg/response"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

// userGroup 需要登录的路由组
func userGroup(r gin.IRouter, cfg *config.Config, path string) *gin.RouterGroup {
	return r.Group(path, middleware.Auth([]byte(cfg.Jwt.Secret)))
}

// adminGroup 需要管理员权限的路由组
func adminGroup(r gin.IRouter, cfg *config.Config, path string) *gin.RouterGroup {
	return r.Group(path, middleware.Auth([]byte(cfg.Jwt.Secret)), middleware.RequireAdmin())
}

func bindCursor(c *gin.Context) (*types.CursorQuery, error) {
	var q types.CursorQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, response.BadRequest(err.Error())
	}
	return &q, nil
}
