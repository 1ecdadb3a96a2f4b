package context

import (
	"Storefront/pkg/errs"
	"Storefront/pkg/log"
	"Storefront/pkg/response"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h(c)
		if err == nil {
			return
		}
		// 如果已经写过响应，直接返回
		if c.Writer.Written() {
			return
		}

		var be *response.BizError
		if errors.As(err, &be) {
			response.Fail(c, be.Code, be.Msg)
			return
		}

		var e *errs.Error
		if errors.As(err, &e) && e.Kind != errs.Internal && e.Kind != errs.Configuration {
			response.Fail(c, e.Kind.HTTPStatus(), e.Msg)
			return
		}

		log.L.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.Fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errs.New(errs.Unauthorized, "user_id not found")
	}

	uid, ok := v.(uint64)
	if !ok || uid == 0 {
		return 0, errs.New(errs.Unauthorized, "invalid user_id")
	}

	return uid, nil
}

func GetRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}

// ParamID 解析路径中的数字 ID
func ParamID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.BadRequest("invalid " + name)
	}
	return id, nil
}
