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

type Auth struct {
	Config      *config.Config
	AuthService service.IAuthService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/auth")
	auth.POST("/register", context.Wrap(u.Register))
	auth.POST("/login", context.Wrap(u.Login))
	auth.POST("/refresh", context.Wrap(u.Refresh))
	userGroup(r, u.Config, "/auth").GET("/me", context.Wrap(u.Me))
}

func (u *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	user, err := u.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, userResp(user))
	return nil
}

func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	tokens, err := u.AuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	response.Success(c, tokens)
	return nil
}

func (u *Auth) Refresh(c *gin.Context) error {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	tokens, err := u.AuthService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	response.Success(c, tokens)
	return nil
}

func (u *Auth) Me(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := u.AuthService.Me(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, userResp(user))
	return nil
}

func userResp(user *models.User) *types.UserResponse {
	return &types.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
