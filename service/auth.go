package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/encrypt"
	"Storefront/pkg/errs"
	"Storefront/pkg/jwt"
	"Storefront/types"
	"context"
	"strings"
	"time"
)

// refresh token 剩余有效期低于该值时轮换
const refreshRotateBuffer = 24 * time.Hour

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*types.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	Me(ctx context.Context, userID uint64) (*models.User, error)
}

type AuthService struct {
	Config    *config.Config
	UsersRepo *dao.Users
}

// Register 注册用户
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exist, err := s.UsersRepo.IsEmailExist(ctx, email)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrEmailExists
	}

	hash, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.RoleCustomer,
	}
	if err := s.UsersRepo.Create(ctx, user); err != nil {
		if dao.IsDuplicate(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// Login 登录处理
func (s *AuthService) Login(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	user, err := s.UsersRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrLoginFailed
		}
		return nil, err
	}
	if !encrypt.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrLoginFailed
	}
	return s.issue(user, "")
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	claims, err := jwt.ParseToken([]byte(s.Config.Jwt.Secret), jwt.TypeRefresh, refreshToken)
	if err != nil {
		return nil, errs.New(errs.Unauthorized, "invalid refresh token")
	}

	// 角色可能已变更，以数据库为准
	user, err := s.UsersRepo.FindById(ctx, claims.UserID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, errs.New(errs.Unauthorized, "invalid refresh token")
		}
		return nil, err
	}

	keep := refreshToken
	if jwt.ShouldRotateRefreshToken(claims, refreshRotateBuffer) {
		keep = ""
	}
	return s.issue(user, keep)
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.UsersRepo.FindById(ctx, userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// issue refreshToken 为空时签发新的 refresh token
func (s *AuthService) issue(user *models.User, refreshToken string) (*types.TokenResponse, error) {
	secret := []byte(s.Config.Jwt.Secret)
	access, err := jwt.GenerateToken(secret, user.ID, user.Email, user.Role, jwt.TypeAccess, s.Config.Jwt.AccessExpire)
	if err != nil {
		return nil, err
	}
	if refreshToken == "" {
		refreshToken, err = jwt.GenerateToken(secret, user.ID, user.Email, user.Role, jwt.TypeRefresh, s.Config.Jwt.RefreshExpire)
		if err != nil {
			return nil, err
		}
	}
	return &types.TokenResponse{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.Config.Jwt.AccessExpire / time.Second),
		TokenType:    "Bearer",
	}, nil
}
