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

type Loyalty struct {
	Config         *config.Config
	LoyaltyService service.ILoyaltyService
}

func (h *Loyalty) RegisterRouter(r gin.IRouter) {
	user := userGroup(r, h.Config, "/loyalty")
	user.POST("/enroll", context.Wrap(h.Enroll))
	user.GET("/status", context.Wrap(h.Status))
	user.GET("/balance", context.Wrap(h.Balance))
	user.GET("/transactions", context.Wrap(h.Transactions))
	user.GET("/tiers", context.Wrap(h.ListTiers))
	user.GET("/rewards", context.Wrap(h.ListRewards))
	user.POST("/rewards/:id/redeem", context.Wrap(h.Redeem))

	admin := adminGroup(r, h.Config, "/loyalty")
	admin.POST("/transactions", context.Wrap(h.CreateTransaction))
	admin.POST("/transactions/:id/complete", context.Wrap(h.CompleteTransaction))
	admin.POST("/transactions/:id/fail", context.Wrap(h.FailTransaction))
	admin.PUT("/tiers", context.Wrap(h.UpsertTier))
	admin.POST("/rewards", context.Wrap(h.CreateReward))
	admin.PUT("/rewards/:id", context.Wrap(h.UpdateReward))
	admin.PUT("/enrollments/:userId/tier", context.Wrap(h.SetTier))
}

func (h *Loyalty) Enroll(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	res, err := h.LoyaltyService.Enroll(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Created(c, res)
	return nil
}

func (h *Loyalty) Status(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	status, err := h.LoyaltyService.GetStatus(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, status)
	return nil
}

func (h *Loyalty) Balance(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	balance, err := h.LoyaltyService.GetBalance(c.Request.Context(), uid)
	if err != nil {
		return err
	}
	response.Success(c, types.BalanceResponse{Balance: balance})
	return nil
}

func (h *Loyalty) Transactions(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	q, err := bindCursor(c)
	if err != nil {
		return err
	}
	page, err := h.LoyaltyService.ListTransactions(c.Request.Context(), uid, q.Cursor, q.Limit)
	if err != nil {
		return err
	}
	response.Success(c, page)
	return nil
}

func (h *Loyalty) ListTiers(c *gin.Context) error {
	tiers, err := h.LoyaltyService.ListTiers(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, tiers)
	return nil
}

func (h *Loyalty) ListRewards(c *gin.Context) error {
	rewards, err := h.LoyaltyService.ListRewards(c.Request.Context(), context.GetRole(c) != models.RoleAdmin)
	if err != nil {
		return err
	}
	response.Success(c, rewards)
	return nil
}

func (h *Loyalty) Redeem(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	rewardID, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.LoyaltyService.Redeem(c.Request.Context(), uid, rewardID)
	if err != nil {
		return err
	}
	response.Created(c, res)
	return nil
}

func (h *Loyalty) CreateTransaction(c *gin.Context) error {
	var req types.CreateLoyaltyTxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	item, err := h.LoyaltyService.CreateTransaction(c.Request.Context(), req.UserID, req.Type, req.Points, req.Description, req.Pending)
	if err != nil {
		return err
	}
	response.Created(c, item)
	return nil
}

func (h *Loyalty) CompleteTransaction(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.LoyaltyService.CompleteTransaction(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Loyalty) FailTransaction(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req types.FailLoyaltyTxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	item, err := h.LoyaltyService.FailTransaction(c.Request.Context(), id, req.Status)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Loyalty) UpsertTier(c *gin.Context) error {
	var req types.UpsertTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	tier, err := h.LoyaltyService.UpsertTier(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, tier)
	return nil
}

func (h *Loyalty) CreateReward(c *gin.Context) error {
	var req types.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	reward, err := h.LoyaltyService.CreateReward(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Created(c, reward)
	return nil
}

func (h *Loyalty) UpdateReward(c *gin.Context) error {
	id, err := context.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	reward, err := h.LoyaltyService.UpdateReward(c.Request.Context(), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, reward)
	return nil
}

func (h *Loyalty) SetTier(c *gin.Context) error {
	userID, err := context.ParamID(c, "userId")
	if err != nil {
		return err
	}
	var req types.SetTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.BadRequest(err.Error())
	}
	if err := h.LoyaltyService.SetTier(c.Request.Context(), userID, req.TierName); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
