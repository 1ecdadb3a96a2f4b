package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/errs"
	"Storefront/pkg/snowflake"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultPageSize = 20

var _ ILoyaltyService = (*LoyaltyService)(nil)

type ILoyaltyService interface {
	// GetBalance 流水折叠得到的余额
	GetBalance(ctx context.Context, userID uint64) (int64, error)
	GetStatus(ctx context.Context, userID uint64) (*types.LoyaltyStatus, error)
	Enroll(ctx context.Context, userID uint64) (*types.EnrollResult, error)
	CreateTransaction(ctx context.Context, userID uint64, txType string, points int64, description string, pending bool) (*models.LoyaltyTransaction, error)
	CompleteTransaction(ctx context.Context, id uint64) (*models.LoyaltyTransaction, error)
	FailTransaction(ctx context.Context, id uint64, status string) (*models.LoyaltyTransaction, error)
	ListTransactions(ctx context.Context, userID uint64, cursor uint64, limit int) (*types.CursorPage[*models.LoyaltyTransaction], error)
	// Redeem 扣减积分并发放优惠券，二者在同一事务内
	Redeem(ctx context.Context, userID, rewardID uint64) (*types.RedeemResult, error)
	SetTier(ctx context.Context, userID uint64, tierName string) error
	UpsertTier(ctx context.Context, req *types.UpsertTierRequest) (*types.TierInfo, error)
	ListTiers(ctx context.Context) ([]*types.TierInfo, error)
	ListRewards(ctx context.Context, activeOnly bool) ([]*models.LoyaltyReward, error)
	CreateReward(ctx context.Context, req *types.RewardRequest) (*models.LoyaltyReward, error)
	UpdateReward(ctx context.Context, id uint64, req *types.UpdateRewardRequest) (*models.LoyaltyReward, error)
}

type LoyaltyService struct {
	DB          *gorm.DB
	Config      *config.Config
	LoyaltyRepo *dao.Loyalty
	CouponRepo  *dao.Coupon
	UsersRepo   *dao.Users
	RedeemLock  *cache.RedeemLock
	Notifier    INotifier

	// CouponCode 生成兑换券码，为空时使用 LOYALTY-<毫秒>-<短码>
	CouponCode func(now time.Time) string `wire:"-"`
}

func (s *LoyaltyService) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	if _, err := s.enrollment(ctx, s.LoyaltyRepo, userID); err != nil {
		return 0, err
	}
	return s.LoyaltyRepo.Balance(ctx, userID)
}

func (s *LoyaltyService) GetStatus(ctx context.Context, userID uint64) (*types.LoyaltyStatus, error) {
	enrollment, err := s.enrollment(ctx, s.LoyaltyRepo, userID)
	if err != nil {
		return nil, err
	}

	tier, err := s.LoyaltyRepo.FindTier(ctx, enrollment.TierName)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}

	balance, err := s.LoyaltyRepo.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &types.LoyaltyStatus{
		Tier:    tierInfo(tier),
		Balance: balance,
	}

	next, err := s.LoyaltyRepo.FindNextTier(ctx, tier.RequiredPoints)
	switch {
	case err == nil:
		info := tierInfo(next)
		status.NextTier = &info
	case !dao.IsNotFound(err):
		return nil, err
	}
	return status, nil
}

func (s *LoyaltyService) Enroll(ctx context.Context, userID uint64) (*types.EnrollResult, error) {
	_, err := s.LoyaltyRepo.FindEnrollment(ctx, userID)
	if err == nil {
		return nil, ErrAlreadyEnrolled
	}
	if !dao.IsNotFound(err) {
		return nil, err
	}

	base, err := s.LoyaltyRepo.FindBaseTier(ctx)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrBaseTierMissing
		}
		return nil, err
	}

	now := time.Now()
	enrollment := &models.LoyaltyEnrollment{
		UserID:     userID,
		TierName:   base.Name,
		EnrolledAt: now,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.LoyaltyRepo.Tx(tx)
		if err := repo.CreateEnrollment(ctx, enrollment); err != nil {
			if dao.IsDuplicate(err) {
				return ErrAlreadyEnrolled
			}
			return err
		}
		return repo.CreateTransaction(ctx, &models.LoyaltyTransaction{
			UserID:      userID,
			Date:        now,
			Type:        models.TxTypeEarned,
			Points:      0,
			Description: "Enrolled in loyalty program",
			Status:      models.TxStatusCompleted,
		})
	})
	if err != nil {
		return nil, err
	}

	return &types.EnrollResult{
		UserID:     userID,
		Tier:       tierInfo(base),
		EnrolledAt: enrollment.EnrolledAt,
	}, nil
}

func (s *LoyaltyService) CreateTransaction(ctx context.Context, userID uint64, txType string, points int64, description string, pending bool) (*models.LoyaltyTransaction, error) {
	if !validTxType(txType) {
		return nil, ErrInvalidTxType
	}
	if points < 0 {
		return nil, ErrInvalidPoints
	}
	if _, err := s.enrollment(ctx, s.LoyaltyRepo, userID); err != nil {
		return nil, err
	}

	status := models.TxStatusCompleted
	if pending {
		status = models.TxStatusPending
	}
	item := &models.LoyaltyTransaction{
		UserID:      userID,
		Date:        time.Now(),
		Type:        txType,
		Points:      points,
		Description: description,
		Status:      status,
	}
	if err := s.LoyaltyRepo.CreateTransaction(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *LoyaltyService) CompleteTransaction(ctx context.Context, id uint64) (*models.LoyaltyTransaction, error) {
	return s.transition(ctx, id, models.TxStatusCompleted)
}

// FailTransaction Pending 流水作废，status 只能是 Cancelled 或 Failed
func (s *LoyaltyService) FailTransaction(ctx context.Context, id uint64, status string) (*models.LoyaltyTransaction, error) {
	if status != models.TxStatusCancelled && status != models.TxStatusFailed {
		return nil, errs.New(errs.InvalidInput, "status must be Cancelled or Failed")
	}
	return s.transition(ctx, id, status)
}

func (s *LoyaltyService) transition(ctx context.Context, id uint64, status string) (*models.LoyaltyTransaction, error) {
	var item *models.LoyaltyTransaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.LoyaltyRepo.Tx(tx)
		found, err := repo.FindTransactionForUpdate(ctx, id)
		if err != nil {
			if dao.IsNotFound(err) {
				return ErrTransactionMissing
			}
			return err
		}
		if found.Status != models.TxStatusPending {
			return ErrTransactionState
		}
		if err := repo.UpdateTransactionStatus(ctx, id, status); err != nil {
			return err
		}
		found.Status = status
		item = found
		return nil
	})
	return item, err
}

func (s *LoyaltyService) ListTransactions(ctx context.Context, userID uint64, cursor uint64, limit int) (*types.CursorPage[*models.LoyaltyTransaction], error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	items, err := s.LoyaltyRepo.ListTransactions(ctx, userID, cursor, limit+1)
	if err != nil {
		return nil, err
	}
	return cursorPage(items, limit, func(t *models.LoyaltyTransaction) uint64 { return t.ID }), nil
}

func (s *LoyaltyService) Redeem(ctx context.Context, userID, rewardID uint64) (*types.RedeemResult, error) {
	reward, err := s.LoyaltyRepo.FindReward(ctx, rewardID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if !reward.IsActive {
		return nil, ErrRewardInactive
	}

	release, err := s.RedeemLock.Acquire(ctx, userID)
	if err != nil {
		if errors.Is(err, cache.ErrLockTimeout) {
			return nil, ErrRedeemBusy
		}
		return nil, fmt.Errorf("acquire redeem lock: %w", err)
	}
	defer release()

	now := time.Now()
	result := &types.RedeemResult{}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.LoyaltyRepo.Tx(tx)
		// 会员行锁保证余额检查与扣减之间没有其他扣减插入
		if _, err := repo.FindEnrollmentForUpdate(ctx, userID); err != nil {
			if dao.IsNotFound(err) {
				return ErrNotEnrolled
			}
			return err
		}

		balance, err := repo.Balance(ctx, userID)
		if err != nil {
			return err
		}
		if balance < reward.PointsRequired {
			return ErrInsufficientPoints
		}

		redeemed := &models.LoyaltyTransaction{
			UserID:      userID,
			Date:        now,
			Type:        models.TxTypeRedeemed,
			Points:      reward.PointsRequired,
			Description: "Redeemed reward: " + reward.Name,
			Status:      models.TxStatusCompleted,
		}
		if err := repo.CreateTransaction(ctx, redeemed); err != nil {
			return err
		}

		coupon := &models.Coupon{
			Code:      s.newCouponCode(now),
			Value:     reward.Value,
			Type:      reward.Type,
			ExpiresAt: now.AddDate(0, 0, reward.ValidityDays),
			IsUsed:    false,
			UserID:    &userID,
		}
		if err := s.CouponRepo.Tx(tx).Create(ctx, coupon); err != nil {
			return fmt.Errorf("issue coupon: %w", err)
		}

		result.Transaction = redeemed
		result.Coupon = coupon
		return nil
	})
	if err != nil {
		return nil, err
	}

	if user, err := s.UsersRepo.FindById(ctx, userID); err == nil {
		sendNotification(ctx, s.Notifier, &Notification{
			To:       user.Email,
			Subject:  "Your reward is ready",
			Template: TemplateRewardRedeemed,
			Data: mustJSON(map[string]any{
				"reward":     reward.Name,
				"code":       result.Coupon.Code,
				"expires_at": result.Coupon.ExpiresAt,
			}),
		})
	}
	return result, nil
}

func (s *LoyaltyService) SetTier(ctx context.Context, userID uint64, tierName string) error {
	if _, err := s.LoyaltyRepo.FindTier(ctx, tierName); err != nil {
		if dao.IsNotFound(err) {
			return ErrTierNotFound
		}
		return err
	}
	rows, err := s.LoyaltyRepo.UpdateEnrollmentTier(ctx, userID, tierName)
	if err != nil {
		return err
	}
	if rows == 0 {
		// 等级未变化时 MySQL 也返回 0，需要区分未入会
		if _, err := s.enrollment(ctx, s.LoyaltyRepo, userID); err != nil {
			return err
		}
	}
	return nil
}

func (s *LoyaltyService) UpsertTier(ctx context.Context, req *types.UpsertTierRequest) (*types.TierInfo, error) {
	if req.RequiredPoints < 0 {
		return nil, ErrInvalidPoints
	}
	if req.Multiplier.LessThan(decimal.NewFromInt(1)) {
		return nil, errs.New(errs.InvalidInput, "multiplier must be at least 1")
	}

	tier := &models.LoyaltyTier{
		Name:           req.Name,
		RequiredPoints: req.RequiredPoints,
		Multiplier:     req.Multiplier,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.LoyaltyRepo.Tx(tx)
		existing, err := repo.FindTier(ctx, req.Name)
		if err != nil && !dao.IsNotFound(err) {
			return err
		}
		if existing != nil && existing.RequiredPoints == 0 && req.RequiredPoints != 0 {
			return errs.New(errs.InvalidInput, "base tier must keep required_points 0")
		}
		if err := repo.SaveTier(ctx, tier, req.Perks); err != nil {
			if dao.IsDuplicate(err) {
				return errs.New(errs.Conflict, "another tier already uses this required_points")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	info := tierInfo(tier)
	return &info, nil
}

func (s *LoyaltyService) ListTiers(ctx context.Context) ([]*types.TierInfo, error) {
	tiers, err := s.LoyaltyRepo.ListTiers(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*types.TierInfo, 0, len(tiers))
	for _, t := range tiers {
		info := tierInfo(t)
		res = append(res, &info)
	}
	return res, nil
}

func (s *LoyaltyService) ListRewards(ctx context.Context, activeOnly bool) ([]*models.LoyaltyReward, error) {
	return s.LoyaltyRepo.ListRewards(ctx, activeOnly)
}

func (s *LoyaltyService) CreateReward(ctx context.Context, req *types.RewardRequest) (*models.LoyaltyReward, error) {
	if err := validateDiscount(req.Type, req.Value); err != nil {
		return nil, err
	}
	reward := &models.LoyaltyReward{
		Name:           req.Name,
		PointsRequired: req.PointsRequired,
		Description:    req.Description,
		ValidityDays:   req.ValidityDays,
		Type:           req.Type,
		Value:          req.Value,
		IsActive:       req.IsActive == nil || *req.IsActive,
	}
	if err := s.LoyaltyRepo.CreateReward(ctx, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *LoyaltyService) UpdateReward(ctx context.Context, id uint64, req *types.UpdateRewardRequest) (*models.LoyaltyReward, error) {
	reward, err := s.LoyaltyRepo.FindReward(ctx, id)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}

	data := make(map[string]any)
	if req.Name != nil {
		data["name"] = *req.Name
		reward.Name = *req.Name
	}
	if req.PointsRequired != nil {
		data["points_required"] = *req.PointsRequired
		reward.PointsRequired = *req.PointsRequired
	}
	if req.Description != nil {
		data["description"] = *req.Description
		reward.Description = *req.Description
	}
	if req.ValidityDays != nil {
		data["validity_days"] = *req.ValidityDays
		reward.ValidityDays = *req.ValidityDays
	}
	if req.Type != nil {
		data["type"] = *req.Type
		reward.Type = *req.Type
	}
	if req.Value != nil {
		data["value"] = *req.Value
		reward.Value = *req.Value
	}
	if req.IsActive != nil {
		data["is_active"] = *req.IsActive
		reward.IsActive = *req.IsActive
	}
	if err := validateDiscount(reward.Type, reward.Value); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return reward, nil
	}
	if _, err := s.LoyaltyRepo.UpdateReward(ctx, id, data); err != nil {
		return nil, err
	}
	return reward, nil
}

func (s *LoyaltyService) enrollment(ctx context.Context, repo *dao.Loyalty, userID uint64) (*models.LoyaltyEnrollment, error) {
	e, err := repo.FindEnrollment(ctx, userID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return e, nil
}

func (s *LoyaltyService) newCouponCode(now time.Time) string {
	if s.CouponCode != nil {
		return s.CouponCode(now)
	}
	salt := ""
	if s.Config != nil && s.Config.App != nil {
		salt = s.Config.App.CodeSalt
	}
	return utils.LoyaltyCouponCode(salt, now, snowflake.GenID())
}

// awardOrderPoints 订单签收后为会员入账，未入会返回 false
func awardOrderPoints(ctx context.Context, repo *dao.Loyalty, order *models.Order) (bool, error) {
	if order.LoyaltyPoints <= 0 {
		return false, nil
	}
	if _, err := repo.FindEnrollment(ctx, order.UserID); err != nil {
		if dao.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	orderID := order.ID
	err := repo.CreateTransaction(ctx, &models.LoyaltyTransaction{
		UserID:      order.UserID,
		Date:        time.Now(),
		Type:        models.TxTypeEarned,
		Points:      order.LoyaltyPoints,
		Description: "Order " + order.OrderSn + " delivered",
		Status:      models.TxStatusCompleted,
		OrderID:     &orderID,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func validTxType(t string) bool {
	switch t {
	case models.TxTypeEarned, models.TxTypeRedeemed, models.TxTypeCancelled, models.TxTypeExpired:
		return true
	}
	return false
}

func tierInfo(t *models.LoyaltyTier) types.TierInfo {
	perks := make([]string, 0, len(t.Perks))
	for _, p := range t.Perks {
		perks = append(perks, p.Perk)
	}
	return types.TierInfo{
		Name:           t.Name,
		RequiredPoints: t.RequiredPoints,
		Multiplier:     t.Multiplier,
		Perks:          perks,
	}
}

// cursorPage 查询时多取一条，用来判断是否还有下一页
func cursorPage[T any](items []T, limit int, id func(T) uint64) *types.CursorPage[T] {
	page := &types.CursorPage[T]{Items: items}
	if len(items) > limit {
		page.HasMore = true
		page.Items = items[:limit]
	}
	if page.Items == nil {
		page.Items = make([]T, 0)
	}
	if len(page.Items) > 0 {
		page.NextCursor = id(page.Items[len(page.Items)-1])
	}
	return page
}
