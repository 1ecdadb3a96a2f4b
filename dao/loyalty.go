package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Loyalty 积分等级、会员、流水、奖励的读写
type Loyalty struct {
	Db *gorm.DB
}

func NewLoyalty(db *gorm.DB) *Loyalty {
	return &Loyalty{Db: db}
}

func (l *Loyalty) Tx(tx *gorm.DB) *Loyalty {
	return NewLoyalty(tx)
}

func (l *Loyalty) FindEnrollment(ctx context.Context, userID uint64) (*models.LoyaltyEnrollment, error) {
	var e models.LoyaltyEnrollment
	if err := l.Db.WithContext(ctx).Where("user_id = ?", userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindEnrollmentForUpdate 锁住会员行，串行化同一用户的扣减
func (l *Loyalty) FindEnrollmentForUpdate(ctx context.Context, userID uint64) (*models.LoyaltyEnrollment, error) {
	var e models.LoyaltyEnrollment
	err := l.Db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("user_id = ?", userID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (l *Loyalty) CreateEnrollment(ctx context.Context, e *models.LoyaltyEnrollment) error {
	return l.Db.WithContext(ctx).Create(e).Error
}

func (l *Loyalty) UpdateEnrollmentTier(ctx context.Context, userID uint64, tierName string) (int64, error) {
	res := l.Db.WithContext(ctx).Model(&models.LoyaltyEnrollment{}).
		Where("user_id = ?", userID).
		Update("tier_name", tierName)
	return res.RowsAffected, res.Error
}

// Balance 按流水类型折叠：Earned 加，Redeemed/Cancelled/Expired 减
func (l *Loyalty) Balance(ctx context.Context, userID uint64) (int64, error) {
	var res struct {
		Balance int64
	}
	err := l.Db.WithContext(ctx).Model(&models.LoyaltyTransaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN points ELSE -points END), 0) AS balance", models.TxTypeEarned).
		Where("user_id = ?", userID).
		Scan(&res).Error
	return res.Balance, err
}

func (l *Loyalty) CreateTransaction(ctx context.Context, t *models.LoyaltyTransaction) error {
	return l.Db.WithContext(ctx).Create(t).Error
}

func (l *Loyalty) FindTransactionForUpdate(ctx context.Context, id uint64) (*models.LoyaltyTransaction, error) {
	var t models.LoyaltyTransaction
	err := l.Db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (l *Loyalty) UpdateTransactionStatus(ctx context.Context, id uint64, status string) error {
	return l.Db.WithContext(ctx).Model(&models.LoyaltyTransaction{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListTransactions 按 ID 倒序游标分页
func (l *Loyalty) ListTransactions(ctx context.Context, userID uint64, cursor uint64, limit int) ([]*models.LoyaltyTransaction, error) {
	var items []*models.LoyaltyTransaction
	query := l.Db.WithContext(ctx).Where("user_id = ?", userID)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (l *Loyalty) FindTier(ctx context.Context, name string) (*models.LoyaltyTier, error) {
	var tier models.LoyaltyTier
	err := l.Db.WithContext(ctx).
		Preload("Perks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("name = ?", name).
		First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

// FindBaseTier required_points = 0 的基础等级
func (l *Loyalty) FindBaseTier(ctx context.Context) (*models.LoyaltyTier, error) {
	var tier models.LoyaltyTier
	err := l.Db.WithContext(ctx).
		Preload("Perks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("required_points = ?", 0).
		First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

// FindNextTier 门槛严格高于 requiredPoints 的第一个等级
func (l *Loyalty) FindNextTier(ctx context.Context, requiredPoints int64) (*models.LoyaltyTier, error) {
	var tier models.LoyaltyTier
	err := l.Db.WithContext(ctx).
		Preload("Perks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("required_points > ?", requiredPoints).
		Order("required_points ASC").
		First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (l *Loyalty) ListTiers(ctx context.Context) ([]*models.LoyaltyTier, error) {
	var tiers []*models.LoyaltyTier
	err := l.Db.WithContext(ctx).
		Preload("Perks", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("required_points ASC").
		Find(&tiers).Error
	return tiers, err
}

// SaveTier 写入等级并整体替换权益列表
func (l *Loyalty) SaveTier(ctx context.Context, tier *models.LoyaltyTier, perks []string) error {
	db := l.Db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.LoyaltyTier{}).Where("name = ?", tier.Name).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Omit("Perks").Create(tier).Error; err != nil {
			return err
		}
	} else {
		err := db.Model(&models.LoyaltyTier{}).Where("name = ?", tier.Name).Updates(map[string]any{
			"required_points": tier.RequiredPoints,
			"multiplier":      tier.Multiplier,
		}).Error
		if err != nil {
			return err
		}
	}

	if err := db.Where("tier_name = ?", tier.Name).Delete(&models.LoyaltyTierPerk{}).Error; err != nil {
		return err
	}
	tier.Perks = make([]models.LoyaltyTierPerk, 0, len(perks))
	for i, p := range perks {
		tier.Perks = append(tier.Perks, models.LoyaltyTierPerk{TierName: tier.Name, Position: i, Perk: p})
	}
	if len(tier.Perks) == 0 {
		return nil
	}
	return db.Create(&tier.Perks).Error
}

func (l *Loyalty) FindReward(ctx context.Context, id uint64) (*models.LoyaltyReward, error) {
	var r models.LoyaltyReward
	if err := l.Db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (l *Loyalty) ListRewards(ctx context.Context, activeOnly bool) ([]*models.LoyaltyReward, error) {
	var items []*models.LoyaltyReward
	query := l.Db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("points_required ASC").Find(&items).Error
	return items, err
}

func (l *Loyalty) CreateReward(ctx context.Context, r *models.LoyaltyReward) error {
	return l.Db.WithContext(ctx).Create(r).Error
}

func (l *Loyalty) UpdateReward(ctx context.Context, id uint64, data map[string]any) (int64, error) {
	res := l.Db.WithContext(ctx).Model(&models.LoyaltyReward{}).Where("id = ?", id).Updates(data)
	return res.RowsAffected, res.Error
}
