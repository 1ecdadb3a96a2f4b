package database

import (
	"Storefront/models"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// DefaultTiers 部署时必须存在 required_points = 0 的基础等级
var DefaultTiers = []struct {
	Name           string
	RequiredPoints int64
	Multiplier     string
	Perks          []string
}{
	{"Bronze", 0, "1.00", []string{"Birthday coupon"}},
	{"Silver", 1000, "1.25", []string{"Birthday coupon", "Free standard shipping"}},
	{"Gold", 5000, "1.50", []string{"Birthday coupon", "Free express shipping", "Early access to sales"}},
}

// Seed 写入默认等级，已存在的等级保持不变
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, t := range DefaultTiers {
			var existing models.LoyaltyTier
			err := tx.Where("name = ?", t.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			tier := models.LoyaltyTier{
				Name:           t.Name,
				RequiredPoints: t.RequiredPoints,
				Multiplier:     decimal.RequireFromString(t.Multiplier),
			}
			for i, p := range t.Perks {
				tier.Perks = append(tier.Perks, models.LoyaltyTierPerk{Position: i, Perk: p})
			}
			if err := tx.Create(&tier).Error; err != nil {
				return fmt.Errorf("seed tier %s: %w", t.Name, err)
			}
		}
		return nil
	})
}
