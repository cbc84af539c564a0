// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"
	"waitline-server/crypto"
	"waitline-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			// Rows imported before referral codes existed have an empty
			// referral_code; give them one.
			ID: "001_backfill_referral_codes",
			Migrate: func(tx *gorm.DB) error {
				var signups []models.Signup
				if err := tx.Where("referral_code = ? OR referral_code IS NULL", "").
					Find(&signups).Error; err != nil {
					return fmt.Errorf("failed to fetch signups: %w", err)
				}

				for i := range signups {
					code, err := crypto.GenerateRandomString("ref_", 8, "hex")
					if err != nil {
						return fmt.Errorf("failed to generate referral code: %w", err)
					}
					if err := tx.Model(&signups[i]).
						Update("referral_code", code).Error; err != nil {
						return fmt.Errorf("update signup %d: %w", signups[i].ID, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			ID: "002_seed_signup_stats",
			Migrate: func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(&models.Stats{}).
					Where("type = ?", models.StatsTypeSignup).
					Count(&count).Error; err != nil {
					return fmt.Errorf("failed to count existing stats: %w", err)
				}
				if count > 0 {
					return nil
				}

				var signups []models.Signup
				if err := tx.Select("created_at").Find(&signups).Error; err != nil {
					return fmt.Errorf("failed to fetch signups for stats: %w", err)
				}

				for _, signup := range signups {
					stat := models.Stats{
						Type:      models.StatsTypeSignup,
						CreatedAt: signup.CreatedAt,
					}
					if err := tx.Create(&stat).Error; err != nil {
						return fmt.Errorf("failed to create stat: %w", err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
