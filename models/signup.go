// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"

	"waitline-server/crypto"
)

var AllModels []any

// Signup is a single waitlist entry. ReferralCode is generated once at
// creation and never changes; ReferralCount is only ever incremented.
type Signup struct {
	ID            uint    `gorm:"primaryKey"`
	FullName      string  `gorm:"size:100;not null"`
	Email         string  `gorm:"size:255;not null;uniqueIndex"`
	BrandName     *string `gorm:"size:100;default:null"`
	ReferralCode  string  `gorm:"size:64;not null;uniqueIndex"`
	ReferredBy    *string `gorm:"size:64;default:null;index"`
	ReferralCount uint    `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (signup *Signup) BeforeCreate(tx *gorm.DB) (err error) {
	if signup.ReferralCode == "" {
		signup.ReferralCode, err = crypto.GenerateRandomString("ref_", 8, "hex")
	}
	return
}

func init() {
	AllModels = append(AllModels, &Signup{})
}
