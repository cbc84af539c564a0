// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// RateLimitEvent records one allowed request for sliding-window counting.
// Rows are insert/count only and are pruned periodically.
type RateLimitEvent struct {
	ID        uint   `gorm:"primaryKey"`
	IP        string `gorm:"size:64;not null;index:idx_rate_limit_window,priority:1"`
	Endpoint  string `gorm:"size:50;not null;index:idx_rate_limit_window,priority:2"`
	CreatedAt time.Time `gorm:"index:idx_rate_limit_window,priority:3"`
}

func init() {
	AllModels = append(AllModels, &RateLimitEvent{})
}
