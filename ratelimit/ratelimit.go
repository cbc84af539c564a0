// SPDX-License-Identifier: GPL-3.0-only

// Package ratelimit implements a per-IP, per-endpoint sliding-window
// limiter backed by the database. The window is the trailing Window
// duration ending now, not a calendar bucket.
package ratelimit

import (
	"strconv"
	"time"
	"waitline-server/commons"
	"waitline-server/models"

	"gorm.io/gorm"
)

const (
	DefaultWindow    = 120 * time.Second
	DefaultThreshold = 5
)

type Limiter struct {
	DB        *gorm.DB
	Window    time.Duration
	Threshold int64
}

func NewLimiter(db *gorm.DB) *Limiter {
	window := DefaultWindow
	if v := commons.GetEnv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			window = time.Duration(secs) * time.Second
		}
	}
	threshold := int64(DefaultThreshold)
	if v := commons.GetEnv("RATE_LIMIT_THRESHOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			threshold = n
		}
	}
	return &Limiter{DB: db, Window: window, Threshold: threshold}
}

// Allow counts events for (ip, endpoint) inside the trailing window. At or
// above the threshold the request is denied without recording; otherwise a
// new event is recorded and the request passes. Store failures fail open:
// limiting is best-effort and must never take the endpoint down with it.
func (l *Limiter) Allow(ip, endpoint string) bool {
	cutoff := time.Now().Add(-l.Window)

	var count int64
	err := l.DB.Model(&models.RateLimitEvent{}).
		Where("ip = ? AND endpoint = ? AND created_at > ?", ip, endpoint, cutoff).
		Count(&count).Error
	if err != nil {
		commons.Logger.Errorf("Rate limit count failed, allowing request: %v", err)
		return true
	}

	if count >= l.Threshold {
		commons.Logger.Warnf("Rate limit exceeded for %s on %s", ip, endpoint)
		return false
	}

	event := models.RateLimitEvent{IP: ip, Endpoint: endpoint}
	if err := l.DB.Create(&event).Error; err != nil {
		commons.Logger.Errorf("Rate limit record failed, allowing request: %v", err)
	}
	return true
}

// Prune drops events older than the cutoff. Old rows only ever sit outside
// every window, so deleting them never changes a limiting decision.
func (l *Limiter) Prune(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	res := l.DB.Where("created_at < ?", cutoff).Delete(&models.RateLimitEvent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		commons.Logger.Debugf("Pruned %d rate limit events", res.RowsAffected)
	}
	return nil
}

// StartPruning runs Prune on the given interval until the process exits.
func (l *Limiter) StartPruning(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if err := l.Prune(l.Window); err != nil {
				commons.Logger.Errorf("Rate limit pruning failed: %v", err)
			}
		}
	}()
}
