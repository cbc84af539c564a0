// SPDX-License-Identifier: GPL-3.0-only

package ratelimit

import (
	"testing"
	"time"
	"waitline-server/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(&models.RateLimitEvent{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn
}

func TestAllowUnderThreshold(t *testing.T) {
	limiter := &Limiter{DB: setupTestDB(t), Window: 2 * time.Minute, Threshold: 5}

	for i := 0; i < 5; i++ {
		if !limiter.Allow("203.0.113.7", "signup") {
			t.Fatalf("request %d should have been allowed", i+1)
		}
	}
}

func TestDenyAtThreshold(t *testing.T) {
	limiter := &Limiter{DB: setupTestDB(t), Window: 2 * time.Minute, Threshold: 5}

	for i := 0; i < 5; i++ {
		limiter.Allow("203.0.113.7", "signup")
	}
	if limiter.Allow("203.0.113.7", "signup") {
		t.Error("6th request within the window should have been denied")
	}

	// a different IP is counted separately
	if !limiter.Allow("203.0.113.8", "signup") {
		t.Error("different IP should not share the window")
	}

	// a different endpoint is counted separately
	if !limiter.Allow("203.0.113.7", "leaderboard") {
		t.Error("different endpoint should not share the window")
	}
}

func TestDenyDoesNotRecord(t *testing.T) {
	conn := setupTestDB(t)
	limiter := &Limiter{DB: conn, Window: 2 * time.Minute, Threshold: 2}

	limiter.Allow("203.0.113.7", "signup")
	limiter.Allow("203.0.113.7", "signup")
	limiter.Allow("203.0.113.7", "signup")
	limiter.Allow("203.0.113.7", "signup")

	var count int64
	conn.Model(&models.RateLimitEvent{}).Count(&count)
	if count != 2 {
		t.Errorf("denied requests must not be recorded, want 2 events, got %d", count)
	}
}

func TestWindowElapses(t *testing.T) {
	conn := setupTestDB(t)
	limiter := &Limiter{DB: conn, Window: 2 * time.Minute, Threshold: 2}

	limiter.Allow("203.0.113.7", "signup")
	limiter.Allow("203.0.113.7", "signup")
	if limiter.Allow("203.0.113.7", "signup") {
		t.Fatal("request at threshold should have been denied")
	}

	// age the recorded events out of the window
	backdated := time.Now().Add(-3 * time.Minute)
	if err := conn.Model(&models.RateLimitEvent{}).
		Where("ip = ?", "203.0.113.7").
		Update("created_at", backdated).Error; err != nil {
		t.Fatalf("failed to backdate events: %v", err)
	}

	if !limiter.Allow("203.0.113.7", "signup") {
		t.Error("request after the window elapsed should have been allowed")
	}
}

func TestFailOpenOnStoreFailure(t *testing.T) {
	conn := setupTestDB(t)
	limiter := &Limiter{DB: conn, Window: 2 * time.Minute, Threshold: 2}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get underlying connection: %v", err)
	}
	sqlDB.Close()

	if !limiter.Allow("203.0.113.7", "signup") {
		t.Error("a counting-store failure must not block the caller")
	}
}

func TestPrune(t *testing.T) {
	conn := setupTestDB(t)
	limiter := &Limiter{DB: conn, Window: 2 * time.Minute, Threshold: 5}

	limiter.Allow("203.0.113.7", "signup")
	limiter.Allow("203.0.113.9", "signup")

	backdated := time.Now().Add(-1 * time.Hour)
	if err := conn.Model(&models.RateLimitEvent{}).
		Where("ip = ?", "203.0.113.9").
		Update("created_at", backdated).Error; err != nil {
		t.Fatalf("failed to backdate events: %v", err)
	}

	if err := limiter.Prune(30 * time.Minute); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	var count int64
	conn.Model(&models.RateLimitEvent{}).Count(&count)
	if count != 1 {
		t.Errorf("expected only the recent event to survive pruning, got %d", count)
	}
}
