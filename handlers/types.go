// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model SignupRequest
type SignupRequest struct {
	// User's full name
	// required: true
	FullName string `json:"full_name" example:"Ada Lovelace"`
	// User's email address
	// required: true
	Email string `json:"email" example:"ada@example.com"`
	// Optional brand or company name
	BrandName string `json:"brand_name" example:"Analytical Engines"`
	// Referral code of the user who referred this signup
	Ref string `json:"ref" example:"ref_a1b2c3d4e5f67890"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model ExchangeTokenRequest
type ExchangeTokenRequest struct {
	// One-time magic link token
	// required: true
	Token string `json:"token" example:"ml_a1b2c3d4e5f6789"`
}

// swagger:model AuthResponse
type AuthResponse struct {
	// Session token for subsequent authenticated requests.
	// Should be used in the Authorization header as a Bearer token.
	SessionToken string `json:"session_token" example:"sample_session_token"`
	// Message indicating successful operation
	Message string `json:"message" example:"Operation successful"`
}

// swagger:model ProfileDetails
type ProfileDetails struct {
	// Full name of the signup
	Name string `json:"name" example:"Ada Lovelace"`
	// Brand name, if any
	Brand *string `json:"brand" example:"Analytical Engines"`
	// This signup's referral code
	Code string `json:"code" example:"ref_a1b2c3d4e5f67890"`
	// Number of signups referred so far
	Referrals uint `json:"referrals" example:"3"`
	// When the signup joined the waitlist
	Joined string `json:"joined" example:"2025-10-01T12:00:00Z"`
	// Ready-to-share signup link carrying the referral code
	ShareLink string `json:"shareLink" example:"https://waitline.app/?ref=ref_a1b2c3d4e5f67890"`
}

// swagger:model ReferralDetails
type ReferralDetails struct {
	// Full name of the referred signup
	Name string `json:"name" example:"Grace Hopper"`
	// Brand name of the referred signup, if any
	Brand *string `json:"brand" example:"Compilers Inc"`
	// Email of the referred signup
	Email string `json:"email" example:"grace@example.com"`
	// When the referred signup joined
	Joined string `json:"joined" example:"2025-10-02T09:30:00Z"`
}

// swagger:model DashboardResponse
type DashboardResponse struct {
	// Whether the dashboard was resolved
	Success bool `json:"success" example:"true"`
	// Profile summary of the authenticated signup
	Profile ProfileDetails `json:"profile"`
	// Up to 50 most recent signups referred by this profile
	RecentReferrals []ReferralDetails `json:"recentReferrals"`
}

// swagger:model LeaderboardEntry
type LeaderboardEntry struct {
	// Full name of the signup
	FullName string `json:"full_name" example:"Ada Lovelace"`
	// Referral code of the signup
	ReferralCode string `json:"referral_code" example:"ref_a1b2c3d4e5f67890"`
	// Number of referred signups
	ReferralCount uint `json:"referral_count" example:"42"`
	// 1-based leaderboard position
	Rank int `json:"rank" example:"1"`
}

// swagger:model StatsResponse
type StatsResponse struct {
	// Total number of waitlist signups
	Signups int64 `json:"signups" example:"1500"`
}
