// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
	"waitline-server/apperrors"
)

const (
	maxFullNameLength  = 50
	maxEmailLength     = 200
	maxBrandNameLength = 70
)

// shape check only
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateSignupRequest trims and normalizes the request in place, then
// checks required fields, lengths, and the email shape, in that order.
func validateSignupRequest(req *SignupRequest) *apperrors.Error {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.BrandName = strings.TrimSpace(req.BrandName)
	req.Ref = strings.TrimSpace(req.Ref)

	if req.FullName == "" {
		return apperrors.New(apperrors.ValidationFailed, "full_name field is required")
	}
	if req.Email == "" {
		return apperrors.New(apperrors.ValidationFailed, "email field is required")
	}
	if utf8.RuneCountInString(req.FullName) > maxFullNameLength {
		return apperrors.New(apperrors.ValidationFailed,
			fmt.Sprintf("full_name must be at most %d characters", maxFullNameLength))
	}
	if utf8.RuneCountInString(req.Email) > maxEmailLength {
		return apperrors.New(apperrors.ValidationFailed,
			fmt.Sprintf("email must be at most %d characters", maxEmailLength))
	}
	if req.BrandName != "" && utf8.RuneCountInString(req.BrandName) > maxBrandNameLength {
		return apperrors.New(apperrors.ValidationFailed,
			fmt.Sprintf("brand_name must be at most %d characters", maxBrandNameLength))
	}
	if !emailPattern.MatchString(req.Email) {
		return apperrors.New(apperrors.InvalidEmail, "")
	}
	return nil
}
