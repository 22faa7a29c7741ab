package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MaxClaimAmount caps a single claim's requested amount
const MaxClaimAmount = 1000000

// ValidateAmount validates a monetary claim amount
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %.2f", amount)
	}

	if amount > MaxClaimAmount {
		return fmt.Errorf("amount exceeds maximum limit: %.2f", amount)
	}

	return nil
}

// ValidateServiceDate validates a claim service date. Future-dated services
// are not claimable.
func ValidateServiceDate(serviceDate time.Time) error {
	if serviceDate.IsZero() {
		return fmt.Errorf("service date is required")
	}

	if serviceDate.After(time.Now()) {
		return fmt.Errorf("service date cannot be in the future: %s", serviceDate.Format("2006-01-02"))
	}

	return nil
}

var paymentRefRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-/]{3,63}$`)

// ValidatePaymentReference validates a settlement payment reference
func ValidatePaymentReference(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return fmt.Errorf("payment reference is required")
	}

	if !paymentRefRegex.MatchString(ref) {
		return fmt.Errorf("invalid payment reference format: %s", ref)
	}

	return nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return nil
}

// SanitizeString removes control characters from user-supplied text
func SanitizeString(s string) string {
	return regexp.MustCompile(`[\x00-\x1f\x7f]`).ReplaceAllString(s, "")
}
