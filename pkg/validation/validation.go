package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinWorkers = 1
	MaxWorkers = 20
)

var (
	currencyCodePattern = regexp.MustCompile(`^[a-zA-Z]{3}$`)
	currencyNamePattern = regexp.MustCompile(`^[a-zA-Z ]+$`)
	currencySignPattern = regexp.MustCompile(`^[^\s_]+$`)
)

func ValidateWorkerCount(workers int) error {
	if workers < MinWorkers || workers > MaxWorkers {
		return fmt.Errorf("worker count must be between %d and %d, got %d", MinWorkers, MaxWorkers, workers)
	}
	return nil
}

// ValidateCurrencyCode checks that a code is exactly three latin letters.
func ValidateCurrencyCode(code string) error {
	if !currencyCodePattern.MatchString(strings.TrimSpace(code)) {
		return fmt.Errorf("currency code must be three latin letters, got %q", code)
	}
	return nil
}

// ValidateCurrencyName checks that a name consists of latin letters and spaces.
func ValidateCurrencyName(name string) error {
	if !currencyNamePattern.MatchString(strings.TrimSpace(name)) {
		return fmt.Errorf("currency name must consist of latin letters, got %q", name)
	}
	return nil
}

// ValidateCurrencySign checks that a sign is one or more non-blank characters.
func ValidateCurrencySign(sign string) error {
	if !currencySignPattern.MatchString(sign) {
		return fmt.Errorf("currency sign must be one or more visible characters, got %q", sign)
	}
	return nil
}

// ValidateRate checks that an exchange rate is strictly positive.
func ValidateRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("exchange rate must be strictly positive, got %g", rate)
	}
	return nil
}

// ValidateAmount checks that a conversion amount is strictly positive.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be strictly positive, got %g", amount)
	}
	return nil
}

func ValidateNonEmptyString(fieldName, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}
