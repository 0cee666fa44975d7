package quotes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// IsISIN reports whether symbol is a valid ISIN, check digit included.
func IsISIN(symbol string) bool { return ValidateISIN(symbol) == nil }

// ValidateISIN checks if a string is a valid ISIN.
func ValidateISIN(isin string) error {
	// 1. Length validation
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}

	// 2. Format validation
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// 3. Convert letters to numbers for check digit calculation
	var numericStr strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			numericStr.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			numericStr.WriteRune(char)
		}
	}

	// 4. Apply a variation of the Luhn algorithm
	sum := 0
	isSecond := true
	digits := numericStr.String()
	for i := len(digits) - 1; i >= 0; i-- {
		digit := int(digits[i] - '0')
		if isSecond {
			digit *= 2
		}
		sum += (digit / 10) + (digit % 10)
		isSecond = !isSecond
	}

	// 5. Validate the check digit
	expectedCheckDigit := (10 - (sum % 10)) % 10
	actualCheckDigit := int(isin[11] - '0')
	if expectedCheckDigit != actualCheckDigit {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expectedCheckDigit, actualCheckDigit)
	}
	return nil
}
