package admit_booking

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/m04kA/Clinic-QueueService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SlotLabel) == "" {
		return fmt.Errorf("%w: slot label is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxFullNameLength {
		return fmt.Errorf("%w: full name must not exceed %d characters", ErrInvalidInput, domain.MaxFullNameLength)
	}

	if err := validatePhone(req.Phone); err != nil {
		return err
	}

	if req.PatientID != nil && *req.PatientID <= 0 {
		return fmt.Errorf("%w: patient id must be positive", ErrInvalidInput)
	}

	return nil
}

// validatePhone проверяет формат номера телефона
func validatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone must not exceed %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return fmt.Errorf("%w: phone contains invalid character %q", ErrInvalidInput, r)
		}
	}
	if digits < 7 {
		return fmt.Errorf("%w: phone must contain at least 7 digits", ErrInvalidInput)
	}

	return nil
}
