package get_availability

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
