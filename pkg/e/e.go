package e

import (
	"fmt"
	"strings"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// 404 Not Found
	ErrProductNotFound      = fmt.Errorf("product not found")
	ErrUserNotFound         = fmt.Errorf("user not found")
	ErrSpecialPriceNotFound = fmt.Errorf("special price not found")

	// 400 Bad Request
	ErrStatusBadRequest      = fmt.Errorf("bad request")
	ErrValidationFailed      = fmt.Errorf("validation failed")
	ErrSpecialPriceExists    = fmt.Errorf("special price already exists for this user and product, update it instead")
	ErrPriceNotBelowOriginal = fmt.Errorf("special price must be below the current product price")
	ErrEmailTaken            = fmt.Errorf("email is already in use")
	ErrInvalidPrice          = fmt.Errorf("invalid price")
	ErrPricePrecision        = fmt.Errorf("price must have at most 2 decimal places")
	ErrMissingFields         = fmt.Errorf("missing required fields")

	// 500 Internal Server Error
	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// ValidationError агрегирует все нарушения валидации полей одного запроса.
// Нарушения собираются целиком, без остановки на первом поле.
type ValidationError struct {
	Violations []string
}

func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(v.Violations, "; "))
}

// Is сопоставляет ValidationError с сентинелом ErrValidationFailed для errors.Is.
func (v *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
