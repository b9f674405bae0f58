package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Engine error taxonomy. Hard failures abort the business transaction before
// any persistence; the soft failure is ErrMissingAccountMapping.

// ErrInvalidCurrency indicates a currency code that is unknown or inactive.
var ErrInvalidCurrency = errors.New("invalid currency")

// ErrInvalidRate indicates an exchange rate observation that is zero or negative.
var ErrInvalidRate = errors.New("exchange rate must be positive")

// ErrRateNotFound indicates that no observation exists for a currency pair in
// either direction. A default rate of 1 is never substituted.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrExcessiveReturnQuantity indicates a return exceeding the originating
// transaction's quantity for a line. The whole return is rejected.
var ErrExcessiveReturnQuantity = errors.New("returned quantity exceeds original quantity")

// ErrUnbalancedJournal indicates a constructed journal entry whose debits and
// credits do not balance. It signals a programming defect; the entry is
// discarded and must never be persisted.
var ErrUnbalancedJournal = errors.New("journal entry debits and credits do not balance")

// ErrMissingAccountMapping is the sentinel matched by MissingAccountMappingError
// via errors.Is. Soft failure: the business transaction still commits, only the
// journal posting is deferred until the mapping is configured.
var ErrMissingAccountMapping = errors.New("account mapping missing")

// MissingAccountMappingError reports which semantic account role could not be
// resolved to a concrete ledger account.
type MissingAccountMappingError struct {
	Role           string
	OrganizationID string
}

func (e *MissingAccountMappingError) Error() string {
	return fmt.Sprintf("no account mapped for role %s in organization %s", e.Role, e.OrganizationID)
}

func (e *MissingAccountMappingError) Is(target error) bool {
	return target == ErrMissingAccountMapping
}

// AppError wraps lower-level failures with a status code and a human-readable
// message. Used mainly at the repository boundary.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches apperrors.ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches apperrors.ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
