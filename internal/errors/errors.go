package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound          = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists     = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation        = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation  = new(ErrCodeInvalidOperation, "invalid operation")
	ErrResourceExhausted = new(ErrCodeResourceExhausted, "resource exhausted")
	ErrDatabase          = new(ErrCodeDatabase, "database error")
	ErrSystem            = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:          http.StatusNotFound,
		ErrAlreadyExists:     http.StatusConflict,
		ErrValidation:        http.StatusBadRequest,
		ErrInvalidOperation:  http.StatusBadRequest,
		ErrResourceExhausted: http.StatusConflict,
		ErrDatabase:          http.StatusInternalServerError,
		ErrSystem:            http.StatusInternalServerError,
		ErrCouponInvalid:     http.StatusBadRequest,
		ErrCouponExpired:     http.StatusBadRequest,
		ErrCouponExhausted:   http.StatusConflict,
		ErrMinAmountNotMet:   http.StatusBadRequest,
	}
	// maps errors to the numeric codes of the response envelope;
	// 0 is reserved for success
	envelopeCodeMap = map[error]int{
		ErrValidation:        1,
		ErrNotFound:          2,
		ErrAlreadyExists:     3,
		ErrInvalidOperation:  4,
		ErrResourceExhausted: 5,
		ErrDatabase:          6,
		ErrSystem:            7,
		ErrCouponInvalid:     10,
		ErrCouponExpired:     11,
		ErrCouponExhausted:   12,
		ErrMinAmountNotMet:   13,
	}
)

const (
	ErrCodeSystemError       = "system_error"
	ErrCodeNotFound          = "not_found"
	ErrCodeAlreadyExists     = "already_exists"
	ErrCodeValidation        = "validation_error"
	ErrCodeInvalidOperation  = "invalid_operation"
	ErrCodeResourceExhausted = "resource_exhausted"
	ErrCodeDatabase          = "database_error"
)

// ErrCouponInvalid and friends mark coupon reservation failures so the pricing
// engine can classify a skipped coupon without string matching.
var (
	ErrCouponInvalid   = errors.New("coupon invalid")
	ErrCouponExpired   = errors.New("coupon expired")
	ErrCouponExhausted = errors.New("coupon exhausted")
	ErrMinAmountNotMet = errors.New("minimum order amount not met")
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsResourceExhausted checks if an error is a resource exhaustion error
func IsResourceExhausted(err error) bool {
	return errors.Is(err, ErrResourceExhausted)
}

// IsCouponInvalid checks if an error marks an invalid coupon
func IsCouponInvalid(err error) bool {
	return errors.Is(err, ErrCouponInvalid)
}

// IsCouponExpired checks if an error marks an expired coupon
func IsCouponExpired(err error) bool {
	return errors.Is(err, ErrCouponExpired)
}

// IsCouponExhausted checks if an error marks exhausted coupon stock
func IsCouponExhausted(err error) bool {
	return errors.Is(err, ErrCouponExhausted)
}

// IsMinAmountNotMet checks if an error marks an unmet coupon minimum
func IsMinAmountNotMet(err error) bool {
	return errors.Is(err, ErrMinAmountNotMet)
}

func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// EnvelopeCodeFromErr returns the non-zero numeric code carried by the uniform
// response envelope for the given error.
func EnvelopeCodeFromErr(err error) int {
	for e, code := range envelopeCodeMap {
		if errors.Is(err, e) {
			return code
		}
	}
	return envelopeCodeMap[ErrSystem]
}
