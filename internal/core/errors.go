// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Indicator / strategy errors
	ErrInsufficientData = &Error{Code: "INSUFFICIENT_DATA", Message: "not enough candles for the requested period"}
	ErrUnknownStrategy  = &Error{Code: "UNKNOWN_STRATEGY", Message: "strategy is not registered"}

	// Simulation / orchestration errors
	ErrInvalidParameter = &Error{Code: "INVALID_PARAMETER", Message: "invalid parameter"}
	ErrStrategyNotFound = &Error{Code: "STRATEGY_NOT_FOUND", Message: "strategy not found in catalog"}
	ErrNoHistoricalData = &Error{Code: "NO_HISTORICAL_DATA", Message: "no historical data for the requested window"}

	// Persistence errors
	ErrNotFound          = &Error{Code: "NOT_FOUND", Message: "record not found"}
	ErrPersistenceFailed = &Error{Code: "PERSISTENCE_FAILED", Message: "persisting backtest failed"}

	// Market data errors
	ErrDataSourceFailed = &Error{Code: "DATA_SOURCE_FAILED", Message: "market data source failed"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
