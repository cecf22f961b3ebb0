package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Contract errors - programming mistakes, not normal FAIL verdicts
	ErrContractViolation = errors.New("contract violation")
	ErrValueMissing      = fmt.Errorf("%w: candidate value is missing", ErrContractViolation)

	// Data errors
	ErrInsufficientData = errors.New("insufficient data for boundary computation")
	ErrVariableNotFound = errors.New("variable not found")
	ErrNonNumericValue  = errors.New("value is not numeric")

	// Configuration errors
	ErrConfiguration     = errors.New("invalid strategy configuration")
	ErrUnknownStrategy   = fmt.Errorf("%w: unknown strategy", ErrConfiguration)
	ErrSourceUnsupported = errors.New("unsupported data source type")
)

// Error constructors with context
func NewInsufficientDataError(method string, sampleSize, required int) error {
	return fmt.Errorf("%w: method %s needs at least %d values, got %d", ErrInsufficientData, method, required, sampleSize)
}

func NewConfigurationError(method, param string, value float64) error {
	return fmt.Errorf("%w: method %s parameter %s=%v out of range", ErrConfiguration, method, param, value)
}

func NewVariableNotFoundError(variable, source string) error {
	return fmt.Errorf("%w: %s in %s", ErrVariableNotFound, variable, source)
}

// Error checking helpers
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrContractViolation)
}

func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
