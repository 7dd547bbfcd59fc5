package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidAmount is returned for non-positive payment amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrAmountOutOfLimits is returned when an amount falls outside the
	// scheme's configured min/max bounds.
	ErrAmountOutOfLimits = errors.New("amount outside scheme limits")
)

// ConfigurationError carries the violation list produced by ValidateConfig
// when a caller chooses to treat violations as fatal.
type ConfigurationError struct {
	Violations []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid scheme configuration: %s", strings.Join(e.Violations, "; "))
}
