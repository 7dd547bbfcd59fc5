package engine

import (
	"fmt"
	"time"

	"github.com/anyulbade/payment-scheme-engine/internal/model"
)

// Compatibility is the combined decision on whether a scheme can carry a
// specific payment instruction.
type Compatibility struct {
	Compatible bool     `json:"compatible"`
	Reasons    []string `json:"reasons,omitempty"`
}

// CheckCompatibility decides whether a scheme can carry a payment of the
// given amount between the given currencies at the given instant. All four
// checks run regardless of earlier failures so a single call surfaces every
// problem.
func CheckCompatibility(s model.Scheme, sourceCurrency, targetCurrency string, amount float64, at time.Time) Compatibility {
	var reasons []string

	if !supportsCurrency(s, sourceCurrency) {
		reasons = append(reasons, fmt.Sprintf("source currency %s is not supported by this scheme", sourceCurrency))
	}
	if !supportsCurrency(s, targetCurrency) {
		reasons = append(reasons, fmt.Sprintf("target currency %s is not supported by this scheme", targetCurrency))
	}

	if sourceCurrency != targetCurrency && !s.SupportsFx {
		reasons = append(reasons, "scheme does not support currency conversion")
	}

	if err := CheckLimits(s, amount); err != nil {
		reasons = append(reasons, err.Error())
	}

	availability := EvaluateAvailability(s, at)
	if !availability.Operational {
		reasons = append(reasons, availability.Restrictions...)
	}

	return Compatibility{
		Compatible: len(reasons) == 0,
		Reasons:    reasons,
	}
}

func supportsCurrency(s model.Scheme, currency string) bool {
	if currency == s.Currency {
		return true
	}
	return s.TargetCurrency != "" && currency == s.TargetCurrency
}
