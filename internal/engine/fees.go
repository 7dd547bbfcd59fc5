package engine

import (
	"fmt"

	"github.com/anyulbade/payment-scheme-engine/internal/model"
)

// FeeBreakdown itemizes the components that make up a total fee. All values
// are in decimal currency units; the engine applies no rounding.
type FeeBreakdown struct {
	FlatFee       float64 `json:"flat_fee"`
	PercentageFee float64 `json:"percentage_fee"`
	FxSpreadFee   float64 `json:"fx_spread_fee,omitempty"`
}

// FeeQuote is the result of a fee calculation for one payment amount.
type FeeQuote struct {
	BaseAmount  float64      `json:"base_amount"`
	Breakdown   FeeBreakdown `json:"fee_breakdown"`
	TotalFee    float64      `json:"total_fee"`
	FinalAmount float64      `json:"final_amount"`
}

// CalculateFees computes the fee breakdown and final amount for a payment
// against a scheme. The FX spread component applies only when the scheme is
// an fx scheme with a configured spread and both currencies were supplied.
// Percentage fee and spread are fractions of the amount.
func CalculateFees(s model.Scheme, amount float64, sourceCurrency, targetCurrency string) (FeeQuote, error) {
	if amount <= 0 {
		return FeeQuote{}, fmt.Errorf("%w: got %v", ErrInvalidAmount, amount)
	}
	if err := CheckLimits(s, amount); err != nil {
		return FeeQuote{}, err
	}

	var breakdown FeeBreakdown
	if s.Fees.FlatFee != nil {
		breakdown.FlatFee = *s.Fees.FlatFee
	}
	if s.Fees.PercentageFee != nil {
		breakdown.PercentageFee = amount * *s.Fees.PercentageFee
	}
	if s.Kind == model.KindFx && s.Spread != nil && sourceCurrency != "" && targetCurrency != "" {
		breakdown.FxSpreadFee = amount * *s.Spread
	}

	total := breakdown.FlatFee + breakdown.PercentageFee + breakdown.FxSpreadFee

	return FeeQuote{
		BaseAmount:  amount,
		Breakdown:   breakdown,
		TotalFee:    total,
		FinalAmount: amount + total,
	}, nil
}

// CheckLimits verifies an amount against the scheme's min/max bounds. An
// unset bound is unconstrained.
func CheckLimits(s model.Scheme, amount float64) error {
	if s.Limits.MinAmount != nil && amount < *s.Limits.MinAmount {
		return fmt.Errorf("%w: %v is below the minimum of %v", ErrAmountOutOfLimits, amount, *s.Limits.MinAmount)
	}
	if s.Limits.MaxAmount != nil && amount > *s.Limits.MaxAmount {
		return fmt.Errorf("%w: %v exceeds the maximum of %v", ErrAmountOutOfLimits, amount, *s.Limits.MaxAmount)
	}
	return nil
}
