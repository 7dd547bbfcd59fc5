package dto

import (
	"time"

	"github.com/anyulbade/payment-scheme-engine/internal/engine"
)

type AvailabilityResponse struct {
	SchemeID         string     `json:"scheme_id"`
	CheckTime        time.Time  `json:"check_time"`
	IsOperational    bool       `json:"is_operational"`
	NextAvailability *time.Time `json:"next_availability,omitempty"`
	Restrictions     []string   `json:"restrictions,omitempty"`
}

type FeeQuoteResponse struct {
	SchemeID     string              `json:"scheme_id"`
	BaseAmount   float64             `json:"base_amount"`
	TotalFee     float64             `json:"total_fee"`
	FeeBreakdown engine.FeeBreakdown `json:"fee_breakdown"`
	FinalAmount  float64             `json:"final_amount"`
	Currency     string              `json:"currency,omitempty"`
}

type CompatibilityResponse struct {
	SchemeID               string   `json:"scheme_id"`
	IsCompatible           bool     `json:"is_compatible"`
	SourceCurrency         string   `json:"source_currency"`
	TargetCurrency         string   `json:"target_currency"`
	Amount                 float64  `json:"amount"`
	IncompatibilityReasons []string `json:"incompatibility_reasons,omitempty"`
}

type SchemeAvailabilityOverview struct {
	SchemeID      string   `json:"scheme_id"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	IsOperational bool     `json:"is_operational"`
	Restrictions  []string `json:"restrictions,omitempty"`
}

type ValidationErrorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
