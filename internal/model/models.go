package model

import (
	"time"
)

// SchemeKind determines a scheme's default operating calendar, its required
// fields and how fees are computed.
type SchemeKind string

const (
	KindFiat   SchemeKind = "fiat"
	KindCrypto SchemeKind = "crypto"
	KindFx     SchemeKind = "fx"
)

type OperatingHours struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

type FeeStructure struct {
	FlatFee       *float64 `json:"flat_fee,omitempty"`
	PercentageFee *float64 `json:"percentage_fee,omitempty"`
	Currency      string   `json:"currency,omitempty"`
}

type AmountLimits struct {
	MinAmount *float64 `json:"min_amount,omitempty"`
	MaxAmount *float64 `json:"max_amount,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}

// Scheme describes one payment network's operational calendar, fee structure
// and amount limits. The rules engine only reads it; updates are full
// replacements done by the persistence layer.
type Scheme struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Kind            SchemeKind     `json:"kind"`
	Currency        string         `json:"currency"`
	TargetCurrency  string         `json:"target_currency,omitempty"`
	CountryScope    string         `json:"country_scope,omitempty"`
	AvailableDays   []string       `json:"available_days"`
	OperatingHours  OperatingHours `json:"operating_hours"`
	HolidayCalendar []string       `json:"holiday_calendar,omitempty"`
	CutOffTime      string         `json:"cut_off_time,omitempty"`
	SettlementTime  string         `json:"settlement_time"`
	Fees            FeeStructure   `json:"fees"`
	Spread          *float64       `json:"spread,omitempty"`
	Limits          AmountLimits   `json:"limits"`
	SupportsFx      bool           `json:"supports_fx"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Weekdays lists the canonical lowercase weekday names in calendar order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
