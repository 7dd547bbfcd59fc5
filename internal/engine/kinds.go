package engine

import (
	"fmt"

	"github.com/anyulbade/payment-scheme-engine/internal/model"
)

// kindProfile carries the per-kind defaults and the kind-specific validation
// rules, so kind behavior lives in one table instead of scattered switches.
type kindProfile struct {
	availableDays  []string
	hours          model.OperatingHours
	settlementTime string
	cutOffTime     string
	spread         float64
	forceFx        bool
	validate       func(s *model.Scheme) []string
}

var weekdaysOnly = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

var kindProfiles = map[model.SchemeKind]kindProfile{
	model.KindFiat: {
		availableDays:  weekdaysOnly,
		hours:          model.OperatingHours{Start: "09:00", End: "17:00", Timezone: "UTC"},
		settlementTime: "T+1",
		cutOffTime:     "16:00",
		validate:       func(s *model.Scheme) []string { return nil },
	},
	model.KindCrypto: {
		availableDays:  model.Weekdays,
		hours:          model.OperatingHours{Start: "00:00", End: "23:59", Timezone: "UTC"},
		settlementTime: "instant",
		validate: func(s *model.Scheme) []string {
			var violations []string
			for _, day := range []string{"saturday", "sunday"} {
				if !containsDay(s.AvailableDays, day) {
					violations = append(violations,
						fmt.Sprintf("crypto scheme should be available on %s", day))
				}
			}
			return violations
		},
	},
	model.KindFx: {
		availableDays:  weekdaysOnly,
		hours:          model.OperatingHours{Start: "09:00", End: "17:00", Timezone: "UTC"},
		settlementTime: "T+2",
		spread:         0.001,
		forceFx:        true,
		validate: func(s *model.Scheme) []string {
			var violations []string
			if s.TargetCurrency == "" {
				violations = append(violations, "fx scheme requires a target currency")
			}
			if s.Spread == nil {
				violations = append(violations, "fx scheme requires a spread")
			}
			return violations
		},
	},
}

// ApplyDefaults fills every optional field the caller left empty from the
// kind's profile and returns the resolved copy. It is a pure merge; it does
// not validate the result.
func ApplyDefaults(s model.Scheme) model.Scheme {
	profile, ok := kindProfiles[s.Kind]
	if !ok {
		return s
	}

	if len(s.AvailableDays) == 0 {
		s.AvailableDays = append([]string(nil), profile.availableDays...)
	}
	if s.OperatingHours.Start == "" {
		s.OperatingHours.Start = profile.hours.Start
	}
	if s.OperatingHours.End == "" {
		s.OperatingHours.End = profile.hours.End
	}
	if s.OperatingHours.Timezone == "" {
		s.OperatingHours.Timezone = profile.hours.Timezone
	}
	if s.SettlementTime == "" {
		s.SettlementTime = profile.settlementTime
	}
	if s.CutOffTime == "" {
		s.CutOffTime = profile.cutOffTime
	}
	if s.Kind == model.KindFx && s.Spread == nil {
		spread := profile.spread
		s.Spread = &spread
	}
	if profile.forceFx {
		s.SupportsFx = true
	}
	if s.Fees.Currency == "" {
		s.Fees.Currency = s.Currency
	}
	if s.Limits.Currency == "" && (s.Limits.MinAmount != nil || s.Limits.MaxAmount != nil) {
		s.Limits.Currency = s.Currency
	}

	return s
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
