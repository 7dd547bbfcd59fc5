package engine

import (
	"fmt"
	"regexp"
	"time"

	"github.com/anyulbade/payment-scheme-engine/internal/model"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateConfig checks a fully-resolved scheme configuration for internal
// consistency and returns the list of violations found, empty when the
// configuration is valid. It never rejects on its own; the caller decides
// whether violations are fatal.
func ValidateConfig(s model.Scheme) []string {
	var violations []string

	if s.Name == "" {
		violations = append(violations, "name must not be empty")
	}
	if len(s.Name) > 255 {
		violations = append(violations, "name must not exceed 255 characters")
	}

	profile, ok := kindProfiles[s.Kind]
	if !ok {
		violations = append(violations, fmt.Sprintf("unknown scheme kind '%s'", s.Kind))
	} else {
		violations = append(violations, profile.validate(&s)...)
	}

	violations = append(violations, validateCurrencyCode("currency", s.Currency, true)...)
	violations = append(violations, validateCurrencyCode("target_currency", s.TargetCurrency, false)...)
	violations = append(violations, validateCurrencyCode("fees.currency", s.Fees.Currency, false)...)
	violations = append(violations, validateCurrencyCode("limits.currency", s.Limits.Currency, false)...)

	if len(s.AvailableDays) == 0 {
		violations = append(violations, "available_days must not be empty")
	}
	for _, day := range s.AvailableDays {
		if !containsDay(model.Weekdays, day) {
			violations = append(violations, fmt.Sprintf("'%s' is not a valid weekday name", day))
		}
	}

	start, startOK := parseClock(s.OperatingHours.Start)
	if !startOK {
		violations = append(violations, fmt.Sprintf("operating hours start '%s' is not a valid HH:MM time", s.OperatingHours.Start))
	}
	end, endOK := parseClock(s.OperatingHours.End)
	if !endOK {
		violations = append(violations, fmt.Sprintf("operating hours end '%s' is not a valid HH:MM time", s.OperatingHours.End))
	}
	// Overnight windows are not expressible; start must precede end within
	// the same day.
	if startOK && endOK && start >= end {
		violations = append(violations, "operating hours start must be before end")
	}
	if s.OperatingHours.Timezone != "" {
		if _, err := time.LoadLocation(s.OperatingHours.Timezone); err != nil {
			violations = append(violations, fmt.Sprintf("'%s' is not a valid IANA timezone", s.OperatingHours.Timezone))
		}
	}
	if s.CutOffTime != "" {
		if _, ok := parseClock(s.CutOffTime); !ok {
			violations = append(violations, fmt.Sprintf("cut-off time '%s' is not a valid HH:MM time", s.CutOffTime))
		}
	}

	for _, date := range s.HolidayCalendar {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			violations = append(violations, fmt.Sprintf("holiday '%s' is not a valid ISO date", date))
		}
	}

	if s.Fees.FlatFee != nil && *s.Fees.FlatFee < 0 {
		violations = append(violations, "flat fee must not be negative")
	}
	if s.Fees.PercentageFee != nil && (*s.Fees.PercentageFee < 0 || *s.Fees.PercentageFee > 1) {
		violations = append(violations, "percentage fee must be a fraction between 0 and 1")
	}
	if s.Spread != nil && (*s.Spread < 0 || *s.Spread > 1) {
		violations = append(violations, "spread must be a fraction between 0 and 1")
	}

	if s.Limits.MinAmount != nil && *s.Limits.MinAmount < 0 {
		violations = append(violations, "minimum amount must not be negative")
	}
	if s.Limits.MinAmount != nil && s.Limits.MaxAmount != nil && *s.Limits.MinAmount >= *s.Limits.MaxAmount {
		violations = append(violations, "minimum amount must be less than maximum amount")
	}

	if s.Kind == model.KindFx && !s.SupportsFx {
		violations = append(violations, "fx scheme must support currency conversion")
	}

	return violations
}

func validateCurrencyCode(field, code string, required bool) []string {
	if code == "" {
		if required {
			return []string{fmt.Sprintf("%s must not be empty", field)}
		}
		return nil
	}
	if !currencyCodePattern.MatchString(code) {
		return []string{fmt.Sprintf("%s '%s' must be a 3-letter uppercase currency code", field, code)}
	}
	return nil
}

// parseClock converts an HH:MM string to minutes since midnight.
func parseClock(clock string) (int, bool) {
	var hour, minute int
	if _, err := fmt.Sscanf(clock, "%2d:%2d", &hour, &minute); err != nil {
		return 0, false
	}
	if len(clock) != 5 || clock[2] != ':' {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
