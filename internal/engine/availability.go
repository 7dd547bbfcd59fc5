package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/anyulbade/payment-scheme-engine/internal/model"
)

// Availability is the outcome of an operational-status check at one instant.
type Availability struct {
	Operational  bool     `json:"operational"`
	Restrictions []string `json:"restrictions,omitempty"`
}

// nextAvailabilityHorizon bounds the forward scan for the next open window.
const nextAvailabilityHorizon = 14

// EvaluateAvailability determines whether a scheme is operational at the
// given instant. The instant is converted into the scheme's configured
// timezone before weekday, date and hour are extracted, so a scheme declared
// for Europe/London hours is judged against London wall-clock time wherever
// the caller runs.
//
// Crypto schemes bypass the hour-of-day gate only; a crypto scheme with a
// restrictive weekday or holiday list is still closed on those days.
func EvaluateAvailability(s model.Scheme, at time.Time) Availability {
	local := at.In(schemeLocation(s))

	var restrictions []string

	weekday := strings.ToLower(local.Weekday().String())
	if !containsDay(s.AvailableDays, weekday) {
		restrictions = append(restrictions, fmt.Sprintf("not operational on %s", weekday))
	}

	date := local.Format("2006-01-02")
	for _, holiday := range s.HolidayCalendar {
		if holiday == date {
			restrictions = append(restrictions, "holiday calendar restriction")
			break
		}
	}

	if s.Kind != model.KindCrypto {
		minutes := local.Hour()*60 + local.Minute()
		start, startOK := parseClock(s.OperatingHours.Start)
		end, endOK := parseClock(s.OperatingHours.End)
		// Boundary minutes are inclusive on both ends.
		if startOK && endOK && (minutes < start || minutes > end) {
			restrictions = append(restrictions, "outside operating hours")
		}
	}

	return Availability{
		Operational:  len(restrictions) == 0,
		Restrictions: restrictions,
	}
}

// NextAvailability returns the earliest instant at or after from when the
// scheme is operational, or nil if no open window exists within the scan
// horizon. The result is expressed in the scheme's timezone.
func NextAvailability(s model.Scheme, from time.Time) *time.Time {
	if EvaluateAvailability(s, from).Operational {
		local := from.In(schemeLocation(s))
		return &local
	}

	loc := schemeLocation(s)
	local := from.In(loc)

	start, ok := parseClock(s.OperatingHours.Start)
	if !ok {
		return nil
	}
	if s.Kind == model.KindCrypto {
		start = 0
	}

	for offset := 0; offset <= nextAvailabilityHorizon; offset++ {
		day := local.AddDate(0, 0, offset)
		opening := time.Date(day.Year(), day.Month(), day.Day(), start/60, start%60, 0, 0, loc)
		if !opening.After(local) {
			continue
		}
		if EvaluateAvailability(s, opening).Operational {
			return &opening
		}
	}

	return nil
}

func schemeLocation(s model.Scheme) *time.Location {
	loc, err := time.LoadLocation(s.OperatingHours.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
