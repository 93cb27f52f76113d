package domain

import (
	"fmt"
	"regexp"
	"time"
)

// SpecialPeriodType names a calendar condition that adds a surcharge.
type SpecialPeriodType string

const (
	SpecialPeriodWeekend  SpecialPeriodType = "weekend"
	SpecialPeriodHoliday  SpecialPeriodType = "holiday"
	SpecialPeriodPeakHour SpecialPeriodType = "peak_hour"
)

var monthDayPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

// SpecialPeriodConfig is a versioned snapshot of the surcharge calendar.
type SpecialPeriodConfig struct {
	Version           int64    `json:"version"`
	WeekendSurcharge  *Money   `json:"weekend_surcharge"`
	Holidays          []string `json:"holidays"`
	HolidaySurcharge  *Money   `json:"holiday_surcharge"`
	PeakHours         []int    `json:"peak_hours"`
	PeakHourSurcharge *Money   `json:"peak_hour_surcharge"`
}

// Validate checks holiday formats, hour ranges and surcharge signs.
func (c *SpecialPeriodConfig) Validate() error {
	for _, day := range c.Holidays {
		if !monthDayPattern.MatchString(day) {
			return fmt.Errorf("holiday %q must be formatted MM-DD", day)
		}
	}
	for _, h := range c.PeakHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("peak hour %d out of range", h)
		}
	}
	for name, m := range map[string]*Money{
		"weekend_surcharge":   c.WeekendSurcharge,
		"holiday_surcharge":   c.HolidaySurcharge,
		"peak_hour_surcharge": c.PeakHourSurcharge,
	} {
		if m != nil && m.IsNegative() {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	return nil
}

// AppliedSpecialPeriod is one surcharge that matched a booking date.
type AppliedSpecialPeriod struct {
	Type      SpecialPeriodType `json:"type"`
	Surcharge *Money            `json:"surcharge"`
}

// Match returns every surcharge that applies at t. Conditions are additive.
func (c *SpecialPeriodConfig) Match(t time.Time) []AppliedSpecialPeriod {
	var applied []AppliedSpecialPeriod

	if wd := t.Weekday(); (wd == time.Saturday || wd == time.Sunday) && c.WeekendSurcharge != nil {
		applied = append(applied, AppliedSpecialPeriod{Type: SpecialPeriodWeekend, Surcharge: c.WeekendSurcharge.Round2()})
	}

	monthDay := t.Format("01-02")
	for _, day := range c.Holidays {
		if day == monthDay && c.HolidaySurcharge != nil {
			applied = append(applied, AppliedSpecialPeriod{Type: SpecialPeriodHoliday, Surcharge: c.HolidaySurcharge.Round2()})
			break
		}
	}

	for _, h := range c.PeakHours {
		if h == t.Hour() && c.PeakHourSurcharge != nil {
			applied = append(applied, AppliedSpecialPeriod{Type: SpecialPeriodPeakHour, Surcharge: c.PeakHourSurcharge.Round2()})
			break
		}
	}

	return applied
}

// Adjustment sums the surcharges of the applied periods.
func Adjustment(applied []AppliedSpecialPeriod) *Money {
	total := Zero()
	for _, p := range applied {
		total = total.Add(p.Surcharge)
	}
	return total.Round2()
}

var bookingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseBookingDate accepts an ISO date or datetime. Values without an offset are read in loc.
func ParseBookingDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range bookingDateLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t.In(loc), nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewValidationError("booking_date", fmt.Sprintf("unparseable date %q", s))
}
