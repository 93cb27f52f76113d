package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpecialPeriods() *SpecialPeriodConfig {
	return &SpecialPeriodConfig{
		Version:           3,
		WeekendSurcharge:  Cents(1000),
		Holidays:          []string{"01-01", "12-25"},
		HolidaySurcharge:  Cents(2000),
		PeakHours:         []int{8, 9, 10, 17},
		PeakHourSurcharge: Cents(500),
	}
}

func TestSpecialPeriodConfig_Match(t *testing.T) {
	cfg := testSpecialPeriods()

	t.Run("saturday christmas at peak hour adds all three", func(t *testing.T) {
		// 2027-12-25 is a Saturday.
		date := time.Date(2027, 12, 25, 10, 0, 0, 0, time.UTC)
		require.Equal(t, time.Saturday, date.Weekday())

		applied := cfg.Match(date)

		require.Len(t, applied, 3)
		assert.Equal(t, SpecialPeriodWeekend, applied[0].Type)
		assert.Equal(t, SpecialPeriodHoliday, applied[1].Type)
		assert.Equal(t, SpecialPeriodPeakHour, applied[2].Type)
		assert.Equal(t, "35.00", Adjustment(applied).String())
	})

	t.Run("sunday counts as weekend", func(t *testing.T) {
		date := time.Date(2026, 3, 15, 13, 0, 0, 0, time.UTC)
		applied := cfg.Match(date)

		require.Len(t, applied, 1)
		assert.Equal(t, SpecialPeriodWeekend, applied[0].Type)
	})

	t.Run("ordinary weekday off-peak adds nothing", func(t *testing.T) {
		date := time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC)
		assert.Empty(t, cfg.Match(date))
		assert.True(t, Adjustment(nil).IsZero())
	})

	t.Run("missing surcharge amounts are skipped", func(t *testing.T) {
		empty := &SpecialPeriodConfig{Holidays: []string{"12-25"}, PeakHours: []int{10}}
		assert.Empty(t, empty.Match(time.Date(2027, 12, 25, 10, 0, 0, 0, time.UTC)))
	})
}

func TestSpecialPeriodConfig_Validate(t *testing.T) {
	assert.NoError(t, testSpecialPeriods().Validate())

	badHoliday := testSpecialPeriods()
	badHoliday.Holidays = []string{"25-12"}
	assert.Error(t, badHoliday.Validate())

	badHour := testSpecialPeriods()
	badHour.PeakHours = []int{24}
	assert.Error(t, badHour.Validate())

	negative := testSpecialPeriods()
	negative.WeekendSurcharge = Cents(-1)
	assert.Error(t, negative.Validate())
}

func TestSpecialPeriodConfig_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(testSpecialPeriods())
	require.NoError(t, err)

	var decoded SpecialPeriodConfig
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, int64(3), decoded.Version)
	assert.Equal(t, "20.00", decoded.HolidaySurcharge.String())
	assert.Equal(t, []int{8, 9, 10, 17}, decoded.PeakHours)
}

func TestParseBookingDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		input    string
		wantHour int
		wantDay  int
	}{
		{input: "2026-07-04", wantHour: 0, wantDay: 4},
		{input: "2026-07-04 09:30:00", wantHour: 9, wantDay: 4},
		{input: "2026-07-04T17:00", wantHour: 17, wantDay: 4},
		{input: "2026-07-04T14:00:00Z", wantHour: 10, wantDay: 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBookingDate(tt.input, loc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, got.Hour())
			assert.Equal(t, tt.wantDay, got.Day())
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseBookingDate("next tuesday", loc)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "booking_date", ve.Field)
	})
}
