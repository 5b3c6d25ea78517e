package weather

import (
	"testing"
	"time"

	"kisan-ai/internal/models"

	"github.com/stretchr/testify/assert"
)

func sampleAt(t time.Time, temp float64) models.ForecastSample {
	return models.ForecastSample{
		TimestampMs:  t.UnixMilli(),
		TemperatureC: temp,
		Condition:    "Clear",
		Icon:         "01d",
	}
}

// Builds a 5-day, 3-hour-resolution series starting the day after now,
// like the upstream forecast endpoint returns.
func threeHourSeries(now time.Time, days int) []models.ForecastSample {
	var samples []models.ForecastSample
	start := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	for d := 0; d < days; d++ {
		for h := 0; h < 24; h += 3 {
			ts := start.Add(time.Duration(d)*24*time.Hour + time.Duration(h)*time.Hour)
			samples = append(samples, sampleAt(ts, 20+float64(d)))
		}
	}
	return samples
}

func TestSelectForecastDaysPicksNoonSamples(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)
	samples := threeHourSeries(now, 5)

	days := SelectForecastDays(samples, now)

	assert.Len(t, days, 5)
	for i, day := range days {
		ts := time.UnixMilli(day.Date).UTC()
		assert.Equal(t, 12, ts.Hour(), "day %d should be the noon sample", i)
		assert.Equal(t, 20+i, day.Temp)
	}
}

func TestSelectForecastDaysExcludesToday(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)

	// Today's noon plus two future days.
	samples := []models.ForecastSample{
		sampleAt(time.Date(2024, 7, 30, 12, 0, 0, 0, time.UTC), 30),
		sampleAt(time.Date(2024, 7, 31, 12, 0, 0, 0, time.UTC), 25),
		sampleAt(time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC), 26),
	}

	days := SelectForecastDays(samples, now)

	assert.Len(t, days, 2)
	for _, day := range days {
		ts := time.UnixMilli(day.Date).UTC()
		assert.False(t, ts.Year() == 2024 && ts.Month() == 7 && ts.Day() == 30,
			"today must not appear as a forecast day")
	}
}

func TestSelectForecastDaysCapsAtFive(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)
	samples := threeHourSeries(now, 8)

	days := SelectForecastDays(samples, now)

	assert.Len(t, days, MaxForecastDays)
}

func TestSelectForecastDaysOutputStrictlyIncreasing(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)
	samples := threeHourSeries(now, 5)

	days := SelectForecastDays(samples, now)

	for i := 1; i < len(days); i++ {
		assert.Greater(t, days[i].Date, days[i-1].Date)
	}
}

func TestSelectForecastDaysIdempotent(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)
	samples := threeHourSeries(now, 5)

	first := SelectForecastDays(samples, now)
	second := SelectForecastDays(samples, now)

	assert.Equal(t, first, second)
}

func TestSelectForecastDaysEmptySeries(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)

	days := SelectForecastDays(nil, now)

	assert.Empty(t, days)
}

func TestSelectForecastDaysFewerThanFiveDays(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)
	samples := threeHourSeries(now, 2)

	days := SelectForecastDays(samples, now)

	assert.Len(t, days, 2)
}

func TestSelectForecastDaysKeepsDayWithNoNoonSample(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)

	// The only sample for the day is far from noon; it must still be selected.
	samples := []models.ForecastSample{
		sampleAt(time.Date(2024, 7, 31, 23, 0, 0, 0, time.UTC), 18),
	}

	days := SelectForecastDays(samples, now)

	assert.Len(t, days, 1)
	assert.Equal(t, 18, days[0].Temp)
}

func TestSelectForecastDaysNoonTieGoesToEarlierSample(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)

	// 11:00 and 13:00 are equally far from noon; the earlier sample wins.
	earlier := sampleAt(time.Date(2024, 7, 31, 11, 0, 0, 0, time.UTC), 21)
	later := sampleAt(time.Date(2024, 7, 31, 13, 0, 0, 0, time.UTC), 27)

	days := SelectForecastDays([]models.ForecastSample{later, earlier}, now)

	assert.Len(t, days, 1)
	assert.Equal(t, earlier.TimestampMs, days[0].Date)
	assert.Equal(t, 21, days[0].Temp)
}

func TestSelectForecastDaysTemperatureRounding(t *testing.T) {
	now := time.Date(2024, 7, 30, 9, 0, 0, 0, time.UTC)

	samples := []models.ForecastSample{
		sampleAt(time.Date(2024, 7, 31, 12, 0, 0, 0, time.UTC), 21.6),
		sampleAt(time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC), 21.4),
	}

	days := SelectForecastDays(samples, now)

	assert.Len(t, days, 2)
	assert.Equal(t, 22, days[0].Temp)
	assert.Equal(t, 21, days[1].Temp)
}
