// internal/weather/forecast.go
package weather

import (
	"math"
	"sort"
	"time"

	"kisan-ai/internal/models"
)

// MaxForecastDays is how many daily entries a forecast may contain.
const MaxForecastDays = 5

// noonMinute is the minute-of-day the selection targets (12:00).
const noonMinute = 12 * 60

// SelectForecastDays reduces a sub-daily forecast series to at most five daily
// entries, one per future calendar day. Days are bucketed by UTC calendar
// date; within a bucket the sample closest to 12:00 UTC wins, ties going to
// the earlier timestamp. The bucket for now's UTC date is dropped because
// today's conditions are shown as current weather, not as a forecast day.
// An empty series yields an empty result, not an error.
func SelectForecastDays(samples []models.ForecastSample, now time.Time) []models.ForecastDay {
	type dayKey struct {
		year  int
		month time.Month
		day   int
	}

	best := make(map[dayKey]models.ForecastSample)
	for _, sample := range samples {
		t := time.UnixMilli(sample.TimestampMs).UTC()
		key := dayKey{t.Year(), t.Month(), t.Day()}

		current, exists := best[key]
		if !exists || closerToNoon(sample, current) {
			best[key] = sample
		}
	}

	nowUTC := now.UTC()
	today := dayKey{nowUTC.Year(), nowUTC.Month(), nowUTC.Day()}

	selected := make([]models.ForecastSample, 0, len(best))
	for key, sample := range best {
		if key == today {
			continue
		}
		selected = append(selected, sample)
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].TimestampMs < selected[j].TimestampMs
	})

	if len(selected) > MaxForecastDays {
		selected = selected[:MaxForecastDays]
	}

	days := make([]models.ForecastDay, 0, len(selected))
	for _, sample := range selected {
		days = append(days, models.ForecastDay{
			Date:      sample.TimestampMs,
			Temp:      int(math.Round(sample.TemperatureC)),
			Condition: sample.Condition,
			Icon:      sample.Icon,
		})
	}

	return days
}

// closerToNoon reports whether candidate is a strictly better daily
// representative than current: nearer to 12:00 UTC, or equally near but earlier.
func closerToNoon(candidate, current models.ForecastSample) bool {
	cd := noonDistance(candidate.TimestampMs)
	od := noonDistance(current.TimestampMs)
	if cd != od {
		return cd < od
	}
	return candidate.TimestampMs < current.TimestampMs
}

func noonDistance(timestampMs int64) int {
	t := time.UnixMilli(timestampMs).UTC()
	minute := t.Hour()*60 + t.Minute()
	if minute > noonMinute {
		return minute - noonMinute
	}
	return noonMinute - minute
}
