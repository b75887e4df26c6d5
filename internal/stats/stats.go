// Package stats contains metric calculations and reporting.
package stats

import (
	"math"

	"github.com/verte-zerg/timetype/internal/model"
)

// CharsPerWord is the standard word length used for WPM.
const CharsPerWord = 5

// Recompute derives metrics from the session counters. It reports false
// when no time has elapsed yet, in which case the caller keeps its
// previous metrics.
func Recompute(durationSec, remainingSec, typedEntries, mistakes int) (model.Metrics, bool) {
	elapsedMinutes := float64(durationSec-remainingSec) / 60.0
	if elapsedMinutes <= 0 {
		return model.Metrics{}, false
	}
	adjusted := typedEntries - mistakes
	if adjusted < 0 {
		adjusted = 0
	}
	if typedEntries < 0 {
		typedEntries = 0
	}
	wpm := int(math.Round((float64(adjusted) / CharsPerWord) / elapsedMinutes))
	accuracy := 100
	if typedEntries > 0 {
		accuracy = int(math.Round(float64(adjusted) / float64(typedEntries) * 100))
	}
	return model.Metrics{
		WPM:      wpm,
		Accuracy: accuracy,
		Correct:  adjusted,
		Typed:    typedEntries,
	}, true
}

// Initial returns the metrics shown before any time has elapsed.
func Initial() model.Metrics {
	return model.Metrics{Accuracy: 100}
}
