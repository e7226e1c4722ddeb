package datasets

import (
	"math"
	"sort"
)

// Day-level reducers shared by every adapter that aggregates sub-daily
// samples into the canonical record.

// RestingHR estimates resting heart rate as the value at the 10th percentile
// of the day's sorted readings. The mean overestimates resting rate because
// it includes active hours; the trough during sleep or quiet rest sits near
// the bottom decile.
func RestingHR(samples []int) (int, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	sorted := make([]int, len(samples))
	copy(sorted, samples)
	sort.Ints(sorted)
	idx := int(float64(len(sorted)) * 0.1)
	if idx < 0 {
		idx = 0
	}
	return sorted[idx], true
}

func MinMaxInt(samples []int) (min, max int) {
	min, max = samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func Mean(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// PopStd is the population standard deviation (N divisor, not N-1): the
// day's samples are the whole population of interest, not a draw from one.
func PopStd(samples []float64) float64 {
	mean := Mean(samples)
	var sum float64
	for _, v := range samples {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Glucose range bounds in mg/dL for time-in-range, inclusive.
const (
	GlucoseRangeLow  = 70.0
	GlucoseRangeHigh = 180.0
)

// TimeInRange is the percentage of samples within [70, 180] mg/dL.
func TimeInRange(samples []float64) float64 {
	inRange := 0
	for _, v := range samples {
		if v >= GlucoseRangeLow && v <= GlucoseRangeHigh {
			inRange++
		}
	}
	return float64(inRange) / float64(len(samples)) * 100
}

// SleepScoreFromEfficiency derives a 0-100 sleep score from minutes asleep
// versus minutes in bed. The 1.1 factor maps raw efficiency onto the score
// scale wearable vendors report; it is a documented proxy, not a true
// efficiency computation.
func SleepScoreFromEfficiency(minutesAsleep, minutesInBed float64) (int, bool) {
	if minutesAsleep <= 0 || minutesInBed <= 0 {
		return 0, false
	}
	efficiency := minutesAsleep / minutesInBed * 100
	score := int(efficiency * 1.1)
	if score > 100 {
		score = 100
	}
	return score, true
}

// ClampScore bounds a directly-reported score or efficiency to [0, 100].
func ClampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
