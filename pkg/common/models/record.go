package models

import "time"

// DailyRecord is the canonical per-subject-per-day health observation. Every
// metric field is pointer-typed; nil means the day's tributaries had no value
// for it. The struct shape guarantees all fields are present on every record,
// which downstream consumers rely on. Records are never mutated after an
// adapter returns them.
type DailyRecord struct {
	Date             time.Time `json:"date"`
	SleepDuration    *float64  `json:"sleep_duration"`
	SleepScore       *int      `json:"sleep_score"`
	DeepSleep        *float64  `json:"deep_sleep"`
	REMSleep         *float64  `json:"rem_sleep"`
	LightSleep       *float64  `json:"light_sleep"`
	AwakeTime        *float64  `json:"awake_time"`
	RestingHR        *int      `json:"resting_hr"`
	HRV              *int      `json:"hrv"`
	HRMin            *int      `json:"hr_min"`
	HRMax            *int      `json:"hr_max"`
	Steps            *int      `json:"steps"`
	ActiveCalories   *int      `json:"active_calories"`
	TotalCalories    *int      `json:"total_calories"`
	DistanceKM       *float64  `json:"distance_km"`
	FloorsClimbed    *int      `json:"floors_climbed"`
	ActiveMinutes    *int      `json:"active_minutes"`
	SedentaryMinutes *int      `json:"sedentary_minutes"`
	GlucoseAvg       *float64  `json:"glucose_avg"`
	GlucoseMin       *float64  `json:"glucose_min"`
	GlucoseMax       *float64  `json:"glucose_max"`
	GlucoseStd       *float64  `json:"glucose_std"`
	TimeInRange      *float64  `json:"time_in_range"`
	ReadinessScore   *int      `json:"readiness_score"`
	StressScore      *int      `json:"stress_score"`
	RecoveryScore    *int      `json:"recovery_score"`
}

// EmptyRecord is the shared empty-record factory: a record for the given day
// with every metric missing.
func EmptyRecord(date time.Time) *DailyRecord {
	return &DailyRecord{Date: date}
}

// RecordFieldNames is the canonical ordered field list of the daily record
// schema, date first.
func RecordFieldNames() []string {
	return []string{
		"date",
		"sleep_duration", "sleep_score", "deep_sleep", "rem_sleep",
		"light_sleep", "awake_time",
		"resting_hr", "hrv", "hr_min", "hr_max",
		"steps", "active_calories", "total_calories", "distance_km",
		"floors_climbed", "active_minutes", "sedentary_minutes",
		"glucose_avg", "glucose_min", "glucose_max", "glucose_std",
		"time_in_range",
		"readiness_score", "stress_score", "recovery_score",
	}
}

// Float returns a pointer to v. Convenience for populating optional fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Str returns a pointer to v.
func Str(v string) *string { return &v }
