package synthetic

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Fram-Jam/healthbridge/pkg/common/models"
	"github.com/Fram-Jam/healthbridge/pkg/labs"
)

// Patient bundles everything the demo path loads into a session.
type Patient struct {
	Profile    *models.SubjectProfile
	HealthData []*models.DailyRecord
	LabData    []models.LabRecord
	Workouts   []models.Workout
	Genetics   *models.GeneticProfile
}

const demoDays = 90

var workoutTypes = []string{"Running", "Cycling", "Strength", "Swimming", "Yoga", "Walking"}

// GeneratePatient builds a complete demo patient: a 90-day daily health
// series with weekly rhythm, a recent lab panel, workouts, and a genetic
// profile. Seed 0 draws a fresh random seed.
func GeneratePatient(seed int64) *Patient {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	age := 25 + rng.Intn(40)
	sex := "female"
	if rng.Intn(2) == 0 {
		sex = "male"
	}
	height := 155.0 + rng.Float64()*35
	weight := 55.0 + rng.Float64()*40

	return &Patient{
		Profile: &models.SubjectProfile{
			Age:      models.Int(age),
			Sex:      models.Str(sex),
			HeightCM: models.Float(math.Round(height*10) / 10),
			WeightKG: models.Float(math.Round(weight*10) / 10),
		},
		HealthData: generateHealthSeries(rng),
		LabData:    generateLabPanel(rng),
		Workouts:   generateWorkouts(rng),
		Genetics:   GenerateGeneticProfile(rng),
	}
}

func generateHealthSeries(rng *rand.Rand) []*models.DailyRecord {
	today := time.Now().UTC()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -demoDays+1)

	records := make([]*models.DailyRecord, 0, demoDays)
	for day := 0; day < demoDays; day++ {
		date := start.AddDate(0, 0, day)
		rec := models.EmptyRecord(date)

		// Weekly rhythm: weekends sleep longer, move less.
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

		sleepHours := 7.0 + rng.NormFloat64()*0.8
		if weekend {
			sleepHours += 0.7
		}
		sleepHours = clamp(sleepHours, 4.5, 10.5)
		rec.SleepDuration = models.Float(round1(sleepHours))
		rec.SleepScore = models.Int(clampInt(int(60+sleepHours*4+rng.NormFloat64()*6), 40, 100))
		deep := sleepHours * (0.15 + rng.Float64()*0.08)
		rem := sleepHours * (0.18 + rng.Float64()*0.07)
		awake := 0.2 + rng.Float64()*0.5
		rec.DeepSleep = models.Float(round1(deep))
		rec.REMSleep = models.Float(round1(rem))
		rec.LightSleep = models.Float(round1(sleepHours - deep - rem))
		rec.AwakeTime = models.Float(round1(awake))

		resting := 52 + rng.Intn(16)
		rec.RestingHR = models.Int(resting)
		rec.HRV = models.Int(30 + rng.Intn(60))
		rec.HRMin = models.Int(resting - 4 - rng.Intn(4))
		rec.HRMax = models.Int(120 + rng.Intn(60))

		steps := 8000 + int(rng.NormFloat64()*2500)
		if weekend {
			steps -= 1500
		}
		steps = clampInt(steps, 1000, 25000)
		rec.Steps = models.Int(steps)
		rec.DistanceKM = models.Float(round1(float64(steps) * 0.00075))
		active := clampInt(steps/250+rng.Intn(20), 10, 180)
		rec.ActiveMinutes = models.Int(active)
		rec.SedentaryMinutes = models.Int(600 + rng.Intn(240))
		rec.ActiveCalories = models.Int(250 + steps/25 + rng.Intn(100))
		rec.TotalCalories = models.Int(1800 + steps/15 + rng.Intn(200))
		rec.FloorsClimbed = models.Int(rng.Intn(20))

		rec.ReadinessScore = models.Int(clampInt(55+rng.Intn(45), 0, 100))
		rec.StressScore = models.Int(clampInt(20+rng.Intn(60), 0, 100))
		rec.RecoveryScore = models.Int(clampInt(50+rng.Intn(50), 0, 100))

		records = append(records, rec)
	}
	return records
}

func generateLabPanel(rng *rand.Rand) []models.LabRecord {
	catalog := labs.DefaultCatalog()
	drawn := time.Now().UTC().AddDate(0, 0, -14)
	date := time.Date(drawn.Year(), drawn.Month(), drawn.Day(), 0, 0, 0, 0, time.UTC)

	codes := make([]string, 0, len(catalog.Biomarkers))
	for code := range catalog.Biomarkers {
		codes = append(codes, code)
	}
	// Deterministic order so a seeded rng yields a reproducible panel.
	sort.Strings(codes)

	records := make([]models.LabRecord, 0, len(codes))
	for _, code := range codes {
		biomarker, _ := catalog.Lookup(code)
		span := biomarker.RefHigh - biomarker.RefLow
		// Mostly in range, occasionally flagged.
		value := biomarker.RefLow + span*(0.15+rng.Float64()*0.7)
		if rng.Float64() < 0.12 {
			value = biomarker.RefHigh + span*rng.Float64()*0.3
		}
		rec := biomarker.Record(math.Round(value*10) / 10)
		rec.Date = date
		records = append(records, rec)
	}
	return records
}

func generateWorkouts(rng *rand.Rand) []models.Workout {
	today := time.Now().UTC()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	count := 10 + rng.Intn(10)
	workouts := make([]models.Workout, 0, count)
	for i := 0; i < count; i++ {
		date := start.AddDate(0, 0, -rng.Intn(demoDays))
		duration := 20 + rng.Intn(70)
		workouts = append(workouts, models.Workout{
			Date:            date,
			Type:            workoutTypes[rng.Intn(len(workoutTypes))],
			DurationMinutes: duration,
			Calories:        duration * (6 + rng.Intn(6)),
			AvgHR:           110 + rng.Intn(50),
			DistanceKM:      round1(rng.Float64() * 12),
		})
	}
	return workouts
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
