package scheduler

import "math"

// Component weights and std-dev-to-score conversion factors for the
// fairness score. Hours dominate, then nights, then weekends.
const (
	HoursScoreFactor    = 2.0
	NightsScoreFactor   = 10.0
	WeekendsScoreFactor = 20.0

	HoursScoreWeight    = 0.40
	NightsScoreWeight   = 0.35
	WeekendsScoreWeight = 0.25
)

// FairnessScore is the 0-100 composite fairness metric over the final
// staff workload distribution. All fields are rounded to 2 decimals.
type FairnessScore struct {
	Overall        float64
	HoursScore     float64
	NightsScore    float64
	WeekendsScore  float64
	HoursStdDev    float64
	NightsStdDev   float64
	WeekendsStdDev float64
}

// Mean returns the arithmetic mean, or 0 for empty input
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation (not sample), or 0 for
// empty input
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := Mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - avg) * (v - avg)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// EvaluateFairness converts the dispersion of hours, nights and weekends
// across staff nurses into component scores and a weighted overall score.
// Zero dispersion yields a perfect 100.
func EvaluateFairness(stats []*NurseStats) FairnessScore {
	hours := make([]float64, len(stats))
	nights := make([]float64, len(stats))
	weekends := make([]float64, len(stats))

	for i, s := range stats {
		hours[i] = float64(s.TotalHours)
		nights[i] = float64(s.NightShiftCount)
		weekends[i] = float64(s.WeekendShiftCount)
	}

	hoursStdDev := StdDev(hours)
	nightsStdDev := StdDev(nights)
	weekendsStdDev := StdDev(weekends)

	hoursScore := math.Max(0, 100-hoursStdDev*HoursScoreFactor)
	nightsScore := math.Max(0, 100-nightsStdDev*NightsScoreFactor)
	weekendsScore := math.Max(0, 100-weekendsStdDev*WeekendsScoreFactor)

	overall := hoursScore*HoursScoreWeight + nightsScore*NightsScoreWeight + weekendsScore*WeekendsScoreWeight

	return FairnessScore{
		Overall:        round2(overall),
		HoursScore:     round2(hoursScore),
		NightsScore:    round2(nightsScore),
		WeekendsScore:  round2(weekendsScore),
		HoursStdDev:    round2(hoursStdDev),
		NightsStdDev:   round2(nightsStdDev),
		WeekendsStdDev: round2(weekendsStdDev),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
