// Package healthscore derives the composite business health score from raw
// connector metrics.
package healthscore

import (
	"math"

	"bizcoach-workers/internal/models"
)

const (
	// NeutralScore is reported for any category without usable metrics.
	NeutralScore = 50

	StatusExcellent = "excellent"
	StatusGood      = "good"
	StatusFair      = "fair"
	StatusPoor      = "poor"
)

// Weights holds the relative weight of each category in the overall score.
// Only the ratios matter.
type Weights map[models.Category]float64

// DefaultWeights weighs every category equally.
func DefaultWeights() Weights {
	return Weights{
		models.CategoryRevenue:    1,
		models.CategoryOperations: 1,
		models.CategoryCustomer:   1,
	}
}

// WeightsFromNames builds Weights from category-name keys as they appear in
// configuration. Unknown names are ignored.
func WeightsFromNames(named map[string]float64) Weights {
	w := make(Weights, len(named))
	for name, v := range named {
		if c, ok := models.ParseCategory(name); ok {
			w[c] = v
		}
	}
	return w
}

// Calculator computes health scores. The zero value is not usable; build one
// with New. A Calculator is never mutated after New and is safe for
// concurrent use.
type Calculator struct {
	weights Weights
	neutral int
}

// New returns a Calculator. Missing or non-positive weights fall back to the
// equal default; a neutral score outside (0, 100] falls back to 50.
func New(weights Weights, neutral int) *Calculator {
	resolved := DefaultWeights()
	for _, c := range models.Categories {
		if w, ok := weights[c]; ok && w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
			resolved[c] = w
		}
	}
	if neutral <= 0 || neutral > 100 {
		neutral = NeutralScore
	}
	return &Calculator{weights: resolved, neutral: neutral}
}

var defaultCalculator = New(nil, NeutralScore)

// Compute scores metrics with equal weights and a neutral score of 50.
func Compute(metrics []models.BusinessMetric) models.HealthScoreResult {
	return defaultCalculator.Compute(metrics)
}

// Compute never fails: degenerate metrics are skipped and empty categories
// get the neutral score.
func (c *Calculator) Compute(metrics []models.BusinessMetric) models.HealthScoreResult {
	sums := make(map[models.Category]int, len(models.Categories))
	counts := make(map[models.Category]int, len(models.Categories))
	used := 0

	for _, m := range metrics {
		score, ok := MetricScore(m)
		if !ok {
			continue
		}
		sums[m.Category] += score
		counts[m.Category]++
		used++
	}

	breakdown := make(map[models.Category]int, len(models.Categories))
	var weighted, totalWeight float64
	for _, cat := range models.Categories {
		sub := c.neutral
		if n := counts[cat]; n > 0 {
			sub = int(math.Round(float64(sums[cat]) / float64(n)))
		}
		breakdown[cat] = sub

		w := c.weights[cat]
		weighted += float64(sub) * w
		totalWeight += w
	}

	overall := clamp(int(math.Round(weighted/totalWeight)), 0, 100)

	return models.HealthScoreResult{
		OverallScore: overall,
		Breakdown:    breakdown,
		Status:       Status(overall),
		MetricsUsed:  used,
	}
}

// MetricScore returns clamp(0, 100, round(100*value/target)) and whether the
// metric is usable at all.
func MetricScore(m models.BusinessMetric) (int, bool) {
	if !m.Category.Valid() {
		return 0, false
	}
	if m.Target <= 0 || !finite(m.Target) || !finite(m.Value) {
		return 0, false
	}
	ratio := 100 * m.Value / m.Target
	if !finite(ratio) {
		return 0, false
	}
	// clamp in float space first so huge ratios can't overflow int
	ratio = math.Max(0, math.Min(100, ratio))
	return int(math.Round(ratio)), true
}

// Status labels an overall score.
func Status(score int) string {
	switch {
	case score >= 80:
		return StatusExcellent
	case score >= 60:
		return StatusGood
	case score >= 40:
		return StatusFair
	default:
		return StatusPoor
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
