// Package metrics turns issue counts and change volume into scores.
package metrics

import (
	"math"

	"github.com/panbanda/merit/pkg/models"
)

// Score weighting: quality dominates, quantity is a secondary modifier.
const (
	QualityWeight  = 0.8
	QuantityWeight = 0.2
)

// quantityTier maps a volume ratio lower bound to a discrete score.
type quantityTier struct {
	ratio float64
	score float64
}

// quantityTiers is evaluated top-down; boundary ratios take the higher tier.
var quantityTiers = []quantityTier{
	{2.0, 100},
	{1.5, 90},
	{1.0, 80},
	{0.8, 70},
	{0.6, 60},
	{0.4, 50},
	{0.2, 40},
}

// quantityFloor is the score for ratios below the lowest tier.
const quantityFloor = 30

// Quality computes issue-density figures and the quality score for an
// author. Zero changed lines means no code to fault, so the score is a
// fixed 100 with zero density figures rather than a division error.
func Quality(totalIssues, totalLines int) models.QualityMetrics {
	if totalLines == 0 {
		return models.QualityMetrics{Score: 100}
	}

	perKLOC := float64(totalIssues) / float64(totalLines) * 1000
	score := math.Max(0, 100-perKLOC*2)

	return models.QualityMetrics{
		IssuesPerKLOC:     Round2(perKLOC),
		IssueRatePerMille: Round2(perKLOC),
		Score:             Round2(score),
	}
}

// QuantityScore maps an author's changed-line volume, relative to the
// cohort average, onto a discrete tier. A zero average yields the neutral
// score of 50.
func QuantityScore(totalLines int, avgLines float64) float64 {
	if avgLines == 0 {
		return 50
	}

	ratio := float64(totalLines) / avgLines
	for _, tier := range quantityTiers {
		if ratio >= tier.ratio {
			return tier.score
		}
	}
	return quantityFloor
}

// FinalScore combines quality and quantity with the default 80/20
// weighting.
func FinalScore(quality, quantity float64) float64 {
	return WeightedScore(quality, quantity, QualityWeight, QuantityWeight)
}

// WeightedScore combines quality and quantity with explicit weights.
func WeightedScore(quality, quantity, qualityWeight, quantityWeight float64) float64 {
	return Round2(quality*qualityWeight + quantity*quantityWeight)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
