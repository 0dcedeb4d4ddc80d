// Package analytics holds the derived computations of the system as pure
// functions over already-fetched aggregate data. Nothing here touches a
// store, which keeps every formula unit-testable in isolation.
package analytics

import (
	"math"

	"curator/internal/domain"
)

// Recommendation messages, emitted by independent rule checks in fixed order.
const (
	recAcquireExhibits = "Consider acquiring more exhibits to increase visitor interest"
	recReviewFeedback  = "Visitor satisfaction is low. Review visitor feedback and improve experience"
	recIncreaseMarket  = "Increase marketing efforts to attract more visitors"
	recPerformanceGood = "Museum performance is good. Maintain current standards"
)

// PerformanceScore computes the museum performance score in [0, 100] as the
// sum of three independently clamped components: exhibits contribute up to
// 30, visits up to 40, rating up to 30. Rounded to 2 decimals.
func PerformanceScore(stats domain.MuseumStats) float64 {
	score := 0.0
	if stats.TotalExhibits > 0 {
		score += math.Min(30, float64(stats.TotalExhibits)*2)
	}
	if stats.TotalVisits > 0 {
		score += math.Min(40, float64(stats.TotalVisits)*0.5)
	}
	if stats.AvgRating != nil {
		score += *stats.AvgRating / 5 * 30
	}
	return round2(score)
}

// Recommendations generates actionable advice from the aggregate row. Rules
// are evaluated in fixed order and all matching rules are included; when no
// rule fires a single all-good message is returned.
func Recommendations(stats domain.MuseumStats) []string {
	var recs []string
	if stats.TotalExhibits < 5 {
		recs = append(recs, recAcquireExhibits)
	}
	if stats.AvgRating != nil && *stats.AvgRating < 3.5 {
		recs = append(recs, recReviewFeedback)
	}
	if stats.TotalVisits < 10 {
		recs = append(recs, recIncreaseMarket)
	}
	if len(recs) == 0 {
		recs = append(recs, recPerformanceGood)
	}
	return recs
}

// BuildPerformanceReport combines score and recommendations for one museum.
func BuildPerformanceReport(stats domain.MuseumStats) domain.PerformanceReport {
	return domain.PerformanceReport{
		MuseumStats:      stats,
		PerformanceScore: PerformanceScore(stats),
		Recommendations:  Recommendations(stats),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
