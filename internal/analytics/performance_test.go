package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curator/internal/domain"
)

func ratingOf(v float64) *float64 { return &v }

func TestPerformanceScore(t *testing.T) {
	t.Run("sums clamped components", func(t *testing.T) {
		stats := domain.MuseumStats{TotalExhibits: 3, TotalVisits: 20, AvgRating: ratingOf(4.0)}
		// 3*2 + 20*0.5 + 4/5*30 = 6 + 10 + 24
		assert.Equal(t, 40.0, PerformanceScore(stats))
	})

	t.Run("caps exhibit and visit components", func(t *testing.T) {
		stats := domain.MuseumStats{TotalExhibits: 100, TotalVisits: 1000, AvgRating: ratingOf(5.0)}
		assert.Equal(t, 100.0, PerformanceScore(stats))
	})

	t.Run("missing rating contributes nothing", func(t *testing.T) {
		stats := domain.MuseumStats{TotalExhibits: 3, TotalVisits: 20}
		assert.Equal(t, 16.0, PerformanceScore(stats))
	})

	t.Run("empty museum scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, PerformanceScore(domain.MuseumStats{}))
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		stats := domain.MuseumStats{AvgRating: ratingOf(3.7)}
		// 3.7/5*30 = 22.2
		assert.Equal(t, 22.2, PerformanceScore(stats))
	})
}

func TestRecommendations(t *testing.T) {
	t.Run("all rules fire for a struggling museum", func(t *testing.T) {
		stats := domain.MuseumStats{TotalExhibits: 2, TotalVisits: 3, AvgRating: ratingOf(2.0)}
		recs := Recommendations(stats)
		assert.Equal(t, []string{recAcquireExhibits, recReviewFeedback, recIncreaseMarket}, recs)
	})

	t.Run("healthy museum gets the all-good message", func(t *testing.T) {
		stats := domain.MuseumStats{TotalExhibits: 10, TotalVisits: 50, AvgRating: ratingOf(4.5)}
		assert.Equal(t, []string{recPerformanceGood}, Recommendations(stats))
	})

	t.Run("nil rating never triggers the feedback rule", func(t *testing.T) {
		stats := domain.MuseumStats{TotalExhibits: 10, TotalVisits: 50}
		assert.Equal(t, []string{recPerformanceGood}, Recommendations(stats))
	})

	t.Run("boundary values do not fire rules", func(t *testing.T) {
		stats := domain.MuseumStats{TotalExhibits: 5, TotalVisits: 10, AvgRating: ratingOf(3.5)}
		assert.Equal(t, []string{recPerformanceGood}, Recommendations(stats))
	})
}

func TestBuildPerformanceReport(t *testing.T) {
	stats := domain.MuseumStats{MuseumName: "City Gallery", TotalExhibits: 3, TotalVisits: 20, AvgRating: ratingOf(4.0)}
	report := BuildPerformanceReport(stats)
	assert.Equal(t, "City Gallery", report.MuseumName)
	assert.Equal(t, 40.0, report.PerformanceScore)
	assert.NotEmpty(t, report.Recommendations)
}
