package analytics

import "curator/internal/domain"

// topVisitorCount limits how many leading visitors statistics carry.
const topVisitorCount = 5

// VisitorStats folds per-visitor activity into system-wide totals. With no
// active visitors every figure is zero. Null spend is already normalized to
// 0 by the stores.
func VisitorStats(activity []domain.VisitorActivity) domain.VisitorStatistics {
	stats := domain.VisitorStatistics{}
	if len(activity) == 0 {
		return stats
	}
	stats.TotalVisitors = len(activity)
	for _, a := range activity {
		stats.TotalVisits += a.TotalVisits
		stats.TotalRevenue += a.TotalSpent
	}
	stats.AvgVisitsPerVisitor = round2(float64(stats.TotalVisits) / float64(stats.TotalVisitors))
	stats.TotalRevenue = round2(stats.TotalRevenue)

	top := activity
	if len(top) > topVisitorCount {
		top = top[:topVisitorCount]
	}
	stats.TopVisitors = top
	return stats
}

// FilterVIPs keeps visitors with at least minVisits visits. Activity arrives
// ordered by total visits descending and that order is preserved.
func FilterVIPs(activity []domain.VisitorActivity, minVisits int) []domain.VisitorActivity {
	vips := make([]domain.VisitorActivity, 0, len(activity))
	for _, a := range activity {
		if a.TotalVisits >= minVisits {
			vips = append(vips, a)
		}
	}
	return vips
}
