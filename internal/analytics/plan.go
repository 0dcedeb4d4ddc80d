package analytics

import (
	"math"
	"sort"

	"curator/internal/domain"
)

// Urgency labels for prioritized maintenance.
const (
	UrgencyCritical = "CRITICAL"
	UrgencyHigh     = "HIGH"
	UrgencyMedium   = "MEDIUM"
	UrgencyLow      = "LOW"
)

// neverMaintainedDays is the sentinel substituted for the time component when
// an exhibit has no maintenance history. It applies only inside the score
// formula; plan eligibility for such exhibits is unconditional.
const neverMaintainedDays = 999

// PriorityScore computes the maintenance priority of a candidate:
// condition penalty (Poor/Restoration Required 50, Fair 30) + value penalty
// (>10000 30, >5000 20) + time penalty (daysSince/50, capped at 20).
// Rounded to 2 decimals.
func PriorityScore(c domain.MaintenanceCandidate) float64 {
	score := 0.0
	switch c.Condition {
	case domain.ConditionPoor, domain.ConditionRestoration:
		score += 50
	case domain.ConditionFair:
		score += 30
	}
	switch {
	case c.Value > 10000:
		score += 30
	case c.Value > 5000:
		score += 20
	}
	days := float64(neverMaintainedDays)
	if c.DaysSince != nil {
		days = *c.DaysSince
	}
	score += math.Min(20, days/50)
	return round2(score)
}

// Urgency converts a priority score to its label.
func Urgency(score float64) string {
	switch {
	case score >= 80:
		return UrgencyCritical
	case score >= 60:
		return UrgencyHigh
	case score >= 40:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// BuildPlan filters candidates against the staleness threshold, scores each
// one, and returns the plan ordered by priority descending. The sort is
// stable: ties keep their prior relative order. Exhibits never maintained
// are always eligible regardless of threshold.
func BuildPlan(candidates []domain.MaintenanceCandidate, daysThreshold int) []domain.PlanItem {
	plan := make([]domain.PlanItem, 0, len(candidates))
	for _, c := range candidates {
		if c.DaysSince != nil && *c.DaysSince <= float64(daysThreshold) {
			continue
		}
		score := PriorityScore(c)
		plan = append(plan, domain.PlanItem{
			MaintenanceCandidate: c,
			PriorityScore:        score,
			Urgency:              Urgency(score),
		})
	}
	sort.SliceStable(plan, func(i, j int) bool {
		return plan[i].PriorityScore > plan[j].PriorityScore
	})
	return plan
}
