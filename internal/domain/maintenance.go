package domain

import "time"

// MaintenanceRecord is one action performed (or scheduled) on an exhibit.
type MaintenanceRecord struct {
	ID         int64     `json:"id"`
	ExhibitID  int64     `json:"exhibit_id"`
	Action     string    `json:"action"`
	Date       time.Time `json:"date"`
	Specialist string    `json:"specialist"`
	Cost       float64   `json:"cost"`
	Notes      string    `json:"notes,omitempty"`

	// Joined fields populated by range queries.
	ExhibitTitle string `json:"exhibit_title,omitempty"`
	MuseumName   string `json:"museum_name,omitempty"`
}

// MaintenanceCandidate is an exhibit considered for the maintenance plan.
// DaysSince is nil when the exhibit has never been maintained; such exhibits
// are always plan-eligible regardless of threshold.
type MaintenanceCandidate struct {
	ExhibitID       int64      `json:"exhibit_id"`
	Title           string     `json:"title"`
	MuseumName      string     `json:"museum_name"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	DaysSince       *float64   `json:"days_since"`
	Condition       Condition  `json:"condition"`
	Value           float64    `json:"value"`
}

// PlanItem is one prioritized entry of the maintenance plan.
type PlanItem struct {
	MaintenanceCandidate
	PriorityScore float64 `json:"priority_score"`
	Urgency       string  `json:"urgency"`
}

// BudgetSummary aggregates maintenance spend over an inclusive date range.
type BudgetSummary struct {
	Start        time.Time           `json:"start"`
	End          time.Time           `json:"end"`
	TotalActions int                 `json:"total_maintenance_actions"`
	TotalCost    float64             `json:"total_cost"`
	AvgCost      float64             `json:"avg_cost_per_action"`
	Records      []MaintenanceRecord `json:"records"`
}

// MaintenanceSummaryRow aggregates the maintenance history of one exhibit.
type MaintenanceSummaryRow struct {
	ExhibitTitle     string     `json:"exhibit_title"`
	MuseumName       string     `json:"museum_name"`
	TotalActions     int        `json:"total_actions"`
	TotalCost        float64    `json:"total_cost"`
	FirstMaintenance *time.Time `json:"first_maintenance"`
	LastMaintenance  *time.Time `json:"last_maintenance"`
}
