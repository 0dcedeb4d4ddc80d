package domain

import "time"

// Condition describes the physical state of an exhibit.
type Condition string

const (
	ConditionExcellent   Condition = "Excellent"
	ConditionGood        Condition = "Good"
	ConditionFair        Condition = "Fair"
	ConditionPoor        Condition = "Poor"
	ConditionRestoration Condition = "Restoration Required"
)

// Valid reports whether c is one of the five known conditions.
func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionRestoration:
		return true
	}
	return false
}

// Exhibit is an item owned by a museum. Value is monetary and never negative;
// items worth more than 10000 must carry an explicit condition at creation.
type Exhibit struct {
	ID           int64     `json:"id"`
	MuseumID     int64     `json:"museum_id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	DateAcquired time.Time `json:"date_acquired"`
	Description  string    `json:"description,omitempty"`
	Condition    Condition `json:"condition"`
	Value        float64   `json:"value"`

	// Joined fields populated by list/search queries.
	MuseumName string `json:"museum_name,omitempty"`
	City       string `json:"city,omitempty"`
}

// ExhibitMaintenanceRank ranks an exhibit by how often it has been maintained.
type ExhibitMaintenanceRank struct {
	Title            string     `json:"title"`
	Category         string     `json:"category"`
	MuseumName       string     `json:"museum_name"`
	MaintenanceCount int        `json:"maintenance_count"`
	LastMaintenance  *time.Time `json:"last_maintenance"`
}
