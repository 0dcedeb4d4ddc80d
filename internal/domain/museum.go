package domain

// Museum is a registered institution. The (Name, City) pair is unique.
type Museum struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	OpeningHours string `json:"opening_hours,omitempty"`
	ExhibitCount int    `json:"exhibit_count,omitempty"`
}

// MuseumStats is the aggregate row behind performance scoring. AvgRating is
// nil when no visit carries a rating.
type MuseumStats struct {
	MuseumName    string   `json:"museum_name"`
	TotalExhibits int      `json:"total_exhibits"`
	TotalVisits   int      `json:"total_visits"`
	AvgRating     *float64 `json:"avg_rating"`
	TotalRevenue  float64  `json:"total_revenue"`
}

// PerformanceReport is the derived analytics result for one museum.
type PerformanceReport struct {
	MuseumStats
	PerformanceScore float64  `json:"performance_score"`
	Recommendations  []string `json:"recommendations"`
}
