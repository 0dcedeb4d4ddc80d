package domain

import "time"

// Membership tiers. Unknown tiers are accepted by pricing and treated as
// undiscounted, matching the discount table's defaulting behavior.
type Membership string

const (
	MembershipNone    Membership = "None"
	MembershipBasic   Membership = "Basic"
	MembershipPremium Membership = "Premium"
	MembershipFamily  Membership = "Family"
)

// Visitor is a registered guest. Email is unique across all visitors and
// stored lowercase.
type Visitor struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Membership Membership `json:"membership_type"`
}

// Visit records one museum visit. Rating is nil when the guest left none.
type Visit struct {
	ID          int64     `json:"id"`
	VisitorID   int64     `json:"visitor_id"`
	MuseumID    int64     `json:"museum_id"`
	VisitDate   time.Time `json:"visit_date"`
	TicketPrice float64   `json:"ticket_price"`
	Rating      *int      `json:"rating"`
}

// VisitorActivity is the per-visitor aggregate behind statistics and VIP
// detection. Only visitors with at least one visit appear.
type VisitorActivity struct {
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Membership  Membership `json:"membership_type"`
	TotalVisits int        `json:"total_visits"`
	LastVisit   *time.Time `json:"last_visit"`
	AvgRating   *float64   `json:"avg_rating"`
	TotalSpent  float64    `json:"total_spent"`
}

// VisitorStatistics summarizes visitor activity across the whole system.
type VisitorStatistics struct {
	TotalVisitors       int               `json:"total_visitors"`
	TotalVisits         int               `json:"total_visits"`
	AvgVisitsPerVisitor float64           `json:"avg_visits_per_visitor"`
	TotalRevenue        float64           `json:"total_revenue"`
	TopVisitors         []VisitorActivity `json:"top_visitors,omitempty"`
}
