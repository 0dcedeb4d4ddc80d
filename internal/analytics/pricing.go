package analytics

import "curator/internal/domain"

// BasePrice is the undiscounted ticket price.
const BasePrice = 15.0

// discountRates maps membership tiers to their fractional discount. Unknown
// tiers fall through to 0.
var discountRates = map[domain.Membership]float64{
	domain.MembershipNone:    0.0,
	domain.MembershipBasic:   0.10,
	domain.MembershipPremium: 0.25,
	domain.MembershipFamily:  0.30,
}

// TicketPrice returns the price for one visit under the given membership.
func TicketPrice(membership domain.Membership) float64 {
	return BasePrice * (1 - discountRates[membership])
}
