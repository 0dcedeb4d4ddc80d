package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curator/internal/domain"
)

func TestTicketPrice(t *testing.T) {
	assert.Equal(t, 15.0, TicketPrice(domain.MembershipNone))
	assert.Equal(t, 13.5, TicketPrice(domain.MembershipBasic))
	assert.Equal(t, 11.25, TicketPrice(domain.MembershipPremium))
	assert.InDelta(t, 10.5, TicketPrice(domain.MembershipFamily), 1e-9)
}

func TestTicketPriceUnknownMembership(t *testing.T) {
	assert.Equal(t, BasePrice, TicketPrice(domain.Membership("Platinum")))
	assert.Equal(t, BasePrice, TicketPrice(domain.Membership("")))
}
