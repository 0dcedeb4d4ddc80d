// Package visitor manages guest registration, visit logging with membership
// pricing, and the visitor analytics built on top of both.
package visitor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curator/internal/analytics"
	"curator/internal/audit"
	"curator/internal/domain"
	"curator/internal/storage"
	dErrors "curator/pkg/domain-errors"
	"curator/pkg/platform/sentinel"
	"curator/pkg/requestcontext"
)

const (
	visitorTable = "guest"
	visitTable   = "guest_visit"
)

// RegisterParams carries the optional attributes of a new visitor.
type RegisterParams struct {
	Phone      string
	Membership domain.Membership
}

// Service wraps visitor persistence with validation and auditing.
type Service struct {
	visitors storage.VisitorStore
	audit    *audit.Recorder
	tx       storage.TxRunner
}

func NewService(visitors storage.VisitorStore, recorder *audit.Recorder, tx storage.TxRunner) *Service {
	return &Service{visitors: visitors, audit: recorder, tx: tx}
}

// Register adds a visitor. Emails are normalized to lowercase on write, so
// the uniqueness check is effectively case-insensitive.
func (s *Service) Register(ctx context.Context, name, email string, params RegisterParams) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, dErrors.New(dErrors.CodeValidation, "visitor name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !validEmail(email) {
		return 0, dErrors.New(dErrors.CodeValidation, "invalid email address format")
	}
	membership := params.Membership
	if membership == "" {
		membership = domain.MembershipNone
	}

	if _, err := s.visitors.FindByEmail(ctx, email); err == nil {
		return 0, dErrors.Newf(dErrors.CodeDuplicate, "visitor with email %s already registered", email)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return 0, dErrors.Wrap(err, dErrors.CodeStore, "check visitor email")
	}

	var visitorID int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.visitors.Create(txCtx, domain.Visitor{
			Name:       name,
			Email:      email,
			Phone:      params.Phone,
			Membership: membership,
		})
		if errors.Is(err, sentinel.ErrDuplicate) {
			return dErrors.Newf(dErrors.CodeDuplicate, "visitor with email %s already registered", email)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "register visitor")
		}
		visitorID = id
		return s.audit.Record(txCtx, visitorTable, domain.AuditInsert, id, fmt.Sprintf("Registered visitor: %s", name))
	})
	if err != nil {
		return 0, err
	}
	return visitorID, nil
}

// LogVisit records a museum visit, deriving the ticket price from the
// membership discount table.
func (s *Service) LogVisit(ctx context.Context, visitorID, museumID int64, visitDate string, membership domain.Membership, rating *int) (int64, error) {
	date, err := parseDate(visitDate)
	if err != nil {
		return 0, err
	}
	if date.After(requestcontext.Now(ctx)) {
		return 0, dErrors.New(dErrors.CodeValidation, "visit date cannot be in the future")
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return 0, dErrors.New(dErrors.CodeValidation, "rating must be between 1 and 5")
	}

	price := analytics.TicketPrice(membership)

	var visitID int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.visitors.LogVisit(txCtx, domain.Visit{
			VisitorID:   visitorID,
			MuseumID:    museumID,
			VisitDate:   date,
			TicketPrice: price,
			Rating:      rating,
		})
		if errors.Is(err, sentinel.ErrForeignKey) {
			return dErrors.New(dErrors.CodeReference, "visitor or museum does not exist")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "log visit")
		}
		visitID = id
		return s.audit.Record(txCtx, visitTable, domain.AuditInsert, id, fmt.Sprintf("Logged visit for visitor %d", visitorID))
	})
	if err != nil {
		return 0, err
	}
	return visitID, nil
}

// Statistics aggregates visitor activity into system-wide totals.
func (s *Service) Statistics(ctx context.Context) (domain.VisitorStatistics, error) {
	activity, err := s.visitors.Activity(ctx)
	if err != nil {
		return domain.VisitorStatistics{}, dErrors.Wrap(err, dErrors.CodeStore, "load visitor activity")
	}
	return analytics.VisitorStats(activity), nil
}

// VIPs returns visitors with at least minVisits visits, most active first.
func (s *Service) VIPs(ctx context.Context, minVisits int) ([]domain.VisitorActivity, error) {
	activity, err := s.visitors.Activity(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "load visitor activity")
	}
	return analytics.FilterVIPs(activity, minVisits), nil
}

// ByEmail looks up a visitor by address, case-insensitively.
func (s *Service) ByEmail(ctx context.Context, email string) (domain.Visitor, error) {
	v, err := s.visitors.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sentinel.ErrNotFound) {
		return domain.Visitor{}, dErrors.Newf(dErrors.CodeNotFound, "no visitor with email %s", email)
	}
	if err != nil {
		return domain.Visitor{}, dErrors.Wrap(err, dErrors.CodeStore, "find visitor by email")
	}
	return v, nil
}

// validEmail checks the minimal local@domain.tld shape: exactly one @ with a
// non-empty local part, and a dot after it that is neither first nor last in
// the domain.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') {
		return false
	}
	domainPart := email[at+1:]
	dot := strings.LastIndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
