// Package museum applies the business rules for museum records and derives
// their performance analytics.
package museum

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
)

const museumTable = "museum"

// CreateParams carries the optional attributes of a new museum.
type CreateParams struct {
	Address      string
	Phone        string
	OpeningHours string
}

// Service wraps museum persistence with validation and auditing.
type Service struct {
	museums storage.MuseumStore
	audit   *audit.Recorder
	tx      storage.TxRunner
}

func NewService(museums storage.MuseumStore, recorder *audit.Recorder, tx storage.TxRunner) *Service {
	return &Service{museums: museums, audit: recorder, tx: tx}
}

// Create registers a museum. The (name, city) pair must be unique; a phone
// number, when supplied, must look like one.
func (s *Service) Create(ctx context.Context, name, city string, params CreateParams) (int64, error) {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	if name == "" {
		return 0, dErrors.New(dErrors.CodeValidation, "museum name cannot be empty")
	}
	if city == "" {
		return 0, dErrors.New(dErrors.CodeValidation, "city cannot be empty")
	}
	if params.Phone != "" && !validPhone(params.Phone) {
		return 0, dErrors.New(dErrors.CodeValidation, "invalid phone number format")
	}

	exists, err := s.museums.ExistsNameCity(ctx, name, city)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStore, "check museum uniqueness")
	}
	if exists {
		return 0, dErrors.Newf(dErrors.CodeDuplicate, "museum %q already exists in %s", name, city)
	}

	var museumID int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.museums.Create(txCtx, domain.Museum{
			Name:         name,
			City:         city,
			Address:      params.Address,
			Phone:        params.Phone,
			OpeningHours: params.OpeningHours,
		})
		// The unique constraint is the backstop for the pre-check above.
		if errors.Is(err, sentinel.ErrDuplicate) {
			return dErrors.Newf(dErrors.CodeDuplicate, "museum %q already exists in %s", name, city)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "create museum")
		}
		museumID = id
		return s.audit.Record(txCtx, museumTable, domain.AuditInsert, id, fmt.Sprintf("Added museum: %s", name))
	})
	if err != nil {
		return 0, err
	}
	return museumID, nil
}

// List returns all museums with their exhibit counts, ordered by name.
func (s *Service) List(ctx context.Context) ([]domain.Museum, error) {
	museums, err := s.museums.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "list museums")
	}
	return museums, nil
}

// Performance computes the KPI report for one museum.
func (s *Service) Performance(ctx context.Context, museumID int64) (domain.PerformanceReport, error) {
	stats, err := s.museums.Stats(ctx, museumID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return domain.PerformanceReport{}, dErrors.Newf(dErrors.CodeNotFound, "museum %d not found", museumID)
	}
	if err != nil {
		return domain.PerformanceReport{}, dErrors.Wrap(err, dErrors.CodeStore, "load museum stats")
	}
	return analytics.BuildPerformanceReport(stats), nil
}

// validPhone accepts digit-heavy strings: digits plus spacing and the usual
// punctuation, with at least 10 actual digits.
func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '+' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10
}
