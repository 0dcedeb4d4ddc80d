// Package exhibit manages museum items: acquisition, condition tracking,
// search, and the maintenance-frequency ranking.
package exhibit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curator/internal/audit"
	"curator/internal/domain"
	"curator/internal/storage"
	dErrors "curator/pkg/domain-errors"
	"curator/pkg/platform/sentinel"
	"curator/pkg/requestcontext"
)

const (
	exhibitTable = "museum_item"

	// highValueThreshold is the value above which an explicit condition
	// assessment is mandatory at creation time.
	highValueThreshold = 10000

	topLimit = 10
)

// AddParams carries the optional attributes of a new exhibit. Condition may
// be empty, in which case the default applies unless the value demands an
// explicit assessment.
type AddParams struct {
	Description string
	Condition   domain.Condition
	Value       float64
}

// Service wraps exhibit persistence with validation and auditing.
type Service struct {
	exhibits storage.ExhibitStore
	audit    *audit.Recorder
	tx       storage.TxRunner
}

func NewService(exhibits storage.ExhibitStore, recorder *audit.Recorder, tx storage.TxRunner) *Service {
	return &Service{exhibits: exhibits, audit: recorder, tx: tx}
}

// Add records a newly acquired exhibit.
func (s *Service) Add(ctx context.Context, museumID int64, title, category, dateAcquired string, params AddParams) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, dErrors.New(dErrors.CodeValidation, "exhibit title cannot be empty")
	}
	acquired, err := parseDate(dateAcquired)
	if err != nil {
		return 0, err
	}
	if acquired.After(requestcontext.Now(ctx)) {
		return 0, dErrors.New(dErrors.CodeValidation, "acquisition date cannot be in the future")
	}
	if params.Value < 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "exhibit value cannot be negative")
	}
	if params.Value > highValueThreshold && params.Condition == "" {
		return 0, dErrors.Newf(dErrors.CodeValidation, "high-value items (>%d) must have condition specified", highValueThreshold)
	}
	condition := params.Condition
	if condition == "" {
		condition = domain.ConditionGood
	}
	if !condition.Valid() {
		return 0, invalidCondition()
	}

	var exhibitID int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.exhibits.Create(txCtx, domain.Exhibit{
			MuseumID:     museumID,
			Title:        title,
			Category:     category,
			DateAcquired: acquired,
			Description:  params.Description,
			Condition:    condition,
			Value:        params.Value,
		})
		if errors.Is(err, sentinel.ErrForeignKey) {
			return dErrors.Newf(dErrors.CodeReference, "museum %d does not exist", museumID)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "create exhibit")
		}
		exhibitID = id
		return s.audit.Record(txCtx, exhibitTable, domain.AuditInsert, id, fmt.Sprintf("Added exhibit: %s", title))
	})
	if err != nil {
		return 0, err
	}
	return exhibitID, nil
}

// UpdateCondition sets the condition of an exhibit to one of the five known
// states.
func (s *Service) UpdateCondition(ctx context.Context, exhibitID int64, condition domain.Condition) error {
	if !condition.Valid() {
		return invalidCondition()
	}
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		err := s.exhibits.UpdateCondition(txCtx, exhibitID, condition)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "exhibit %d not found", exhibitID)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "update exhibit condition")
		}
		return s.audit.Record(txCtx, exhibitTable, domain.AuditUpdate, exhibitID, fmt.Sprintf("Updated condition to: %s", condition))
	})
}

// FlagForRestoration marks an exhibit as requiring restoration work.
func (s *Service) FlagForRestoration(ctx context.Context, exhibitID int64) error {
	return s.UpdateCondition(ctx, exhibitID, domain.ConditionRestoration)
}

// Search matches the term case-insensitively against exhibit titles and
// categories. The trimmed term must be at least 2 characters.
func (s *Service) Search(ctx context.Context, term string) ([]domain.Exhibit, error) {
	term = strings.TrimSpace(term)
	if len(term) < 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "search term must be at least 2 characters")
	}
	results, err := s.exhibits.Search(ctx, term)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "search exhibits")
	}
	return results, nil
}

// ByCondition lists exhibits currently in the given condition.
func (s *Service) ByCondition(ctx context.Context, condition domain.Condition) ([]domain.Exhibit, error) {
	if !condition.Valid() {
		return nil, invalidCondition()
	}
	results, err := s.exhibits.ByCondition(ctx, condition)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "list exhibits by condition")
	}
	return results, nil
}

// Valuable lists exhibits at or above the given value, highest first, for
// insurance review.
func (s *Service) Valuable(ctx context.Context, minValue float64) ([]domain.Exhibit, error) {
	results, err := s.exhibits.Valuable(ctx, minValue)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "list valuable exhibits")
	}
	return results, nil
}

// Top ranks exhibits by maintenance-action count descending, ties broken by
// most recent maintenance date, limited to the top 10.
func (s *Service) Top(ctx context.Context) ([]domain.ExhibitMaintenanceRank, error) {
	ranks, err := s.exhibits.TopByMaintenance(ctx, topLimit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "rank exhibits by maintenance")
	}
	return ranks, nil
}

// Remove deletes an exhibit. Exhibits with maintenance history are
// protected: their removal is rejected so the history keeps its subject.
func (s *Service) Remove(ctx context.Context, exhibitID int64) error {
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		hasHistory, err := s.exhibits.HasMaintenanceHistory(txCtx, exhibitID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "check maintenance history")
		}
		if hasHistory {
			return dErrors.Newf(dErrors.CodeReference, "exhibit %d has maintenance history and cannot be deleted", exhibitID)
		}
		err = s.exhibits.Delete(txCtx, exhibitID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "exhibit %d not found", exhibitID)
		}
		if errors.Is(err, sentinel.ErrForeignKey) {
			return dErrors.Newf(dErrors.CodeReference, "exhibit %d has maintenance history and cannot be deleted", exhibitID)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "delete exhibit")
		}
		return s.audit.Record(txCtx, exhibitTable, domain.AuditDelete, exhibitID, fmt.Sprintf("Removed exhibit %d", exhibitID))
	})
}

func invalidCondition() error {
	return dErrors.New(dErrors.CodeValidation,
		"invalid condition. Must be one of: Excellent, Good, Fair, Poor, Restoration Required")
}
