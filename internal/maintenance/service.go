// Package maintenance schedules conservation work and derives the
// prioritized maintenance plan and budget analytics.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"curator/internal/analytics"
	"curator/internal/audit"
	"curator/internal/domain"
	"curator/internal/storage"
	dErrors "curator/pkg/domain-errors"
	"curator/pkg/platform/sentinel"
	"curator/pkg/requestcontext"
)

const (
	maintenanceTable = "item_maintenance"

	// maxScheduleAheadDays bounds how far in advance work may be booked.
	maxScheduleAheadDays = 365
)

// ScheduleParams carries the optional attributes of a maintenance record.
type ScheduleParams struct {
	Cost  float64
	Notes string
}

// Service wraps maintenance persistence with validation and auditing.
type Service struct {
	records storage.MaintenanceStore
	audit   *audit.Recorder
	tx      storage.TxRunner
}

func NewService(records storage.MaintenanceStore, recorder *audit.Recorder, tx storage.TxRunner) *Service {
	return &Service{records: records, audit: recorder, tx: tx}
}

// Schedule books a maintenance action for an exhibit. Work cannot be booked
// more than a year ahead.
func (s *Service) Schedule(ctx context.Context, exhibitID int64, action, date, specialist string, params ScheduleParams) (int64, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return 0, dErrors.New(dErrors.CodeValidation, "maintenance type cannot be empty")
	}
	specialist = strings.TrimSpace(specialist)
	if specialist == "" {
		return 0, dErrors.New(dErrors.CodeValidation, "specialist name cannot be empty")
	}
	if params.Cost < 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "maintenance cost cannot be negative")
	}
	when, err := parseDate(date)
	if err != nil {
		return 0, err
	}
	if when.After(requestcontext.Now(ctx).AddDate(0, 0, maxScheduleAheadDays)) {
		return 0, dErrors.New(dErrors.CodeValidation, "cannot schedule maintenance more than 1 year in advance")
	}

	var recordID int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		id, err := s.records.Create(txCtx, domain.MaintenanceRecord{
			ExhibitID:  exhibitID,
			Action:     action,
			Date:       when,
			Specialist: specialist,
			Cost:       params.Cost,
			Notes:      params.Notes,
		})
		if errors.Is(err, sentinel.ErrForeignKey) {
			return dErrors.Newf(dErrors.CodeReference, "exhibit %d does not exist", exhibitID)
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeStore, "create maintenance record")
		}
		recordID = id
		return s.audit.Record(txCtx, maintenanceTable, domain.AuditInsert, id, fmt.Sprintf("Added maintenance for item %d", exhibitID))
	})
	if err != nil {
		return 0, err
	}
	return recordID, nil
}

// Plan generates the prioritized maintenance plan: exhibits whose latest
// maintenance is older than daysThreshold days, plus every exhibit never
// maintained, scored and ordered most urgent first.
func (s *Service) Plan(ctx context.Context, daysThreshold int) ([]domain.PlanItem, error) {
	candidates, err := s.records.Candidates(ctx, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "load maintenance candidates")
	}
	return analytics.BuildPlan(candidates, daysThreshold), nil
}

// Budget totals maintenance spend over the inclusive [start, end] range.
func (s *Service) Budget(ctx context.Context, startDate, endDate string) (domain.BudgetSummary, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return domain.BudgetSummary{}, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return domain.BudgetSummary{}, err
	}
	if end.Before(start) {
		return domain.BudgetSummary{}, dErrors.New(dErrors.CodeValidation, "end date is before start date")
	}

	records, err := s.records.ByDateRange(ctx, start, end)
	if err != nil {
		return domain.BudgetSummary{}, dErrors.Wrap(err, dErrors.CodeStore, "load maintenance records")
	}

	summary := domain.BudgetSummary{Start: start, End: end, TotalActions: len(records), Records: records}
	for _, r := range records {
		summary.TotalCost += r.Cost
	}
	if len(records) > 0 {
		summary.AvgCost = round2(summary.TotalCost / float64(len(records)))
	}
	summary.TotalCost = round2(summary.TotalCost)
	return summary, nil
}

// Summary aggregates the maintenance history per exhibit.
func (s *Service) Summary(ctx context.Context) ([]domain.MaintenanceSummaryRow, error) {
	rows, err := s.records.Summary(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "load maintenance summary")
	}
	return rows, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "invalid date format. Use YYYY-MM-DD")
	}
	return t, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
