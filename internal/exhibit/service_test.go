package exhibit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"curator/internal/audit"
	"curator/internal/domain"
	"curator/internal/storage"
	dErrors "curator/pkg/domain-errors"
	"curator/pkg/requestcontext"
)

type ExhibitServiceSuite struct {
	suite.Suite
	mem      *storage.Memory
	svc      *Service
	ctx      context.Context
	museumID int64
}

func (s *ExhibitServiceSuite) SetupTest() {
	s.mem = storage.NewMemory()
	recorder := audit.NewRecorder(s.mem.Audit(), nil)
	s.svc = NewService(s.mem.Exhibits(), recorder, s.mem)
	s.ctx = requestcontext.WithActorID(context.Background(), 1)
	s.ctx = requestcontext.WithTime(s.ctx, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	id, err := s.mem.Museums().Create(s.ctx, domain.Museum{Name: "City Gallery", City: "Lisbon"})
	s.Require().NoError(err)
	s.museumID = id
}

func TestExhibitServiceSuite(t *testing.T) {
	suite.Run(t, new(ExhibitServiceSuite))
}

func (s *ExhibitServiceSuite) addExhibit(title string, params AddParams) int64 {
	id, err := s.svc.Add(s.ctx, s.museumID, title, "Art", "2020-01-15", params)
	s.Require().NoError(err)
	return id
}

func (s *ExhibitServiceSuite) TestAdd() {
	s.Run("records the exhibit with a default condition", func() {
		id := s.addExhibit("Starry Night Study", AddParams{Value: 900})
		got, err := s.mem.Exhibits().Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(domain.ConditionGood, got.Condition)
		s.Equal("Starry Night Study", got.Title)
	})

	s.Run("empty title is rejected", func() {
		_, err := s.svc.Add(s.ctx, s.museumID, "   ", "Art", "2020-01-15", AddParams{})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.EqualError(err, "exhibit title cannot be empty")
	})

	s.Run("malformed date is rejected", func() {
		_, err := s.svc.Add(s.ctx, s.museumID, "Bad Date", "Art", "15/01/2020", AddParams{})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.EqualError(err, "invalid date format. Use YYYY-MM-DD")
	})

	s.Run("future acquisition date is rejected", func() {
		_, err := s.svc.Add(s.ctx, s.museumID, "Time Machine", "Art", "2030-01-01", AddParams{})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.EqualError(err, "acquisition date cannot be in the future")
	})

	s.Run("negative value is rejected", func() {
		_, err := s.svc.Add(s.ctx, s.museumID, "Debt", "Art", "2020-01-15", AddParams{Value: -1})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("high-value exhibit requires an explicit condition", func() {
		_, err := s.svc.Add(s.ctx, s.museumID, "Crown Jewels", "Jewelry", "2020-01-15", AddParams{Value: 50000})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = s.svc.Add(s.ctx, s.museumID, "Crown Jewels", "Jewelry", "2020-01-15",
			AddParams{Value: 50000, Condition: domain.ConditionExcellent})
		s.NoError(err)
	})

	s.Run("unknown condition is rejected", func() {
		_, err := s.svc.Add(s.ctx, s.museumID, "Odd", "Art", "2020-01-15", AddParams{Condition: "Mint"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown museum is a reference error", func() {
		_, err := s.svc.Add(s.ctx, s.museumID+100, "Orphan", "Art", "2020-01-15", AddParams{})
		s.True(dErrors.HasCode(err, dErrors.CodeReference))
	})
}

func (s *ExhibitServiceSuite) TestUpdateCondition() {
	id := s.addExhibit("Vase", AddParams{})

	s.Run("updates and audits", func() {
		s.Require().NoError(s.svc.UpdateCondition(s.ctx, id, domain.ConditionFair))
		got, err := s.mem.Exhibits().Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(domain.ConditionFair, got.Condition)

		entries, err := s.mem.Audit().List(s.ctx, "museum_item", 10)
		s.Require().NoError(err)
		s.Require().NotEmpty(entries)
		s.Equal(domain.AuditUpdate, entries[0].Action)
		s.Equal("Updated condition to: Fair", entries[0].Details)
	})

	s.Run("rejects unknown condition", func() {
		err := s.svc.UpdateCondition(s.ctx, id, "Shiny")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown exhibit is not found", func() {
		err := s.svc.UpdateCondition(s.ctx, id+100, domain.ConditionGood)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ExhibitServiceSuite) TestFlagForRestoration() {
	id := s.addExhibit("Cracked Amphora", AddParams{})
	s.Require().NoError(s.svc.FlagForRestoration(s.ctx, id))

	got, err := s.mem.Exhibits().Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.ConditionRestoration, got.Condition)
}

func (s *ExhibitServiceSuite) TestSearch() {
	s.addExhibit("Ancient Greek Vase", AddParams{})
	s.addExhibit("Roman Coin", AddParams{})

	s.Run("matches case-insensitively", func() {
		found, err := s.svc.Search(s.ctx, "greek")
		s.Require().NoError(err)
		s.Require().Len(found, 1)
		s.Equal("Ancient Greek Vase", found[0].Title)
	})

	s.Run("short terms are rejected", func() {
		_, err := s.svc.Search(s.ctx, " a ")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("no match returns empty", func() {
		found, err := s.svc.Search(s.ctx, "zzzz")
		s.Require().NoError(err)
		s.Empty(found)
	})
}

func (s *ExhibitServiceSuite) TestByCondition() {
	s.addExhibit("Good One", AddParams{})
	s.addExhibit("Rough One", AddParams{Condition: domain.ConditionPoor})

	found, err := s.svc.ByCondition(s.ctx, domain.ConditionPoor)
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal("Rough One", found[0].Title)

	_, err = s.svc.ByCondition(s.ctx, "Sparkling")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ExhibitServiceSuite) TestValuable() {
	s.addExhibit("Trinket", AddParams{Value: 100})
	s.addExhibit("Masterpiece", AddParams{Value: 80000, Condition: domain.ConditionExcellent})
	s.addExhibit("Heirloom", AddParams{Value: 7000})

	found, err := s.svc.Valuable(s.ctx, 5000)
	s.Require().NoError(err)
	s.Require().Len(found, 2)
	s.Equal("Masterpiece", found[0].Title)
	s.Equal("Heirloom", found[1].Title)
}

func (s *ExhibitServiceSuite) TestRemove() {
	s.Run("removes an exhibit without history", func() {
		id := s.addExhibit("Disposable", AddParams{})
		s.Require().NoError(s.svc.Remove(s.ctx, id))
		_, err := s.mem.Exhibits().Get(s.ctx, id)
		s.Error(err)
	})

	s.Run("exhibit with maintenance history is protected", func() {
		id := s.addExhibit("Maintained", AddParams{})
		_, err := s.mem.Maintenance().Create(s.ctx, domain.MaintenanceRecord{
			ExhibitID:  id,
			Action:     "Cleaning",
			Date:       time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			Specialist: "Jo Restorer",
			Cost:       120,
		})
		s.Require().NoError(err)

		err = s.svc.Remove(s.ctx, id)
		s.True(dErrors.HasCode(err, dErrors.CodeReference))
	})

	s.Run("unknown exhibit is not found", func() {
		err := s.svc.Remove(s.ctx, 9999)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ExhibitServiceSuite) TestTop() {
	first := s.addExhibit("Workhorse", AddParams{})
	second := s.addExhibit("Resting", AddParams{})

	for i := 0; i < 3; i++ {
		_, err := s.mem.Maintenance().Create(s.ctx, domain.MaintenanceRecord{
			ExhibitID:  first,
			Action:     "Cleaning",
			Date:       time.Date(2023, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Specialist: "Jo Restorer",
		})
		s.Require().NoError(err)
	}
	_, err := s.mem.Maintenance().Create(s.ctx, domain.MaintenanceRecord{
		ExhibitID:  second,
		Action:     "Inspection",
		Date:       time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		Specialist: "Jo Restorer",
	})
	s.Require().NoError(err)

	ranks, err := s.svc.Top(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(ranks, 2)
	s.Equal("Workhorse", ranks[0].Title)
	s.Equal(3, ranks[0].MaintenanceCount)
	s.Equal("Resting", ranks[1].Title)
}
