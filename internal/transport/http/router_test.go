package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"curator/internal/audit"
	"curator/internal/auth"
	"curator/internal/domain"
	"curator/internal/exhibit"
	"curator/internal/maintenance"
	"curator/internal/museum"
	"curator/internal/platform/logger"
	"curator/internal/platform/metrics"
	"curator/internal/storage"
	"curator/internal/visitor"
)

var testMetrics = metrics.New() // prometheus registration is global; share one set

type RouterSuite struct {
	suite.Suite
	mem        *storage.Memory
	srv        *httptest.Server
	adminToken string
}

func (s *RouterSuite) SetupTest() {
	s.mem = storage.NewMemory()
	log := logger.New()
	recorder := audit.NewRecorder(s.mem.Audit(), nil)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authSvc := auth.NewService(s.mem.Users(), recorder, s.mem)
	museumSvc := museum.NewService(s.mem.Museums(), recorder, s.mem)
	exhibitSvc := exhibit.NewService(s.mem.Exhibits(), recorder, s.mem)
	visitorSvc := visitor.NewService(s.mem.Visitors(), recorder, s.mem)
	maintenanceSvc := maintenance.NewService(s.mem.Maintenance(), recorder, s.mem)

	handler := NewHandler(log, testMetrics, tokens, authSvc, museumSvc, exhibitSvc, visitorSvc, maintenanceSvc, recorder)
	s.srv = httptest.NewServer(NewRouter(handler))

	hash, err := auth.HashPassword("admin123")
	s.Require().NoError(err)
	_, err = s.mem.Users().Create(context.Background(), domain.User{
		Username: "admin", PasswordHash: hash, Role: domain.RoleAdmin, Active: true,
	})
	s.Require().NoError(err)

	s.adminToken = s.login("admin", "admin123")
}

func (s *RouterSuite) TearDownTest() {
	s.srv.Close()
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) request(method, path, token string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.srv.URL+path, &buf)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *RouterSuite) decode(resp *http.Response, v any) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *RouterSuite) login(username, password string) string {
	resp := s.request(http.MethodPost, "/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var out struct {
		Token string `json:"token"`
	}
	s.decode(resp, &out)
	s.Require().NotEmpty(out.Token)
	return out.Token
}

func (s *RouterSuite) createUser(username, password string, role domain.Role) string {
	resp := s.request(http.MethodPost, "/auth/users", s.adminToken, map[string]string{
		"username": username, "password": password, "role": string(role),
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	return s.login(username, password)
}

func (s *RouterSuite) TestHealthz() {
	resp := s.request(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func (s *RouterSuite) TestLoginFailure() {
	resp := s.request(http.MethodPost, "/auth/login", "", map[string]string{
		"username": "admin", "password": "wrongpassword",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var out map[string]string
	s.decode(resp, &out)
	s.Equal("validation", out["error"])
}

func (s *RouterSuite) TestAuthRequired() {
	resp := s.request(http.MethodGet, "/museums", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodGet, "/museums", "garbage-token", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func (s *RouterSuite) TestRoleEnforcement() {
	viewerToken := s.createUser("viewer_john", "view1234", domain.RoleViewer)

	s.Run("viewer can read", func() {
		resp := s.request(http.MethodGet, "/museums", viewerToken, nil)
		s.Equal(http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("viewer cannot create museums", func() {
		resp := s.request(http.MethodPost, "/museums", viewerToken, map[string]string{
			"name": "Blocked", "city": "Lisbon",
		})
		s.Equal(http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("viewer cannot read the audit trail", func() {
		resp := s.request(http.MethodGet, "/audit", viewerToken, nil)
		s.Equal(http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("non-admin cannot create users", func() {
		curatorToken := s.createUser("curator_jane", "secure123", domain.RoleCurator)
		resp := s.request(http.MethodPost, "/auth/users", curatorToken, map[string]string{
			"username": "sneaky", "password": "secure123", "role": "viewer",
		})
		s.Equal(http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})
}

func (s *RouterSuite) TestMuseumAndExhibitFlow() {
	resp := s.request(http.MethodPost, "/museums", s.adminToken, map[string]string{
		"name": "City Gallery", "city": "Lisbon",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var created struct {
		MuseumID int64 `json:"museum_id"`
	}
	s.decode(resp, &created)
	s.Require().Positive(created.MuseumID)

	s.Run("duplicate museum maps to 409", func() {
		resp := s.request(http.MethodPost, "/museums", s.adminToken, map[string]string{
			"name": "City Gallery", "city": "Lisbon",
		})
		s.Equal(http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("validation failure maps to 400", func() {
		resp := s.request(http.MethodPost, "/museums", s.adminToken, map[string]string{
			"name": "", "city": "Lisbon",
		})
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	resp = s.request(http.MethodPost, "/exhibits", s.adminToken, map[string]any{
		"museum_id": created.MuseumID, "title": "Amphora", "category": "Pottery",
		"date_acquired": "2020-01-15", "value": 1200,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var exhibitOut struct {
		ExhibitID int64 `json:"exhibit_id"`
	}
	s.decode(resp, &exhibitOut)

	s.Run("exhibit for a missing museum maps to 409", func() {
		resp := s.request(http.MethodPost, "/exhibits", s.adminToken, map[string]any{
			"museum_id": created.MuseumID + 100, "title": "Orphan", "category": "Art",
			"date_acquired": "2020-01-15",
		})
		s.Equal(http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	s.Run("condition update and performance report", func() {
		resp := s.request(http.MethodPatch, "/exhibits/"+itoa(exhibitOut.ExhibitID)+"/condition", s.adminToken,
			map[string]string{"condition": "Fair"})
		s.Equal(http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = s.request(http.MethodGet, "/museums/"+itoa(created.MuseumID)+"/performance", s.adminToken, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		var report domain.PerformanceReport
		s.decode(resp, &report)
		s.Equal("City Gallery", report.MuseumName)
		s.NotEmpty(report.Recommendations)
	})

	s.Run("unknown museum performance maps to 404", func() {
		resp := s.request(http.MethodGet, "/museums/9999/performance", s.adminToken, nil)
		s.Equal(http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func (s *RouterSuite) TestVisitorAndMaintenanceFlow() {
	resp := s.request(http.MethodPost, "/museums", s.adminToken, map[string]string{
		"name": "City Gallery", "city": "Lisbon",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var museumOut struct {
		MuseumID int64 `json:"museum_id"`
	}
	s.decode(resp, &museumOut)

	resp = s.request(http.MethodPost, "/visitors", s.adminToken, map[string]string{
		"name": "Ana", "email": "Ana@Example.com", "membership": "Premium",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var visitorOut struct {
		VisitorID int64 `json:"visitor_id"`
	}
	s.decode(resp, &visitorOut)

	resp = s.request(http.MethodPost, "/visits", s.adminToken, map[string]any{
		"visitor_id": visitorOut.VisitorID, "museum_id": museumOut.MuseumID,
		"visit_date": "2024-05-20", "membership": "Premium", "rating": 5,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	s.Run("statistics include the discounted spend", func() {
		resp := s.request(http.MethodGet, "/visitors/statistics", s.adminToken, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		var stats domain.VisitorStatistics
		s.decode(resp, &stats)
		s.Equal(1, stats.TotalVisitors)
		s.Equal(11.25, stats.TotalRevenue)
	})

	s.Run("lookup is case-insensitive", func() {
		resp := s.request(http.MethodGet, "/visitors/lookup?email=ANA@example.com", s.adminToken, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		var v domain.Visitor
		s.decode(resp, &v)
		s.Equal("Ana", v.Name)
	})

	resp = s.request(http.MethodPost, "/exhibits", s.adminToken, map[string]any{
		"museum_id": museumOut.MuseumID, "title": "Amphora", "category": "Pottery",
		"date_acquired": "2020-01-15",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var exhibitOut struct {
		ExhibitID int64 `json:"exhibit_id"`
	}
	s.decode(resp, &exhibitOut)

	resp = s.request(http.MethodPost, "/maintenance", s.adminToken, map[string]any{
		"exhibit_id": exhibitOut.ExhibitID, "action": "Cleaning",
		"date": "2024-05-01", "specialist": "Jo Restorer", "cost": 120,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	s.Run("budget over the range", func() {
		resp := s.request(http.MethodGet, "/maintenance/budget?start=2024-01-01&end=2024-12-31", s.adminToken, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		var summary domain.BudgetSummary
		s.decode(resp, &summary)
		s.Equal(1, summary.TotalActions)
		s.Equal(120.0, summary.TotalCost)
	})

	s.Run("plan responds with a list", func() {
		resp := s.request(http.MethodGet, "/maintenance/plan?days=180", s.adminToken, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		var plan []domain.PlanItem
		s.decode(resp, &plan)
		s.NotNil(plan)
	})

	s.Run("audit trail records the mutations", func() {
		resp := s.request(http.MethodGet, "/audit?limit=100", s.adminToken, nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		var entries []domain.AuditEntry
		s.decode(resp, &entries)
		s.NotEmpty(entries)
	})
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
