package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/core/auth"
	"github.com/ogurasousui/ems-api/internal/core/dashboard"
	"github.com/ogurasousui/ems-api/internal/core/department"
	"github.com/ogurasousui/ems-api/internal/core/employee"
	"github.com/ogurasousui/ems-api/internal/core/position"
	"github.com/ogurasousui/ems-api/internal/platform/token"
	"go.uber.org/zap"
)

type stubEmployeeService struct {
	listFn   func(ctx context.Context, criteria employee.ListCriteria) (*employee.ListResult, error)
	getFn    func(ctx context.Context, id int64) (*employee.Employee, error)
	createFn func(ctx context.Context, in employee.CreateInput) (int64, error)
	updateFn func(ctx context.Context, id int64, in employee.UpdateInput) (int64, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubEmployeeService) List(ctx context.Context, criteria employee.ListCriteria) (*employee.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, criteria)
	}
	return &employee.ListResult{Employees: []*employee.Employee{}}, nil
}

func (s *stubEmployeeService) Get(ctx context.Context, id int64) (*employee.Employee, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeService) Create(ctx context.Context, in employee.CreateInput) (int64, error) {
	if s.createFn != nil {
		return s.createFn(ctx, in)
	}
	return 1, nil
}

func (s *stubEmployeeService) Update(ctx context.Context, id int64, in employee.UpdateInput) (int64, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, in)
	}
	return 1, nil
}

func (s *stubEmployeeService) Delete(ctx context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in auth.RegisterInput) (int64, error)
	loginFn    func(ctx context.Context, in auth.LoginInput) (*auth.LoginResult, error)
	meFn       func(ctx context.Context, id int64) (*employee.Employee, error)
}

func (s *stubAuthService) Register(ctx context.Context, in auth.RegisterInput) (int64, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, in)
	}
	return 1, nil
}

func (s *stubAuthService) Login(ctx context.Context, in auth.LoginInput) (*auth.LoginResult, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, in)
	}
	return nil, auth.ErrInvalidCredentials
}

func (s *stubAuthService) Me(ctx context.Context, id int64) (*employee.Employee, error) {
	if s.meFn != nil {
		return s.meFn(ctx, id)
	}
	return nil, employee.ErrEmployeeNotFound
}

type stubDepartmentService struct {
	listFn func(ctx context.Context) ([]*department.Department, error)
}

func (s *stubDepartmentService) List(ctx context.Context) ([]*department.Department, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return []*department.Department{}, nil
}

func (s *stubDepartmentService) Get(_ context.Context, _ int64) (*department.Department, error) {
	return nil, department.ErrDepartmentNotFound
}

func (s *stubDepartmentService) Create(_ context.Context, _ department.CreateInput) (int64, error) {
	return 1, nil
}

func (s *stubDepartmentService) Update(_ context.Context, _ int64, _ department.UpdateInput) (int64, error) {
	return 1, nil
}

func (s *stubDepartmentService) Delete(_ context.Context, _ int64) error {
	return nil
}

type stubPositionService struct{}

func (stubPositionService) List(_ context.Context) ([]*position.Position, error) {
	return []*position.Position{}, nil
}

func (stubPositionService) Get(_ context.Context, _ int64) (*position.Position, error) {
	return nil, position.ErrPositionNotFound
}

func (stubPositionService) Create(_ context.Context, _ position.CreateInput) (int64, error) {
	return 1, nil
}

func (stubPositionService) Update(_ context.Context, _ int64, _ position.UpdateInput) (int64, error) {
	return 1, nil
}

func (stubPositionService) Delete(_ context.Context, _ int64) error {
	return nil
}

type stubDashboardService struct {
	statsFn func(ctx context.Context) (*dashboard.Stats, error)
}

func (s *stubDashboardService) Stats(ctx context.Context) (*dashboard.Stats, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return &dashboard.Stats{}, nil
}

type testEnv struct {
	router *gin.Engine
	tokens *token.Manager

	employees *stubEmployeeService
	auth      *stubAuthService
	dashboard *stubDashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	tokens := token.NewManager("test-secret", time.Hour)

	env := &testEnv{
		tokens:    tokens,
		employees: &stubEmployeeService{},
		auth:      &stubAuthService{},
		dashboard: &stubDashboardService{},
	}

	env.router = NewRouter(log, tokens, Handlers{
		Auth:        NewAuthHandler(env.auth, log),
		Employees:   NewEmployeeHandler(env.employees, log),
		Departments: NewDepartmentHandler(&stubDepartmentService{}, log),
		Positions:   NewPositionHandler(stubPositionService{}, log),
		Dashboard:   NewDashboardHandler(env.dashboard, log),
	})

	return env
}

func (e *testEnv) tokenFor(t *testing.T, role string) string {
	t.Helper()

	signed, err := e.tokens.Issue(1, "tester", role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	paths := []string{"/api/employees", "/api/departments", "/api/positions", "/api/dashboard/stats"}
	for _, path := range paths {
		rec := env.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s without token, got %d", path, rec.Code)
		}
	}
}

func TestRouter_RoleMatrix(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.employees.deleteFn = func(_ context.Context, _ int64) error { return nil }

	cases := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"employee list denied for EMPLOYEE", http.MethodGet, "/api/employees", "EMPLOYEE", http.StatusForbidden},
		{"employee list allowed for HR", http.MethodGet, "/api/employees", "HR", http.StatusOK},
		{"employee list allowed for ADMIN", http.MethodGet, "/api/employees", "ADMIN", http.StatusOK},
		// 本人参照があるため ID 取得はロールを問わない(スタブは 404)。
		{"employee get open to EMPLOYEE", http.MethodGet, "/api/employees/1", "EMPLOYEE", http.StatusNotFound},
		{"employee create denied for EMPLOYEE", http.MethodPost, "/api/employees", "EMPLOYEE", http.StatusForbidden},
		{"employee update denied for EMPLOYEE", http.MethodPut, "/api/employees/1", "EMPLOYEE", http.StatusForbidden},
		{"employee delete denied for HR", http.MethodDelete, "/api/employees/1", "HR", http.StatusForbidden},
		{"employee delete allowed for ADMIN", http.MethodDelete, "/api/employees/1", "ADMIN", http.StatusOK},
		{"department list open to EMPLOYEE", http.MethodGet, "/api/departments", "EMPLOYEE", http.StatusOK},
		{"department create denied for EMPLOYEE", http.MethodPost, "/api/departments", "EMPLOYEE", http.StatusForbidden},
		{"department update denied for EMPLOYEE", http.MethodPut, "/api/departments/1", "EMPLOYEE", http.StatusForbidden},
		{"department delete denied for HR", http.MethodDelete, "/api/departments/1", "HR", http.StatusForbidden},
		{"department delete allowed for ADMIN", http.MethodDelete, "/api/departments/1", "ADMIN", http.StatusOK},
		{"position list open to EMPLOYEE", http.MethodGet, "/api/positions", "EMPLOYEE", http.StatusOK},
		{"position create denied for EMPLOYEE", http.MethodPost, "/api/positions", "EMPLOYEE", http.StatusForbidden},
		{"position delete denied for HR", http.MethodDelete, "/api/positions/1", "HR", http.StatusForbidden},
		{"position delete allowed for ADMIN", http.MethodDelete, "/api/positions/1", "ADMIN", http.StatusOK},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := env.do(t, tc.method, tc.path, env.tokenFor(t, tc.role), nil)
			if rec.Code != tc.want {
				t.Fatalf("%s %s as %s: expected %d, got %d", tc.method, tc.path, tc.role, tc.want, rec.Code)
			}
		})
	}
}

func TestRouter_ForbiddenMessage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/employees", env.tokenFor(t, "EMPLOYEE"), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for EMPLOYEE role, got %d", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["Message"] != "Forbidden: Insufficient permissions" {
		t.Fatalf("unexpected message %v", body["Message"])
	}
}

func TestRouter_InvalidToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/employees", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}

	var body map[string]any
	decodeBody(t, rec, &body)
	if body["Message"] != "Invalid token" {
		t.Fatalf("unexpected message %v", body["Message"])
	}
}

func TestRouter_SetsRequestIDHeader(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected X-Request-Id header to be set")
	}
}

func TestRouter_DashboardStats(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.dashboard.statsFn = func(_ context.Context) (*dashboard.Stats, error) {
		return &dashboard.Stats{TotalEmployees: 12, ActiveEmployees: 9, Departments: 3, Positions: 4, ActiveRate: 75}, nil
	}

	rec := env.do(t, http.MethodGet, "/api/dashboard/stats", env.tokenFor(t, "EMPLOYEE"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Status     bool `json:"Status"`
		ResultOnDb struct {
			TotalEmployees int64 `json:"totalEmployees"`
			ActiveRate     int64 `json:"activeRate"`
		} `json:"ResultOnDb"`
	}
	decodeBody(t, rec, &body)

	if !body.Status || body.ResultOnDb.TotalEmployees != 12 || body.ResultOnDb.ActiveRate != 75 {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
