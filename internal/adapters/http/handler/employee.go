package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/core/employee"
	"go.uber.org/zap"
)

const (
	dateLayout = "2006-01-02"

	// コアの ListCriteria は limit に上限を設けないため、外部入力は
	// ここで丸めます。
	maxPageSize = 100
)

// EmployeeHandler は社員 CRUD の HTTP ハンドラです。
type EmployeeHandler struct {
	svc employee.UseCase
	log *zap.Logger
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(svc employee.UseCase, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, log: log}
}

type employeeResponse struct {
	ID             int64   `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          *string `json:"phone"`
	DepartmentID   *int64  `json:"department_id"`
	DepartmentName *string `json:"department_name"`
	PositionID     *int64  `json:"position_id"`
	PositionName   *string `json:"position_name"`
	Role           string  `json:"role"`
	Status         string  `json:"status"`
	HireDate       *string `json:"hire_date"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func toEmployeeResponse(e *employee.Employee) employeeResponse {
	var hireDate *string
	if e.HireDate != nil {
		formatted := e.HireDate.Format(dateLayout)
		hireDate = &formatted
	}

	return employeeResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeCode,
		Username:       e.Username,
		Email:          e.Email,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Phone:          e.Phone,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		PositionID:     e.PositionID,
		PositionName:   e.PositionName,
		Role:           string(e.Role),
		Status:         string(e.Status),
		HireDate:       hireDate,
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      e.UpdatedAt.Format(time.RFC3339),
	}
}

type createEmployeeRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"required"`
	Username     string  `json:"username" binding:"required"`
	Email        string  `json:"email" binding:"required"`
	Password     string  `json:"password" binding:"required"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Phone        *string `json:"phone"`
	DepartmentID int64   `json:"department_id" binding:"required"`
	PositionID   int64   `json:"position_id" binding:"required"`
	Role         *string `json:"role"`
	Status       *string `json:"status"`
	HireDate     *string `json:"hire_date"`
}

type updateEmployeeRequest struct {
	EmployeeID   *string `json:"employee_id"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Phone        *string `json:"phone"`
	DepartmentID *int64  `json:"department_id"`
	PositionID   *int64  `json:"position_id"`
	Role         *string `json:"role"`
	Status       *string `json:"status"`
	HireDate     *string `json:"hire_date"`
}

// List は GET /api/employees を処理します。
func (h *EmployeeHandler) List(c *gin.Context) {
	criteria, err := parseListCriteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	result, err := h.svc.List(c.Request.Context(), criteria)
	if err != nil {
		h.logUnexpected(c, err)
		writeError(c, err)
		return
	}

	employees := make([]employeeResponse, 0, len(result.Employees))
	for _, e := range result.Employees {
		employees = append(employees, toEmployeeResponse(e))
	}

	c.JSON(http.StatusOK, apiResponse{
		Status:         true,
		ResultOnDb:     employees,
		TotalCountOnDb: result.Total,
		MethodOnDb:     "Get All Employees",
		Message:        "Success",
	})
}

// Get は GET /api/employees/:id を処理します。
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.logUnexpected(c, err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apiResponse{
		Status:         true,
		ResultOnDb:     toEmployeeResponse(found),
		TotalCountOnDb: 1,
		MethodOnDb:     "Get Employee By ID",
		Message:        "Success",
	})
}

// Create は POST /api/employees を処理します。
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	hireDate, err := parseDatePtr(req.HireDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), employee.CreateInput{
		EmployeeCode: req.EmployeeID,
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		Role:         rolePtr(req.Role),
		Status:       statusPtr(req.Status),
		HireDate:     hireDate,
	})
	if err != nil {
		h.logUnexpected(c, err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, apiResponse{
		Status:         true,
		ResultOnDb:     gin.H{"id": id},
		TotalCountOnDb: 1,
		MethodOnDb:     "Create Employee",
		Message:        "Employee created successfully",
	})
}

// Update は PUT /api/employees/:id を処理します。
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	hireDate, err := parseDatePtr(req.HireDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), id, employee.UpdateInput{
		EmployeeCode: req.EmployeeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		Role:         rolePtr(req.Role),
		Status:       statusPtr(req.Status),
		HireDate:     hireDate,
	}); err != nil {
		h.logUnexpected(c, err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apiResponse{
		Status:         true,
		TotalCountOnDb: 1,
		MethodOnDb:     "Update Employee",
		Message:        "Employee updated successfully",
	})
}

// Delete は DELETE /api/employees/:id を処理します(ソフトデリート)。
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.logUnexpected(c, err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apiResponse{
		Status:         true,
		TotalCountOnDb: 1,
		MethodOnDb:     "Delete Employee",
		Message:        "Employee deleted successfully",
	})
}

func (h *EmployeeHandler) logUnexpected(c *gin.Context, err error) {
	if status, _ := classify(err); status == http.StatusInternalServerError {
		h.log.Error("employee handler failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
}

func parseListCriteria(c *gin.Context) (employee.ListCriteria, error) {
	criteria := employee.ListCriteria{
		Search: c.Query("search"),
	}

	departmentID, err := queryInt64(c, "department_id")
	if err != nil {
		return employee.ListCriteria{}, err
	}
	criteria.DepartmentID = departmentID

	positionID, err := queryInt64(c, "position_id")
	if err != nil {
		return employee.ListCriteria{}, err
	}
	criteria.PositionID = positionID

	if role := c.Query("role"); role != "" {
		r := employee.Role(role)
		criteria.Role = &r
	}
	if status := c.Query("status"); status != "" {
		s := employee.Status(status)
		criteria.Status = &s
	}

	page, err := queryInt(c, "page")
	if err != nil {
		return employee.ListCriteria{}, err
	}
	criteria.Page = page

	limit, err := queryInt(c, "limit")
	if err != nil {
		return employee.ListCriteria{}, err
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	criteria.Limit = limit

	return criteria, nil
}

func parsePathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Invalid id"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseDatePtr(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func rolePtr(raw *string) *employee.Role {
	if raw == nil {
		return nil
	}
	role := employee.Role(*raw)
	return &role
}

func statusPtr(raw *string) *employee.Status {
	if raw == nil {
		return nil
	}
	status := employee.Status(*raw)
	return &status
}
