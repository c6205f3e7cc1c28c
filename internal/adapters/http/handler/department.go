package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/core/department"
	"go.uber.org/zap"
)

// DepartmentHandler は部署 CRUD の HTTP ハンドラです。
type DepartmentHandler struct {
	svc department.UseCase
	log *zap.Logger
}

// NewDepartmentHandler は DepartmentHandler を生成します。
func NewDepartmentHandler(svc department.UseCase, log *zap.Logger) *DepartmentHandler {
	return &DepartmentHandler{svc: svc, log: log}
}

type departmentResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toDepartmentResponse(d *department.Department) departmentResponse {
	return departmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   d.UpdatedAt.Format(time.RFC3339),
	}
}

type departmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type updateDepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List は GET /api/departments を処理します。
func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logUnexpected(c, err)
		writeError(c, err)
		return
	}

	results := make([]departmentResponse, 0, len(departments))
	for _, d := range departments {
		results = append(results, toDepartmentResponse(d))
	}

	c.JSON(http.StatusOK, apiResponse{
		Status:         true,
		ResultOnDb:     results,
		TotalCountOnDb: int64(len(results)),
		MethodOnDb:     "Get All Departments",
		Message:        "Success",
	})
}

// Get は GET /api/departments/:id を処理します。
func (h *DepartmentHandler) Get(c *gin.Context) {
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
		ResultOnDb:     toDepartmentResponse(found),
		TotalCountOnDb: 1,
		MethodOnDb:     "Get Department By ID",
		Message:        "Success",
	})
}

// Create は POST /api/departments を処理します。
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), department.CreateInput{
		Name:        req.Name,
		Description: req.Description,
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
		MethodOnDb:     "Create Department",
		Message:        "Department created successfully",
	})
}

// Update は PUT /api/departments/:id を処理します。
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req updateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), id, department.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	}); err != nil {
		h.logUnexpected(c, err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apiResponse{
		Status:         true,
		TotalCountOnDb: 1,
		MethodOnDb:     "Update Department",
		Message:        "Department updated successfully",
	})
}

// Delete は DELETE /api/departments/:id を処理します(物理削除)。
func (h *DepartmentHandler) Delete(c *gin.Context) {
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
		MethodOnDb:     "Delete Department",
		Message:        "Department deleted successfully",
	})
}

func (h *DepartmentHandler) logUnexpected(c *gin.Context, err error) {
	if status, _ := classify(err); status == http.StatusInternalServerError {
		h.log.Error("department handler failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
}
