package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/core/position"
	"go.uber.org/zap"
)

// PositionHandler は役職 CRUD の HTTP ハンドラです。
type PositionHandler struct {
	svc position.UseCase
	log *zap.Logger
}

// NewPositionHandler は PositionHandler を生成します。
func NewPositionHandler(svc position.UseCase, log *zap.Logger) *PositionHandler {
	return &PositionHandler{svc: svc, log: log}
}

type positionResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toPositionResponse(p *position.Position) positionResponse {
	return positionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

type positionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type updatePositionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// List は GET /api/positions を処理します。
func (h *PositionHandler) List(c *gin.Context) {
	positions, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logUnexpected(c, err)
		writeError(c, err)
		return
	}

	results := make([]positionResponse, 0, len(positions))
	for _, p := range positions {
		results = append(results, toPositionResponse(p))
	}

	c.JSON(http.StatusOK, apiResponse{
		Status:         true,
		ResultOnDb:     results,
		TotalCountOnDb: int64(len(results)),
		MethodOnDb:     "Get All Positions",
		Message:        "Success",
	})
}

// Get は GET /api/positions/:id を処理します。
func (h *PositionHandler) Get(c *gin.Context) {
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
		ResultOnDb:     toPositionResponse(found),
		TotalCountOnDb: 1,
		MethodOnDb:     "Get Position By ID",
		Message:        "Success",
	})
}

// Create は POST /api/positions を処理します。
func (h *PositionHandler) Create(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), position.CreateInput{
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
		MethodOnDb:     "Create Position",
		Message:        "Position created successfully",
	})
}

// Update は PUT /api/positions/:id を処理します。
func (h *PositionHandler) Update(c *gin.Context) {
	id, ok := parsePathID(c)
	if !ok {
		return
	}

	var req updatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Status: false, Message: "Validation error"})
		return
	}

	if _, err := h.svc.Update(c.Request.Context(), id, position.UpdateInput{
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
		MethodOnDb:     "Update Position",
		Message:        "Position updated successfully",
	})
}

// Delete は DELETE /api/positions/:id を処理します(物理削除)。
func (h *PositionHandler) Delete(c *gin.Context) {
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
		MethodOnDb:     "Delete Position",
		Message:        "Position deleted successfully",
	})
}

func (h *PositionHandler) logUnexpected(c *gin.Context, err error) {
	if status, _ := classify(err); status == http.StatusInternalServerError {
		h.log.Error("position handler failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
}
