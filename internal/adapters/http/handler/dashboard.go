package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/core/dashboard"
	"go.uber.org/zap"
)

// DashboardHandler は集計系エンドポイントの HTTP ハンドラです。
type DashboardHandler struct {
	svc dashboard.UseCase
	log *zap.Logger
}

// NewDashboardHandler は DashboardHandler を生成します。
func NewDashboardHandler(svc dashboard.UseCase, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: log}
}

type statsResponse struct {
	TotalEmployees int64 `json:"totalEmployees"`
	Departments    int64 `json:"departments"`
	Positions      int64 `json:"positions"`
	ActiveRate     int64 `json:"activeRate"`
}

// Stats は GET /api/dashboard/stats を処理します。
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("dashboard handler failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apiResponse{
		Status: true,
		ResultOnDb: statsResponse{
			TotalEmployees: stats.TotalEmployees,
			Departments:    stats.Departments,
			Positions:      stats.Positions,
			ActiveRate:     stats.ActiveRate,
		},
		Message: "Success",
	})
}
