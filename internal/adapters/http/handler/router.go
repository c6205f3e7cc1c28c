package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/core/employee"
	"github.com/ogurasousui/ems-api/internal/platform/token"
	"go.uber.org/zap"
)

// Handlers はルーターに登録するハンドラの集合です。
type Handlers struct {
	Auth        *AuthHandler
	Employees   *EmployeeHandler
	Departments *DepartmentHandler
	Positions   *PositionHandler
	Dashboard   *DashboardHandler
}

// NewRouter は全エンドポイントを配線した gin.Engine を構築します。
// register / login 以外の API は Bearer トークン必須。参照系は認証のみ、
// 社員一覧・作成・更新と部署/役職の作成・更新は HR / ADMIN、削除は
// ADMIN のみ許可します(社員の ID 取得は本人参照のため認証のみ)。
func NewRouter(log *zap.Logger, tokens *token.Manager, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.GET("/me", Auth(tokens), h.Auth.Me)

	protected := api.Group("", Auth(tokens))

	hrOrAdmin := RequireRole(string(employee.RoleHR), string(employee.RoleAdmin))
	adminOnly := RequireRole(string(employee.RoleAdmin))

	employees := protected.Group("/employees")
	employees.GET("", hrOrAdmin, h.Employees.List)
	employees.GET("/:id", h.Employees.Get)
	employees.POST("", hrOrAdmin, h.Employees.Create)
	employees.PUT("/:id", hrOrAdmin, h.Employees.Update)
	employees.DELETE("/:id", adminOnly, h.Employees.Delete)

	departments := protected.Group("/departments")
	departments.GET("", h.Departments.List)
	departments.GET("/:id", h.Departments.Get)
	departments.POST("", hrOrAdmin, h.Departments.Create)
	departments.PUT("/:id", hrOrAdmin, h.Departments.Update)
	departments.DELETE("/:id", adminOnly, h.Departments.Delete)

	positions := protected.Group("/positions")
	positions.GET("", h.Positions.List)
	positions.GET("/:id", h.Positions.Get)
	positions.POST("", hrOrAdmin, h.Positions.Create)
	positions.PUT("/:id", hrOrAdmin, h.Positions.Update)
	positions.DELETE("/:id", adminOnly, h.Positions.Delete)

	protected.GET("/dashboard/stats", h.Dashboard.Stats)

	return router
}
