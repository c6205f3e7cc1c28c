package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/core/auth"
	"github.com/ogurasousui/ems-api/internal/core/employee"
	"go.uber.org/zap"
)

// AuthHandler は登録・ログイン・自己参照の HTTP ハンドラです。
// レスポンス形状は既存クライアント互換のためエンベロープを使いません。
type AuthHandler struct {
	svc auth.UseCase
	log *zap.Logger
}

// NewAuthHandler は AuthHandler を生成します。
func NewAuthHandler(svc auth.UseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type accountResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toAccountResponse(e *employee.Employee) accountResponse {
	return accountResponse{
		ID:        e.ID,
		Username:  e.Username,
		Email:     e.Email,
		Role:      string(e.Role),
		FirstName: e.FirstName,
		LastName:  e.LastName,
	}
}

// Register は POST /api/auth/register を処理します。
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	id, err := h.svc.Register(c.Request.Context(), auth.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "userId": id})
}

// Login は POST /api/auth/login を処理します。
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	result, err := h.svc.Login(c.Request.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  toAccountResponse(result.Employee),
	})
}

// Me は GET /api/auth/me を処理します。
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	account, err := h.svc.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(account))
}

func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		h.log.Error("auth handler failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"message": message})
}
