package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/ems-api/internal/core/auth"
	"github.com/ogurasousui/ems-api/internal/core/department"
	"github.com/ogurasousui/ems-api/internal/core/employee"
	"github.com/ogurasousui/ems-api/internal/core/position"
)

// writeError はドメインエラーを HTTP ステータスとエンベロープに
// 変換します。未知のエラーはハンドラ側でログ出力済みの前提で
// 500 に丸めます。
func writeError(c *gin.Context, err error) {
	status, message := classify(err)
	c.JSON(status, apiResponse{Status: false, Message: message})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound, "Employee not found"
	case errors.Is(err, department.ErrDepartmentNotFound):
		return http.StatusNotFound, "Department not found"
	case errors.Is(err, position.ErrPositionNotFound):
		return http.StatusNotFound, "Position not found"
	case errors.Is(err, employee.ErrEmailAlreadyExists):
		return http.StatusConflict, "Email already exists"
	case errors.Is(err, employee.ErrEmployeeCodeAlreadyExists):
		return http.StatusConflict, "Employee ID already exists"
	case errors.Is(err, auth.ErrAccountAlreadyExists):
		return http.StatusConflict, "User already exists"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case isValidationError(err):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		employee.ErrInvalidID,
		employee.ErrInvalidEmployeeCode,
		employee.ErrInvalidUsername,
		employee.ErrInvalidEmail,
		employee.ErrInvalidPassword,
		employee.ErrInvalidName,
		employee.ErrInvalidRole,
		employee.ErrInvalidStatus,
		employee.ErrInvalidDepartment,
		employee.ErrInvalidPosition,
		department.ErrInvalidID,
		department.ErrInvalidName,
		position.ErrInvalidID,
		position.ErrInvalidName,
		auth.ErrInvalidUsername,
		auth.ErrInvalidEmail,
		auth.ErrInvalidPassword,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
