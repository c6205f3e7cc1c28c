package employee

import "time"

// Role は社員の権限ロールを表します。
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
)

// Status は社員の在籍状態を表します。削除は物理削除ではなく
// StatusInactive への遷移(ソフトデリート)で表現されます。
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Employee は社員エンティティです。DepartmentName / PositionName は
// 一覧表示用に JOIN で引いてくる非正規化フィールドで、参照先が
// 存在しない場合は nil のままです。PasswordHash は API レスポンスには
// 一切含めません。
type Employee struct {
	ID             int64
	EmployeeCode   string
	Username       string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Phone          *string
	DepartmentID   *int64
	DepartmentName *string
	PositionID     *int64
	PositionName   *string
	Role           Role
	Status         Status
	HireDate       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsValidRole は既知のロールかどうかを判定します。
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	default:
		return false
	}
}

// IsValidStatus は既知のステータスかどうかを判定します。
func IsValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}
