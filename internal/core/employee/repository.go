package employee

import (
	"context"
	"time"
)

// Repository は社員永続化の抽象です。List / FindByID / FindByEmail は
// 部署名・役職名を含む非正規化済みのエンティティを返します。
type Repository interface {
	List(ctx context.Context, criteria ListCriteria) ([]*Employee, error)
	Count(ctx context.Context, criteria ListCriteria) (int64, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Create(ctx context.Context, e *Employee) (int64, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (int64, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
}

// UpdateFields は部分更新で書き換えるカラムの集合です。nil のフィールドは
// 変更されません(疎更新)。email / username は作成後に変更できないため
// ここには含めません。
type UpdateFields struct {
	EmployeeCode *string
	FirstName    *string
	LastName     *string
	Phone        *string
	DepartmentID *int64
	PositionID   *int64
	Role         *Role
	Status       *Status
	HireDate     *time.Time
}

// IsEmpty は更新対象のフィールドが一つもない場合に true を返します。
func (f UpdateFields) IsEmpty() bool {
	return f.EmployeeCode == nil &&
		f.FirstName == nil &&
		f.LastName == nil &&
		f.Phone == nil &&
		f.DepartmentID == nil &&
		f.PositionID == nil &&
		f.Role == nil &&
		f.Status == nil &&
		f.HireDate == nil
}
