package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/ems-api/internal/core/employee"
	pgdb "github.com/ogurasousui/ems-api/internal/platform/db/postgres"
)

const employeeSelectColumns = `
        SELECT e.id,
               e.employee_code,
               e.username,
               e.email,
               e.password_hash,
               e.first_name,
               e.last_name,
               e.phone,
               e.department_id,
               d.name,
               e.position_id,
               p.name,
               e.role,
               e.status,
               e.hire_date,
               e.created_at,
               e.updated_at
          FROM employees e
          LEFT JOIN departments d ON d.id = e.department_id
          LEFT JOIN positions p ON p.id = e.position_id`

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// buildEmployeeFilter は条件に応じた WHERE 句とバインド値を構築します。
// 検索語・フィルタ値は必ずプレースホルダ経由で渡し、SQL 文字列には
// 埋め込みません。検索の大文字小文字の扱いは PostgreSQL の LIKE に
// 従います(このレイヤでは正規化しません)。
func buildEmployeeFilter(criteria employee.ListCriteria) (string, []any) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 8)

	next := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if criteria.Search != "" {
		pattern := "%" + criteria.Search + "%"
		group := make([]string, 0, 4)
		for _, column := range []string{"e.first_name", "e.last_name", "e.email", "e.employee_code"} {
			group = append(group, column+" LIKE "+next(pattern))
		}
		conditions = append(conditions, "("+strings.Join(group, " OR ")+")")
	}

	if criteria.DepartmentID != nil {
		conditions = append(conditions, "e.department_id = "+next(*criteria.DepartmentID))
	}

	if criteria.PositionID != nil {
		conditions = append(conditions, "e.position_id = "+next(*criteria.PositionID))
	}

	if criteria.Role != nil {
		conditions = append(conditions, "e.role = "+next(string(*criteria.Role)))
	}

	if criteria.Status != nil {
		conditions = append(conditions, "e.status = "+next(string(*criteria.Status)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List は条件に一致する社員の 1 ページ分を作成日時の降順で返します。
func (r *EmployeeRepository) List(ctx context.Context, criteria employee.ListCriteria) ([]*employee.Employee, error) {
	whereClause, args := buildEmployeeFilter(criteria)

	args = append(args, criteria.Limit)
	limitPlaceholder := "$" + strconv.Itoa(len(args))
	args = append(args, criteria.Offset())
	offsetPlaceholder := "$" + strconv.Itoa(len(args))

	query := employeeSelectColumns + whereClause + `
         ORDER BY e.created_at DESC, e.id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0, max(criteria.Limit, 0))
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

// Count は条件に一致する総件数を返します。フィルタは社員テーブルの
// カラムしか参照しないため JOIN は不要です。
func (r *EmployeeRepository) Count(ctx context.Context, criteria employee.ListCriteria) (int64, error) {
	whereClause, args := buildEmployeeFilter(criteria)

	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees e`+whereClause, args...).Scan(&total)
	if err != nil {
		return 0, translateEmployeePgError(err)
	}
	return total, nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	row := r.pool.QueryRow(ctx, employeeSelectColumns+`
         WHERE e.id = $1
         LIMIT 1`, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// FindByEmail はメールアドレスで社員を取得します。認証のログイン経路が
// 使用します。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	row := r.pool.QueryRow(ctx, employeeSelectColumns+`
         WHERE e.email = $1
         LIMIT 1`, email)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// Create は社員を新規作成し、採番された ID を返します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
        INSERT INTO employees (employee_code, username, email, password_hash, first_name, last_name, phone, department_id, position_id, role, status, hire_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id
    `,
		nullableText(e.EmployeeCode),
		e.Username,
		e.Email,
		e.PasswordHash,
		e.FirstName,
		e.LastName,
		e.Phone,
		e.DepartmentID,
		e.PositionID,
		string(e.Role),
		string(e.Status),
		nullableDate(e.HireDate),
		e.CreatedAt,
		e.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, translateEmployeePgError(err)
	}
	return id, nil
}

// Update は供給されたフィールドだけを書き換える疎更新を行い、影響
// 行数を返します。更新対象がない場合はクエリを発行せず 0 を返します。
// updated_at はストア側で now() を適用します。
func (r *EmployeeRepository) Update(ctx context.Context, id int64, fields employee.UpdateFields) (int64, error) {
	if fields.IsEmpty() {
		return 0, nil
	}

	sets := make([]string, 0, 10)
	args := make([]any, 0, 10)

	next := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if fields.EmployeeCode != nil {
		sets = append(sets, "employee_code = "+next(*fields.EmployeeCode))
	}
	if fields.FirstName != nil {
		sets = append(sets, "first_name = "+next(*fields.FirstName))
	}
	if fields.LastName != nil {
		sets = append(sets, "last_name = "+next(*fields.LastName))
	}
	if fields.Phone != nil {
		sets = append(sets, "phone = "+next(*fields.Phone))
	}
	if fields.DepartmentID != nil {
		sets = append(sets, "department_id = "+next(*fields.DepartmentID))
	}
	if fields.PositionID != nil {
		sets = append(sets, "position_id = "+next(*fields.PositionID))
	}
	if fields.Role != nil {
		sets = append(sets, "role = "+next(string(*fields.Role)))
	}
	if fields.Status != nil {
		sets = append(sets, "status = "+next(string(*fields.Status)))
	}
	if fields.HireDate != nil {
		sets = append(sets, "hire_date = "+next(nullableDate(fields.HireDate)))
	}

	sets = append(sets, "updated_at = now()")

	idPlaceholder := next(id)
	query := `UPDATE employees SET ` + strings.Join(sets, ", ") + ` WHERE id = ` + idPlaceholder

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, translateEmployeePgError(err)
	}
	return tag.RowsAffected(), nil
}

// SoftDelete は社員を INACTIVE に遷移させ、影響行数を返します。
// 行は削除しません。
func (r *EmployeeRepository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET status = 'INACTIVE', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return 0, translateEmployeePgError(err)
	}
	return tag.RowsAffected(), nil
}

// ExistsByEmail はメールアドレスの重複有無を返します。excludeID が
// 正の場合はその ID のレコードを除外します(更新時の自己衝突回避)。
func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

// ExistsByCode は社員コードの重複有無を返します。
func (r *EmployeeRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	return r.exists(ctx, "employee_code", code, excludeID)
}

func (r *EmployeeRepository) exists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM employees WHERE ` + column + ` = $1`
	args := []any{value}
	if excludeID > 0 {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	query += `)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, translateEmployeePgError(err)
	}
	return exists, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id             int64
		code           sql.NullString
		username       string
		email          string
		passwordHash   string
		firstName      sql.NullString
		lastName       sql.NullString
		phone          sql.NullString
		departmentID   sql.NullInt64
		departmentName sql.NullString
		positionID     sql.NullInt64
		positionName   sql.NullString
		role           string
		status         string
		hireDate       sql.NullTime
		createdAt      time.Time
		updatedAt      time.Time
	)

	if err := row.Scan(
		&id,
		&code,
		&username,
		&email,
		&passwordHash,
		&firstName,
		&lastName,
		&phone,
		&departmentID,
		&departmentName,
		&positionID,
		&positionName,
		&role,
		&status,
		&hireDate,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	var hireDatePtr *time.Time
	if hireDate.Valid {
		t := hireDate.Time.UTC()
		date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		hireDatePtr = &date
	}

	return &employee.Employee{
		ID:             id,
		EmployeeCode:   code.String,
		Username:       username,
		Email:          email,
		PasswordHash:   passwordHash,
		FirstName:      firstName.String,
		LastName:       lastName.String,
		Phone:          nullStringPtr(phone),
		DepartmentID:   nullInt64Ptr(departmentID),
		DepartmentName: nullStringPtr(departmentName),
		PositionID:     nullInt64Ptr(positionID),
		PositionName:   nullStringPtr(positionName),
		Role:           employee.Role(role),
		Status:         employee.Status(status),
		HireDate:       hireDatePtr,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case "employees_email_key":
				return employee.ErrEmailAlreadyExists
			case "employees_employee_code_key":
				return employee.ErrEmployeeCodeAlreadyExists
			default:
				return err
			}
		case foreignKeyViolationCode:
			switch pgErr.ConstraintName {
			case "employees_department_id_fkey":
				return employee.ErrInvalidDepartment
			case "employees_position_id_fkey":
				return employee.ErrInvalidPosition
			default:
				return err
			}
		}
	}

	return err
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullableText(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableDate(value *time.Time) any {
	if value == nil {
		return nil
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
