package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/ems-api/internal/core/department"
	pgdb "github.com/ogurasousui/ems-api/internal/platform/db/postgres"
)

// DepartmentRepository は PostgreSQL を利用した部署永続化の実装です。
type DepartmentRepository struct {
	pool pgdb.Queryer
}

// NewDepartmentRepository は DepartmentRepository を生成します。
func NewDepartmentRepository(pool pgdb.Queryer) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// List は部署を名前順で返します。
func (r *DepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, description, created_at, updated_at
          FROM departments
         ORDER BY name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]*department.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// FindByID は ID で部署を取得します。
func (r *DepartmentRepository) FindByID(ctx context.Context, id int64) (*department.Department, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, name, description, created_at, updated_at
          FROM departments
         WHERE id = $1
         LIMIT 1
    `, id)

	return scanDepartment(row)
}

// Create は部署を作成し、採番された ID を返します。
func (r *DepartmentRepository) Create(ctx context.Context, d *department.Department) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
        INSERT INTO departments (name, description)
        VALUES ($1, $2)
        RETURNING id
    `, d.Name, d.Description).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update は供給されたフィールドだけを書き換え、影響行数を返します。
func (r *DepartmentRepository) Update(ctx context.Context, id int64, fields department.UpdateFields) (int64, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 3)

	next := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if fields.Name != nil {
		sets = append(sets, "name = "+next(*fields.Name))
	}
	if fields.Description != nil {
		sets = append(sets, "description = "+next(*fields.Description))
	}

	if len(sets) == 0 {
		return 0, nil
	}

	sets = append(sets, "updated_at = now()")
	idPlaceholder := next(id)

	tag, err := r.pool.Exec(ctx, `UPDATE departments SET `+strings.Join(sets, ", ")+` WHERE id = `+idPlaceholder, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete は部署を物理削除し、影響行数を返します。社員から参照されて
// いる部署は外部キー制約で削除できません。
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanDepartment(row pgx.Row) (*department.Department, error) {
	var (
		id          int64
		name        string
		description sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &name, &description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, err
	}

	return &department.Department{
		ID:          id,
		Name:        name,
		Description: nullStringPtr(description),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
