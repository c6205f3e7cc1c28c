package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/ems-api/internal/core/position"
	pgdb "github.com/ogurasousui/ems-api/internal/platform/db/postgres"
)

// PositionRepository は PostgreSQL を利用した役職永続化の実装です。
type PositionRepository struct {
	pool pgdb.Queryer
}

// NewPositionRepository は PositionRepository を生成します。
func NewPositionRepository(pool pgdb.Queryer) *PositionRepository {
	return &PositionRepository{pool: pool}
}

// List は役職を名前順で返します。
func (r *PositionRepository) List(ctx context.Context) ([]*position.Position, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, description, created_at, updated_at
          FROM positions
         ORDER BY name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make([]*position.Position, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return positions, nil
}

// FindByID は ID で役職を取得します。
func (r *PositionRepository) FindByID(ctx context.Context, id int64) (*position.Position, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, name, description, created_at, updated_at
          FROM positions
         WHERE id = $1
         LIMIT 1
    `, id)

	return scanPosition(row)
}

// Create は役職を作成し、採番された ID を返します。
func (r *PositionRepository) Create(ctx context.Context, p *position.Position) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
        INSERT INTO positions (name, description)
        VALUES ($1, $2)
        RETURNING id
    `, p.Name, p.Description).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update は供給されたフィールドだけを書き換え、影響行数を返します。
func (r *PositionRepository) Update(ctx context.Context, id int64, fields position.UpdateFields) (int64, error) {
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

	tag, err := r.pool.Exec(ctx, `UPDATE positions SET `+strings.Join(sets, ", ")+` WHERE id = `+idPlaceholder, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete は役職を物理削除し、影響行数を返します。
func (r *PositionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanPosition(row pgx.Row) (*position.Position, error) {
	var (
		id          int64
		name        string
		description sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &name, &description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, position.ErrPositionNotFound
		}
		return nil, err
	}

	return &position.Position{
		ID:          id,
		Name:        name,
		Description: nullStringPtr(description),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
