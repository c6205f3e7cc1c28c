package postgres

import (
	"context"

	"github.com/ogurasousui/ems-api/internal/core/dashboard"
	pgdb "github.com/ogurasousui/ems-api/internal/platform/db/postgres"
)

// DashboardRepository は集計カウントを 1 クエリで取得します。
type DashboardRepository struct {
	pool pgdb.Queryer
}

// NewDashboardRepository は DashboardRepository を生成します。
func NewDashboardRepository(pool pgdb.Queryer) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Collect は社員・部署・役職の件数をまとめて返します。
func (r *DashboardRepository) Collect(ctx context.Context) (*dashboard.Stats, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT (SELECT COUNT(*) FROM employees),
               (SELECT COUNT(*) FROM employees WHERE status = 'ACTIVE'),
               (SELECT COUNT(*) FROM departments),
               (SELECT COUNT(*) FROM positions)
    `)

	var stats dashboard.Stats
	if err := row.Scan(&stats.TotalEmployees, &stats.ActiveEmployees, &stats.Departments, &stats.Positions); err != nil {
		return nil, err
	}

	return &stats, nil
}
