package dashboard

import "context"

// Stats はダッシュボード用の集計値です。ActiveRate は在籍中社員の
// 割合(百分率、四捨五入)です。
type Stats struct {
	TotalEmployees  int64
	ActiveEmployees int64
	Departments     int64
	Positions       int64
	ActiveRate      int64
}

// Repository は集計カウントの取得を抽象化します。
type Repository interface {
	Collect(ctx context.Context) (*Stats, error)
}

// Service はダッシュボードの集計ユースケースです。
type Service struct {
	repo Repository
}

// UseCase はダッシュボードユースケースの公開インターフェースです。
type UseCase interface {
	Stats(ctx context.Context) (*Stats, error)
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats は集計値を取得し、在籍率を計算して返します。
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Collect(ctx)
	if err != nil {
		return nil, err
	}

	if stats.TotalEmployees > 0 {
		stats.ActiveRate = (stats.ActiveEmployees*100 + stats.TotalEmployees/2) / stats.TotalEmployees
	}

	return stats, nil
}
