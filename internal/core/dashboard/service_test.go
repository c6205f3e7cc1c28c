package dashboard

import (
	"context"
	"errors"
	"testing"
)

type stubRepo struct {
	stats *Stats
	err   error
}

func (s stubRepo) Collect(_ context.Context) (*Stats, error) {
	if s.err != nil {
		return nil, s.err
	}
	copy := *s.stats
	return &copy, nil
}

func TestService_Stats_ActiveRate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		total  int64
		active int64
		want   int64
	}{
		{"all active", 10, 10, 100},
		{"half active", 10, 5, 50},
		{"rounds up", 3, 2, 67},
		{"rounds down", 3, 1, 33},
		{"no employees", 0, 0, 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(stubRepo{stats: &Stats{TotalEmployees: tc.total, ActiveEmployees: tc.active}})

			stats, err := svc.Stats(context.Background())
			if err != nil {
				t.Fatalf("Stats returned error: %v", err)
			}

			if stats.ActiveRate != tc.want {
				t.Errorf("expected active rate %d, got %d", tc.want, stats.ActiveRate)
			}
		})
	}
}

func TestService_Stats_RepositoryError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("collect failed")
	svc := NewService(stubRepo{err: wantErr})

	if _, err := svc.Stats(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}
