package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/ems-api/internal/core/position"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPositionRepository_List(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewPositionRepository(mock)

	query := regexp.QuoteMeta(`
        SELECT id, name, description, created_at, updated_at
          FROM positions
         ORDER BY name
    `)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
		AddRow(int64(1), "Engineer", nil, now, now).
		AddRow(int64(2), "Manager", "Leads a team", now, now)

	mock.ExpectQuery(query).WillReturnRows(rows)

	positions, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if len(positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(positions))
	}

	if positions[0].Description != nil {
		t.Fatalf("expected nil description, got %v", *positions[0].Description)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPositionRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewPositionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`
        SELECT id, name, description, created_at, updated_at
          FROM positions
         WHERE id = $1
         LIMIT 1
    `)).
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.FindByID(context.Background(), 3); !errors.Is(err, position.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}

func TestPositionRepository_Update_DescriptionOnly(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewPositionRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE positions SET description = $1, updated_at = now() WHERE id = $2`)).
		WithArgs("Leads a team", int64(2)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	desc := "Leads a team"
	affected, err := repo.Update(context.Background(), 2, position.UpdateFields{Description: &desc})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
