package department

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidID          = errors.New("department: invalid id")
	ErrInvalidName        = errors.New("department: invalid name")
	ErrDepartmentNotFound = errors.New("department: not found")
)

// Department は部署エンティティです。
type Department struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository は部署永続化の抽象です。Delete は物理削除です。
type Repository interface {
	List(ctx context.Context) ([]*Department, error)
	FindByID(ctx context.Context, id int64) (*Department, error)
	Create(ctx context.Context, d *Department) (int64, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// UpdateFields は部分更新で書き換えるカラムの集合です。
type UpdateFields struct {
	Name        *string
	Description *string
}

// Service は部署に関するユースケースをまとめます。
type Service struct {
	repo Repository
}

// UseCase は部署ユースケースの公開インターフェースです。
type UseCase interface {
	List(ctx context.Context) ([]*Department, error)
	Get(ctx context.Context, id int64) (*Department, error)
	Create(ctx context.Context, in CreateInput) (int64, error)
	Update(ctx context.Context, id int64, in UpdateInput) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput は部署作成時の入力です。
type CreateInput struct {
	Name        string
	Description *string
}

// UpdateInput は部署更新時の入力です。nil のフィールドは変更されません。
type UpdateInput struct {
	Name        *string
	Description *string
}

// List は部署を名前順で返します。
func (s *Service) List(ctx context.Context) ([]*Department, error) {
	return s.repo.List(ctx)
}

// Get は ID で部署を取得します。
func (s *Service) Get(ctx context.Context, id int64) (*Department, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.FindByID(ctx, id)
}

// Create は部署を作成し、採番された ID を返します。
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, ErrInvalidName
	}
	return s.repo.Create(ctx, &Department{Name: name, Description: in.Description})
}

// Update は供給されたフィールドだけを書き換え、影響行数を返します。
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("id: %w", ErrInvalidID)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return 0, err
	}

	fields := UpdateFields{Description: in.Description}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return 0, ErrInvalidName
		}
		fields.Name = &name
	}

	return s.repo.Update(ctx, id, fields)
}

// Delete は部署を物理削除します。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}
