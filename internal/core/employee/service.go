package employee

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// PasswordHasher は平文パスワードの一方向ハッシュ化を行います。
// 平文はハッシュ化後に保持・記録してはいけません。
type PasswordHasher interface {
	Hash(password string) (string, error)
}

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

// Service は社員に関するユースケースをまとめます。リクエストを跨る
// 状態は持ちません。
type Service struct {
	repo   Repository
	hasher PasswordHasher
	clock  Clock
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	List(ctx context.Context, criteria ListCriteria) (*ListResult, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, in CreateInput) (int64, error)
	Update(ctx context.Context, id int64, in UpdateInput) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// NewService は Service を生成します。
func NewService(repo Repository, hasher PasswordHasher, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, hasher: hasher, clock: clock}
}

// CreateInput は社員作成時の入力です。Role / Status が nil の場合は
// それぞれ EMPLOYEE / ACTIVE が適用されます。
type CreateInput struct {
	EmployeeCode string
	Username     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Phone        *string
	DepartmentID int64
	PositionID   int64
	Role         *Role
	Status       *Status
	HireDate     *time.Time
}

// UpdateInput は社員更新時の入力です。nil のフィールドは変更されません。
type UpdateInput struct {
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

// ListResult は一覧取得の結果で、1 ページ分の社員とフィルタに一致する
// 総件数を持ちます。
type ListResult struct {
	Employees []*Employee
	Total     int64
}

// List は条件に一致する社員の 1 ページ分と総件数を返します。一覧と
// 件数のクエリは互いに独立しているため並行に実行します。
func (s *Service) List(ctx context.Context, criteria ListCriteria) (*ListResult, error) {
	normalized, err := criteria.Normalize()
	if err != nil {
		return nil, err
	}

	var (
		employees []*Employee
		total     int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, listErr := s.repo.List(gctx, normalized)
		if listErr != nil {
			return listErr
		}
		employees = rows
		return nil
	})
	g.Go(func() error {
		count, countErr := s.repo.Count(gctx, normalized)
		if countErr != nil {
			return countErr
		}
		total = count
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ListResult{Employees: employees, Total: total}, nil
}

// Get は ID で社員を取得します。ソフトデリート済みのレコードも
// INACTIVE のまま返します。
func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	return s.repo.FindByID(ctx, id)
}

// Create は新しい社員を作成し、採番された ID を返します。メールと
// 社員コードの重複は事前チェックで弾きます。チェックと INSERT は
// トランザクションで括っていないため、同時作成はストアの一意制約まで
// 到達することがあります(その場合は制約違反として返ります)。
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	code := strings.TrimSpace(in.EmployeeCode)
	if code == "" {
		return 0, ErrInvalidEmployeeCode
	}

	username := strings.TrimSpace(in.Username)
	if len(username) < minUsernameLength {
		return 0, ErrInvalidUsername
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return 0, err
	}

	if len(in.Password) < minPasswordLength {
		return 0, ErrInvalidPassword
	}

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return 0, ErrInvalidName
	}

	if in.DepartmentID <= 0 {
		return 0, ErrInvalidDepartment
	}
	if in.PositionID <= 0 {
		return 0, ErrInvalidPosition
	}

	role := RoleEmployee
	if in.Role != nil {
		if !IsValidRole(*in.Role) {
			return 0, ErrInvalidRole
		}
		role = *in.Role
	}

	status := StatusActive
	if in.Status != nil {
		if !IsValidStatus(*in.Status) {
			return 0, ErrInvalidStatus
		}
		status = *in.Status
	}

	taken, err := s.repo.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrEmailAlreadyExists
	}

	taken, err = s.repo.ExistsByCode(ctx, code, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrEmployeeCodeAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	departmentID := in.DepartmentID
	positionID := in.PositionID

	return s.repo.Create(ctx, &Employee{
		EmployeeCode: code,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        in.Phone,
		DepartmentID: &departmentID,
		PositionID:   &positionID,
		Role:         role,
		Status:       status,
		HireDate:     in.HireDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Update は供給されたフィールドだけを書き換える疎更新を行い、影響
// 行数を返します。社員コードを変更する場合は自身を除いた重複チェックを
// 先に行います。
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("id: %w", ErrInvalidID)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	fields := UpdateFields{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		DepartmentID: in.DepartmentID,
		PositionID:   in.PositionID,
		HireDate:     in.HireDate,
	}

	if in.EmployeeCode != nil {
		code := strings.TrimSpace(*in.EmployeeCode)
		if code == "" {
			return 0, ErrInvalidEmployeeCode
		}
		if code != existing.EmployeeCode {
			taken, err := s.repo.ExistsByCode(ctx, code, id)
			if err != nil {
				return 0, err
			}
			if taken {
				return 0, ErrEmployeeCodeAlreadyExists
			}
		}
		fields.EmployeeCode = &code
	}

	if in.Role != nil {
		if !IsValidRole(*in.Role) {
			return 0, ErrInvalidRole
		}
		fields.Role = in.Role
	}

	if in.Status != nil {
		if !IsValidStatus(*in.Status) {
			return 0, ErrInvalidStatus
		}
		fields.Status = in.Status
	}

	return s.repo.Update(ctx, id, fields)
}

// Delete は社員を INACTIVE に遷移させます(ソフトデリート)。
// レコード自体は残るため、Get は以後も INACTIVE のまま返します。
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	affected, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(addr.Address), nil
}
