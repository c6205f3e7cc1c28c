package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ogurasousui/ems-api/internal/core/employee"
)

var (
	ErrInvalidUsername      = errors.New("auth: invalid username")
	ErrInvalidEmail         = errors.New("auth: invalid email")
	ErrInvalidPassword      = errors.New("auth: invalid password")
	ErrAccountAlreadyExists = errors.New("auth: account already exists")
	ErrInvalidCredentials   = errors.New("auth: invalid credentials")
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

// Store は認証が参照する社員レコードへのアクセスを抽象化します。
// employee.Repository がこの部分集合を満たします。
type Store interface {
	FindByID(ctx context.Context, id int64) (*employee.Employee, error)
	FindByEmail(ctx context.Context, email string) (*employee.Employee, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, e *employee.Employee) (int64, error)
}

// PasswordHasher は平文パスワードのハッシュ化と照合を行います。
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer は認証済みアカウントのアクセストークンを発行します。
type TokenIssuer interface {
	Issue(id int64, username, role string) (string, error)
}

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Service は登録・ログイン・自己参照の認証ユースケースをまとめます。
type Service struct {
	store  Store
	hasher PasswordHasher
	tokens TokenIssuer
	clock  Clock
}

// UseCase は認証ユースケースの公開インターフェースです。
type UseCase interface {
	Register(ctx context.Context, in RegisterInput) (int64, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Me(ctx context.Context, id int64) (*employee.Employee, error)
}

// NewService は Service を生成します。
func NewService(store Store, hasher PasswordHasher, tokens TokenIssuer, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{store: store, hasher: hasher, tokens: tokens, clock: clock}
}

// RegisterInput はアカウント登録時の入力です。
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput はログイン時の入力です。
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult はログイン成功時に返すトークンとアカウント情報です。
type LoginResult struct {
	Token    string
	Employee *employee.Employee
}

// Register は新しいアカウントを登録し、採番された ID を返します。
// 社員コードや部署の割り当ては後から社員 CRUD で行う前提で、ここでは
// 資格情報と既定ロール(EMPLOYEE)だけを持つレコードを作ります。
func (s *Service) Register(ctx context.Context, in RegisterInput) (int64, error) {
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

	taken, err := s.store.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrAccountAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	return s.store.Create(ctx, &employee.Employee{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         employee.RoleEmployee,
		Status:       employee.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Login は資格情報を検証し、アクセストークンを発行します。アカウントの
// 有無とパスワード不一致は区別せず ErrInvalidCredentials を返します。
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(account.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.Username, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, Employee: account}, nil
}

// Me はトークンに紐づくアカウントを取得します。
func (s *Service) Me(ctx context.Context, id int64) (*employee.Employee, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id: %w", employee.ErrInvalidID)
	}
	return s.store.FindByID(ctx, id)
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
