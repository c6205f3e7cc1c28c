package auth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/ogurasousui/ems-api/internal/core/employee"
)

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Compare(hash, password string) bool {
	return hash == "hashed:"+password
}

type stubIssuer struct {
	err error
}

func (s stubIssuer) Issue(id int64, username, role string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + strconv.FormatInt(id, 10) + "-" + username + "-" + role, nil
}

type fakeStore struct {
	accounts map[int64]*employee.Employee
	order    []int64
	seq      int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{accounts: make(map[int64]*employee.Employee)}
}

func (s *fakeStore) FindByID(_ context.Context, id int64) (*employee.Employee, error) {
	e, ok := s.accounts[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	copy := *e
	return &copy, nil
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*employee.Employee, error) {
	for _, id := range s.order {
		if s.accounts[id].Email == email {
			copy := *s.accounts[id]
			return &copy, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (s *fakeStore) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, id := range s.order {
		if id != excludeID && s.accounts[id].Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) Create(_ context.Context, e *employee.Employee) (int64, error) {
	s.seq++
	copy := *e
	copy.ID = s.seq
	s.accounts[copy.ID] = &copy
	s.order = append(s.order, copy.ID)
	return copy.ID, nil
}

func TestService_Register_Success(t *testing.T) {
	t.Parallel()

	clk := stubClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newFakeStore()
	svc := NewService(store, stubHasher{}, stubIssuer{}, clk)

	id, err := svc.Register(context.Background(), RegisterInput{
		Username: "jdoe",
		Email:    " JDoe@Example.com ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	account, err := store.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}

	if account.Email != "jdoe@example.com" {
		t.Errorf("expected normalized email, got %s", account.Email)
	}

	if account.Role != employee.RoleEmployee {
		t.Errorf("expected default role EMPLOYEE, got %s", account.Role)
	}

	if account.Status != employee.StatusActive {
		t.Errorf("expected status ACTIVE, got %s", account.Status)
	}

	if account.PasswordHash != "hashed:password123" {
		t.Errorf("expected hashed password, got %q", account.PasswordHash)
	}
}

func TestService_Register_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"short username", RegisterInput{Username: "ab", Email: "a@example.com", Password: "password123"}, ErrInvalidUsername},
		{"bad email", RegisterInput{Username: "jdoe", Email: "nope", Password: "password123"}, ErrInvalidEmail},
		{"short password", RegisterInput{Username: "jdoe", Email: "a@example.com", Password: "short"}, ErrInvalidPassword},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(newFakeStore(), stubHasher{}, stubIssuer{}, nil)
			if _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewService(store, stubHasher{}, stubIssuer{}, nil)

	in := RegisterInput{Username: "jdoe", Email: "jdoe@example.com", Password: "password123"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected error preparing data: %v", err)
	}

	in.Username = "jdoe2"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrAccountAlreadyExists) {
		t.Fatalf("expected ErrAccountAlreadyExists, got %v", err)
	}
}

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewService(store, stubHasher{}, stubIssuer{}, nil)

	id, err := svc.Register(context.Background(), RegisterInput{Username: "jdoe", Email: "jdoe@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginInput{Email: "JDOE@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if result.Employee.ID != id {
		t.Errorf("expected account id %d, got %d", id, result.Employee.ID)
	}

	want := "token-" + strconv.FormatInt(id, 10) + "-jdoe-EMPLOYEE"
	if result.Token != want {
		t.Errorf("expected token %q, got %q", want, result.Token)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewService(store, stubHasher{}, stubIssuer{}, nil)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "jdoe", Email: "jdoe@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "jdoe@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_Login_UnknownAccount(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeStore(), stubHasher{}, stubIssuer{}, nil)

	// 存在しないアカウントもパスワード不一致と同じエラーにする。
	if _, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "password123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestService_Me_Success(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewService(store, stubHasher{}, stubIssuer{}, nil)

	id, err := svc.Register(context.Background(), RegisterInput{Username: "jdoe", Email: "jdoe@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	account, err := svc.Me(context.Background(), id)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}

	if account.Username != "jdoe" {
		t.Errorf("expected username jdoe, got %s", account.Username)
	}
}

func TestService_Me_InvalidID(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeStore(), stubHasher{}, stubIssuer{}, nil)

	if _, err := svc.Me(context.Background(), 0); !errors.Is(err, employee.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
