package position

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	positions map[int64]*Position
	order     []int64
	seq       int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{positions: make(map[int64]*Position)}
}

func (r *fakeRepo) List(_ context.Context) ([]*Position, error) {
	out := make([]*Position, 0, len(r.order))
	for _, id := range r.order {
		copy := *r.positions[id]
		out = append(out, &copy)
	}
	return out, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*Position, error) {
	p, ok := r.positions[id]
	if !ok {
		return nil, ErrPositionNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *fakeRepo) Create(_ context.Context, p *Position) (int64, error) {
	r.seq++
	copy := *p
	copy.ID = r.seq
	r.positions[copy.ID] = &copy
	r.order = append(r.order, copy.ID)
	return copy.ID, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, fields UpdateFields) (int64, error) {
	p, ok := r.positions[id]
	if !ok {
		return 0, nil
	}
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Description != nil {
		p.Description = fields.Description
	}
	return 1, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := r.positions[id]; !ok {
		return 0, nil
	}
	delete(r.positions, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func TestService_Create_TrimsName(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), CreateInput{Name: "  Senior Engineer  "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	created, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	if created.Name != "Senior Engineer" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
}

func TestService_Create_EmptyName(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	if _, err := svc.Create(context.Background(), CreateInput{Name: ""}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestService_Update_EmptyName(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), CreateInput{Name: "Manager"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	blank := "  "
	if _, err := svc.Update(context.Background(), id, UpdateInput{Name: &blank}); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestService_Delete_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), CreateInput{Name: "Manager"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := svc.Get(context.Background(), id); !errors.Is(err, ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound after delete, got %v", err)
	}
}

func TestService_Delete_InvalidID(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	if err := svc.Delete(context.Background(), 0); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
