package testimonial

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	items map[uuid.UUID]*Testimonial
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[uuid.UUID]*Testimonial)}
}

func (f *fakeRepo) Create(_ context.Context, t *Testimonial) error {
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Testimonial, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, ErrTestimonialNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) ListByStatus(_ context.Context, status Status) ([]Testimonial, error) {
	var out []Testimonial
	for _, t := range f.items {
		if status == "" || t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]Testimonial, error) {
	var out []Testimonial
	for _, t := range f.items {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, t *Testimonial) error {
	if _, ok := f.items[t.ID]; !ok {
		return ErrTestimonialNotFound
	}
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeRepo) SetStatus(_ context.Context, id uuid.UUID, status Status) (*Testimonial, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, ErrTestimonialNotFound
	}
	t.Status = status
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return ErrTestimonialNotFound
	}
	delete(f.items, id)
	return nil
}

func TestSubmitEntersModeration(t *testing.T) {
	svc := NewService(newFakeRepo())

	got, err := svc.Submit(context.Background(), uuid.New(), "Jane", CategoryPatient, "Great care.")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.Status != StatusPending {
		t.Errorf("status = %s, want pending", got.Status)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Submit(ctx, uuid.New(), "", CategoryPatient, "msg"); !errors.Is(err, ErrMissingFields) {
		t.Errorf("empty name: err = %v, want ErrMissingFields", err)
	}
	if _, err := svc.Submit(ctx, uuid.New(), "Jane", Category("Stranger"), "msg"); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("bad category: err = %v, want ErrInvalidCategory", err)
	}
}

func TestListPublicFiltersPending(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a, _ := svc.Submit(ctx, uuid.New(), "A", CategoryPatient, "one")
	if _, err := svc.Submit(ctx, uuid.New(), "B", CategoryWitness, "two"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Approve(ctx, a.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	pub, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	if len(pub) != 1 || pub[0].ID != a.ID {
		t.Errorf("public list = %d items, want only the approved one", len(pub))
	}

	all, _ := svc.ListAll(ctx)
	if len(all) != 2 {
		t.Errorf("admin list = %d items, want 2", len(all))
	}
}

func TestEditResetsToPending(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	owner := uuid.New()

	orig, _ := svc.Submit(ctx, owner, "Jane", CategoryPatient, "first draft")
	if _, err := svc.Approve(ctx, orig.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	got, err := svc.Edit(ctx, owner, orig.ID, "Jane", CategoryPatient, "second draft")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if got.Status != StatusPending {
		t.Errorf("status after edit = %s, want pending", got.Status)
	}
	if got.Message != "second draft" {
		t.Errorf("message = %q, want updated text", got.Message)
	}
}

func TestEditOwnership(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	orig, _ := svc.Submit(ctx, uuid.New(), "Jane", CategoryPatient, "text")

	if _, err := svc.Edit(ctx, uuid.New(), orig.ID, "Eve", CategoryPatient, "hijack"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestDeletePermissions(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	owner := uuid.New()

	orig, _ := svc.Submit(ctx, owner, "Jane", CategoryPatient, "text")

	if err := svc.Delete(ctx, uuid.New(), false, orig.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("stranger delete: err = %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(ctx, uuid.New(), true, orig.ID); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}

func TestUnapproveHidesAgain(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	orig, _ := svc.Submit(ctx, uuid.New(), "Jane", CategoryGeneral, "text")
	if _, err := svc.Approve(ctx, orig.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if _, err := svc.Unapprove(ctx, orig.ID); err != nil {
		t.Fatalf("Unapprove: %v", err)
	}

	pub, _ := svc.ListPublic(ctx)
	if len(pub) != 0 {
		t.Errorf("public list = %d items after unapprove, want 0", len(pub))
	}
}
