package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/config"
	redisclient "github.com/profbkmurage/physiocare/internal/redis"
)

// fakeRepo mirrors the guarded-update semantics of the Postgres repository.
type fakeRepo struct {
	mu     sync.Mutex
	appts  map[uuid.UUID]*Appointment
	events []EventLog
	seq    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (f *fakeRepo) Create(_ context.Context, a *Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	cp := *a
	cp.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	cp.UpdatedAt = cp.CreatedAt
	f.appts[a.ID] = &cp
	*a = cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Appointment
	for _, a := range f.appts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (f *fakeRepo) List(_ context.Context, status Status) ([]Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Appointment
	for _, a := range f.appts {
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeRepo) locked(id uuid.UUID, from Status) (*Appointment, error) {
	a, ok := f.appts[id]
	if !ok || a.Status != from {
		return nil, ErrAppointmentNotFound
	}
	return a, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.locked(id, from)
	if err != nil {
		return nil, err
	}
	a.Status = to
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) SetSchedule(_ context.Context, id uuid.UUID, from Status, date, tm string, to Status) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.locked(id, from)
	if err != nil {
		return nil, err
	}
	prevDate, prevTime := a.Date, a.Time
	a.PreviousDate, a.PreviousTime = &prevDate, &prevTime
	a.Date, a.Time = date, tm
	a.Status = to
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) SetSuggested(_ context.Context, id uuid.UUID, from Status, date, tm string) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.locked(id, from)
	if err != nil {
		return nil, err
	}
	a.SuggestedDate, a.SuggestedTime = &date, &tm
	a.Status = StatusPendingReschedule
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) AdoptSuggested(_ context.Context, id uuid.UUID, from Status) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, err := f.locked(id, from)
	if err != nil {
		return nil, err
	}
	if a.SuggestedDate == nil || a.SuggestedTime == nil {
		return nil, ErrAppointmentNotFound
	}
	prevDate, prevTime := a.Date, a.Time
	a.PreviousDate, a.PreviousTime = &prevDate, &prevTime
	a.Date, a.Time = *a.SuggestedDate, *a.SuggestedTime
	a.SuggestedDate, a.SuggestedTime = nil, nil
	a.Status = StatusApproved
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) SetComment(_ context.Context, id uuid.UUID, comment string) (*Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	a.AdminComment = &comment
	a.UpdatedAt = time.Now()
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(f.appts, id)
	return nil
}

func (f *fakeRepo) InsertEvent(_ context.Context, ev EventLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		CountryCallingCode: "254",
		DoctorName:         "Dr. Jasmine Gatiba",
	}
}

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return NewService(repo, nil, testConfig()), repo
}

func book(t *testing.T, svc *Service, userID uuid.UUID) *Appointment {
	t.Helper()
	a, err := svc.Book(context.Background(), BookParams{
		UserID:      userID,
		PatientName: "Jane Wanjiru",
		WhatsApp:    "0712345678",
		Date:        "2025-03-01",
		Time:        "09:00",
		Service:     "Therapeutic",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return a
}

func TestBookDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	a := book(t, svc, uuid.New())

	if a.Status != StatusApproved {
		t.Errorf("status = %q, want approved", a.Status)
	}
	if a.WhatsApp != "254712345678" {
		t.Errorf("whatsapp = %q, want 254712345678", a.WhatsApp)
	}
	if a.DoctorName != "Dr. Jasmine Gatiba" {
		t.Errorf("doctor = %q", a.DoctorName)
	}
}

func TestBookRequiresApproval(t *testing.T) {
	cfg := testConfig()
	cfg.RequireApproval = true
	svc := NewService(newFakeRepo(), nil, cfg)

	a := book(t, svc, uuid.New())
	if a.Status != StatusPendingApproval {
		t.Errorf("status = %q, want pending_approval", a.Status)
	}
}

func TestBookValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	uid := uuid.New()

	tests := []struct {
		name    string
		p       BookParams
		wantErr error
	}{
		{"missing name", BookParams{UserID: uid, WhatsApp: "0712345678", Date: "2025-03-01", Time: "09:00", Service: "x"}, ErrMissingFields},
		{"missing date", BookParams{UserID: uid, PatientName: "a", WhatsApp: "0712345678", Time: "09:00", Service: "x"}, ErrMissingFields},
		{"bad number", BookParams{UserID: uid, PatientName: "a", WhatsApp: "12345", Date: "2025-03-01", Time: "09:00", Service: "x"}, ErrInvalidContactNumber},
		{"overlong number", BookParams{UserID: uid, PatientName: "a", WhatsApp: "2547123456789012", Date: "2025-03-01", Time: "09:00", Service: "x"}, ErrInvalidContactNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Book(ctx, tt.p); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRescheduleArchivesPrevious(t *testing.T) {
	svc, _ := newTestService(t)
	uid := uuid.New()
	a := book(t, svc, uid)

	updated, err := svc.Reschedule(context.Background(), uid, a.ID, "2025-03-10", "11:00")
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if updated.Status != StatusRescheduled {
		t.Errorf("status = %q, want rescheduled", updated.Status)
	}
	if updated.Date != "2025-03-10" || updated.Time != "11:00" {
		t.Errorf("schedule = %s %s", updated.Date, updated.Time)
	}
	if updated.PreviousDate == nil || *updated.PreviousDate != "2025-03-01" {
		t.Errorf("previous date not archived: %v", updated.PreviousDate)
	}
	if updated.PreviousTime == nil || *updated.PreviousTime != "09:00" {
		t.Errorf("previous time not archived: %v", updated.PreviousTime)
	}
}

func TestRescheduleOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	a := book(t, svc, uuid.New())

	_, err := svc.Reschedule(context.Background(), uuid.New(), a.ID, "2025-03-10", "11:00")
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestApproveWithComment(t *testing.T) {
	cfg := testConfig()
	cfg.RequireApproval = true
	svc := NewService(newFakeRepo(), nil, cfg)
	a := book(t, svc, uuid.New())

	updated, err := svc.Approve(context.Background(), a.ID, "See you then")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != StatusApproved {
		t.Errorf("status = %q, want approved", updated.Status)
	}
	if updated.AdminComment == nil || *updated.AdminComment != "See you then" {
		t.Errorf("comment = %v", updated.AdminComment)
	}
}

func TestApproveApprovedRejected(t *testing.T) {
	svc, _ := newTestService(t)
	a := book(t, svc, uuid.New()) // already approved

	if _, err := svc.Approve(context.Background(), a.ID, ""); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("err = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestProposeRescheduleKeepsPrimary(t *testing.T) {
	svc, _ := newTestService(t)
	a := book(t, svc, uuid.New())

	updated, err := svc.ProposeReschedule(context.Background(), a.ID, "2025-03-05", "10:00")
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if updated.Status != StatusPendingReschedule {
		t.Errorf("status = %q, want pending_reschedule", updated.Status)
	}
	if updated.SuggestedDate == nil || *updated.SuggestedDate != "2025-03-05" {
		t.Errorf("suggested date = %v", updated.SuggestedDate)
	}
	if updated.SuggestedTime == nil || *updated.SuggestedTime != "10:00" {
		t.Errorf("suggested time = %v", updated.SuggestedTime)
	}
	// primary schedule untouched until the client decides
	if updated.Date != "2025-03-01" || updated.Time != "09:00" {
		t.Errorf("primary schedule changed: %s %s", updated.Date, updated.Time)
	}
}

func TestAcceptProposalAdoptsSuggested(t *testing.T) {
	svc, _ := newTestService(t)
	uid := uuid.New()
	a := book(t, svc, uid)

	if _, err := svc.ProposeReschedule(context.Background(), a.ID, "2025-03-05", "10:00"); err != nil {
		t.Fatalf("propose: %v", err)
	}

	updated, err := svc.AcceptProposal(context.Background(), uid, a.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if updated.Status != StatusApproved {
		t.Errorf("status = %q, want approved", updated.Status)
	}
	if updated.Date != "2025-03-05" || updated.Time != "10:00" {
		t.Errorf("schedule = %s %s, want suggested pair adopted", updated.Date, updated.Time)
	}
	if updated.SuggestedDate != nil || updated.SuggestedTime != nil {
		t.Error("suggested pair not cleared after acceptance")
	}
	if updated.PreviousDate == nil || *updated.PreviousDate != "2025-03-01" {
		t.Errorf("previous date = %v", updated.PreviousDate)
	}
}

func TestAcceptWithoutProposal(t *testing.T) {
	svc, _ := newTestService(t)
	uid := uuid.New()
	a := book(t, svc, uid)

	if _, err := svc.AcceptProposal(context.Background(), uid, a.ID); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("err = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestDeclineProposalDeletes(t *testing.T) {
	svc, repo := newTestService(t)
	uid := uuid.New()
	a := book(t, svc, uid)

	if _, err := svc.ProposeReschedule(context.Background(), a.ID, "2025-03-05", "10:00"); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if err := svc.DeclineProposal(context.Background(), uid, a.ID); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), a.ID); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("record still exists after decline: %v", err)
	}
}

func TestRevokeIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	uid := uuid.New()
	a := book(t, svc, uid)

	first, err := svc.Revoke(context.Background(), uid, false, a.ID)
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if first.Status != StatusRevoked {
		t.Errorf("status = %q, want revoked", first.Status)
	}

	second, err := svc.Revoke(context.Background(), uid, false, a.ID)
	if err != nil {
		t.Fatalf("second revoke: %v", err)
	}
	if second.Status != StatusRevoked {
		t.Errorf("second revoke changed status to %q", second.Status)
	}
}

func TestRevokeByAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	a := book(t, svc, uuid.New())

	// admin is not the owner but may revoke
	updated, err := svc.Revoke(context.Background(), uuid.New(), true, a.ID)
	if err != nil {
		t.Fatalf("admin revoke: %v", err)
	}
	if updated.Status != StatusRevoked {
		t.Errorf("status = %q, want revoked", updated.Status)
	}

	// non-admin stranger may not
	b := book(t, svc, uuid.New())
	if _, err := svc.Revoke(context.Background(), uuid.New(), false, b.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestRevokedIsTerminal(t *testing.T) {
	svc, _ := newTestService(t)
	uid := uuid.New()
	a := book(t, svc, uid)

	if _, err := svc.Revoke(context.Background(), uid, false, a.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, err := svc.Approve(context.Background(), a.ID, ""); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("approve after revoke: err = %v", err)
	}
	if _, err := svc.Reschedule(context.Background(), uid, a.ID, "2025-04-01", "09:00"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("reschedule after revoke: err = %v", err)
	}
	if _, err := svc.ProposeReschedule(context.Background(), a.ID, "2025-04-01", "09:00"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("propose after revoke: err = %v", err)
	}
}

func TestTransitionTable(t *testing.T) {
	all := []Status{StatusPendingApproval, StatusApproved, StatusRescheduled, StatusPendingReschedule, StatusRevoked}

	want := map[Status]map[Status]bool{
		StatusPendingApproval:   {StatusApproved: true, StatusRevoked: true},
		StatusApproved:          {StatusRescheduled: true, StatusPendingReschedule: true, StatusRevoked: true},
		StatusRescheduled:       {StatusApproved: true, StatusPendingReschedule: true, StatusRevoked: true},
		StatusPendingReschedule: {StatusApproved: true, StatusRevoked: true},
		StatusRevoked:           {},
	}

	for _, from := range all {
		for _, to := range all {
			if got := CanTransition(from, to); got != want[from][to] {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want[from][to])
			}
		}
	}
}

func TestListForUserOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	uid := uuid.New()
	ctx := context.Background()

	dates := []struct{ date, tm string }{
		{"2025-03-09", "10:00"},
		{"2025-03-01", "14:00"},
		{"2025-03-01", "09:00"},
	}
	for _, d := range dates {
		if _, err := svc.Book(ctx, BookParams{
			UserID: uid, PatientName: "Jane", WhatsApp: "0712345678",
			Date: d.date, Time: d.tm, Service: "Therapeutic",
		}); err != nil {
			t.Fatalf("book: %v", err)
		}
	}
	// another user's booking must not leak in
	book(t, svc, uuid.New())

	got, err := svc.ListForUser(ctx, uid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []string{"2025-03-01 09:00", "2025-03-01 14:00", "2025-03-09 10:00"}
	for i, a := range got {
		if key := a.Date + " " + a.Time; key != wantOrder[i] {
			t.Errorf("position %d = %s, want %s", i, key, wantOrder[i])
		}
	}
}

func TestListAllStatusFilter(t *testing.T) {
	svc, _ := newTestService(t)
	uid := uuid.New()
	ctx := context.Background()

	a := book(t, svc, uid)
	book(t, svc, uid)
	if _, err := svc.Revoke(ctx, uid, false, a.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	revoked, err := svc.ListAll(ctx, StatusRevoked)
	if err != nil {
		t.Fatalf("list revoked: %v", err)
	}
	if len(revoked) != 1 || revoked[0].ID != a.ID {
		t.Errorf("revoked filter returned %d records", len(revoked))
	}

	all, err := svc.ListAll(ctx, "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len = %d, want 2", len(all))
	}

	if _, err := svc.ListAll(ctx, Status("bogus")); err == nil {
		t.Error("expected error for unknown status filter")
	}
}

func TestOutreachLinks(t *testing.T) {
	svc, _ := newTestService(t)
	a := book(t, svc, uuid.New())

	wa, dial, err := svc.OutreachLinks(context.Background(), a.ID, "Dr. Jasmine Gatiba")
	if err != nil {
		t.Fatalf("outreach links: %v", err)
	}
	if want := "https://wa.me/254712345678?text="; len(wa) <= len(want) || wa[:len(want)] != want {
		t.Errorf("whatsapp link = %q", wa)
	}
	if dial != "tel:+254712345678" {
		t.Errorf("dial link = %q", dial)
	}
}

func TestEventLogWritten(t *testing.T) {
	svc, repo := newTestService(t)
	uid := uuid.New()
	a := book(t, svc, uid)
	if _, err := svc.Revoke(context.Background(), uid, false, a.ID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.events) != 2 {
		t.Fatalf("events = %d, want 2", len(repo.events))
	}
	if repo.events[0].EventType != EventBooked || repo.events[1].EventType != EventRevoked {
		t.Errorf("event types = %s, %s", repo.events[0].EventType, repo.events[1].EventType)
	}
}

type recordingBus struct {
	mu     sync.Mutex
	events []redisclient.Event
}

func (b *recordingBus) Publish(_ context.Context, ev redisclient.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return nil
}

func (b *recordingBus) Subscribe(context.Context, string) (<-chan redisclient.Event, error) {
	return nil, nil
}

func TestBusEventsNameOwner(t *testing.T) {
	repo := newFakeRepo()
	bus := &recordingBus{}
	svc := NewService(repo, bus, testConfig())

	uid := uuid.New()
	a := book(t, svc, uid)
	if err := svc.Delete(context.Background(), uid, false, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if len(bus.events) != 2 {
		t.Fatalf("bus events = %d, want 2", len(bus.events))
	}
	for _, ev := range bus.events {
		if ev.UserID != uid.String() {
			t.Errorf("event %s user_id = %q, want owner %s", ev.Type, ev.UserID, uid)
		}
	}
	if bus.events[1].Type != EventDeleted {
		t.Errorf("second event = %s, want %s", bus.events[1].Type, EventDeleted)
	}
}
