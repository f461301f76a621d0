package appointments

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Request
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Request{}}
}

func (r *testRepo) Create(ctx context.Context, req Request) error {
	if req.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[req.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[req.ID] = req
	return nil
}

func (r *testRepo) Update(ctx context.Context, req Request) error {
	if _, ok := r.byID[req.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[req.ID] = req
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Request, error) {
	req, ok := r.byID[id]
	if !ok {
		return Request{}, errRepoNotFound
	}
	return req, nil
}

func (r *testRepo) ListByVet(ctx context.Context, vetID string) ([]Request, error) {
	out := make([]Request, 0)
	for _, req := range r.byID {
		if req.VetID == vetID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerID string) ([]Request, error) {
	out := make([]Request, 0)
	for _, req := range r.byID {
		if req.OwnerID == ownerID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *testRepo) GetPending(ctx context.Context, ownerID, vetID string) (Request, error) {
	for _, req := range r.byID {
		if req.OwnerID == ownerID && req.VetID == vetID && req.Status == StatusPending {
			return req, nil
		}
	}
	return Request{}, errRepoNotFound
}

func testPayload() Payload {
	return Payload{
		Owner: OwnerContact{FirstName: "Anna", LastName: "Meier", Zip: "48143"},
		Horses: []HorseSelection{{
			HorseID: "h-1", Name: "Luna", IsoNr: "DE 4331130942116",
			SelectedCategories: []string{"Influenza"},
		}},
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DedupsPendingRequest(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(30 * time.Minute)

	svc.now = func() time.Time { return now1 }
	r1, err := svc.Create(context.Background(), "owner-1", "vet-1", testPayload())
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	p2 := testPayload()
	p2.Horses[0].SelectedCategories = []string{"Influenza", "Tetanus"}

	svc.now = func() time.Time { return now2 }
	r2, err := svc.Create(context.Background(), "owner-1", "vet-1", p2)
	if err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}

	if r2.ID != r1.ID {
		t.Fatalf("expected same request ID (dedup), got %s vs %s", r1.ID, r2.ID)
	}
	if len(r2.Payload.Horses[0].SelectedCategories) != 2 {
		t.Fatalf("expected payload updated, got %#v", r2.Payload.Horses[0].SelectedCategories)
	}
	if r2.UpdatedAt != now2 {
		t.Fatalf("expected UpdatedAt to change on re-create")
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 stored request, got %d", len(repo.byID))
	}
}

func TestService_Create_NewRequestAfterRejection(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	r1, err := svc.Create(context.Background(), "owner-1", "vet-1", testPayload())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.Reject(context.Background(), "vet-1", r1.ID); err != nil {
		t.Fatalf("Reject error: %v", err)
	}

	r2, err := svc.Create(context.Background(), "owner-1", "vet-1", testPayload())
	if err != nil {
		t.Fatalf("Create after reject error: %v", err)
	}
	if r2.ID == r1.ID {
		t.Fatalf("expected a fresh request after rejection")
	}
}

func TestService_Accept_SetsScheduleAndTimestamps(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	r, err := svc.Create(context.Background(), "owner-1", "vet-1", testPayload())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	date := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	accepted, err := svc.Accept(context.Background(), "vet-1", r.ID, date)
	if err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if accepted.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}
	if accepted.ScheduledDate == nil || !accepted.ScheduledDate.Equal(date) {
		t.Fatalf("expected scheduled date set, got %v", accepted.ScheduledDate)
	}
	if accepted.VetResponseAt == nil {
		t.Fatalf("expected vet response timestamp")
	}

	// Responder dos veces no es válido.
	if _, err := svc.Accept(context.Background(), "vet-1", r.ID, date); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestService_Accept_WrongVetForbidden(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	r, err := svc.Create(context.Background(), "owner-1", "vet-1", testPayload())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err = svc.Accept(context.Background(), "vet-2", r.ID, time.Now())
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_ConfirmSchedule_OnlyAfterAccepted_AndIdempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	r, err := svc.Create(context.Background(), "owner-1", "vet-1", testPayload())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.ConfirmSchedule(context.Background(), "owner-1", r.ID); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState before accept, got %v", err)
	}

	if _, err := svc.Accept(context.Background(), "vet-1", r.ID, time.Now()); err != nil {
		t.Fatalf("Accept error: %v", err)
	}

	c1, err := svc.ConfirmSchedule(context.Background(), "owner-1", r.ID)
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if c1.OwnerConfirmedAt == nil {
		t.Fatalf("expected owner confirmation timestamp")
	}

	// idempotente
	c2, err := svc.ConfirmSchedule(context.Background(), "owner-1", r.ID)
	if err != nil {
		t.Fatalf("Confirm #2 error: %v", err)
	}
	if !c2.OwnerConfirmedAt.Equal(*c1.OwnerConfirmedAt) {
		t.Fatalf("expected confirmation timestamp unchanged")
	}
}

func TestService_Cancel_OnlyPending(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	r, err := svc.Create(context.Background(), "owner-1", "vet-1", testPayload())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Cancel(context.Background(), "owner-1", r.ID); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected request deleted")
	}

	r2, _ := svc.Create(context.Background(), "owner-1", "vet-1", testPayload())
	if _, err := svc.Accept(context.Background(), "vet-1", r2.ID, time.Now()); err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if err := svc.Cancel(context.Background(), "owner-1", r2.ID); err != ErrInvalidState {
		t.Fatalf("expected ErrInvalidState cancelling accepted request, got %v", err)
	}
}
