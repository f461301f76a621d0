package horses

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
	byID map[string]Horse
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Horse{}}
}

func (r *testRepo) Create(ctx context.Context, h Horse) error {
	if h.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[h.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[h.ID] = h
	return nil
}

func (r *testRepo) Update(ctx context.Context, h Horse) error {
	if _, ok := r.byID[h.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[h.ID] = h
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Horse, error) {
	h, ok := r.byID[id]
	if !ok {
		return Horse{}, errRepoNotFound
	}
	return h, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Horse, error) {
	out := make([]Horse, 0)
	for _, h := range r.byID {
		if h.OwnerUserID == ownerUserID {
			out = append(out, h)
		}
	}
	return out, nil
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:      "Amadeus",
		Breed:     "Hannoveraner",
		BirthYear: 2018,
		Gender:    "Wallach",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_TrimsAndInitializesCollections(t *testing.T) {
	svc, repo := newTestService()

	in := validCreateInput()
	in.Name = "  Amadeus  "
	in.IsoNr = " DE 4331130942116 "

	h, err := svc.Create(context.Background(), "owner-1", in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if h.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if h.Name != "Amadeus" || h.IsoNr != "DE 4331130942116" {
		t.Fatalf("expected trimmed fields, got %q / %q", h.Name, h.IsoNr)
	}
	if h.Vaccinations == nil || h.ServiceHistory == nil {
		t.Fatalf("expected empty (non-nil) collections")
	}
	if !h.CreatedAt.Equal(testNow) || !h.UpdatedAt.Equal(testNow) {
		t.Fatalf("expected timestamps = now, got %v / %v", h.CreatedAt, h.UpdatedAt)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 stored horse, got %d", len(repo.byID))
	}
}

func TestService_Create_ValidatesInput(t *testing.T) {
	svc, _ := newTestService()

	bad49 := 49.0
	bad1501 := 1501.0

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty name", func(in *CreateInput) { in.Name = "   " }},
		{"malformed iso", func(in *CreateInput) { in.IsoNr = "D1234" }},
		{"malformed fei", func(in *CreateInput) { in.FeiNr = "ABC" }},
		{"malformed chip", func(in *CreateInput) { in.ChipID = "12345" }},
		{"birth year too old", func(in *CreateInput) { in.BirthYear = 1979 }},
		{"birth year in future", func(in *CreateInput) { in.BirthYear = testNow.Year() + 1 }},
		{"weight too low", func(in *CreateInput) { in.WeightKg = &bad49 }},
		{"weight too high", func(in *CreateInput) { in.WeightKg = &bad1501 }},
	}
	for _, tc := range cases {
		in := validCreateInput()
		tc.mutate(&in)
		if _, err := svc.Create(context.Background(), "owner-1", in); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	// Los identificadores son opcionales: vacíos no se validan.
	in := validCreateInput()
	in.IsoNr, in.FeiNr, in.ChipID = "", "", ""
	in.BirthYear = 0
	if _, err := svc.Create(context.Background(), "owner-1", in); err != nil {
		t.Fatalf("expected optional identifiers to be accepted, got %v", err)
	}
}

func TestService_UpdateProfile_OnlyOwner(t *testing.T) {
	svc, _ := newTestService()

	h, err := svc.Create(context.Background(), "owner-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.UpdateProfile(context.Background(), "owner-2", h.ID, validCreateInput()); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	later := testNow.Add(2 * time.Hour)
	svc.now = func() time.Time { return later }

	in := validCreateInput()
	in.Name = "Belissimo"
	updated, err := svc.UpdateProfile(context.Background(), "owner-1", h.ID, in)
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.Name != "Belissimo" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt to advance")
	}
	if !updated.CreatedAt.Equal(testNow) {
		t.Fatalf("expected CreatedAt unchanged")
	}
}

func TestService_Delete_OnlyOwner(t *testing.T) {
	svc, repo := newTestService()

	h, _ := svc.Create(context.Background(), "owner-1", validCreateInput())

	if err := svc.Delete(context.Background(), "owner-2", h.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "owner-1", h.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected horse removed")
	}
}

func TestService_AddVaccination_Rules(t *testing.T) {
	svc, _ := newTestService()
	h, _ := svc.Create(context.Background(), "owner-1", validCreateInput())

	past := testNow.AddDate(0, -1, 0)
	future := testNow.AddDate(0, 1, 0)

	cases := []struct {
		name string
		in   VaccinationInput
	}{
		{"unknown category", VaccinationInput{Type: "Tollwut", Date: past}},
		{"unknown sequence", VaccinationInput{Type: CategoryInfluenza, Date: past, Sequence: "V9"}},
		{"unknown status", VaccinationInput{Type: CategoryInfluenza, Date: past, Status: "draft"}},
		{"zero date", VaccinationInput{Type: CategoryInfluenza}},
		{"future date verified", VaccinationInput{Type: CategoryInfluenza, Date: future}},
		{"future date pending", VaccinationInput{Type: CategoryInfluenza, Date: future, Status: VaccStatusPending}},
	}
	for _, tc := range cases {
		if _, err := svc.AddVaccination(context.Background(), "owner-1", h.ID, tc.in); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	// Sin estado explícito la vacuna queda verificada.
	got, err := svc.AddVaccination(context.Background(), "owner-1", h.ID, VaccinationInput{
		Type: CategoryInfluenza, Date: past, Sequence: SequenceV1, AdministeredBy: " Dr. Vogel ",
	})
	if err != nil {
		t.Fatalf("AddVaccination error: %v", err)
	}
	v := got.Vaccinations[len(got.Vaccinations)-1]
	if v.Status != VaccStatusVerified {
		t.Fatalf("expected default status verified, got %s", v.Status)
	}
	if v.AdministeredBy != "Dr. Vogel" {
		t.Fatalf("expected trimmed AdministeredBy, got %q", v.AdministeredBy)
	}

	// Una cita planificada sí puede estar en el futuro.
	got, err = svc.AddVaccination(context.Background(), "owner-1", h.ID, VaccinationInput{
		Type: CategoryInfluenza, Date: future, Sequence: SequenceV2, Status: VaccStatusPlanned,
	})
	if err != nil {
		t.Fatalf("planned future vaccination rejected: %v", err)
	}
	if len(got.Vaccinations) != 2 {
		t.Fatalf("expected 2 vaccinations, got %d", len(got.Vaccinations))
	}
}

func TestService_UpdateVaccination_KeepsID(t *testing.T) {
	svc, _ := newTestService()
	h, _ := svc.Create(context.Background(), "owner-1", validCreateInput())

	past := testNow.AddDate(0, -2, 0)
	h, err := svc.AddVaccination(context.Background(), "owner-1", h.ID, VaccinationInput{
		Type: CategoryTetanus, Date: past, Sequence: SequenceV1,
	})
	if err != nil {
		t.Fatalf("AddVaccination error: %v", err)
	}
	vaccID := h.Vaccinations[0].ID

	if _, err := svc.UpdateVaccination(context.Background(), "owner-1", h.ID, "nope", VaccinationInput{
		Type: CategoryTetanus, Date: past,
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown vaccination, got %v", err)
	}

	updated, err := svc.UpdateVaccination(context.Background(), "owner-1", h.ID, vaccID, VaccinationInput{
		Type: CategoryTetanus, Date: past, Sequence: SequenceV2,
	})
	if err != nil {
		t.Fatalf("UpdateVaccination error: %v", err)
	}
	if updated.Vaccinations[0].ID != vaccID {
		t.Fatalf("expected vaccination ID preserved")
	}
	if updated.Vaccinations[0].Sequence != SequenceV2 {
		t.Fatalf("expected sequence updated, got %s", updated.Vaccinations[0].Sequence)
	}
}

func TestService_DeleteVaccination(t *testing.T) {
	svc, _ := newTestService()
	h, _ := svc.Create(context.Background(), "owner-1", validCreateInput())

	past := testNow.AddDate(0, -2, 0)
	h, _ = svc.AddVaccination(context.Background(), "owner-1", h.ID, VaccinationInput{
		Type: CategoryHerpes, Date: past,
	})
	vaccID := h.Vaccinations[0].ID

	if _, err := svc.DeleteVaccination(context.Background(), "owner-1", h.ID, "nope"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown vaccination, got %v", err)
	}

	got, err := svc.DeleteVaccination(context.Background(), "owner-1", h.ID, vaccID)
	if err != nil {
		t.Fatalf("DeleteVaccination error: %v", err)
	}
	if len(got.Vaccinations) != 0 {
		t.Fatalf("expected vaccination removed, got %d", len(got.Vaccinations))
	}
}

func TestService_Mutations_DoNotRewriteEarlierSnapshots(t *testing.T) {
	svc, _ := newTestService()
	h, _ := svc.Create(context.Background(), "owner-1", validCreateInput())

	past := testNow.AddDate(0, -2, 0)
	h, _ = svc.AddVaccination(context.Background(), "owner-1", h.ID, VaccinationInput{
		Type: CategoryInfluenza, Date: past, Sequence: SequenceV1,
	})
	h, _ = svc.AddVaccination(context.Background(), "owner-1", h.ID, VaccinationInput{
		Type: CategoryInfluenza, Date: past, Sequence: SequenceV2,
	})
	firstID := h.Vaccinations[0].ID
	secondID := h.Vaccinations[1].ID

	// El repo devuelve el struct por valor, pero el slice comparte el
	// backing array con lo almacenado: el servicio no debe escribir ahí.
	snapshot, err := svc.GetByID(context.Background(), h.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}

	if _, err := svc.DeleteVaccination(context.Background(), "owner-1", h.ID, firstID); err != nil {
		t.Fatalf("DeleteVaccination error: %v", err)
	}
	if snapshot.Vaccinations[0].ID != firstID || snapshot.Vaccinations[1].ID != secondID {
		t.Fatalf("expected snapshot untouched after delete, got [%s %s]",
			snapshot.Vaccinations[0].ID, snapshot.Vaccinations[1].ID)
	}

	snapshot, _ = svc.GetByID(context.Background(), h.ID)
	if _, err := svc.UpdateVaccination(context.Background(), "owner-1", h.ID, secondID, VaccinationInput{
		Type: CategoryInfluenza, Date: past, Sequence: SequenceV3,
	}); err != nil {
		t.Fatalf("UpdateVaccination error: %v", err)
	}
	if snapshot.Vaccinations[0].Sequence != SequenceV2 {
		t.Fatalf("expected snapshot sequence V2 after update, got %s", snapshot.Vaccinations[0].Sequence)
	}
}

func TestService_ServiceRecords(t *testing.T) {
	svc, _ := newTestService()
	h, _ := svc.Create(context.Background(), "owner-1", validCreateInput())

	past := testNow.AddDate(0, 0, -10)
	future := testNow.AddDate(0, 0, 10)

	if _, err := svc.AddServiceRecord(context.Background(), "owner-1", h.ID, ServiceRecordInput{
		Type: "Massage", Date: past,
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown service type, got %v", err)
	}
	if _, err := svc.AddServiceRecord(context.Background(), "owner-1", h.ID, ServiceRecordInput{
		Type: ServiceFarrier, Date: future,
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for future service date, got %v", err)
	}

	got, err := svc.AddServiceRecord(context.Background(), "owner-1", h.ID, ServiceRecordInput{
		Type: ServiceFarrier, Date: past, Provider: " Schmied Huber ",
	})
	if err != nil {
		t.Fatalf("AddServiceRecord error: %v", err)
	}
	rec := got.ServiceHistory[0]
	if rec.ID == "" || rec.Provider != "Schmied Huber" {
		t.Fatalf("unexpected record: %#v", rec)
	}

	if _, err := svc.DeleteServiceRecord(context.Background(), "owner-1", h.ID, "nope"); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown record, got %v", err)
	}
	got, err = svc.DeleteServiceRecord(context.Background(), "owner-1", h.ID, rec.ID)
	if err != nil {
		t.Fatalf("DeleteServiceRecord error: %v", err)
	}
	if len(got.ServiceHistory) != 0 {
		t.Fatalf("expected record removed")
	}
}
