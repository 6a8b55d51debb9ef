package patient

import (
	"context"
	"testing"
	"time"
)

// -- Mock repositories --

type mockPatientRepo struct {
	patients map[string]*Patient
	updates  []FieldUpdate
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[string]*Patient)}
}

func (m *mockPatientRepo) List(_ context.Context) ([]Patient, error) {
	var out []Patient
	for _, p := range m.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPatientRepo) Upsert(_ context.Context, p *Patient) error {
	m.patients[IDKey(p.PatientID)] = p
	return nil
}

func (m *mockPatientRepo) UpdateFields(_ context.Context, patientID interface{}, fields FieldUpdate) error {
	m.updates = append(m.updates, fields)
	if p, ok := m.patients[IDKey(patientID)]; ok {
		p.LastUpdated = fields.LastUpdated
		if fields.Height != nil {
			p.Height = *fields.Height
		}
		if fields.Weight != nil {
			p.Weight = *fields.Weight
		}
	}
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, patientID interface{}) error {
	delete(m.patients, IDKey(patientID))
	return nil
}

type mockVisitRepo struct {
	visits []*Visit
}

func (m *mockVisitRepo) List(_ context.Context) ([]Visit, error) {
	var out []Visit
	for _, v := range m.visits {
		out = append(out, *v)
	}
	return out, nil
}

func (m *mockVisitRepo) Insert(_ context.Context, v *Visit) error {
	m.visits = append(m.visits, v)
	return nil
}

func (m *mockVisitRepo) Delete(_ context.Context, patientID interface{}, visitDate string) error {
	for i, v := range m.visits {
		if IDKey(v.PatientID) == IDKey(patientID) && v.VisitDate == visitDate {
			m.visits = append(m.visits[:i], m.visits[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockVisitRepo) DeleteByPatient(_ context.Context, patientID interface{}) (int64, error) {
	var kept []*Visit
	var deleted int64
	for _, v := range m.visits {
		if IDKey(v.PatientID) == IDKey(patientID) {
			deleted++
			continue
		}
		kept = append(kept, v)
	}
	m.visits = kept
	return deleted, nil
}

// -- Tests --

func newTestService() (*Service, *mockPatientRepo, *mockVisitRepo) {
	patients := newMockPatientRepo()
	visits := &mockVisitRepo{}
	svc := NewService(patients, visits)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local)
	}
	return svc, patients, visits
}

func TestUpsert_InsertsThenReplaces(t *testing.T) {
	svc, patients, _ := newTestService()

	err := svc.Upsert(context.Background(), UpsertInput{
		PatientID: "P-1", FirstName: "Juan", LastName: "Reyes", Age: "45",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.Upsert(context.Background(), UpsertInput{
		PatientID: "P-1", FirstName: "Juan", LastName: "Reyes", Age: float64(46),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(patients.patients) != 1 {
		t.Fatalf("expected 1 patient after repeated upsert, got %d", len(patients.patients))
	}
	p := patients.patients["P-1"]
	if p.Age != 46 {
		t.Errorf("expected age 46 after replace, got %d", p.Age)
	}
	if p.Name != "Juan Reyes" {
		t.Errorf("expected canonical name, got %q", p.Name)
	}
	if p.LastUpdated != "2024-03-15 14:30" {
		t.Errorf("expected upsert timestamp, got %q", p.LastUpdated)
	}
}

func TestUpsert_CoercesNumericStrings(t *testing.T) {
	svc, patients, _ := newTestService()

	err := svc.Upsert(context.Background(), UpsertInput{
		PatientID: "P-1", Age: "60", Height: "165.5", Weight: "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := patients.patients["P-1"]
	if p.Age != 60 {
		t.Errorf("expected age 60, got %d", p.Age)
	}
	if p.Height != 165.5 {
		t.Errorf("expected height 165.5, got %v", p.Height)
	}
	if p.Weight != 0 {
		t.Errorf("expected blank weight coerced to 0, got %v", p.Weight)
	}
}

func TestUpsert_RegistrationBPCreatesBaselineVisit(t *testing.T) {
	svc, _, visits := newTestService()

	err := svc.Upsert(context.Background(), UpsertInput{
		PatientID: "P-1", Sys: float64(140), Dia: float64(90),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(visits.visits) != 1 {
		t.Fatalf("expected baseline visit, got %d visits", len(visits.visits))
	}
	v := visits.visits[0]
	if v.VisitType != "Initial Registration" {
		t.Errorf("expected Initial Registration, got %s", v.VisitType)
	}
	if v.BloodPressure.Sys != 140 || v.BloodPressure.Dia != 90 {
		t.Errorf("expected 140/90, got %d/%d", v.BloodPressure.Sys, v.BloodPressure.Dia)
	}
	if v.BloodPressure.Avg != "140/90" {
		t.Errorf("expected avg 140/90, got %s", v.BloodPressure.Avg)
	}
	if v.Notes != "Baseline BP taken during registration." {
		t.Errorf("expected baseline notes default, got %q", v.Notes)
	}
	if v.AssessedBy != "System Admin" {
		t.Errorf("expected System Admin default, got %q", v.AssessedBy)
	}
}

func TestUpsert_NoBaselineVisitWithoutBothReadings(t *testing.T) {
	svc, _, visits := newTestService()

	err := svc.Upsert(context.Background(), UpsertInput{
		PatientID: "P-1", Sys: float64(140),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visits.visits) != 0 {
		t.Errorf("expected no visit without diastolic, got %d", len(visits.visits))
	}
}

func TestLogVisit_AppendsAndPartiallyUpdatesPatient(t *testing.T) {
	svc, patients, visits := newTestService()
	svc.Upsert(context.Background(), UpsertInput{PatientID: "P-1", Height: float64(160)})

	err := svc.LogVisit(context.Background(), LogVisitInput{
		PatientID: "P-1", VisitType: "Follow-up",
		Sys: float64(120), Dia: float64(80),
		Weight: "70.5", AssessedBy: "Maria Santos",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(visits.visits) != 1 {
		t.Fatalf("expected 1 visit, got %d", len(visits.visits))
	}
	v := visits.visits[0]
	if v.BloodPressure.Avg != "120/80" {
		t.Errorf("expected avg 120/80, got %s", v.BloodPressure.Avg)
	}
	if v.VisitDate != "2024-03-15 14:30" {
		t.Errorf("expected stamped visit date, got %s", v.VisitDate)
	}

	p := patients.patients["P-1"]
	if p.Weight != 70.5 {
		t.Errorf("expected weight updated to 70.5, got %v", p.Weight)
	}
	if p.Height != 160 {
		t.Errorf("expected height untouched at 160, got %v", p.Height)
	}
	if len(patients.updates) != 1 || patients.updates[0].Height != nil {
		t.Error("expected partial update without height")
	}
}

func TestLogVisit_DefaultsWithoutReadings(t *testing.T) {
	svc, _, visits := newTestService()

	err := svc.LogVisit(context.Background(), LogVisitInput{
		PatientID: "P-1", VisitType: "Wellness Check",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := visits.visits[0]
	if v.BloodPressure.Sys != 0 || v.BloodPressure.Dia != 0 {
		t.Errorf("expected zero readings, got %d/%d", v.BloodPressure.Sys, v.BloodPressure.Dia)
	}
	if v.BloodPressure.Avg != "N/A" {
		t.Errorf("expected N/A, got %s", v.BloodPressure.Avg)
	}
	if v.AssessedBy != "Unknown BHW" {
		t.Errorf("expected Unknown BHW, got %s", v.AssessedBy)
	}
}

func TestDeleteVisit_RemovesMatchingPair(t *testing.T) {
	svc, _, visits := newTestService()
	svc.LogVisit(context.Background(), LogVisitInput{PatientID: "P-1", VisitType: "Follow-up"})

	err := svc.DeleteVisit(context.Background(), "P-1", "2024-03-15 14:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visits.visits) != 0 {
		t.Errorf("expected visit removed, got %d", len(visits.visits))
	}
}

func TestDeletePatient_CascadesToVisits(t *testing.T) {
	svc, patients, visits := newTestService()
	svc.Upsert(context.Background(), UpsertInput{PatientID: "P-1"})
	svc.Upsert(context.Background(), UpsertInput{PatientID: "P-2"})
	svc.LogVisit(context.Background(), LogVisitInput{PatientID: "P-1"})
	svc.LogVisit(context.Background(), LogVisitInput{PatientID: "P-1"})
	svc.LogVisit(context.Background(), LogVisitInput{PatientID: "P-2"})

	if err := svc.DeletePatient(context.Background(), "P-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := patients.patients["P-1"]; ok {
		t.Error("expected patient removed")
	}
	if len(visits.visits) != 1 || IDKey(visits.visits[0].PatientID) != "P-2" {
		t.Errorf("expected only P-2's visit to survive, got %d visits", len(visits.visits))
	}

	views, err := svc.ListViews(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, v := range views {
		if v.ID == "P-1" {
			t.Error("expected deleted patient absent from views")
		}
	}
}

func TestListViews_CombinesStores(t *testing.T) {
	svc, _, _ := newTestService()
	svc.Upsert(context.Background(), UpsertInput{PatientID: "P-1", FirstName: "Juan", LastName: "Reyes"})
	svc.LogVisit(context.Background(), LogVisitInput{PatientID: "P-1", Sys: float64(120), Dia: float64(80)})

	views, err := svc.ListViews(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	v := views[0]
	if len(v.BP) != 1 || v.BP[0].Sys != 120 || v.BP[0].Dia != 80 {
		t.Errorf("expected bp series with 120/80, got %+v", v.BP)
	}
	if len(v.Visits) != 1 || v.Visits[0].Avg != "120/80" {
		t.Errorf("expected visit entry with avg 120/80, got %+v", v.Visits)
	}
	if v.LastUpdated != "2024-03-15 14:30" {
		t.Errorf("expected lastUpdated from upsert stamp, got %s", v.LastUpdated)
	}
}
