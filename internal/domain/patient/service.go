package patient

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Service struct {
	patients PatientRepository
	visits   VisitRepository
	now      func() time.Time
}

func NewService(patients PatientRepository, visits VisitRepository) *Service {
	return &Service{patients: patients, visits: visits, now: time.Now}
}

// UpsertInput carries the add/update patient request. Numeric fields are
// loosely typed because the client sends them as numbers or strings.
type UpsertInput struct {
	PatientID   interface{} `json:"patientId"`
	FirstName   string      `json:"firstName"`
	MiddleName  string      `json:"middleName"`
	LastName    string      `json:"lastName"`
	Age         interface{} `json:"age"`
	Sex         string      `json:"sex"`
	Civil       string      `json:"civil"`
	Status      string      `json:"status"`
	HomeAddress string      `json:"homeAddress"`
	Purok       string      `json:"purok"`
	Height      interface{} `json:"height"`
	Weight      interface{} `json:"weight"`
	Contact     string      `json:"contact"`
	Notes       string      `json:"notes"`
	Sys         interface{} `json:"sys"`
	Dia         interface{} `json:"dia"`
	AssessedBy  string      `json:"assessedBy"`
}

// LogVisitInput carries the log-visit request. Height and weight are
// optional; when present they also update the patient document.
type LogVisitInput struct {
	PatientID  interface{} `json:"patientId"`
	VisitType  string      `json:"visitType"`
	Sys        interface{} `json:"sys"`
	Dia        interface{} `json:"dia"`
	Notes      string      `json:"notes"`
	AssessedBy string      `json:"assessedBy"`
	Height     interface{} `json:"height"`
	Weight     interface{} `json:"weight"`
}

// Upsert writes the patient document keyed by its identifier. When the
// registration includes a blood-pressure pair, a baseline visit is recorded
// alongside it.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) error {
	timestamp := s.now().Format(DateLayout)

	doc := &Patient{
		PatientID:   in.PatientID,
		FirstName:   in.FirstName,
		MiddleName:  in.MiddleName,
		LastName:    in.LastName,
		Name:        strings.TrimSpace(in.FirstName + " " + in.LastName),
		Age:         toInt(in.Age),
		Sex:         in.Sex,
		CivilStatus: in.Civil,
		Status:      in.Status,
		HomeAddress: in.HomeAddress,
		Purok:       in.Purok,
		Height:      toFloat(in.Height),
		Weight:      toFloat(in.Weight),
		Contact:     in.Contact,
		Notes:       in.Notes,
		LastUpdated: timestamp,
	}
	if err := s.patients.Upsert(ctx, doc); err != nil {
		return fmt.Errorf("upsert patient: %w", err)
	}

	if truthy(in.Sys) && truthy(in.Dia) {
		sys, dia := toInt(in.Sys), toInt(in.Dia)
		notes := in.Notes
		if strings.TrimSpace(notes) == "" {
			notes = "Baseline BP taken during registration."
		}
		visit := &Visit{
			PatientID: in.PatientID,
			VisitDate: timestamp,
			VisitType: "Initial Registration",
			BloodPressure: BloodPressure{
				Sys: sys,
				Dia: dia,
				Avg: fmt.Sprintf("%d/%d", sys, dia),
			},
			Notes:      notes,
			AssessedBy: orDefault(in.AssessedBy, "System Admin"),
		}
		if err := s.visits.Insert(ctx, visit); err != nil {
			return fmt.Errorf("insert registration visit: %w", err)
		}
	}

	return nil
}

// LogVisit appends a visit document and partially updates the patient:
// the last-updated stamp always, height and weight only when supplied.
func (s *Service) LogVisit(ctx context.Context, in LogVisitInput) error {
	timestamp := s.now().Format(DateLayout)

	bp := BloodPressure{Avg: "N/A"}
	if truthy(in.Sys) {
		bp.Sys = toInt(in.Sys)
		bp.Dia = toInt(in.Dia)
		bp.Avg = fmt.Sprintf("%d/%d", bp.Sys, bp.Dia)
	}

	visit := &Visit{
		PatientID:     in.PatientID,
		VisitDate:     timestamp,
		VisitType:     in.VisitType,
		BloodPressure: bp,
		Notes:         in.Notes,
		AssessedBy:    orDefault(in.AssessedBy, "Unknown BHW"),
	}
	if err := s.visits.Insert(ctx, visit); err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}

	fields := FieldUpdate{LastUpdated: timestamp}
	if truthy(in.Height) {
		h := toFloat(in.Height)
		fields.Height = &h
	}
	if truthy(in.Weight) {
		w := toFloat(in.Weight)
		fields.Weight = &w
	}
	if err := s.patients.UpdateFields(ctx, in.PatientID, fields); err != nil {
		return fmt.Errorf("update patient after visit: %w", err)
	}

	return nil
}

// DeleteVisit removes at most one visit matching the exact identifier/date
// pair.
func (s *Service) DeleteVisit(ctx context.Context, patientID interface{}, visitDate string) error {
	return s.visits.Delete(ctx, patientID, visitDate)
}

// DeletePatient removes the patient and every visit carrying its identifier.
// The two deletes are sequential, not transactional: a failure after the
// first leaves orphaned visits that only match the now-deleted identifier.
func (s *Service) DeletePatient(ctx context.Context, patientID interface{}) error {
	if err := s.patients.Delete(ctx, patientID); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if _, err := s.visits.DeleteByPatient(ctx, patientID); err != nil {
		return fmt.Errorf("delete visits: %w", err)
	}
	return nil
}

// ListViews loads every patient and visit and reshapes them into the
// denormalized client views.
func (s *Service) ListViews(ctx context.Context) ([]View, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	visits, err := s.visits.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return BuildViews(patients, visits), nil
}
