package patient

import (
	"context"
)

// FieldUpdate is a partial patient update: only non-nil fields are written.
// LastUpdated is always written.
type FieldUpdate struct {
	Height      *float64
	Weight      *float64
	LastUpdated string
}

type PatientRepository interface {
	List(ctx context.Context) ([]Patient, error)
	// Upsert writes the document keyed by its patient identifier, replacing
	// the fields of an existing document rather than inserting a duplicate.
	Upsert(ctx context.Context, p *Patient) error
	UpdateFields(ctx context.Context, patientID interface{}, fields FieldUpdate) error
	Delete(ctx context.Context, patientID interface{}) error
}

type VisitRepository interface {
	List(ctx context.Context) ([]Visit, error)
	Insert(ctx context.Context, v *Visit) error
	// Delete removes at most one visit matching the exact
	// (patient identifier, visit date) pair. The pair is not guaranteed
	// unique; on collision an arbitrary matching document is removed.
	Delete(ctx context.Context, patientID interface{}, visitDate string) error
	DeleteByPatient(ctx context.Context, patientID interface{}) (int64, error)
}
