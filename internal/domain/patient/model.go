package patient

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the layout for visit dates and last-updated stamps. The
// fields are stored as strings; the layout is fixed-width so lexical ordering
// of server-written values matches chronological ordering.
const DateLayout = "2006-01-02 15:04"

// Patient maps to a document in the patients collection. The identifier is
// caller-supplied and appears as a string or a number depending on which
// client wrote the document, so it is typed loosely and compared through
// IDKey. Fields marked legacy are never written by this server but still
// exist in older documents.
type Patient struct {
	OID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PatientID   interface{}        `bson:"patient_id" json:"patient_id"`
	FirstName   string             `bson:"first_name" json:"first_name"`
	MiddleName  string             `bson:"middle_name" json:"middle_name"`
	LastName    string             `bson:"last_name" json:"last_name"`
	Name        string             `bson:"name" json:"name"`
	Age         int                `bson:"age" json:"age"`
	Sex         string             `bson:"sex" json:"sex"`
	CivilStatus string             `bson:"civil_status" json:"civil_status"`
	Status      string             `bson:"status" json:"status"`
	HomeAddress string             `bson:"home_address" json:"home_address"`
	Address     string             `bson:"address,omitempty" json:"address,omitempty"` // legacy
	Purok       string             `bson:"purok" json:"purok"`
	Height      float64            `bson:"height" json:"height"`
	Weight      float64            `bson:"weight" json:"weight"`
	Contact     string             `bson:"contact_number" json:"contact_number"`
	Notes       string             `bson:"notes" json:"notes"`
	LastUpdated string             `bson:"last_updated" json:"last_updated"`
}

// Visit maps to a document in the visits collection. A visit references its
// patient by identifier only; nothing enforces that the patient exists.
type Visit struct {
	OID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PatientID     interface{}        `bson:"patient_id" json:"patient_id"`
	VisitDate     string             `bson:"visit_date" json:"visit_date"`
	VisitType     string             `bson:"visit_type" json:"visit_type"`
	BloodPressure BloodPressure      `bson:"blood_pressure" json:"blood_pressure"`
	Notes         string             `bson:"notes" json:"notes"`
	Details       string             `bson:"details,omitempty" json:"details,omitempty"` // legacy
	AssessedBy    string             `bson:"assessed_by" json:"assessed_by"`
}

// BloodPressure is the nested reading on a visit. Avg is a precomputed
// display string ("120/80" or "N/A"), kept alongside the numeric fields
// because older documents carry averages the numbers cannot reproduce.
type BloodPressure struct {
	Sys int    `bson:"sys_1" json:"sys_1"`
	Dia int    `bson:"dia_1" json:"dia_1"`
	Avg string `bson:"avg_bp" json:"avg_bp"`
}
