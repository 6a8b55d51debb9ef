package patient

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bhwcare/ncdtrack/internal/platform/db"
)

type patientRepoMongo struct {
	col *mongo.Collection
}

func NewPatientRepo(database *mongo.Database) PatientRepository {
	return &patientRepoMongo{col: database.Collection(db.PatientsCollection)}
}

func (r *patientRepoMongo) List(ctx context.Context) ([]Patient, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var patients []Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepoMongo) Upsert(ctx context.Context, p *Patient) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"patient_id": p.PatientID},
		bson.M{"$set": p},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *patientRepoMongo) UpdateFields(ctx context.Context, patientID interface{}, fields FieldUpdate) error {
	set := bson.M{"last_updated": fields.LastUpdated}
	if fields.Height != nil {
		set["height"] = *fields.Height
	}
	if fields.Weight != nil {
		set["weight"] = *fields.Weight
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"patient_id": patientID}, bson.M{"$set": set})
	return err
}

func (r *patientRepoMongo) Delete(ctx context.Context, patientID interface{}) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"patient_id": patientID})
	return err
}

type visitRepoMongo struct {
	col *mongo.Collection
}

func NewVisitRepo(database *mongo.Database) VisitRepository {
	return &visitRepoMongo{col: database.Collection(db.VisitsCollection)}
}

func (r *visitRepoMongo) List(ctx context.Context) ([]Visit, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var visits []Visit
	if err := cursor.All(ctx, &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *visitRepoMongo) Insert(ctx context.Context, v *Visit) error {
	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *visitRepoMongo) Delete(ctx context.Context, patientID interface{}, visitDate string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"patient_id": patientID, "visit_date": visitDate})
	return err
}

func (r *visitRepoMongo) DeleteByPatient(ctx context.Context, patientID interface{}) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
