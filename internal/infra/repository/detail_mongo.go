package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
)

const detailCollection = "clinical_details"

// DetailMongoStore keeps one clinical detail document per
// appointment, keyed by the relational id in string form. No schema
// is enforced; patches may carry fields this build does not know.
type DetailMongoStore struct {
	col *mongo.Collection
}

func NewDetailMongoStore(db *mongo.Database) *DetailMongoStore {
	return &DetailMongoStore{col: db.Collection(detailCollection)}
}

func (s *DetailMongoStore) Create(
	ctx context.Context,
	d *domain.ClinicalDetail,
) error {
	_, err := s.col.InsertOne(ctx, d)
	return err
}

func (s *DetailMongoStore) FindByAppointmentID(
	ctx context.Context,
	appointmentID string,
) (*domain.ClinicalDetail, error) {

	var d domain.ClinicalDetail
	err := s.col.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (s *DetailMongoStore) Upsert(
	ctx context.Context,
	appointmentID string,
	patch domain.DetailPatch,
) error {

	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}

	_, err := s.col.UpdateOne(
		ctx,
		bson.M{"appointmentId": appointmentID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"appointmentId": appointmentID},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *DetailMongoStore) DeleteByAppointmentID(
	ctx context.Context,
	appointmentID string,
) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"appointmentId": appointmentID})
	return err
}

// Compile-time check
var _ domain.DetailStore = (*DetailMongoStore)(nil)
