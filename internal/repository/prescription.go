package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinic-app-server/internal/models"
)

// PrescriptionStore is the Mongo-backed PrescriptionRepository.
type PrescriptionStore struct {
	collection *mongo.Collection
}

// NewPrescriptionStore creates a new PrescriptionStore and ensures the
// one-prescription-per-appointment index exists.
func NewPrescriptionStore(ctx context.Context, db *mongo.Database) (*PrescriptionStore, error) {
	coll := db.Collection("prescriptions")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "appointmentId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return &PrescriptionStore{collection: coll}, nil
}

func (s *PrescriptionStore) Insert(ctx context.Context, prescription *models.Prescription) error {
	if prescription.ID == "" {
		prescription.ID = primitive.NewObjectID().Hex()
	}
	_, err := s.collection.InsertOne(ctx, prescription)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *PrescriptionStore) FindByAppointment(ctx context.Context, appointmentID string) ([]models.Prescription, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"appointmentId": appointmentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prescriptions []models.Prescription
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}
