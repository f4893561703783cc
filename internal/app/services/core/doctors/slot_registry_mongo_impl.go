package doctors

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SlotRegistryMongo mutates doctors.slots_booked with single-document
// conditional updates, so a reservation is decided by the database and not
// by an earlier read.
type SlotRegistryMongo struct {
	Collection *mongo.Collection
}

func NewSlotRegistryMongo(db *mongo.Client, dbName string) contracts.SlotRegistry {
	return &SlotRegistryMongo{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
	}
}

func slotField(dateKey string) string {
	return constvars.MongoFieldSlotsBooked + "." + dateKey
}

func (r *SlotRegistryMongo) Reserve(ctx context.Context, doctorID string, key models.SlotKey) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	field := slotField(key.DateKey)
	filter := bson.M{
		constvars.MongoFieldID: objectID,
		field:                  bson.M{"$ne": key.Time},
	}
	update := bson.M{"$addToSet": bson.M{field: key.Time}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrSlotConflict(nil, doctorID, key.DateKey, key.Time)
	}
	return nil
}

func (r *SlotRegistryMongo) Release(ctx context.Context, doctorID string, key models.SlotKey) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	_, err = r.Collection.UpdateOne(ctx,
		bson.M{constvars.MongoFieldID: objectID},
		bson.M{"$pull": bson.M{slotField(key.DateKey): key.Time}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
