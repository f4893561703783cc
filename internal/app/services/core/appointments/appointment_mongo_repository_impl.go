package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (repo *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		// the partial unique index on (docId, slotDate, slotTime) backs the registry
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrSlotConflict(err, appointment.DoctorID, appointment.SlotDate, appointment.SlotTime)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var appointment models.Appointment
	err = repo.Collection.FindOne(ctx, bson.M{constvars.MongoFieldID: objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{constvars.MongoFieldUserID: userID})
}

func (repo *AppointmentMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{constvars.MongoFieldDoctorID: doctorID})
}

func (repo *AppointmentMongoRepository) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return repo.find(ctx, bson.M{})
}

func (repo *AppointmentMongoRepository) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: constvars.MongoFieldCreatedAt, Value: -1}})

	cursor, err := repo.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (repo *AppointmentMongoRepository) UpdateState(ctx context.Context, appointment *models.Appointment, from models.AppointmentState) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointment.ID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		constvars.MongoFieldID: objectID,
		"$or": bson.A{
			bson.M{constvars.MongoFieldState: from},
			bson.M{
				constvars.MongoFieldState:       bson.M{"$exists": false},
				constvars.MongoFieldCancelled:   from == models.AppointmentStateCancelled,
				constvars.MongoFieldIsCompleted: from == models.AppointmentStateCompleted,
			},
		},
	}
	update := bson.M{"$set": bson.M{
		constvars.MongoFieldState:       appointment.CurrentState(),
		constvars.MongoFieldCancelled:   appointment.Cancelled,
		constvars.MongoFieldIsCompleted: appointment.IsCompleted,
		constvars.MongoFieldUpdatedAt:   appointment.UpdatedAt,
	}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *AppointmentMongoRepository) MarkPaid(ctx context.Context, appointmentID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	filter := bson.M{
		constvars.MongoFieldID:        objectID,
		constvars.MongoFieldState:     bson.M{"$ne": models.AppointmentStateCancelled},
		constvars.MongoFieldCancelled: bson.M{"$ne": true},
	}
	update := bson.M{"$set": bson.M{
		constvars.MongoFieldPayment:   true,
		constvars.MongoFieldUpdatedAt: time.Now(),
	}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (repo *AppointmentMongoRepository) SetPaymentOrderID(ctx context.Context, appointmentID, orderID string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	result, err := repo.Collection.UpdateOne(ctx,
		bson.M{constvars.MongoFieldID: objectID},
		bson.M{"$set": bson.M{
			constvars.MongoFieldOrderID:   orderID,
			constvars.MongoFieldUpdatedAt: time.Now(),
		}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	return nil
}
