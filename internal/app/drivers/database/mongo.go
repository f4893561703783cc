package database

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	connectionString := fmt.Sprintf(
		"mongodb://%s:%s",
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)
	if driverConfig.MongoDB.Username != "" {
		connectionString = fmt.Sprintf(
			"mongodb://%s:%s@%s:%s",
			driverConfig.MongoDB.Username,
			driverConfig.MongoDB.Password,
			driverConfig.MongoDB.Host,
			driverConfig.MongoDB.Port,
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbOptions := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")

	err = ensureIndexes(ctx, client.Database(driverConfig.MongoDB.DbName))
	if err != nil {
		log.Fatalf("Failed to create mongo indexes: %s", err.Error())
	}
	log.Println("Successfully ensured mongo indexes")
	return client
}

// ensureIndexes also enforces at the storage level that a slot holds at most
// one non-cancelled appointment.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(constvars.MongoCollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(constvars.MongoCollectionDoctors).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(constvars.MongoCollectionAppointments).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: constvars.MongoFieldDoctorID, Value: 1},
				{Key: constvars.MongoFieldSlotDate, Value: 1},
				{Key: constvars.MongoFieldSlotTime, Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{constvars.MongoFieldCancelled: bson.M{"$eq": false}}),
		},
		{Keys: bson.D{{Key: constvars.MongoFieldUserID, Value: 1}, {Key: constvars.MongoFieldCreatedAt, Value: -1}}},
		{Keys: bson.D{{Key: constvars.MongoFieldDoctorID, Value: 1}, {Key: constvars.MongoFieldCreatedAt, Value: -1}}},
	})
	return err
}
