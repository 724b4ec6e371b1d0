package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client               *mongo.Client
	UserCollection       *mongo.Collection
	DailyOrderCollection *mongo.Collection
	BillCollection       *mongo.Collection
)

func ConnectDatabase(settings *Settings) {
	client, err := mongo.NewClient(options.Client().ApplyURI(settings.MongoURI))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	Client = client
	db := client.Database(settings.MongoDatabase)
	UserCollection = db.Collection("users")
	DailyOrderCollection = db.Collection("dailyorders")
	BillCollection = db.Collection("bills")

	err = EnsureIndexes(ctx)
	if err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Println("Connected to MongoDB")
}

// EnsureIndexes creates the identity constraints the billing core relies
// on: one daily order per (date, shift, user) and one bill per
// (user, month). The generator's retry safety depends on the first.
func EnsureIndexes(ctx context.Context) error {
	_, err := DailyOrderCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "date", Value: 1},
			{Key: "shift", Value: 1},
			{Key: "userId", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_date_shift_user"),
	})
	if err != nil {
		return err
	}

	_, err = BillCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "month", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_user_month"),
	})
	return err
}
