package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/models"
	"backend/services"
)

// UserDirectory reads subscriber records owned by the account service.
type UserDirectory struct {
	coll *mongo.Collection
}

func NewUserDirectory(coll *mongo.Collection) *UserDirectory {
	return &UserDirectory{coll: coll}
}

func (d *UserDirectory) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := d.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (d *UserDirectory) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := d.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, services.ErrUserNotFound
	}
	return user, err
}

func (d *UserDirectory) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	cursor, err := d.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
