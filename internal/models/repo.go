package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	UsersColName  = "users"
	EventsColName = "events"
)

// Store is everything the services need from a backend.
type Store interface {
	UserRepo
	EventRepo
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// EnsureIndexes creates the unique email index and the event lookup indexes.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	users, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return err
	}
	if _, err := users.Indexes().CreateMany(ctx, userIndexes()); err != nil {
		return fmt.Errorf("error creating user indexes: %w", err)
	}

	events, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return err
	}
	if _, err := events.Indexes().CreateMany(ctx, eventIndexes()); err != nil {
		return fmt.Errorf("error creating event indexes: %w", err)
	}
	return nil
}
