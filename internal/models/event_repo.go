package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	EventNotFoundMessage = "Event not found"
	AlreadyJoinedMessage = "Already joined this event"
)

// EventFilter narrows ListEvents. A nil Owner lists every event.
type EventFilter struct {
	Owner *primitive.ObjectID
}

type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	UpdateEvent(ctx context.Context, id, owner primitive.ObjectID, changes EventChanges) (*Event, error)
	DeleteEvent(ctx context.Context, id, owner primitive.ObjectID) error
	AddAttendee(ctx context.Context, id, userID primitive.ObjectID) (*Event, error)
	RemoveAttendee(ctx context.Context, id, userID primitive.ObjectID) (*Event, error)
}

func eventIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date_idx"),
		},
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetName("owner_date_idx"),
		},
	}
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) error {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return err
	}

	event.BeforeCreate()
	if _, err := col.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	var event Event
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError(EventNotFoundMessage)
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if filter.Owner != nil {
		query["owner"] = *filter.Owner
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}
	return events, nil
}

// UpdateEvent applies changes to an event owned by owner. The owner is part of
// the filter so a stale ownership check cannot update someone else's event.
func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, id, owner primitive.ObjectID, changes EventChanges) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.Date != nil {
		set["date"] = *changes.Date
	}
	if changes.Location != nil {
		set["location"] = *changes.Location
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var event Event
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id, "owner": owner}, bson.M{"$set": set}, opts).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError(EventNotFoundMessage)
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id, owner primitive.ObjectID) error {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return NewNotFoundError(EventNotFoundMessage)
	}
	return nil
}

// AddAttendee adds userID to the attendee set in a single conditional update:
// the filter only matches while userID is not yet an attendee, so two racing
// joins cannot both succeed.
func (mdb *MongodbRepo) AddAttendee(ctx context.Context, id, userID primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"_id":       id,
		"attendees": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{"attendees": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event Event
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&event)
	if err == nil {
		return &event, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to join event: %w", err)
	}

	// Nothing matched: either the event is gone or userID is already in.
	if _, err := mdb.GetEventByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, NewConflictError(AlreadyJoinedMessage)
}

// RemoveAttendee pulls userID from the attendee set. Removing a user who is
// not an attendee leaves the event unchanged.
func (mdb *MongodbRepo) RemoveAttendee(ctx context.Context, id, userID primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(EventsColName)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$pull": bson.M{"attendees": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event Event
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError(EventNotFoundMessage)
		}
		return nil, fmt.Errorf("failed to leave event: %w", err)
	}
	return &event, nil
}
