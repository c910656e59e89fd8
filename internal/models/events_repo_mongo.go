package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	EventsColName   = "events"
	CountersColName = "counters"
)

func (mdb *MongodbRepo) GetCollection(ctx context.Context, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(mdb.dbName).Collection(colName), nil
}

// nextEventID hands out identity-style keys from a per-collection counter document.
func (mdb *MongodbRepo) nextEventID(ctx context.Context) (int64, error) {
	col, err := mdb.GetCollection(ctx, CountersColName)
	if err != nil {
		return 0, err
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": EventsColName},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("error generating event id: %w", err)
	}
	return counter.Seq, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id int64) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, err
	}

	var event Event
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding event by ID: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, err
	}

	cursor, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error finding events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	for cursor.Next(ctx) {
		var event Event
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("error decoding event: %w", err)
		}
		events = append(events, &event)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return events, nil
}

func (mdb *MongodbRepo) SaveEvent(ctx context.Context, event *Event) (*Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, err
	}

	stored := *event
	stored.StartDateTime = stored.StartDateTime.UTC()
	stored.EndDateTime = stored.EndDateTime.UTC()

	if stored.ID == 0 {
		if stored.ID, err = mdb.nextEventID(ctx); err != nil {
			return nil, err
		}
		if _, err := col.InsertOne(ctx, stored); err != nil {
			return nil, fmt.Errorf("failed to insert event into database: %w", err)
		}
	} else {
		res, err := col.ReplaceOne(ctx, bson.M{"_id": stored.ID}, stored)
		if err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, fmt.Errorf("event with id %d: %w", stored.ID, ErrNotFound)
		}
	}

	*event = stored
	return event, nil
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id int64) error {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return err
	}
	if _, err := col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	return nil
}
