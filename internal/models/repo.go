package models

import (
	"context"

	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// EventsRepo is the persistence gateway for events.
// GetEventByID returns (nil, nil) when no row has the id.
// SaveEvent inserts when event.ID is zero and overwrites the row otherwise.
// DeleteEvent does not fail for an unknown id.
type EventsRepo interface {
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	SaveEvent(ctx context.Context, event *Event) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

type PostgresRepo struct {
	db *gorm.DB
}

func PostgresNewRepo(db *gorm.DB) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

type SupabaseRepo struct {
	supabaseClient *supabase.Client
}

func SupabaseNewRepo(supabaseClient *supabase.Client) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
	}
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
