package connect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/calendar/internal/config"
	"github.com/joshua-takyi/calendar/internal/models"
	"github.com/joshua-takyi/calendar/internal/notify"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store is an opened events repo together with whatever has to be released on shutdown.
type Store struct {
	Repo  models.EventsRepo
	close func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStore connects to the backend named by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := PostgresConnect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		repo := models.PostgresNewRepo(db)
		if err := repo.Migrate(ctx, logger); err != nil {
			PostgresDisconnect(db)
			return nil, fmt.Errorf("error whilst migrating: %w", err)
		}
		return &Store{
			Repo:  repo,
			close: func(context.Context) error { return PostgresDisconnect(db) },
		}, nil

	case config.DriverSupabase:
		client, err := InitSupabase(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, err
		}
		return &Store{Repo: models.SupabaseNewRepo(client)}, nil

	case config.DriverMongo:
		client, err := MongoDBConnect(ctx, cfg.MongoDBURI, cfg.MongoDBPassword)
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:  models.MongodbNewRepo(client, cfg.MongoDBDatabase),
			close: func(ctx context.Context) error { return MongoDBDisconnect(ctx, client) },
		}, nil

	case config.DriverMemory:
		return &Store{Repo: models.NewMemoryRepo()}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// postgres init

func PostgresConnect(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get Postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	return db, nil
}

func PostgresDisconnect(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// supabase init

func InitSupabase(url, key string) (*supabase.Client, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}

// mongo init

func MongoDBConnect(ctx context.Context, uri, password string) (*mongo.Client, error) {
	fullUri := strings.Replace(uri, "<password>", password, 1)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fullUri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

func MongoDBDisconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	return nil
}

// rabbitmq init

// OpenPublisher returns a connected producer, or a no-op publisher when no broker URL is set.
func OpenPublisher(amqpURL string) (notify.Publisher, func() error, error) {
	if amqpURL == "" {
		return notify.NopPublisher{}, func() error { return nil }, nil
	}

	producer := notify.NewProducer(amqpURL)
	if err := producer.Open(); err != nil {
		return nil, nil, fmt.Errorf("cannot open rabbitmq connection: %w", err)
	}
	return producer, producer.Close, nil
}
