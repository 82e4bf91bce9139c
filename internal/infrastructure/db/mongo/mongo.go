package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workforcehq/employee-api/internal/infrastructure/config"
)

const defaultTimeout = 10 * time.Second

// Connect establishes the MongoDB client backing the user and employee
// stores, verifies connectivity with a ping and returns both the client and
// the selected database.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes bootstraps every index the repositories rely on: the unique
// username/email identity constraints and the employee filter and sort keys.
// Called once at startup, after Connect.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := NewEmployeeRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("employee indexes: %w", err)
	}
	return nil
}
