// Package database owns the MongoDB connection shared by the application.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/suby/config"
)

// Collection names used across the application.
const (
	ColVendors    = "vendors"
	ColFirms      = "firms"
	ColProducts   = "products"
	ColFailedJobs = "failed_jobs"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB connection, verifies it with a ping, and
// ensures the unique indexes the data model relies on. Returns an error
// instead of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.MongoURI).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(cfg.MongoDB)

	if err := ensureIndexes(ctx); err != nil {
		return err
	}
	return nil
}

// ensureIndexes creates the unique indexes backing the email and firmName
// uniqueness rules. Application-level checks remain the primary guard;
// the indexes close the race between check and insert.
func ensureIndexes(ctx context.Context) error {
	_, err := db.Collection(ColVendors).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: vendors email index: %w", err)
	}

	_, err = db.Collection(ColFirms).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "firmName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("database: firms firmName index: %w", err)
	}

	return nil
}

// DB returns the application database handle. Connect must have succeeded.
func DB() *mongo.Database { return db }

// Client returns the underlying client, used for sessions/transactions.
func Client() *mongo.Client { return client }

// Disconnect closes the connection. Safe to call with a nil client.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
