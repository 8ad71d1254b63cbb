package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/repository"
)

const mongoConnectTimeout = 30 * time.Second

// ConnectMongo connects to the document store and ensures the indexes the
// adapters rely on. Transactions require a replica set deployment.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Unavailable("failed to connect to mongodb", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, apperrors.Unavailable("mongodb ping failed", err)
	}

	db := client.Database(dbName)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}
