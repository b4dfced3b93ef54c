package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB menginisialisasi koneksi ke MongoDB.
func ConnectDB(uri string, mode string, log *zap.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to MongoDB")
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "error pinging MongoDB")
	}

	if mode == "atlas" {
		log.Info("connected to MongoDB Atlas")
	} else {
		log.Info("connected to local MongoDB")
	}

	return client, nil
}
