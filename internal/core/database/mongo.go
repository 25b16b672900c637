package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

type MongoOpts struct {
	URI            string
	Database       string // used when the URI names no database
	AppName        string
	ConnectTimeout time.Duration
}

// NewMongo builds the process-wide client. The driver connects in the
// background, so an unreachable server surfaces on Ping or on first use.
func NewMongo(o MongoOpts) (*mongo.Client, string, error) {
	cs, err := connstring.ParseAndValidate(o.URI)
	if err != nil {
		return nil, "", err
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = o.Database
	}

	opts := options.Client().ApplyURI(o.URI)
	if o.AppName != "" {
		opts.SetAppName(o.AppName)
	}
	if o.ConnectTimeout > 0 {
		opts.SetConnectTimeout(o.ConnectTimeout)
		opts.SetServerSelectionTimeout(o.ConnectTimeout)
	}
	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, "", err
	}
	return client, dbName, nil
}
