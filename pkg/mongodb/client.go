package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client wraps the MongoDB driver client
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects to MongoDB and verifies the connection
func NewClient(uri string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	return &Client{
		client: client,
	}, nil
}

// Database returns a database handle
func (c *Client) Database(name string) *mongo.Database {
	if c.db == nil || c.db.Name() != name {
		c.db = c.client.Database(name)
	}
	return c.db
}

// Disconnect disconnects from MongoDB
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
