// Package store connects to the data store and manages persisted topics.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/tally-cli/tally/internal/models"
)

const topicsBucket = "topics"

var errTallyRunning = errors.New(
	"is tally already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// GetTopic loads a topic by id. A topic that has never been saved is a
// normal first-run condition and yields a fresh empty topic, not an error.
func (c *Client) GetTopic(id uuid.UUID) (*models.Topic, error) {
	t := models.NewTopic(id)

	err := c.View(func(tx *bolt.Tx) error {
		topicBytes := tx.Bucket([]byte(topicsBucket)).Get([]byte(id.String()))
		if len(topicBytes) == 0 {
			return nil
		}

		return json.Unmarshal(topicBytes, t)
	})

	return t, err
}

// SaveTopic writes the serialized topic, creating or overwriting it.
func (c *Client) SaveTopic(t *models.Topic) error {
	value, err := json.Marshal(t)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(topicsBucket)).Put([]byte(t.ID.String()), value)
	})
}

// DeleteTopic removes a persisted topic.
func (c *Client) DeleteTopic(id uuid.UUID) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(topicsBucket)).Delete([]byte(id.String()))
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errTallyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary bucket for storing data if it does not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(topicsBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
