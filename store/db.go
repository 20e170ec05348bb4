package store

import (
	"github.com/google/uuid"

	"github.com/tally-cli/tally/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// GetTopic returns the persisted topic with the given id, or a fresh
	// empty topic when none has been saved yet.
	GetTopic(id uuid.UUID) (*models.Topic, error)
	// SaveTopic persists a topic. The topic is created if it doesn't exist
	// already, or overwritten if it does.
	SaveTopic(t *models.Topic) error
	// DeleteTopic deletes a persisted topic.
	DeleteTopic(id uuid.UUID) error
	// Close ends the database connection.
	Close() error
}
