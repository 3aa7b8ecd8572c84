// Package datasync defines the port for the external data synchronization
// service: tagged records are created or updated individually, and every
// change pushes the full current collection to the registered handler.
package datasync

import (
	"context"
	"errors"

	"github.com/burgerhouse/storefront/internal/models"
)

var (
	ErrDuplicateID    = errors.New("record id already exists")
	ErrRecordNotFound = errors.New("record not found")
)

// Handler receives the complete collection whenever it changes. The freshest
// snapshot always wins; handlers must replace, not merge.
type Handler interface {
	OnDataChanged(records []models.Record)
}

// Service is the data synchronization port.
type Service interface {
	// Init registers the handler and pushes the current collection once.
	Init(ctx context.Context, h Handler) error
	// Create persists a new record and notifies the handler.
	Create(ctx context.Context, rec models.Record) error
	// Update persists a mutated record identified by its id.
	Update(ctx context.Context, rec models.Record) error
}
