package storage

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when reading an object which does not exist.
var ErrNotFound = errors.New("object not found")

// Provider is the interface for storage providers
type Provider interface {
	// Read reads the object from storage
	Read(ctx context.Context, path string) ([]byte, error)
	// Write writes the object to storage
	Write(ctx context.Context, path string, data []byte) error
	// List lists the paths of the objects under prefix in lexical order
	List(ctx context.Context, prefix string) ([]string, error)
}
