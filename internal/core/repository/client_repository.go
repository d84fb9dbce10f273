package repository

import (
	"context"
	"errors"
	"io"

	"github.com/martijn/garage/internal/core/domain"
)

// ErrNotFound is returned by repositories and content stores for unknown keys.
var ErrNotFound = errors.New("not found")

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Client, error)
}

// ContentStore holds uploaded documents keyed by their stored name.
type ContentStore interface {
	Save(ctx context.Context, name string, data []byte, mediaType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
