package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/martijn/garage/internal/core/domain"
	"github.com/martijn/garage/internal/core/repository"
	"github.com/martijn/garage/internal/infrastructure/content/local"
	"github.com/martijn/garage/internal/infrastructure/sqlite"
)

// setupServices wires both services on an in-memory database and a
// temporary content directory.
func setupServices(t *testing.T) (*ClientService, *AttachmentService, *local.Store) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := local.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create content store: %v", err)
	}

	clients := NewClientService(sqlite.NewClientRepository(db))
	return clients, NewAttachmentService(clients, store, nil), store
}

func mustCreate(t *testing.T, s *ClientService, patch domain.ClientPatch) *domain.Client {
	t.Helper()

	client, err := s.CreateClient(context.Background(), patch)
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	return client
}

func named(last, first string) domain.ClientPatch {
	return domain.ClientPatch{LastName: &last, FirstName: &first}
}

// failingStore is a content area that refuses every write.
type failingStore struct{}

func (failingStore) Save(context.Context, string, []byte, string) error {
	return errors.New("disk full")
}

func (failingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("disk gone")
}

var errDatabaseDown = errors.New("database is locked")

// brokenRepository wraps a working repository and overrides the calls a
// test wants to fail.
type brokenRepository struct {
	repository.ClientRepository
	listErr   error
	updateErr error
}

func (r *brokenRepository) List(ctx context.Context) ([]*domain.Client, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.ClientRepository.List(ctx)
}

func (r *brokenRepository) Update(ctx context.Context, client *domain.Client) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.ClientRepository.Update(ctx, client)
}

// setupBrokenRepository returns a client service over an in-memory database
// whose repository fails as configured.
func setupBrokenRepository(t *testing.T) (*ClientService, *brokenRepository) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := &brokenRepository{ClientRepository: sqlite.NewClientRepository(db)}
	return NewClientService(repo), repo
}

func ptr[T any](v T) *T {
	return &v
}
