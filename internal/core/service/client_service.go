package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/martijn/garage/internal/core/domain"
	"github.com/martijn/garage/internal/core/repository"
)

// ClientService is the record store: the only place client records are
// created or mutated.
type ClientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
	}
}

// ListClients returns every client in creation order
func (s *ClientService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, unavailableError("client store unavailable", err)
	}
	return clients, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}
	return client, nil
}

// CreateClient fills the defaults, validates and stores a new client
func (s *ClientService) CreateClient(ctx context.Context, patch domain.ClientPatch) (*domain.Client, error) {
	client := domain.NewClient(patch)
	if err := client.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, unavailableError("failed to create client", err)
	}

	return client, nil
}

// UpdateClient merges the patch into the stored client. The stored record is
// left as is when the merged result does not validate.
func (s *ClientService) UpdateClient(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	stored, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	client := stored.Clone()
	client.Apply(patch)
	if err := client.Validate(); err != nil {
		return nil, validationError(err)
	}
	client.Touch()

	if err := s.save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient removes a client. Deleting an unknown ID succeeds.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	err := s.clientRepo.Delete(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return unavailableError("failed to delete client", err)
	}
	return nil
}

func (s *ClientService) save(ctx context.Context, client *domain.Client) error {
	if err := s.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(fmt.Sprintf("Client not found: %s", client.ID), err)
		}
		return unavailableError("failed to update client", err)
	}
	return nil
}

func (s *ClientService) lookupError(id string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundError(fmt.Sprintf("Client not found: %s", id), err)
	}
	return unavailableError("client store unavailable", err)
}
