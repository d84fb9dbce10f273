package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/martijn/garage/internal/core/domain"
	"github.com/martijn/garage/internal/core/repository"
	"github.com/shopspring/decimal"
)

func setupRepo(t *testing.T) repository.ClientRepository {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewClientRepository(db)
}

func newTestClient(lastName string) *domain.Client {
	inspection := domain.NewDate(2024, time.March, 14)
	amount := decimal.RequireFromString("1250.40")
	year, km := 2017, 98000

	return domain.NewClient(domain.ClientPatch{
		LastName:  &lastName,
		FirstName: ptr("Claire"),
		Email:     ptr("claire@example.com"),
		Vehicle: &domain.VehiclePatch{
			Make:               ptr("Peugeot"),
			Model:              ptr("308"),
			RegistrationPlate:  ptr("AB-123-CD"),
			ManufactureYear:    &year,
			OdometerKm:         &km,
			LastInspectionDate: &inspection,
		},
		Quote: &domain.QuotePatch{
			Number:      ptr("D-2024-001"),
			TotalAmount: &amount,
		},
	})
}

func TestClientRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	client := newTestClient("Martin")
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	if got.LastName != "Martin" || got.Email != "claire@example.com" {
		t.Errorf("unexpected top-level fields %+v", got)
	}
	if got.Vehicle.Model != "308" || *got.Vehicle.OdometerKm != 98000 || *got.Vehicle.ManufactureYear != 2017 {
		t.Errorf("unexpected vehicle %+v", got.Vehicle)
	}
	if got.Vehicle.LastInspectionDate == nil || got.Vehicle.LastInspectionDate.String() != "2024-03-14" {
		t.Errorf("unexpected inspection date %v", got.Vehicle.LastInspectionDate)
	}
	if got.Quote.TotalAmount == nil || !got.Quote.TotalAmount.Equal(decimal.RequireFromString("1250.4")) {
		t.Errorf("unexpected amount %v", got.Quote.TotalAmount)
	}
	if got.Quote.Status != domain.QuoteStatusPending || got.Preferences.PaymentMethod != domain.PaymentMethodCard {
		t.Errorf("defaults not persisted: %+v %+v", got.Quote, got.Preferences)
	}
	if !got.CreatedAt.Equal(client.CreatedAt) {
		t.Errorf("createdAt changed: %v != %v", got.CreatedAt, client.CreatedAt)
	}
}

func TestClientRepositoryFindUnknown(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClientRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	client := newTestClient("Martin")
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create: %v", err)
	}

	client.Vehicle.Make = "Citroën"
	client.AttachmentName = "01J9Z.pdf"
	if err := repo.Update(ctx, client); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.FindByID(ctx, client.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Vehicle.Make != "Citroën" || got.AttachmentName != "01J9Z.pdf" {
		t.Errorf("update not persisted: %+v", got)
	}

	missing := newTestClient("Ghost")
	if err := repo.Update(ctx, missing); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound updating unknown client, got %v", err)
	}
}

func TestClientRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	client := newTestClient("Martin")
	if err := repo.Create(ctx, client); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, client.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, client.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, client.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestClientRepositoryListInCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	names := []string{"Zola", "Abel", "Martin"}
	var ids []string
	for _, name := range names {
		client := newTestClient(name)
		if err := repo.Create(ctx, client); err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, client.ID)
	}

	clients, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(clients) != len(ids) {
		t.Fatalf("expected %d clients, got %d", len(ids), len(clients))
	}
	for i, client := range clients {
		if client.ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], client.ID)
		}
	}
}

func TestClientRepositoryListEmpty(t *testing.T) {
	clients, err := setupRepo(t).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("expected no clients, got %d", len(clients))
	}
}

func ptr[T any](v T) *T {
	return &v
}
