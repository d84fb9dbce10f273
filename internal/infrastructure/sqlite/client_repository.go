package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/martijn/garage/internal/core/domain"
	"github.com/martijn/garage/internal/core/repository"
)

// clientRow is the on-disk shape of a client; nested objects are JSON text.
type clientRow struct {
	ID             string    `db:"id"`
	LastName       string    `db:"last_name"`
	FirstName      string    `db:"first_name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	PostalAddress  string    `db:"postal_address"`
	Vehicle        string    `db:"vehicle"`
	Quote          string    `db:"quote"`
	Preferences    string    `db:"preferences"`
	AttachmentName string    `db:"attachment_name"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

const clientColumns = `id, last_name, first_name, email, phone, postal_address,
	vehicle, quote, preferences, attachment_name, created_at, updated_at`

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	row, err := toClientRow(client)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO client (` + clientColumns + `)
		VALUES (:id, :last_name, :first_name, :email, :phone, :postal_address,
			:vehicle, :quote, :preferences, :attachment_name, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE id = ?`

	var row clientRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return row.toDomain()
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	row, err := toClientRow(client)
	if err != nil {
		return err
	}

	query := `
		UPDATE client
		SET last_name = :last_name, first_name = :first_name, email = :email,
			phone = :phone, postal_address = :postal_address, vehicle = :vehicle,
			quote = :quote, preferences = :preferences,
			attachment_name = :attachment_name, updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("client %s: %w", client.ID, repository.ErrNotFound)
	}

	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM client WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("client %s: %w", id, repository.ErrNotFound)
	}

	return nil
}

// List returns clients in creation order.
func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client ORDER BY created_at, rowid`

	var rows []clientRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*domain.Client, 0, len(rows))
	for i := range rows {
		client, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, nil
}

func toClientRow(client *domain.Client) (*clientRow, error) {
	vehicleJSON, err := json.Marshal(client.Vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vehicle: %w", err)
	}
	quoteJSON, err := json.Marshal(client.Quote)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quote: %w", err)
	}
	preferencesJSON, err := json.Marshal(client.Preferences)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences: %w", err)
	}

	return &clientRow{
		ID:             client.ID,
		LastName:       client.LastName,
		FirstName:      client.FirstName,
		Email:          client.Email,
		Phone:          client.Phone,
		PostalAddress:  client.PostalAddress,
		Vehicle:        string(vehicleJSON),
		Quote:          string(quoteJSON),
		Preferences:    string(preferencesJSON),
		AttachmentName: client.AttachmentName,
		CreatedAt:      client.CreatedAt,
		UpdatedAt:      client.UpdatedAt,
	}, nil
}

func (row *clientRow) toDomain() (*domain.Client, error) {
	client := &domain.Client{
		ID:             row.ID,
		LastName:       row.LastName,
		FirstName:      row.FirstName,
		Email:          row.Email,
		Phone:          row.Phone,
		PostalAddress:  row.PostalAddress,
		AttachmentName: row.AttachmentName,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if err := json.Unmarshal([]byte(row.Vehicle), &client.Vehicle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Quote), &client.Quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Preferences), &client.Preferences); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	return client, nil
}
