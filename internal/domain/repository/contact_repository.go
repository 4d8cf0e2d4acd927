package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contacts_api/internal/common"
	"contacts_api/internal/domain/model"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	FindByID(ctx context.Context, id string) (*model.Contact, error)
	FindByOwner(ctx context.Context, ownerID string) ([]model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, id string) error
}

type pgContactRepository struct {
	db *sql.DB
}

func NewPgContactRepository(db *sql.DB) ContactRepository {
	return &pgContactRepository{db: db}
}

func (r *pgContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query := `INSERT INTO contacts (id, owner_id, name, email, phone)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, contact.ID, contact.OwnerID, contact.Name, contact.Email, contact.Phone)
	if err != nil {
		return fmt.Errorf("pgContactRepository.Create: %w", err)
	}
	return nil
}

func (r *pgContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	query := `SELECT id, owner_id, name, email, phone, created_at, updated_at
	          FROM contacts WHERE id = $1`
	contact := &model.Contact{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&contact.ID, &contact.OwnerID, &contact.Name, &contact.Email, &contact.Phone,
		&contact.CreatedAt, &contact.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFound("Contact not found")
		}
		return nil, fmt.Errorf("pgContactRepository.FindByID: %w", err)
	}
	return contact, nil
}

func (r *pgContactRepository) FindByOwner(ctx context.Context, ownerID string) ([]model.Contact, error) {
	query := `SELECT id, owner_id, name, email, phone, created_at, updated_at
	          FROM contacts WHERE owner_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgContactRepository.FindByOwner: %w", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var contact model.Contact
		if err := rows.Scan(
			&contact.ID, &contact.OwnerID, &contact.Name, &contact.Email, &contact.Phone,
			&contact.CreatedAt, &contact.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgContactRepository.FindByOwner: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgContactRepository.FindByOwner: %w", err)
	}
	return contacts, nil
}

func (r *pgContactRepository) Update(ctx context.Context, contact *model.Contact) error {
	query := `UPDATE contacts SET name = $1, email = $2, phone = $3, updated_at = now()
	          WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, contact.Name, contact.Email, contact.Phone, contact.ID)
	if err != nil {
		return fmt.Errorf("pgContactRepository.Update: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NotFound("Contact not found")
	}
	return nil
}

func (r *pgContactRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM contacts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgContactRepository.Delete: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NotFound("Contact not found")
	}
	return nil
}
