package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) *organizationRepository {
	return &organizationRepository{db: db}
}

func (o *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	const query = `
		SELECT id, name, details
		FROM organizations
		WHERE id = $1
	`

	var org domain.Organization
	var detailsRaw []byte
	err := o.db.QueryRowContext(ctx, query, id).Scan(&org.ID, &org.Name, &detailsRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching organization by id: %w", err)
	}

	if len(detailsRaw) > 0 {
		if err := json.Unmarshal(detailsRaw, &org.Details); err != nil {
			return nil, fmt.Errorf("decoding organization details: %w", err)
		}
	}

	return &org, nil
}
