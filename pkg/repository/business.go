package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

const businessColumns = `
	id, user_id, company_name, industry_sector, sub_sector, location,
	position_title, legal_structure, establishment_year, products_or_services,
	brief_description, website
`

type businessRepository struct {
	db *sql.DB
}

func NewBusinessRepository(db *sql.DB) *businessRepository {
	return &businessRepository{db: db}
}

func (b *businessRepository) Add(ctx context.Context, userID string, details domain.BusinessDetails) error {
	const query = `
		INSERT INTO businesses (
			id, user_id, company_name, industry_sector, sub_sector, location,
			position_title, legal_structure, establishment_year,
			products_or_services, brief_description, website
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := b.db.ExecContext(ctx, query,
		uuid.NewString(), userID,
		details.CompanyName, details.IndustrySector, details.SubSector, details.Location,
		details.PositionTitle, details.LegalStructure, details.EstablishmentYear,
		details.ProductsOrServices, details.BriefDescription, details.Website,
	)
	if err != nil {
		return fmt.Errorf("saving business: %w", err)
	}

	return nil
}

// Search matches any combination of free-text query, industry sector and
// location; empty filters are ignored.
func (b *businessRepository) Search(ctx context.Context, query, sector, location string) ([]domain.Business, error) {
	const sqlQuery = `
		SELECT ` + businessColumns + `
		FROM businesses
		WHERE ($1 = '' OR company_name ILIKE '%' || $1 || '%' OR brief_description ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR industry_sector ILIKE $2)
		  AND ($3 = '' OR location ILIKE $3)
		ORDER BY company_name
	`

	rows, err := b.db.QueryContext(ctx, sqlQuery, query, sector, location)
	if err != nil {
		return nil, fmt.Errorf("searching businesses: %w", err)
	}
	defer rows.Close()

	return b.scanAll(rows)
}

func (b *businessRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Business, error) {
	const query = `
		SELECT ` + businessColumns + `
		FROM businesses
		WHERE user_id = $1
		ORDER BY company_name
	`

	rows, err := b.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching businesses by user: %w", err)
	}
	defer rows.Close()

	return b.scanAll(rows)
}

func (b *businessRepository) scanAll(rows *sql.Rows) ([]domain.Business, error) {
	var businesses []domain.Business
	for rows.Next() {
		var biz domain.Business
		if err := rows.Scan(
			&biz.ID, &biz.UserID,
			&biz.Details.CompanyName, &biz.Details.IndustrySector, &biz.Details.SubSector,
			&biz.Details.Location, &biz.Details.PositionTitle, &biz.Details.LegalStructure,
			&biz.Details.EstablishmentYear, &biz.Details.ProductsOrServices,
			&biz.Details.BriefDescription, &biz.Details.Website,
		); err != nil {
			return nil, fmt.Errorf("scanning business row: %w", err)
		}
		businesses = append(businesses, biz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating business rows: %w", err)
	}

	return businesses, nil
}
