package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

const userColumns = `
	id, name, email, account_number, registration_id, company, location,
	primary_stream, secondary_stream, conference_package,
	is_conference_attendee, conference_name
`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

func (u *userRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE registration_id = $1
	`

	return u.scanOne(u.db.QueryRowContext(ctx, query, registrationID))
}

// GetByQRCode resolves a scanned badge QR code, which encodes the user ID.
func (u *userRepository) GetByQRCode(ctx context.Context, qrCode string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	return u.scanOne(u.db.QueryRowContext(ctx, query, qrCode))
}

func (u *userRepository) SearchByName(ctx context.Context, name string) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
	`

	rows, err := u.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("searching users by name: %w", err)
	}
	defer rows.Close()

	return u.scanAll(rows)
}

func (u *userRepository) ListAttendees(ctx context.Context, limit int) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_conference_attendee
		ORDER BY name
		LIMIT $1
	`

	rows, err := u.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing attendees: %w", err)
	}
	defer rows.Close()

	return u.scanAll(rows)
}

func (u *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.AccountNumber, &user.RegistrationID,
		&user.Company, &user.Location, &user.PrimaryStream, &user.SecondaryStream,
		&user.ConferencePackage, &user.IsConferenceAttendee, &user.ConferenceName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	return &user, nil
}

func (u *userRepository) scanAll(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.AccountNumber, &user.RegistrationID,
			&user.Company, &user.Location, &user.PrimaryStream, &user.SecondaryStream,
			&user.ConferencePackage, &user.IsConferenceAttendee, &user.ConferenceName,
		); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}
