package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/tradelink/internal/model"
)

type ProfileService struct {
	db DB
}

func NewProfileService(db DB) *ProfileService {
	return &ProfileService{db: db}
}

const profileColumns = `id, user_id, user_type, company_name, contact_person, phone, address,
	city, state, country, website, description, industry, annual_revenue, gstin,
	rating, is_verified, profile_image_url, created_at, updated_at`

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.UserType, &p.CompanyName, &p.ContactPerson,
		&p.Phone, &p.Address, &p.City, &p.State, &p.Country, &p.Website,
		&p.Description, &p.Industry, &p.AnnualRevenue, &p.GSTIN,
		&p.Rating, &p.IsVerified, &p.ProfileImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	return p, nil
}

// GetByUserID resolves the profile belonging to an authenticated user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile for user %s: %w", userID, err)
	}
	return p, nil
}

// GetSupplier returns the profile only when it belongs to a supplier.
func (s *ProfileService) GetSupplier(ctx context.Context, id string) (*model.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1 AND user_type = $2`,
		id, model.UserTypeSupplier))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get supplier %s: %w", id, err)
	}
	return p, nil
}
