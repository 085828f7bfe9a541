package model

import "time"

type Profile struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	UserType        string    `json:"user_type" db:"user_type"`
	CompanyName     string    `json:"company_name" db:"company_name"`
	ContactPerson   *string   `json:"contact_person,omitempty" db:"contact_person"`
	Phone           *string   `json:"phone,omitempty" db:"phone"`
	Address         *string   `json:"address,omitempty" db:"address"`
	City            *string   `json:"city,omitempty" db:"city"`
	State           *string   `json:"state,omitempty" db:"state"`
	Country         *string   `json:"country,omitempty" db:"country"`
	Website         *string   `json:"website,omitempty" db:"website"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Industry        *string   `json:"industry,omitempty" db:"industry"`
	AnnualRevenue   *string   `json:"annual_revenue,omitempty" db:"annual_revenue"`
	GSTIN           *string   `json:"gstin,omitempty" db:"gstin"`
	Rating          float64   `json:"rating" db:"rating"`
	IsVerified      bool      `json:"is_verified" db:"is_verified"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" db:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// SupplierRef is the subset of a supplier profile embedded in catalog results.
type SupplierRef struct {
	CompanyName string `json:"company_name"`
	IsVerified  bool   `json:"is_verified"`
}
