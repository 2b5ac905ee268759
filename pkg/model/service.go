package model

import "time"

type PriceRange struct {
	Min float64 `json:"min" validate:"gte=0"`
	Max float64 `json:"max" validate:"gte=0,gtefield=Min"`
}

// Service is a vendor-owned marketplace listing.
type Service struct {
	ID          string      `json:"id"`
	VendorID    string      `json:"vendor_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Price       *float64    `json:"price,omitempty"`
	PriceRange  *PriceRange `json:"price_range,omitempty"`
	Images      []string    `json:"images,omitempty"`
	IsActive    bool        `json:"is_active"`
	Featured    bool        `json:"featured"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty"`
}

type ServiceInput struct {
	Name        string      `json:"name" validate:"required,min=2,max=120"`
	Description string      `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    string      `json:"category" validate:"required,min=2,max=60"`
	Price       *float64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	PriceRange  *PriceRange `json:"price_range,omitempty" validate:"omitempty"`
	Images      []string    `json:"images,omitempty" validate:"omitempty,max=50,dive,url"`
	IsActive    bool        `json:"is_active"`
	Featured    bool        `json:"featured"`
}

// ServiceUpdate carries the fields of a partial update; nil fields are left untouched.
type ServiceUpdate struct {
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category    *string     `json:"category,omitempty" validate:"omitempty,min=2,max=60"`
	Price       *float64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	PriceRange  *PriceRange `json:"price_range,omitempty" validate:"omitempty"`
	Images      *[]string   `json:"images,omitempty" validate:"omitempty,max=50,dive,url"`
	IsActive    *bool       `json:"is_active,omitempty"`
	Featured    *bool       `json:"featured,omitempty"`
}
