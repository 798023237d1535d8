package dto

import "time"

// LocationRequest is the create and update payload for a venue.
type LocationRequest struct {
	Name         string   `json:"name" validate:"required,notblank,max=255"`
	Description  *string  `json:"description" validate:"omitempty,max=1000"`
	AddressLine1 *string  `json:"addressLine1" validate:"omitempty,max=255"`
	AddressLine2 *string  `json:"addressLine2" validate:"omitempty,max=255"`
	City         *string  `json:"city" validate:"omitempty,max=120"`
	State        *string  `json:"state" validate:"omitempty,max=120"`
	PostalCode   *string  `json:"postalCode" validate:"omitempty,max=32"`
	Country      *string  `json:"country" validate:"omitempty,max=120"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,longitude"`
	LocationType string   `json:"locationType" validate:"omitempty,oneof=STUDIO COMMUNITY_SPACE PRIVATE_RESIDENCE OUTDOOR OTHER"`
}

type LocationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	AddressLine1 *string   `json:"addressLine1,omitempty"`
	AddressLine2 *string   `json:"addressLine2,omitempty"`
	City         *string   `json:"city,omitempty"`
	State        *string   `json:"state,omitempty"`
	PostalCode   *string   `json:"postalCode,omitempty"`
	Country      *string   `json:"country,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	LocationType string    `json:"locationType"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
