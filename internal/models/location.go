package models

// Location is a physical place where sessions happen.
type Location struct {
	Auditable
	Name         string       `db:"name" json:"name"`
	Description  *string      `db:"description" json:"description,omitempty"`
	AddressLine1 *string      `db:"address_line1" json:"address_line1,omitempty"`
	AddressLine2 *string      `db:"address_line2" json:"address_line2,omitempty"`
	City         *string      `db:"city" json:"city,omitempty"`
	State        *string      `db:"state" json:"state,omitempty"`
	PostalCode   *string      `db:"postal_code" json:"postal_code,omitempty"`
	Country      *string      `db:"country" json:"country,omitempty"`
	Latitude     *float64     `db:"latitude" json:"latitude,omitempty"`
	Longitude    *float64     `db:"longitude" json:"longitude,omitempty"`
	LocationType LocationType `db:"location_type" json:"location_type"`
}

// LocationFilter narrows location listings.
type LocationFilter struct {
	City string
}
