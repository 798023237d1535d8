package dto

// UserSummary is the compact user shape embedded in sessions and notes.
type UserSummary struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	PrimaryRole    string `json:"primaryRole"`
	WsdcSkillLevel string `json:"wsdcSkillLevel"`
}

// LocationSummary is the compact location shape embedded in other resources.
type LocationSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	LocationType string  `json:"locationType"`
}
