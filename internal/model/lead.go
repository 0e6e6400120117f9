// Package model defines the domain types shared across the pipeline,
// store, export, and HTTP layers.
package model

import "time"

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Photo is a provider photo reference plus its display URL.
type Photo struct {
	Reference string `json:"reference"`
	URL       string `json:"url"`
}

// ContactDetails holds a lead's contact channels. Email is a derived guess
// ("info@<domain>"), never verified contact data. Fields default to empty
// strings so consumers need no null-checks.
type ContactDetails struct {
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	SocialMedia map[string]string `json:"socialMedia"`
	Website     string            `json:"website"`
}

// Lead is the durable output unit of a search. It is constructed once,
// cached, and immutable after creation.
type Lead struct {
	ID                string         `json:"id"`
	BusinessName      string         `json:"businessName"`
	BusinessType      string         `json:"businessType"`
	OwnerName         string         `json:"ownerName"`
	ContactDetails    ContactDetails `json:"contactDetails"`
	Address           string         `json:"address"`
	Location          string         `json:"location"`
	Description       string         `json:"description"`
	Source            string         `json:"source"`
	VerificationScore int            `json:"verificationScore"`
	GoogleMapsURL     string         `json:"googleMapsUrl"`
	BusinessStatus    string         `json:"businessStatus"`
	PriceLevel        *int           `json:"priceLevel"`
	PlaceTypes        []string       `json:"placeTypes"`
	Photos            []Photo        `json:"photos"`
}

// SearchRun records one completed lead search.
type SearchRun struct {
	ID        string    `json:"id"`
	Sector    string    `json:"sector"`
	Location  string    `json:"location"`
	LeadCount int       `json:"leadCount"`
	CreatedAt time.Time `json:"createdAt"`
}
