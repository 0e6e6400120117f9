// Package store persists search runs and their leads behind a Store
// interface with SQLite and Postgres implementations.
package store

import (
	"context"

	"github.com/leadscout/leadscout/internal/model"
)

// LeadFilter specifies criteria for listing stored leads.
type LeadFilter struct {
	Sector   string `json:"sector,omitempty"`
	Location string `json:"location,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for search history and leads.
type Store interface {
	// Searches
	CreateSearch(ctx context.Context, sector, location string, leadCount int) (*model.SearchRun, error)
	ListSearches(ctx context.Context, limit int) ([]model.SearchRun, error)

	// Leads
	SaveLeads(ctx context.Context, searchID string, leads []model.Lead) error
	GetLead(ctx context.Context, id string) (*model.Lead, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.Lead, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
