// Package provider implements the outbound item-data client and the
// in-process request deduplication layer in front of it.
package provider

import (
	"context"

	"github.com/osse101/CraftVault_Go/internal/domain"
)

// SearchResult is one row of an item search.
type SearchResult struct {
	ID      int
	Name    string
	Tier    int
	IconURL string
}

// ItemData is the provider's view of a single item.
type ItemData struct {
	ID      int
	Name    string
	Tier    int
	IconURL string
}

// GatheringData describes where and how an item is gathered.
type GatheringData struct {
	Method string
	Zone   string
}

// VendorData describes a shop that sells an item.
type VendorData struct {
	Shop     string
	Location string
}

// Provider is the outbound item-data contract. Implementations return
// domain.ErrItemNotFound / domain.ErrRecipeNotFound / domain.ErrNotFound for
// confirmed absence and a domain.TransientError for transport-level failures,
// so callers can tell "does not exist" from "could not reach the provider".
type Provider interface {
	// SearchItems searches items by name. Queries shorter than two
	// characters return no results without an outbound call.
	SearchItems(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// GetItem fetches a single item by ID.
	GetItem(ctx context.Context, itemID int) (*ItemData, error)

	// GetRecipeFor finds the recipe producing itemID, or
	// domain.ErrRecipeNotFound when the item is confirmed non-craftable.
	GetRecipeFor(ctx context.Context, itemID int) (*domain.Recipe, error)

	// GetGatheringInfo looks up the gathering source for an item, or
	// domain.ErrNotFound when the item is not gatherable.
	GetGatheringInfo(ctx context.Context, itemID int) (*GatheringData, error)

	// GetVendorInfo looks up a shop selling the item, or domain.ErrNotFound
	// when no vendor sells it.
	GetVendorInfo(ctx context.Context, itemID int) (*VendorData, error)

	// FetchIcon downloads the icon image at iconURL. Relative paths are
	// resolved against the configured icon base URL.
	FetchIcon(ctx context.Context, iconURL string) ([]byte, error)
}
