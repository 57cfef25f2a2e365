package store

import (
	"context"
	"time"

	"github.com/osse101/CraftVault_Go/internal/domain"
)

// DefaultTTL is how long non-blob cache records stay fresh.
const DefaultTTL = 30 * 24 * time.Hour

// ItemPatch is a partial item write. Zero-valued fields are treated as
// "unknown" and never overwrite a non-empty stored value; fetched_at is
// always refreshed. Repeated partial writes from different lookup paths must
// converge to the most complete known record, never regress it.
type ItemPatch struct {
	ItemID         int
	Name           string
	Tier           int
	IconURL        string
	Icon           []byte
	Source         domain.SourceClassification
	SourceLocation string
}

// Stats reports row counts per cache table for diagnostics.
type Stats struct {
	Items    int64 `json:"items"`
	Recipes  int64 `json:"recipes"`
	NoRecipe int64 `json:"no_recipe"`
}

// Store is the persistent, TTL-aware cache for item metadata, recipes and
// negative recipe facts. Implementations must be safe for concurrent use and
// must apply each write atomically per record.
type Store interface {
	// GetItem returns the cached item, or (nil, nil) when no record exists
	// or the record is stale. A stale record that still holds an icon blob
	// is returned anyway, since blobs never expire.
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)

	// GetManyItems returns all fresh cached items for the given IDs.
	GetManyItems(ctx context.Context, itemIDs []int) (map[int]*domain.Item, error)

	// PutItem upserts an item record with non-destructive field merge.
	PutItem(ctx context.Context, patch ItemPatch) error

	// UpdateItemIcon stores the icon blob unconditionally, creating the item
	// record if absent.
	UpdateItemIcon(ctx context.Context, itemID int, icon []byte) error

	// GetRecipe returns the freshest known recipe fact for an item: a
	// recipe, a confirmed "no recipe" marker, or unknown. When both a fresh
	// negative fact and a fresh recipe exist, the newer fetched_at wins.
	GetRecipe(ctx context.Context, itemID int) (domain.RecipeLookup, error)

	// PutRecipe upserts a recipe keyed by its result item.
	PutRecipe(ctx context.Context, recipe *domain.Recipe) error

	// PutNoRecipe marks an item as confirmed non-craftable.
	PutNoRecipe(ctx context.Context, itemID int) error

	// PurgeExpired removes stale rows that hold no icon blob. Returns the
	// number of rows removed. Opportunistic; not required for correctness.
	PurgeExpired(ctx context.Context) (int64, error)

	// Stats returns row counts per table.
	Stats(ctx context.Context) (*Stats, error)
}

// expired reports whether a record fetched at t is older than ttl as of now.
func expired(t time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(t) > ttl
}
