// Package catalog is the single entry point for item, recipe, source and
// icon lookups. Every lookup follows the same fallthrough chain: persistent
// store, then one deduplicated provider call, then a write-back to the store.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/CraftVault_Go/internal/domain"
	"github.com/osse101/CraftVault_Go/internal/logger"
	"github.com/osse101/CraftVault_Go/internal/provider"
	"github.com/osse101/CraftVault_Go/internal/store"
)

// ItemSource is the resolved answer to "how is this item obtained".
type ItemSource struct {
	Classification domain.SourceClassification `json:"classification"`
	Location       string                      `json:"location"`
}

// Service defines the catalog lookup operations.
type Service interface {
	SearchItems(ctx context.Context, query string, limit int) ([]provider.SearchResult, error)
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	GetRecipe(ctx context.Context, itemID int) (domain.RecipeLookup, error)
	GetGatheringInfo(ctx context.Context, itemID int) (*ItemSource, error)
	GetVendorInfo(ctx context.Context, itemID int) (*ItemSource, error)
	GetIcon(ctx context.Context, itemID int) ([]byte, error)
	Stats(ctx context.Context) (*store.Stats, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type service struct {
	store    store.Store
	provider provider.Provider
}

// NewService creates a catalog service over the given store and provider.
// The provider is expected to already be wrapped in a Deduplicator.
func NewService(st store.Store, p provider.Provider) Service {
	return &service{store: st, provider: p}
}

// SearchItems searches the provider and opportunistically seeds the store
// with the returned names, tiers and icon URLs.
func (s *service) SearchItems(ctx context.Context, query string, limit int) ([]provider.SearchResult, error) {
	log := logger.FromContext(ctx)

	results, err := s.provider.SearchItems(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSearchFailed, err)
	}

	for _, r := range results {
		patch := store.ItemPatch{ItemID: r.ID, Name: r.Name, Tier: r.Tier, IconURL: r.IconURL}
		if err := s.store.PutItem(ctx, patch); err != nil {
			log.Error(LogMsgCacheWriteFailed, "error", err, "itemID", r.ID)
			return nil, err
		}
	}
	return results, nil
}

func (s *service) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	cached, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	data, err := s.provider.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetItemFailed, err)
	}
	log.Debug(LogMsgItemFetched, "itemID", itemID, "name", data.Name)

	patch := store.ItemPatch{ItemID: itemID, Name: data.Name, Tier: data.Tier, IconURL: data.IconURL}
	if err := s.store.PutItem(ctx, patch); err != nil {
		log.Error(LogMsgCacheWriteFailed, "error", err, "itemID", itemID)
		return nil, err
	}

	// Read back through the store so fields learned from earlier partial
	// writes (source, icon) are not lost.
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		item = &domain.Item{ID: itemID, Name: data.Name, Tier: data.Tier, IconURL: data.IconURL}
	}
	return item, nil
}

// GetRecipe returns the recipe fact for an item. A confirmed "no recipe"
// answer from the provider is cached as a negative fact; transient failures
// are never cached.
func (s *service) GetRecipe(ctx context.Context, itemID int) (domain.RecipeLookup, error) {
	log := logger.FromContext(ctx)

	lookup, err := s.store.GetRecipe(ctx, itemID)
	if err != nil {
		return domain.UnknownRecipe(), err
	}
	if lookup.State != domain.RecipeUnknown {
		return lookup, nil
	}

	recipe, err := s.provider.GetRecipeFor(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			if putErr := s.store.PutNoRecipe(ctx, itemID); putErr != nil {
				log.Error(LogMsgCacheWriteFailed, "error", putErr, "itemID", itemID)
				return domain.UnknownRecipe(), putErr
			}
			log.Debug(LogMsgNoRecipeRecorded, "itemID", itemID)
			return domain.NoRecipe(), nil
		}
		return domain.UnknownRecipe(), fmt.Errorf("%s: %w", ErrMsgGetRecipeFailed, err)
	}
	log.Debug(LogMsgRecipeFetched, "itemID", itemID, "recipeID", recipe.ID)

	if err := s.store.PutRecipe(ctx, recipe); err != nil {
		log.Error(LogMsgCacheWriteFailed, "error", err, "itemID", itemID)
		return domain.UnknownRecipe(), err
	}
	// A craftable item's source classification is implied by its recipe.
	patch := store.ItemPatch{ItemID: itemID, Source: domain.SourceCrafted, SourceLocation: recipe.CraftCategory}
	if err := s.store.PutItem(ctx, patch); err != nil {
		log.Error(LogMsgCacheWriteFailed, "error", err, "itemID", itemID)
		return domain.UnknownRecipe(), err
	}

	return domain.FoundRecipe(recipe), nil
}

// GetGatheringInfo resolves the gathering source of an item. Items already
// classified as crafted or purchased are never re-queried: those
// classifications are mutually exclusive with gathering and more specific
// than unknown.
func (s *service) GetGatheringInfo(ctx context.Context, itemID int) (*ItemSource, error) {
	log := logger.FromContext(ctx)

	cached, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		if cached.HasKnownSource() {
			return nil, domain.ErrNotFound
		}
		if cached.Source == domain.SourceGathered && cached.SourceLocation != "" {
			return &ItemSource{Classification: cached.Source, Location: cached.SourceLocation}, nil
		}
	}

	info, err := s.provider.GetGatheringInfo(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetSourceFailed, err)
	}

	location := info.Method
	if info.Zone != "" {
		location = info.Method + locationSeparator + info.Zone
	}

	patch := store.ItemPatch{ItemID: itemID, Source: domain.SourceGathered, SourceLocation: location}
	if err := s.store.PutItem(ctx, patch); err != nil {
		log.Error(LogMsgCacheWriteFailed, "error", err, "itemID", itemID)
		return nil, err
	}
	log.Debug(LogMsgSourceRecorded, "itemID", itemID, "source", domain.SourceGathered, "location", location)

	return &ItemSource{Classification: domain.SourceGathered, Location: location}, nil
}

// GetVendorInfo resolves the shop selling an item.
func (s *service) GetVendorInfo(ctx context.Context, itemID int) (*ItemSource, error) {
	log := logger.FromContext(ctx)

	cached, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if cached != nil && cached.Source == domain.SourcePurchased && cached.SourceLocation != "" {
		return &ItemSource{Classification: cached.Source, Location: cached.SourceLocation}, nil
	}

	info, err := s.provider.GetVendorInfo(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetSourceFailed, err)
	}

	patch := store.ItemPatch{ItemID: itemID, Source: domain.SourcePurchased, SourceLocation: info.Location}
	if err := s.store.PutItem(ctx, patch); err != nil {
		log.Error(LogMsgCacheWriteFailed, "error", err, "itemID", itemID)
		return nil, err
	}
	log.Debug(LogMsgSourceRecorded, "itemID", itemID, "source", domain.SourcePurchased, "location", info.Location)

	return &ItemSource{Classification: domain.SourcePurchased, Location: info.Location}, nil
}

// GetIcon returns the icon image for an item, fetching and persisting it on
// first use. Stored icons never expire.
func (s *service) GetIcon(ctx context.Context, itemID int) ([]byte, error) {
	log := logger.FromContext(ctx)

	cached, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if cached != nil && len(cached.Icon) > 0 {
		return cached.Icon, nil
	}

	iconURL := ""
	if cached != nil {
		iconURL = cached.IconURL
	}
	if iconURL == "" {
		item, err := s.GetItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		iconURL = item.IconURL
	}
	if iconURL == "" {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetIconFailed, domain.ErrNotFound)
	}

	data, err := s.provider.FetchIcon(ctx, iconURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetIconFailed, err)
	}
	log.Debug(LogMsgIconFetched, "itemID", itemID, "bytes", len(data))

	if err := s.store.UpdateItemIcon(ctx, itemID, data); err != nil {
		log.Error(LogMsgCacheWriteFailed, "error", err, "itemID", itemID)
		return nil, err
	}
	return data, nil
}

func (s *service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

func (s *service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.PurgeExpired(ctx)
}
