// Package resolver expands a craftable item into its flattened bill of
// materials by recursively resolving intermediate recipes down to base
// materials.
package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/CraftVault_Go/internal/domain"
	"github.com/osse101/CraftVault_Go/internal/logger"
	"github.com/osse101/CraftVault_Go/internal/metrics"
)

// MaxDepth bounds recipe nesting. A branch deeper than this is treated as a
// leaf, which keeps worst-case work finite against pathological data.
const MaxDepth = 8

// Catalog is the subset of catalog lookups the resolver needs.
type Catalog interface {
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	GetRecipe(ctx context.Context, itemID int) (domain.RecipeLookup, error)
}

// Service resolves full material requirements for crafting an item.
type Service interface {
	Resolve(ctx context.Context, itemID, quantity int) (domain.MaterialList, error)
}

type service struct {
	catalog Catalog
}

// NewService creates a resolver over the given catalog.
func NewService(c Catalog) Service {
	return &service{catalog: c}
}

// Resolve returns every base material needed to craft quantity of itemID.
// The result is always a complete map: a branch whose recipe lookup failed
// transiently is included as an unresolved leaf rather than failing the whole
// call. Only storage errors abort the resolution.
func (s *service) Resolve(ctx context.Context, itemID, quantity int) (domain.MaterialList, error) {
	log := logger.FromContext(ctx)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNonPositiveQuantity)
	}

	start := time.Now()
	defer func() {
		metrics.ResolutionDuration.Observe(time.Since(start).Seconds())
	}()
	metrics.Resolutions.Inc()

	result, err := s.resolve(ctx, itemID, quantity, 0, nil)
	if err != nil {
		log.Error(LogMsgResolutionAborted, "error", err, "itemID", itemID)
		return nil, err
	}

	log.Info(LogMsgResolutionComplete,
		"itemID", itemID, "quantity", quantity, "materials", len(result))
	return result, nil
}

func (s *service) resolve(ctx context.Context, itemID, quantity, depth int, path []int) (domain.MaterialList, error) {
	// A cycle means the item is already being expanded higher up the same
	// branch; it contributes nothing at this level.
	for _, id := range path {
		if id == itemID {
			return domain.MaterialList{}, nil
		}
	}
	if depth > MaxDepth {
		return s.leaf(ctx, itemID, quantity, false)
	}

	lookup, err := s.catalog.GetRecipe(ctx, itemID)
	if err != nil {
		if domain.IsStorage(err) {
			return nil, err
		}
		// Transient provider failure: this branch only is marked
		// unresolved, with its requested amount.
		return s.leaf(ctx, itemID, quantity, true)
	}

	if lookup.State != domain.RecipeFound || len(lookup.Recipe.Ingredients) == 0 {
		return s.leaf(ctx, itemID, quantity, false)
	}

	runs := lookup.Recipe.Runs(quantity)
	result := domain.MaterialList{}

	// The path is extended by copy so sibling branches never observe each
	// other's ancestry.
	branch := make([]int, len(path), len(path)+1)
	copy(branch, path)
	branch = append(branch, itemID)

	for _, ing := range lookup.Recipe.Ingredients {
		if ing.Amount <= 0 {
			continue
		}
		sub, err := s.resolve(ctx, ing.ItemID, ing.Amount*runs, depth+1, branch)
		if err != nil {
			return nil, err
		}
		result.Merge(sub)
	}
	return result, nil
}

// leaf builds a single-entry material list for a base item, naming it from
// the catalog when possible.
func (s *service) leaf(ctx context.Context, itemID, amount int, unresolved bool) (domain.MaterialList, error) {
	name := fmt.Sprintf("ID %d", itemID)

	item, err := s.catalog.GetItem(ctx, itemID)
	switch {
	case err == nil && item != nil:
		name = item.Name
	case err != nil && domain.IsStorage(err):
		return nil, err
	default:
		// Unknown name is not worth failing a resolution over.
	}

	list := domain.MaterialList{}
	list.Add(domain.ResolvedMaterial{
		ItemID:     itemID,
		Name:       name,
		Amount:     amount,
		IsLeaf:     true,
		Unresolved: unresolved,
	})
	return list, nil
}
