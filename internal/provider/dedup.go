package provider

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/osse101/CraftVault_Go/internal/domain"
	"github.com/osse101/CraftVault_Go/internal/metrics"
)

// DefaultDedupSize bounds the memoization cache when no size is configured.
const DefaultDedupSize = 4096

// Deduplicator wraps a Provider so identical lookups within one process
// session share a single outbound call. Concurrent callers of the same key
// join the in-flight call; later callers are served from a bounded LRU of
// past results. Errors are never memoized, so a transient failure does not
// pin itself for the life of the process. This layer is a performance
// optimization only; the persistent store remains the source of truth.
type Deduplicator struct {
	provider Provider
	group    singleflight.Group
	memo     *lru.Cache[string, any]
}

// NewDeduplicator wraps p with request deduplication. A non-positive size
// falls back to DefaultDedupSize.
func NewDeduplicator(p Provider, size int) (*Deduplicator, error) {
	if size <= 0 {
		size = DefaultDedupSize
	}
	memo, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create dedup cache: %w", err)
	}
	return &Deduplicator{provider: p, memo: memo}, nil
}

// do serves key from the memo, or joins/starts the single outbound call.
func (d *Deduplicator) do(op, key string, fetch func() (any, error)) (any, error) {
	if v, ok := d.memo.Get(key); ok {
		metrics.DedupHits.WithLabelValues(op).Inc()
		return v, nil
	}

	v, err, shared := d.group.Do(key, func() (any, error) {
		if v, ok := d.memo.Get(key); ok {
			return v, nil
		}
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		d.memo.Add(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		metrics.DedupHits.WithLabelValues(op).Inc()
	}
	return v, nil
}

func (d *Deduplicator) SearchItems(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	key := fmt.Sprintf("%s:%d:%s", OpSearchItems, limit, query)
	v, err := d.do(OpSearchItems, key, func() (any, error) {
		return d.provider.SearchItems(ctx, query, limit)
	})
	if err != nil {
		return nil, err
	}
	return cast[[]SearchResult](OpSearchItems, v)
}

func (d *Deduplicator) GetItem(ctx context.Context, itemID int) (*ItemData, error) {
	v, err := d.do(OpGetItem, itemKey(OpGetItem, itemID), func() (any, error) {
		return d.provider.GetItem(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}
	return cast[*ItemData](OpGetItem, v)
}

func (d *Deduplicator) GetRecipeFor(ctx context.Context, itemID int) (*domain.Recipe, error) {
	v, err := d.do(OpGetRecipeFor, itemKey(OpGetRecipeFor, itemID), func() (any, error) {
		return d.provider.GetRecipeFor(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}
	return cast[*domain.Recipe](OpGetRecipeFor, v)
}

func (d *Deduplicator) GetGatheringInfo(ctx context.Context, itemID int) (*GatheringData, error) {
	v, err := d.do(OpGetGathering, itemKey(OpGetGathering, itemID), func() (any, error) {
		return d.provider.GetGatheringInfo(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}
	return cast[*GatheringData](OpGetGathering, v)
}

func (d *Deduplicator) GetVendorInfo(ctx context.Context, itemID int) (*VendorData, error) {
	v, err := d.do(OpGetVendorInfo, itemKey(OpGetVendorInfo, itemID), func() (any, error) {
		return d.provider.GetVendorInfo(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}
	return cast[*VendorData](OpGetVendorInfo, v)
}

func (d *Deduplicator) FetchIcon(ctx context.Context, iconURL string) ([]byte, error) {
	key := OpFetchIcon + ":" + iconURL
	v, err := d.do(OpFetchIcon, key, func() (any, error) {
		return d.provider.FetchIcon(ctx, iconURL)
	})
	if err != nil {
		return nil, err
	}
	return cast[[]byte](OpFetchIcon, v)
}

func itemKey(op string, itemID int) string {
	return fmt.Sprintf("%s:%d", op, itemID)
}

func cast[T any](op string, v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %s %T", op, ErrMsgUnexpectedType, v)
	}
	return t, nil
}
