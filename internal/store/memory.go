package store

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/CraftVault_Go/internal/domain"
)

// itemRecord is the in-memory shape of an items row.
type itemRecord struct {
	name           string
	tier           int
	iconURL        string
	icon           []byte
	source         domain.SourceClassification
	sourceLocation string
	fetchedAt      time.Time
}

type recipeRecord struct {
	recipe    domain.Recipe
	fetchedAt time.Time
}

// memoryStore implements Store with a mutex-guarded map. It shares the exact
// merge and freshness semantics of the postgres backend and backs unit tests
// and single-process deployments that don't want a database.
type memoryStore struct {
	mu       sync.Mutex
	items    map[int]*itemRecord
	recipes  map[int]*recipeRecord
	noRecipe map[int]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an in-memory Store with the given TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) Store {
	return newMemoryStore(ttl)
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &memoryStore{
		items:    make(map[int]*itemRecord),
		recipes:  make(map[int]*recipeRecord),
		noRecipe: make(map[int]time.Time),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *memoryStore) GetItem(_ context.Context, itemID int) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[itemID]
	if !ok {
		return nil, nil
	}
	if expired(rec.fetchedAt, s.ttl, s.now()) && len(rec.icon) == 0 {
		return nil, nil
	}
	return rec.toItem(itemID), nil
}

func (s *memoryStore) GetManyItems(_ context.Context, itemIDs []int) (map[int]*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[int]*domain.Item, len(itemIDs))
	now := s.now()
	for _, id := range itemIDs {
		rec, ok := s.items[id]
		if !ok || expired(rec.fetchedAt, s.ttl, now) {
			continue
		}
		result[id] = rec.toItem(id)
	}
	return result, nil
}

func (s *memoryStore) PutItem(_ context.Context, patch ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[patch.ItemID]
	if !ok {
		rec = &itemRecord{}
		s.items[patch.ItemID] = rec
	}
	rec.merge(patch)
	rec.fetchedAt = s.now()
	return nil
}

func (s *memoryStore) UpdateItemIcon(_ context.Context, itemID int, icon []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[itemID]
	if !ok {
		rec = &itemRecord{fetchedAt: s.now()}
		s.items[itemID] = rec
	}
	rec.icon = icon
	return nil
}

func (s *memoryStore) GetRecipe(_ context.Context, itemID int) (domain.RecipeLookup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	negFetchedAt, negOK := s.noRecipe[itemID]
	negFresh := negOK && !expired(negFetchedAt, s.ttl, now)

	rec, recOK := s.recipes[itemID]
	recFresh := recOK && !expired(rec.fetchedAt, s.ttl, now)

	if negFresh && (!recFresh || negFetchedAt.After(rec.fetchedAt)) {
		return domain.NoRecipe(), nil
	}
	if !recFresh {
		return domain.UnknownRecipe(), nil
	}

	recipe := rec.recipe
	return domain.FoundRecipe(&recipe), nil
}

func (s *memoryStore) PutRecipe(_ context.Context, recipe *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *recipe
	stored.Yield = recipe.EffectiveYield()
	s.recipes[recipe.ResultItemID] = &recipeRecord{
		recipe:    stored,
		fetchedAt: s.now(),
	}
	return nil
}

func (s *memoryStore) PutNoRecipe(_ context.Context, itemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.noRecipe[itemID] = s.now()
	return nil
}

func (s *memoryStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var purged int64

	for id, rec := range s.items {
		if expired(rec.fetchedAt, s.ttl, now) && len(rec.icon) == 0 {
			delete(s.items, id)
			purged++
		}
	}
	for id, rec := range s.recipes {
		if expired(rec.fetchedAt, s.ttl, now) {
			delete(s.recipes, id)
			purged++
		}
	}
	for id, fetchedAt := range s.noRecipe {
		if expired(fetchedAt, s.ttl, now) {
			delete(s.noRecipe, id)
			purged++
		}
	}
	return purged, nil
}

func (s *memoryStore) Stats(_ context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Stats{
		Items:    int64(len(s.items)),
		Recipes:  int64(len(s.recipes)),
		NoRecipe: int64(len(s.noRecipe)),
	}, nil
}

// merge applies the non-destructive field merge: empty/zero incoming fields
// keep the stored value.
func (r *itemRecord) merge(patch ItemPatch) {
	if patch.Name != "" {
		r.name = patch.Name
	}
	if patch.Tier != 0 {
		r.tier = patch.Tier
	}
	if patch.IconURL != "" {
		r.iconURL = patch.IconURL
	}
	if patch.Icon != nil {
		r.icon = patch.Icon
	}
	if patch.Source != "" {
		r.source = patch.Source
	}
	if patch.SourceLocation != "" {
		r.sourceLocation = patch.SourceLocation
	}
}

func (r *itemRecord) toItem(itemID int) *domain.Item {
	return &domain.Item{
		ID:             itemID,
		Name:           r.name,
		Tier:           r.tier,
		IconURL:        r.iconURL,
		Icon:           r.icon,
		Source:         r.source,
		SourceLocation: r.sourceLocation,
	}
}
