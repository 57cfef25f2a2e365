package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CraftVault_Go/internal/domain"
	"github.com/osse101/CraftVault_Go/internal/logger"
	"github.com/osse101/CraftVault_Go/internal/metrics"
)

// postgresStore implements Store using PostgreSQL. All merge logic lives in
// single UPSERT statements so the pool can serve concurrent writers without
// additional locking.
type postgresStore struct {
	db  *pgxpool.Pool
	ttl time.Duration
	now func() time.Time
}

// NewPostgresStore creates a Store backed by the given connection pool.
// A non-positive ttl falls back to DefaultTTL.
func NewPostgresStore(db *pgxpool.Pool, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &postgresStore{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}
}

// wrapStorage tags err as a storage failure so callers can abort on it.
func wrapStorage(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrStorage, err)
}

func (s *postgresStore) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	var (
		item      domain.Item
		source    string
		fetchedAt time.Time
	)

	err := s.db.QueryRow(ctx, SQLSelectItem, itemID).Scan(
		&item.Name, &item.Tier, &item.IconURL, &item.Icon,
		&source, &item.SourceLocation, &fetchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			metrics.CacheReads.WithLabelValues(TableItems, metrics.OutcomeMiss).Inc()
			return nil, nil
		}
		return nil, wrapStorage(ErrMsgGetItemFailed, err)
	}

	// A stale row still counts as a hit when it carries an icon blob.
	if expired(fetchedAt, s.ttl, s.now()) && len(item.Icon) == 0 {
		metrics.CacheReads.WithLabelValues(TableItems, metrics.OutcomeStale).Inc()
		return nil, nil
	}

	item.ID = itemID
	item.Source = domain.SourceClassification(source)
	metrics.CacheReads.WithLabelValues(TableItems, metrics.OutcomeHit).Inc()
	return &item, nil
}

func (s *postgresStore) GetManyItems(ctx context.Context, itemIDs []int) (map[int]*domain.Item, error) {
	result := make(map[int]*domain.Item, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	rows, err := s.db.Query(ctx, SQLSelectManyItems, itemIDs)
	if err != nil {
		return nil, wrapStorage(ErrMsgGetManyItemsFailed, err)
	}
	defer rows.Close()

	now := s.now()
	for rows.Next() {
		var (
			item      domain.Item
			source    string
			fetchedAt time.Time
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Tier, &item.IconURL,
			&item.Icon, &source, &item.SourceLocation, &fetchedAt); err != nil {
			return nil, wrapStorage(ErrMsgGetManyItemsFailed, err)
		}
		if expired(fetchedAt, s.ttl, now) {
			continue
		}
		item.Source = domain.SourceClassification(source)
		result[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage(ErrMsgGetManyItemsFailed, err)
	}

	return result, nil
}

func (s *postgresStore) PutItem(ctx context.Context, patch ItemPatch) error {
	_, err := s.db.Exec(ctx, SQLUpsertItem,
		patch.ItemID, patch.Name, patch.Tier, patch.IconURL, patch.Icon,
		string(patch.Source), patch.SourceLocation,
	)
	if err != nil {
		return wrapStorage(ErrMsgPutItemFailed, err)
	}
	metrics.CacheWrites.WithLabelValues(TableItems).Inc()
	return nil
}

func (s *postgresStore) UpdateItemIcon(ctx context.Context, itemID int, icon []byte) error {
	_, err := s.db.Exec(ctx, SQLUpsertItemIcon, itemID, icon)
	if err != nil {
		return wrapStorage(ErrMsgPutIconFailed, err)
	}
	metrics.CacheWrites.WithLabelValues(TableItems).Inc()
	return nil
}

func (s *postgresStore) GetRecipe(ctx context.Context, itemID int) (domain.RecipeLookup, error) {
	now := s.now()

	var negFetchedAt time.Time
	negFresh := false
	err := s.db.QueryRow(ctx, SQLSelectNoRecipe, itemID).Scan(&negFetchedAt)
	switch {
	case err == nil:
		negFresh = !expired(negFetchedAt, s.ttl, now)
	case errors.Is(err, pgx.ErrNoRows):
		// no negative fact
	default:
		return domain.UnknownRecipe(), wrapStorage(ErrMsgGetRecipeFailed, err)
	}

	var (
		recipeID        int
		craftCategory   string
		resultYield     int
		ingredientsJSON []byte
		recFetchedAt    time.Time
	)
	recFresh := false
	err = s.db.QueryRow(ctx, SQLSelectRecipe, itemID).Scan(
		&recipeID, &craftCategory, &resultYield, &ingredientsJSON, &recFetchedAt,
	)
	switch {
	case err == nil:
		recFresh = !expired(recFetchedAt, s.ttl, now)
	case errors.Is(err, pgx.ErrNoRows):
		// no recipe row
	default:
		return domain.UnknownRecipe(), wrapStorage(ErrMsgGetRecipeFailed, err)
	}

	// Whichever fresh fact was written later wins; a negative fact written
	// before a recipe was discovered must not shadow it.
	if negFresh && (!recFresh || negFetchedAt.After(recFetchedAt)) {
		metrics.CacheReads.WithLabelValues(TableRecipes, metrics.OutcomeNegative).Inc()
		return domain.NoRecipe(), nil
	}

	if !recFresh {
		metrics.CacheReads.WithLabelValues(TableRecipes, metrics.OutcomeMiss).Inc()
		return domain.UnknownRecipe(), nil
	}

	var ingredients []domain.Ingredient
	if err := json.Unmarshal(ingredientsJSON, &ingredients); err != nil {
		return domain.UnknownRecipe(), wrapStorage(ErrMsgDecodeIngredients, err)
	}

	metrics.CacheReads.WithLabelValues(TableRecipes, metrics.OutcomeHit).Inc()
	return domain.FoundRecipe(&domain.Recipe{
		ID:            recipeID,
		ResultItemID:  itemID,
		Yield:         resultYield,
		CraftCategory: craftCategory,
		Ingredients:   ingredients,
	}), nil
}

func (s *postgresStore) PutRecipe(ctx context.Context, recipe *domain.Recipe) error {
	ingredientsJSON, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return wrapStorage(ErrMsgEncodeIngredients, err)
	}

	_, err = s.db.Exec(ctx, SQLUpsertRecipe,
		recipe.ResultItemID, recipe.ID, recipe.CraftCategory,
		recipe.EffectiveYield(), ingredientsJSON,
	)
	if err != nil {
		return wrapStorage(ErrMsgPutRecipeFailed, err)
	}
	metrics.CacheWrites.WithLabelValues(TableRecipes).Inc()
	return nil
}

func (s *postgresStore) PutNoRecipe(ctx context.Context, itemID int) error {
	_, err := s.db.Exec(ctx, SQLUpsertNoRecipe, itemID)
	if err != nil {
		return wrapStorage(ErrMsgPutNoRecipeFailed, err)
	}
	metrics.CacheWrites.WithLabelValues(TableNoRecipe).Inc()
	return nil
}

func (s *postgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)
	cutoff := s.now().Add(-s.ttl)

	var purged int64
	for _, stmt := range []string{SQLPurgeItems, SQLPurgeRecipes, SQLPurgeNoRecipe} {
		tag, err := s.db.Exec(ctx, stmt, cutoff)
		if err != nil {
			return purged, wrapStorage(ErrMsgPurgeFailed, err)
		}
		purged += tag.RowsAffected()
	}

	if purged > 0 {
		metrics.CacheRowsPurged.Add(float64(purged))
		log.Info(LogMsgExpiredRowsPurged, "rows", purged)
	}
	return purged, nil
}

func (s *postgresStore) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	for _, c := range []struct {
		sql  string
		dest *int64
	}{
		{SQLCountItems, &stats.Items},
		{SQLCountRecipes, &stats.Recipes},
		{SQLCountNoRecipe, &stats.NoRecipe},
	} {
		if err := s.db.QueryRow(ctx, c.sql).Scan(c.dest); err != nil {
			return nil, wrapStorage(ErrMsgStatsFailed, err)
		}
	}
	return &stats, nil
}
