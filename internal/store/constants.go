package store

// Cache table names, used as metric labels
const (
	TableItems    = "items"
	TableRecipes  = "recipes"
	TableNoRecipe = "no_recipe"
)

// SQL statements for the postgres backend. The item upsert carries the
// central merge invariant: empty/zero incoming fields never clobber known
// values, and the whole merge happens inside one statement so concurrent
// partial writes cannot interleave into a corrupted record.
const (
	SQLUpsertItem = `
		INSERT INTO items (item_id, name, tier, icon_url, icon_blob,
		                   source_classification, source_location, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (item_id) DO UPDATE SET
			name = CASE WHEN excluded.name = '' THEN items.name ELSE excluded.name END,
			tier = CASE WHEN excluded.tier = 0 THEN items.tier ELSE excluded.tier END,
			icon_url = COALESCE(NULLIF(excluded.icon_url, ''), items.icon_url),
			icon_blob = COALESCE(excluded.icon_blob, items.icon_blob),
			source_classification = COALESCE(NULLIF(excluded.source_classification, ''), items.source_classification),
			source_location = COALESCE(NULLIF(excluded.source_location, ''), items.source_location),
			fetched_at = excluded.fetched_at`

	SQLUpsertItemIcon = `
		INSERT INTO items (item_id, icon_blob, fetched_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (item_id) DO UPDATE SET icon_blob = excluded.icon_blob`

	SQLSelectItem = `
		SELECT name, tier, icon_url, icon_blob, source_classification, source_location, fetched_at
		FROM items WHERE item_id = $1`

	SQLSelectManyItems = `
		SELECT item_id, name, tier, icon_url, icon_blob, source_classification, source_location, fetched_at
		FROM items WHERE item_id = ANY($1)`

	SQLUpsertRecipe = `
		INSERT INTO recipes (item_id, recipe_id, craft_category, result_yield, ingredients_json, fetched_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (item_id) DO UPDATE SET
			recipe_id = excluded.recipe_id,
			craft_category = excluded.craft_category,
			result_yield = excluded.result_yield,
			ingredients_json = excluded.ingredients_json,
			fetched_at = excluded.fetched_at`

	SQLSelectRecipe = `
		SELECT recipe_id, craft_category, result_yield, ingredients_json, fetched_at
		FROM recipes WHERE item_id = $1`

	SQLUpsertNoRecipe = `
		INSERT INTO no_recipe (item_id, fetched_at)
		VALUES ($1, NOW())
		ON CONFLICT (item_id) DO UPDATE SET fetched_at = excluded.fetched_at`

	SQLSelectNoRecipe = `SELECT fetched_at FROM no_recipe WHERE item_id = $1`

	SQLPurgeItems    = `DELETE FROM items WHERE fetched_at < $1 AND icon_blob IS NULL`
	SQLPurgeRecipes  = `DELETE FROM recipes WHERE fetched_at < $1`
	SQLPurgeNoRecipe = `DELETE FROM no_recipe WHERE fetched_at < $1`

	SQLCountItems    = `SELECT COUNT(*) FROM items`
	SQLCountRecipes  = `SELECT COUNT(*) FROM recipes`
	SQLCountNoRecipe = `SELECT COUNT(*) FROM no_recipe`
)

// Error messages
const (
	ErrMsgGetItemFailed      = "failed to get item"
	ErrMsgGetManyItemsFailed = "failed to get items"
	ErrMsgPutItemFailed      = "failed to put item"
	ErrMsgPutIconFailed      = "failed to store icon"
	ErrMsgGetRecipeFailed    = "failed to get recipe"
	ErrMsgPutRecipeFailed    = "failed to put recipe"
	ErrMsgPutNoRecipeFailed  = "failed to put no-recipe fact"
	ErrMsgPurgeFailed        = "failed to purge expired rows"
	ErrMsgStatsFailed        = "failed to read cache stats"
	ErrMsgEncodeIngredients  = "failed to encode ingredients"
	ErrMsgDecodeIngredients  = "failed to decode ingredients"
)

// Log messages
const (
	LogMsgExpiredRowsPurged = "Expired cache rows purged"
)
