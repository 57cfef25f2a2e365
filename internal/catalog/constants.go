package catalog

// Error messages
const (
	ErrMsgGetItemFailed    = "failed to get item"
	ErrMsgGetRecipeFailed  = "failed to get recipe"
	ErrMsgGetSourceFailed  = "failed to get item source"
	ErrMsgGetIconFailed    = "failed to get icon"
	ErrMsgSearchFailed     = "failed to search items"
	ErrMsgCacheWriteFailed = "failed to write cache"
)

// Log messages
const (
	LogMsgItemFetched      = "Item fetched from provider"
	LogMsgRecipeFetched    = "Recipe fetched from provider"
	LogMsgNoRecipeRecorded = "No-recipe fact recorded"
	LogMsgSourceRecorded   = "Item source recorded"
	LogMsgIconFetched      = "Icon fetched from provider"
	LogMsgCacheWriteFailed = "Cache write failed"
)

// Location separator between gathering method and zone, e.g. "Mining: Western Thanalan"
const locationSeparator = ": "
