package provider

// Defaults
const (
	DefaultSearchLimit = 10
	MinQueryLength     = 2
	maxRetryAttempts   = 2
)

// API paths and sheets
const (
	pathSearch      = "/search"
	pathSheetItem   = "/sheet/Item/%d"
	pathSheetRecipe = "/sheet/Recipe/%d"
	pathSheetShop   = "/sheet/GilShop/%d"

	sheetItem               = "Item"
	sheetRecipe             = "Recipe"
	sheetGatheringItem      = "GatheringItem"
	sheetGatheringPointBase = "GatheringPointBase"
	sheetGatheringPoint     = "GatheringPoint"
	sheetGilShopItem        = "GilShopItem"
	sheetSpecialShop        = "SpecialShop"
	sheetNPC                = "ENpcBase"
	sheetLevel              = "Level"

	fieldsItemSearch    = "row_id,Name,IconHD,LevelItem"
	fieldsItemSheet     = "Name,LevelItem,IconHD,Icon"
	fieldsRecipeSearch  = "row_id,AmountResult,CraftType"
	fieldsRecipeSheet   = "Ingredient,AmountIngredient"
	fieldsRowID         = "row_id"
	fieldsGatheringBase = "row_id,GatheringType"
	fieldsPlaceName     = "row_id,PlaceName"
	fieldsShopSearch    = "row_id,Name"
	fieldsShopName      = "Name"
	fieldsTerritory     = "row_id,Territory"
)

// Operation names, used in dedup keys, transient errors and metric labels
const (
	OpSearchItems   = "search_items"
	OpGetItem       = "get_item"
	OpGetRecipeFor  = "get_recipe_for"
	OpGetGathering  = "get_gathering_info"
	OpGetVendorInfo = "get_vendor_info"
	OpFetchIcon     = "fetch_icon"
)

// Gathering method labels
const (
	MethodMining    = "Mining"
	MethodBotany    = "Botany"
	MethodFishing   = "Fishing"
	MethodGathering = "Gathering"
)

// Error messages
const (
	ErrMsgRequestFailed   = "provider request failed"
	ErrMsgBadStatus       = "provider returned unexpected status"
	ErrMsgDecodeResponse  = "failed to decode provider response"
	ErrMsgReadBody        = "failed to read provider response body"
	ErrMsgUnexpectedType  = "unexpected cached value type"
	ErrMsgInvalidIconPath = "invalid icon path"
)
