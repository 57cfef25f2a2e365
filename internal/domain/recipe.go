package domain

// Ingredient represents a single material requirement for a recipe
type Ingredient struct {
	ItemID int    `json:"id"`
	Name   string `json:"name,omitempty"`
	Amount int    `json:"amount"`
}

// Recipe represents a production recipe for an item. An item has at most one
// known recipe in this system (first match wins).
type Recipe struct {
	ID            int          `json:"recipe_id"`
	ResultItemID  int          `json:"result_id"`
	Yield         int          `json:"yield"`
	CraftCategory string       `json:"craft_category,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
}

// EffectiveYield returns the recipe yield normalized to at least 1 so that
// malformed provider data cannot produce a division by zero.
func (r *Recipe) EffectiveYield() int {
	if r.Yield < 1 {
		return 1
	}
	return r.Yield
}

// Runs returns the number of whole craft executions needed to produce at
// least quantity results. Partial crafts are not modeled.
func (r *Recipe) Runs(quantity int) int {
	y := r.EffectiveYield()
	return (quantity + y - 1) / y
}

// RecipeLookupState distinguishes "recipe found", "confirmed no recipe" and
// "nothing known" so that the negative cache is type-safe instead of
// overloading a nil recipe.
type RecipeLookupState int

const (
	// RecipeUnknown means the cache holds no fresh fact either way.
	RecipeUnknown RecipeLookupState = iota
	// RecipeFound means a fresh recipe is known.
	RecipeFound
	// RecipeNone means the item is confirmed non-craftable.
	RecipeNone
)

// RecipeLookup is the tagged result of a recipe cache or provider lookup.
type RecipeLookup struct {
	State  RecipeLookupState
	Recipe *Recipe
}

// FoundRecipe wraps a recipe in a positive lookup result.
func FoundRecipe(r *Recipe) RecipeLookup {
	return RecipeLookup{State: RecipeFound, Recipe: r}
}

// NoRecipe returns a confirmed-non-craftable lookup result.
func NoRecipe() RecipeLookup {
	return RecipeLookup{State: RecipeNone}
}

// UnknownRecipe returns an empty lookup result.
func UnknownRecipe() RecipeLookup {
	return RecipeLookup{State: RecipeUnknown}
}
