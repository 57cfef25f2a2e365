package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CraftVault_Go/internal/domain"
)

// mockCatalog serves a fixed recipe graph and counts recipe lookups.
type mockCatalog struct {
	items       map[int]*domain.Item
	recipes     map[int]*domain.Recipe
	recipeErrs  map[int]error
	recipeCalls map[int]int
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		items:       make(map[int]*domain.Item),
		recipes:     make(map[int]*domain.Recipe),
		recipeErrs:  make(map[int]error),
		recipeCalls: make(map[int]int),
	}
}

func (m *mockCatalog) addRecipe(itemID, yield int, ingredients ...domain.Ingredient) {
	m.recipes[itemID] = &domain.Recipe{
		ID:           1000 + itemID,
		ResultItemID: itemID,
		Yield:        yield,
		Ingredients:  ingredients,
	}
}

func (m *mockCatalog) GetItem(_ context.Context, itemID int) (*domain.Item, error) {
	if item, ok := m.items[itemID]; ok {
		return item, nil
	}
	return nil, domain.ErrItemNotFound
}

func (m *mockCatalog) GetRecipe(_ context.Context, itemID int) (domain.RecipeLookup, error) {
	m.recipeCalls[itemID]++
	if err, ok := m.recipeErrs[itemID]; ok {
		return domain.UnknownRecipe(), err
	}
	if recipe, ok := m.recipes[itemID]; ok {
		return domain.FoundRecipe(recipe), nil
	}
	return domain.NoRecipe(), nil
}

func ing(itemID, amount int) domain.Ingredient {
	return domain.Ingredient{ItemID: itemID, Amount: amount}
}

func TestResolveLeafItemReturnsRequestedQuantity(t *testing.T) {
	mock := newMockCatalog()
	mock.items[300] = &domain.Item{ID: 300, Name: "Fire Crystal"}
	svc := NewService(mock)

	result, err := svc.Resolve(context.Background(), 300, 7)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, 7, result[300].Amount)
	assert.Equal(t, "Fire Crystal", result[300].Name)
	assert.True(t, result[300].IsLeaf)
	assert.False(t, result[300].Unresolved)
}

func TestResolveExpandsNestedRecipes(t *testing.T) {
	// item 100: yield 3, needs 2x200 + 1x300 per craft
	// item 200: yield 1, needs 5x300 per craft
	// item 300: base material
	mock := newMockCatalog()
	mock.addRecipe(100, 3, ing(200, 2), ing(300, 1))
	mock.addRecipe(200, 1, ing(300, 5))
	svc := NewService(mock)

	// 5 of item 100 -> 2 runs -> 4x200 + 2x300; 4x200 -> 4 runs -> 20x300.
	result, err := svc.Resolve(context.Background(), 100, 5)
	require.NoError(t, err)

	require.Len(t, result, 1, "intermediates fully resolve away")
	assert.Equal(t, 22, result[300].Amount)
}

func TestResolveSumsSharedIngredientAcrossBranches(t *testing.T) {
	mock := newMockCatalog()
	mock.addRecipe(1, 1, ing(2, 1), ing(3, 1))
	mock.addRecipe(2, 1, ing(4, 2))
	mock.addRecipe(3, 1, ing(4, 3))
	svc := NewService(mock)

	result, err := svc.Resolve(context.Background(), 1, 1)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, 5, result[4].Amount, "contributions sum rather than overwrite")
}

func TestResolveRunsUseCeilingDivision(t *testing.T) {
	mock := newMockCatalog()
	mock.addRecipe(10, 4, ing(20, 3))
	svc := NewService(mock)

	// 9 wanted / yield 4 -> 3 runs -> 9x20.
	result, err := svc.Resolve(context.Background(), 10, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, result[20].Amount)
}

func TestResolveZeroYieldTreatedAsOne(t *testing.T) {
	mock := newMockCatalog()
	mock.addRecipe(10, 0, ing(20, 2))
	svc := NewService(mock)

	result, err := svc.Resolve(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, result[20].Amount)
}

func TestResolveIgnoresNonPositiveIngredientAmounts(t *testing.T) {
	mock := newMockCatalog()
	mock.addRecipe(10, 1, ing(20, 0), ing(30, 2))
	svc := NewService(mock)

	result, err := svc.Resolve(context.Background(), 10, 1)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, 2, result[30].Amount)
}

func TestResolveCycleTerminates(t *testing.T) {
	mock := newMockCatalog()
	mock.addRecipe(1, 1, ing(2, 1))
	mock.addRecipe(2, 1, ing(1, 1))
	svc := NewService(mock)

	result, err := svc.Resolve(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, result, "cyclic branches contribute nothing but must terminate")
}

func TestResolveDepthCapTreatsDeepNodesAsLeaves(t *testing.T) {
	// A strictly linear chain deeper than the cap.
	mock := newMockCatalog()
	const chain = MaxDepth + 4
	for i := 1; i < chain; i++ {
		mock.addRecipe(i, 1, ing(i+1, 1))
	}
	svc := NewService(mock)

	result, err := svc.Resolve(context.Background(), 1, 1)
	require.NoError(t, err)

	require.Len(t, result, 1)
	capped := MaxDepth + 2
	assert.Equal(t, 1, result[capped].Amount,
		fmt.Sprintf("item %d sits past the depth cap and becomes a leaf", capped))
	assert.True(t, result[capped].IsLeaf)
}

func TestResolveTransientFailureBecomesUnresolvedLeaf(t *testing.T) {
	mock := newMockCatalog()
	mock.addRecipe(1, 1, ing(2, 3), ing(3, 1))
	mock.addRecipe(3, 1, ing(4, 2))
	mock.recipeErrs[2] = domain.NewTransientError("get_recipe_for", assert.AnError)
	svc := NewService(mock)

	result, err := svc.Resolve(context.Background(), 1, 1)
	require.NoError(t, err, "one failing branch must not fail the resolution")

	require.Len(t, result, 2)
	assert.Equal(t, 3, result[2].Amount, "failed branch keeps its requested amount")
	assert.True(t, result[2].Unresolved)
	assert.Equal(t, 2, result[4].Amount)
	assert.False(t, result[4].Unresolved)
}

func TestResolveStorageErrorAborts(t *testing.T) {
	mock := newMockCatalog()
	mock.addRecipe(1, 1, ing(2, 1))
	mock.recipeErrs[2] = fmt.Errorf("read failed: %w", domain.ErrStorage)
	svc := NewService(mock)

	_, err := svc.Resolve(context.Background(), 1, 1)
	require.Error(t, err)
	assert.True(t, domain.IsStorage(err))
}

func TestResolveRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(newMockCatalog())

	_, err := svc.Resolve(context.Background(), 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Resolve(context.Background(), 1, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveUnknownNameFallsBack(t *testing.T) {
	mock := newMockCatalog()
	svc := NewService(mock)

	result, err := svc.Resolve(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, "ID 42", result[42].Name)
}
