package lists

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CraftVault_Go/internal/domain"
)

// mockRepository keeps lists in memory in insertion order.
type mockRepository struct {
	lists map[string][]Entry
}

func newMockRepository() *mockRepository {
	return &mockRepository{lists: make(map[string][]Entry)}
}

func (m *mockRepository) GetAllLists(_ context.Context) ([]List, error) {
	result := make([]List, 0, len(m.lists))
	for name, entries := range m.lists {
		result = append(result, List{Name: name, Entries: entries})
	}
	return result, nil
}

func (m *mockRepository) SaveList(_ context.Context, name string, entries []Entry) error {
	m.lists[name] = entries
	return nil
}

func (m *mockRepository) RenameList(_ context.Context, oldName, newName string) error {
	entries, ok := m.lists[oldName]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.lists, oldName)
	m.lists[newName] = entries
	return nil
}

func (m *mockRepository) DeleteList(_ context.Context, name string) error {
	delete(m.lists, name)
	return nil
}

func TestSaveReplacesEntries(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewService(repo)

	require.NoError(t, svc.Save(ctx, "raid food", []Entry{
		{ItemID: 1, Name: "Pizza", Amount: 30},
		{ItemID: 2, Name: "Coffee", Amount: 10},
	}))
	require.NoError(t, svc.Save(ctx, "raid food", []Entry{
		{ItemID: 2, Name: "Coffee", Amount: 99, Obtained: true},
	}))

	entries := repo.lists["raid food"]
	require.Len(t, entries, 1, "save replaces the whole list")
	assert.Equal(t, 99, entries[0].Amount)
	assert.True(t, entries[0].Obtained)
}

func TestSaveNormalizesAmounts(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewService(repo)

	require.NoError(t, svc.Save(ctx, "mats", []Entry{
		{ItemID: 1, Name: "Ore", Amount: 0},
		{ItemID: 2, Name: "Log", Amount: -5},
	}))

	for _, e := range repo.lists["mats"] {
		assert.Equal(t, 1, e.Amount)
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	svc := NewService(newMockRepository())
	err := svc.Save(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewService(repo)

	require.NoError(t, svc.Save(ctx, "old", []Entry{{ItemID: 1, Name: "Ore", Amount: 3}}))
	require.NoError(t, svc.Rename(ctx, "old", "new"))

	assert.NotContains(t, repo.lists, "old")
	assert.Contains(t, repo.lists, "new")

	err := svc.Rename(ctx, "missing", "whatever")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewService(repo)

	require.NoError(t, svc.Save(ctx, "doomed", []Entry{{ItemID: 1, Amount: 1}}))
	require.NoError(t, svc.Delete(ctx, "doomed"))
	assert.Empty(t, repo.lists)

	// Deleting a missing list is a no-op, matching the repository contract.
	require.NoError(t, svc.Delete(ctx, "doomed"))
}
