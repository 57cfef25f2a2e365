package domain

// ResolvedMaterial is one entry in the flattened output of a material
// resolution: how many of a base item are needed across every branch of the
// recipe tree.
type ResolvedMaterial struct {
	ItemID int    `json:"item_id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	// IsLeaf is true when the item has no known recipe (base material).
	IsLeaf bool `json:"is_leaf"`
	// Unresolved is true when the item was treated as a leaf because the
	// provider failed transiently, not because absence was confirmed.
	// Callers can use it to decide whether to offer a retry.
	Unresolved bool `json:"unresolved,omitempty"`
}

// MaterialList aggregates resolved materials by item ID. Amounts for the
// same item accumulate additively across branches.
type MaterialList map[int]ResolvedMaterial

// Add merges a single material contribution into the list.
func (m MaterialList) Add(mat ResolvedMaterial) {
	if existing, ok := m[mat.ItemID]; ok {
		existing.Amount += mat.Amount
		existing.Unresolved = existing.Unresolved || mat.Unresolved
		m[mat.ItemID] = existing
		return
	}
	m[mat.ItemID] = mat
}

// Merge folds every entry of other into the list.
func (m MaterialList) Merge(other MaterialList) {
	for _, mat := range other {
		m.Add(mat)
	}
}

// TotalAmount returns the summed amount across all materials.
func (m MaterialList) TotalAmount() int {
	total := 0
	for _, mat := range m {
		total += mat.Amount
	}
	return total
}
