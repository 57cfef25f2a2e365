package domain

// SourceClassification describes how a base material is obtained.
// Crafted and Purchased are mutually exclusive with Gathered and more
// specific than Unknown, which matters for lookup precedence in the catalog.
type SourceClassification string

const (
	SourceUnknown   SourceClassification = ""
	SourceGathered  SourceClassification = "gathered"
	SourceCrafted   SourceClassification = "crafted"
	SourcePurchased SourceClassification = "purchased"
)

// Item represents a catalog item. Items are immutable facts from the
// provider's point of view; only the locally cached copy is ever merged.
type Item struct {
	ID             int                  `json:"item_id"`
	Name           string               `json:"name"`
	Tier           int                  `json:"tier"`
	IconURL        string               `json:"icon_url,omitempty"`
	Icon           []byte               `json:"-"`
	Source         SourceClassification `json:"source,omitempty"`
	SourceLocation string               `json:"source_location,omitempty"`
}

// HasKnownSource reports whether the item already carries a source
// classification that should not be overwritten by a gathering lookup.
func (i *Item) HasKnownSource() bool {
	return i.Source == SourceCrafted || i.Source == SourcePurchased
}
