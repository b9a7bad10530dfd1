package types

// CatalogEntry is the flattened representation of one published FAQ used
// as LLM context. Excerpt and Content are both prefixes of the same
// stripped body, truncated to their configured budgets.
type CatalogEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	URL      string `json:"url"`
	Access   string `json:"access"`
}

// Catalog is the full snapshot, ordered by title ascending. It is
// persisted and replaced as one unit so readers never observe a
// half-built list.
type Catalog struct {
	Entries []CatalogEntry `json:"entries"`
	BuiltAt int64          `json:"built_at"`
}
