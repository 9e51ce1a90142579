package models

// SortOrder enumerates the material list orderings offered by the UI.
type SortOrder string

const (
	SortPostedDesc     SortOrder = "posted_desc"
	SortPostedAsc      SortOrder = "posted_asc"
	SortTitleAsc       SortOrder = "title_asc"
	SortTitleDesc      SortOrder = "title_desc"
	SortImportantFirst SortOrder = "important_first"
)

// MaterialQuery describes a filter/sort projection over one course's
// material set. The projection is stateless: it is recomputed on demand
// from the current inputs and never cached.
type MaterialQuery struct {
	// SearchText filters by case-insensitive substring match across
	// title, content, and author. Empty means no text filter.
	SearchText string

	// Sort selects the ordering; the zero value falls back to
	// SortPostedDesc.
	Sort SortOrder

	// ImportantOnly keeps only materials flagged important.
	ImportantOnly bool
}
