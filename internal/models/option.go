package models

// OptionKind names one of the admin-managed option lists
type OptionKind string

const (
	OptionSubcategory OptionKind = "subcategories"
	OptionSize        OptionKind = "sizes"
	OptionColor       OptionKind = "colors"
)

// Option is an entry of a subcategory, size or color list.
// Subcategories are ordered by name and always carry SortOrder 0.
type Option struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// Valid reports whether k is a known option list
func (k OptionKind) Valid() bool {
	switch k {
	case OptionSubcategory, OptionSize, OptionColor:
		return true
	}
	return false
}
