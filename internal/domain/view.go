package domain

import "fmt"

// SortMode selects the ordering of the derived view
type SortMode string

const (
	SortAlphabetical SortMode = "alphabetical"
	SortYear         SortMode = "year"
)

// ParseSortMode converts a config or flag value to a SortMode
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case SortAlphabetical, "":
		return SortAlphabetical, nil
	case SortYear:
		return SortYear, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// String returns the display name for the sort mode
func (s SortMode) String() string {
	switch s {
	case SortAlphabetical:
		return "Title"
	case SortYear:
		return "Year"
	default:
		return "Unknown"
	}
}

// Next cycles to the other sort mode
func (s SortMode) Next() SortMode {
	if s == SortYear {
		return SortAlphabetical
	}
	return SortYear
}

// ViewState is the caller-owned search and sort selection
type ViewState struct {
	SearchTerm string
	Sort       SortMode
}
