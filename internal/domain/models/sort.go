package models

import "fmt"

// SortType selects the comparator applied to the browse view. All five
// are total orders; ties keep the underlying load order (stable sort).
type SortType string

const (
	// SortDateDesc orders by CreatedAt, newest first.
	SortDateDesc SortType = "dateDesc"

	// SortDateAsc orders by CreatedAt, oldest first.
	SortDateAsc SortType = "dateAsc"

	// SortTitleAsc orders by Title ascending, byte-wise comparison.
	SortTitleAsc SortType = "titleAsc"

	// SortTitleDesc orders by Title descending, byte-wise comparison.
	SortTitleDesc SortType = "titleDesc"

	// SortSizeDesc orders by page count, largest first.
	SortSizeDesc SortType = "sizeDesc"
)

// DefaultSort is the order the view starts in.
const DefaultSort = SortDateDesc

// Validate checks that the sort type is one of the five known orders.
func (s SortType) Validate() error {
	switch s {
	case SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc, SortSizeDesc:
		return nil
	default:
		return fmt.Errorf("unknown sort type: %q", string(s))
	}
}
