// Package pagination turns a backend pagination descriptor into the bounded
// set of page controls the conversions page renders. It holds no state: the
// caller owns the current page and rebuilds the window after every fetch.
package pagination

import "github.com/convertly/currency_converter_web/internal/core/domain"

const maxPagesToShow = 5

// Item is a single page control: either a numbered, clickable indicator or a
// non-interactive ellipsis placeholder.
type Item struct {
	Page     int
	Ellipsis bool
	Active   bool
}

// Window is the fully resolved set of controls for one descriptor.
type Window struct {
	Items       []Item
	PrevEnabled bool
	NextEnabled bool
	PrevPage    int
	NextPage    int
}

// Build computes the window for a descriptor. At most five numbered
// indicators appear; descriptors with a single page (or none) produce an
// empty window, which the page omits entirely.
func Build(p domain.Pagination) Window {
	w := Window{
		PrevEnabled: p.HasPrevPage,
		NextEnabled: p.HasNextPage,
		PrevPage:    p.CurrentPage - 1,
		NextPage:    p.CurrentPage + 1,
	}
	if p.TotalPages <= 1 {
		return w
	}

	var pages []int
	switch {
	case p.TotalPages <= maxPagesToShow:
		for i := 1; i <= p.TotalPages; i++ {
			pages = append(pages, i)
		}
	case p.CurrentPage <= 3:
		pages = []int{1, 2, 3, 0, p.TotalPages}
	case p.CurrentPage >= p.TotalPages-2:
		pages = []int{1, 0, p.TotalPages - 2, p.TotalPages - 1, p.TotalPages}
	default:
		pages = []int{1, 0, p.CurrentPage - 1, p.CurrentPage, p.CurrentPage + 1, 0, p.TotalPages}
	}

	for _, page := range pages {
		if page == 0 {
			w.Items = append(w.Items, Item{Ellipsis: true})
			continue
		}
		w.Items = append(w.Items, Item{Page: page, Active: page == p.CurrentPage})
	}
	return w
}
