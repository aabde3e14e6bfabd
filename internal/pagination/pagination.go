package pagination

import "strconv"

// PostsPerPage is the fixed window size for every listing page.
const PostsPerPage = 10

// Page is a window over an already-ordered sequence. Ordering is
// established by the repository query, never here.
type Page struct {
	Number     int
	PageSize   int
	TotalItems int
	TotalPages int
}

// New builds the page window for a raw ?page= query value. Non-numeric
// input falls back to page 1; out-of-range input clamps to the nearest
// valid page instead of erroring. An empty sequence still yields a
// single valid (empty) page.
func New(totalItems, pageSize int, requested string) Page {
	if pageSize < 1 {
		pageSize = PostsPerPage
	}
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	number, err := strconv.Atoi(requested)
	if err != nil {
		number = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

func (p Page) Offset() int { return (p.Number - 1) * p.PageSize }

func (p Page) Limit() int { return p.PageSize }

func (p Page) HasNext() bool { return p.Number < p.TotalPages }

func (p Page) HasPrevious() bool { return p.Number > 1 }

func (p Page) NextNumber() int { return p.Number + 1 }

func (p Page) PreviousNumber() int { return p.Number - 1 }
