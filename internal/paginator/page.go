package paginator

// Page is one page of a listing together with enough metadata to render
// navigation links.
type Page[T any] struct {
	Items    []T `json:"items"`
	Number   int `json:"number"`
	NumPages int `json:"num_pages"`
	Count    int `json:"count"`
	PerPage  int `json:"per_page"`
}

func NewPage[T any](items []T, number int, p Paginator) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:    items,
		Number:   number,
		NumPages: p.NumPages(),
		Count:    p.Count(),
		PerPage:  p.PerPage(),
	}
}

func (p Page[T]) Len() int { return len(p.Items) }

func (p Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

func (p Page[T]) HasOtherPages() bool { return p.HasNext() || p.HasPrevious() }

func (p Page[T]) NextNumber() int     { return p.Number + 1 }
func (p Page[T]) PreviousNumber() int { return p.Number - 1 }

// StartIndex is the 1-based index of the first item on the page, 0 if empty.
func (p Page[T]) StartIndex() int {
	if p.Count == 0 {
		return 0
	}
	return p.PerPage*(p.Number-1) + 1
}

// EndIndex is the 1-based index of the last item on the page.
func (p Page[T]) EndIndex() int {
	if p.Number == p.NumPages {
		return p.Count
	}
	return p.Number * p.PerPage
}

func (p Page[T]) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}
