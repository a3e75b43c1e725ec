package web

import (
	"strconv"

	"github.com/jpl-au/glossd/internal/search"
)

// maxDisplay is how many page numbers the bar shows around the current page.
const maxDisplay = 10

// pageLink is one cell of the paging bar. Gap marks an elided run of pages.
type pageLink struct {
	Label   string
	URL     string
	Current bool
	Gap     bool
}

type pagingBar struct {
	Prev  string
	Next  string
	Pages []pageLink
}

// newPagingBar returns nil when everything fits on one page. Links keep the
// query, whole-word flag, collection and course of req.
func newPagingBar(path string, req search.Request, res *search.Result) *pagingBar {
	pages := res.Pages()
	if pages <= 1 {
		return nil
	}
	link := func(p int) string {
		r := req
		r.Page = p
		return path + "?" + Values(r).Encode()
	}
	num := func(p int) pageLink {
		return pageLink{Label: strconv.Itoa(p + 1), URL: link(p), Current: p == res.Page}
	}

	bar := &pagingBar{}
	if res.HasPrev() {
		bar.Prev = link(min(res.Page, pages) - 1)
	}
	if res.HasNext() {
		bar.Next = link(res.Page + 1)
	}

	first, last := window(res.Page, pages, maxDisplay)
	if first > 0 {
		bar.Pages = append(bar.Pages, num(0))
		if first > 1 {
			bar.Pages = append(bar.Pages, pageLink{Gap: true})
		}
	}
	for p := first; p <= last; p++ {
		bar.Pages = append(bar.Pages, num(p))
	}
	if last < pages-1 {
		if last < pages-2 {
			bar.Pages = append(bar.Pages, pageLink{Gap: true})
		}
		bar.Pages = append(bar.Pages, num(pages-1))
	}
	return bar
}

// window picks the zero-based range of page numbers to show, centred on
// current and clamped to [0, pages).
func window(current, pages, size int) (first, last int) {
	if pages <= size {
		return 0, pages - 1
	}
	first = max(current-size/2, 0)
	last = first + size - 1
	if last > pages-1 {
		last = pages - 1
		first = last - size + 1
	}
	return first, last
}
