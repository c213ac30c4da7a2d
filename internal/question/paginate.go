package question

import (
	"net/url"
	"strconv"
)

// QuestionsPerPage is the fixed page size.
const QuestionsPerPage = 10

// PageFromQuery reads the 1-based page parameter, defaulting to 1 when absent or not an integer.
func PageFromQuery(values url.Values) int {
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// Paginate returns items [(page-1)*10, page*10) clamped to the slice bounds.
// Pages below 1 or past the end yield an empty result.
func Paginate[T any](items []T, page int) []T {
	pages := (len(items) + QuestionsPerPage - 1) / QuestionsPerPage
	// compared in page units so huge page numbers cannot overflow the offset
	if page < 1 || page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
