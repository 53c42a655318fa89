package question

import "strconv"

// QuestionsPerPage is the fixed page size for every paginated list.
const QuestionsPerPage = 10

// ParsePage reads a 1-based page number. Absent, non-numeric and non-positive values yield 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate returns items[(page-1)*QuestionsPerPage : page*QuestionsPerPage], clamped to
// the slice bounds. Pages past the end are empty, never nil.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	pages := (len(items) + QuestionsPerPage - 1) / QuestionsPerPage
	if page-1 >= pages {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
