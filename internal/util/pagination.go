package util

import "strconv"

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ValidatePagination clamps page to >= 1 and limit to [1, MaxPageSize].
// Zero or unparsable values fall back to page 1 and DefaultPageSize.
func ValidatePagination(pageParam, limitParam string) (page, limit int) {
	page = ParseIntDefault(pageParam, 1)
	limit = ParseIntDefault(limitParam, DefaultPageSize)
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	page = max(1, page)
	limit = min(MaxPageSize, max(1, limit))
	return page, limit
}

func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	offset = (page - 1) * size
	limit = size
	return offset, limit
}

func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
