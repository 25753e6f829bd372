package catalog

// DefaultPageSize is the number of products shown per catalog page.
const DefaultPageSize = 8

// PageInfo describes one page of a filtered result set.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageInfo computes pagination metadata for total items.
func NewPageInfo(total, pageSize, page int) PageInfo {
	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages returns ceil(n/pageSize), which is 0 for an empty sequence.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of items. A page outside the valid
// range yields an empty slice; callers clamp the page themselves.
func Paginate[T any](items []T, pageSize, page int) []T {
	if pageSize <= 0 || page < 1 {
		return []T{}
	}
	if page > TotalPages(len(items), pageSize) {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}
