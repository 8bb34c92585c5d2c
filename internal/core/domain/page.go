package domain

// Page is one paginated result set. Content holds at most Size entities and
// TotalElements reflects the full filtered set, not just this page.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
}
