package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	PerPage    int `json:"perPage"`
}

// NewPagination derives page metadata from a total row count.
func NewPagination(total, page, perPage int) *Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}
	return &Pagination{Total: total, Page: page, TotalPages: totalPages, PerPage: perPage}
}
