package pagination

import "strconv"

const (
	defaultLimit = 20
	maxLimit     = 50
)

// Params are parsed page/limit values with the derived offset.
type Params struct {
	Page  int
	Limit int
	Skip  int
}

// Parse clamps page to >= 1 and limit to [1, 50] (default 20).
func Parse(pageStr, limitStr string) Params {
	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

// Meta is the pagination envelope sent alongside list data.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Page is the standard paginated response body.
type Page struct {
	Data       interface{} `json:"data"`
	Pagination Meta        `json:"pagination"`
}

// NewPage builds the response envelope for one page of results.
func NewPage(data interface{}, total int64, p Params) Page {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Page{
		Data: data,
		Pagination: Meta{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    p.Page < totalPages,
			HasPrev:    p.Page > 1,
		},
	}
}
