package helpers

import (
	"gorm.io/gorm"
)

const MaxPerPage = 100

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Paginate counts the query, applies offset/limit and scans the page
// into dest. Page numbers are 1-indexed.
func Paginate(query *gorm.DB, page, perPage int, dest interface{}) (*Pagination, error) {
	var totalCount int64
	if err := query.Session(&gorm.Session{}).Count(&totalCount).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	if err := query.Offset(offset).Limit(perPage).Find(dest).Error; err != nil {
		return nil, err
	}

	totalPages := 1
	if totalCount > 0 {
		totalPages = int((totalCount + int64(perPage) - 1) / int64(perPage))
	}

	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// ValidatePageParams rejects out-of-range pagination input.
func ValidatePageParams(page, perPage int) error {
	if page < 1 {
		return NewValidationError("page must be greater than or equal to 1.")
	}
	if perPage < 1 {
		return NewValidationError("per_page must be greater than 0.")
	}
	if perPage > MaxPerPage {
		return NewValidationError("per_page cannot be greater than 100.")
	}
	return nil
}
