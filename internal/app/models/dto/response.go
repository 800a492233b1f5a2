package dto

import "time"

// APIResponse is the envelope every successful endpoint returns
type APIResponse struct {
	Success    bool            `json:"success" example:"true"`
	Message    string          `json:"message,omitempty" example:"Enrollment successful"`
	Data       interface{}     `json:"data,omitempty"`
	Count      *int            `json:"count,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Error      *ErrorDetail    `json:"error,omitempty"`
	Timestamp  time.Time       `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	Limit       int   `json:"limit" example:"10"`
	TotalCount  int64 `json:"totalCount" example:"27"`
	HasNext     bool  `json:"hasNext" example:"true"`
	HasPrev     bool  `json:"hasPrev" example:"false"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewListResponse wraps a list and reports its length in count
func NewListResponse[T any](items []T) APIResponse {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	return APIResponse{
		Success:   true,
		Data:      items,
		Count:     &count,
		Timestamp: time.Now(),
	}
}

// NewPagedResponse wraps one page of items with its pagination metadata
func NewPagedResponse[T any](items []T, pagination PaginationInfo) APIResponse {
	if items == nil {
		items = []T{}
	}
	return APIResponse{
		Success:    true,
		Data:       items,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	}
}
