package dto

// BaseResponse is the envelope every operation answers with, success or
// failure alike.
type BaseResponse struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type PaginationRequest struct {
	PageNumber int `query:"pageNumber" json:"pageNumber"`
	PageSize   int `query:"pageSize" json:"pageSize"`
}

type PaginationControl struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
}

// ListResponse is the envelope for list operations; PaginationControl is
// present only when paging parameters were supplied.
type ListResponse struct {
	Success           bool               `json:"success"`
	Code              int                `json:"code"`
	Message           string             `json:"message"`
	Data              any                `json:"data"`
	PaginationControl *PaginationControl `json:"paginationControl,omitempty"`
}

type UploadResponse struct {
	Success bool     `json:"success"`
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Data    []string `json:"data"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp int64  `json:"timestamp"`
	DB        string `json:"db"`
}
