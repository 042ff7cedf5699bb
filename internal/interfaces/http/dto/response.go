package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

// Response represents a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Meta represents pagination metadata
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMeta creates a success response with pagination meta
func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return NewErrorResponseWithRequestID(code, message, "")
}

// NewErrorResponseWithRequestID creates an error response tagged with the request id
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// NewValidationErrorResponse creates a validation error response with field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// ListQuery holds list parameters. Both page/page_size and the DataTables
// style start/length/order[field]/order[dir] are accepted.
type ListQuery struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// ParseListQuery reads list parameters from the query string
func ParseListQuery(c *gin.Context) ListQuery {
	q := ListQuery{
		Page:     atoi(c.Query("page"), 1),
		PageSize: atoi(c.Query("page_size"), 20),
		OrderBy:  c.Query("order_by"),
		OrderDir: strings.ToLower(c.Query("order_dir")),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	if length := atoi(c.Query("length"), 0); length > 0 {
		q.PageSize = length
		q.Page = atoi(c.Query("start"), 0)/length + 1
	}
	if v := c.Query("order[field]"); v != "" {
		q.OrderBy = v
	}
	if v := c.Query("order[dir]"); v != "" {
		q.OrderDir = strings.ToLower(v)
	}
	if q.Search == "" {
		q.Search = strings.TrimSpace(c.Query("search[value]"))
	}
	return q
}

// Filter converts the query to a normalized repository filter
func (q ListQuery) Filter() shared.Filter {
	f := shared.DefaultFilter()
	f.Page = q.Page
	f.PageSize = q.PageSize
	f.Search = q.Search
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		f.OrderDir = q.OrderDir
	}
	return f.Normalize()
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
