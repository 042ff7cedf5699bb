package dto

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tilesgalleria/backoffice/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeStockAdjustment, http.StatusUnprocessableEntity},
		{ErrCodePersistence, http.StatusInternalServerError},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{"ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestFromDomainCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, FromDomainCode(shared.CodeNotFound))
	assert.Equal(t, ErrCodeValidation, FromDomainCode(shared.CodeValidationFailed))
	assert.Equal(t, ErrCodeStockAdjustment, FromDomainCode(shared.CodeStockAdjustmentFailed))
	assert.Equal(t, ErrCodeConcurrencyConflict, FromDomainCode(shared.CodeConcurrentModification))
	assert.Equal(t, ErrCodeInternal, FromDomainCode("MYSTERY"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 41, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	resp = NewSuccessResponseWithMeta(nil, 5, 1, 0)
	assert.Equal(t, 5, resp.Meta.TotalPages)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("bad", "req-1", []ValidationDetail{{Field: "email", Message: "Invalid email format", Tag: "email"}})
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}

func parse(t *testing.T, rawQuery string) ListQuery {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/items?"+rawQuery, nil)
	return ParseListQuery(c)
}

func TestParseListQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		f := parse(t, "").Filter()
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 20, f.PageSize)
		assert.Equal(t, "created_at", f.OrderBy)
		assert.Equal(t, "desc", f.OrderDir)
	})

	t.Run("page parameters", func(t *testing.T) {
		f := parse(t, "page=3&page_size=10&order_by=name&order_dir=ASC&search=+carrara+").Filter()
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 10, f.PageSize)
		assert.Equal(t, "name", f.OrderBy)
		assert.Equal(t, "asc", f.OrderDir)
		assert.Equal(t, "carrara", f.Search)
	})

	t.Run("datatables aliases", func(t *testing.T) {
		f := parse(t, "start=50&length=25&order%5Bfield%5D=number&order%5Bdir%5D=asc&search%5Bvalue%5D=INV").Filter()
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 25, f.PageSize)
		assert.Equal(t, "number", f.OrderBy)
		assert.Equal(t, "asc", f.OrderDir)
		assert.Equal(t, "INV", f.Search)
	})

	t.Run("page size is capped", func(t *testing.T) {
		assert.Equal(t, shared.MaxPageSize, parse(t, "length=500").Filter().PageSize)
		assert.Equal(t, shared.MaxPageSize, parse(t, "page_size=1000").Filter().PageSize)
	})
}
