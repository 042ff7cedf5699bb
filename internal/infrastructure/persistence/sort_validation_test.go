package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"asc", "ASC"},
		{" ASC ", "ASC"},
		{"desc", "DESC"},
		{"", "DESC"},
		{"asc; DROP TABLE products", "DESC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateSortOrder(tt.in), tt.in)
	}
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "grand_total", ValidateSortField("grand_total", DocumentSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", DocumentSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("password_hash", DocumentSortFields, "created_at"))
	assert.Equal(t, "quantity", ValidateSortField(" quantity ", ProductSortFields, "created_at"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
