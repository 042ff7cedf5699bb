package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"gte=0"`
}

type orderRequest struct {
	Email string        `json:"email" binding:"required,email"`
	Name  string        `json:"name" binding:"max=5"`
	Lines []lineRequest `json:"lines" binding:"dive"`
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()

	bind := func(body string) error {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req orderRequest
		return c.ShouldBindJSON(&req)
	}

	err := bind(`{"email":"nope","name":"far too long","lines":[{"quantity":"1"},{"quantity":"-2"}]}`)
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 3)
	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Tag
	}
	assert.Equal(t, "email", byField["email"])
	assert.Equal(t, "max", byField["name"])
	assert.Equal(t, "gte", byField["lines[1].quantity"])

	assert.NoError(t, bind(`{"email":"a@b.co","lines":[{"quantity":"3.5"}]}`))
	assert.Nil(t, ValidationDetails(assert.AnError))
}
