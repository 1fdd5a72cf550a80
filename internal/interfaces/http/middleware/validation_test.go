package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/idcashier/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleLine struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type saleBody struct {
	PaymentMethod string     `json:"payment_method" binding:"required,oneof=cash card"`
	Items         []saleLine `json:"items" binding:"required,min=1,dive"`
}

func bindDetails(t *testing.T, body string) ([]dto.ValidationDetail, error) {
	t.Helper()
	SetupValidator()
	var details []dto.ValidationDetail
	var bindErr error
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req saleBody
		bindErr = c.ShouldBindJSON(&req)
		details = ValidationDetails(bindErr)
		c.Status(http.StatusNoContent)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return details, bindErr
}

func TestValidationDetails(t *testing.T) {
	details, err := bindDetails(t, `{"payment_method":"barter","items":[{"product_id":"x","quantity":0}]}`)
	require.Error(t, err)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "Must be one of: cash card", byField["payment_method"])
	assert.Equal(t, "Invalid UUID format", byField["items[0].product_id"])
	assert.Equal(t, "This field is required", byField["items[0].quantity"])
}

func TestValidationDetails_MalformedJSON(t *testing.T) {
	details, err := bindDetails(t, `{"items": [`)
	require.Error(t, err)
	assert.Nil(t, details)

	_, err = bindDetails(t, `{"payment_method": 5}`)
	assert.True(t, IsMalformedJSON(err))
}
