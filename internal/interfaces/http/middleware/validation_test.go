package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/farmledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestFormatValidationErrors(t *testing.T) {
	type input struct {
		Name     string `json:"name" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,min=1"`
	}

	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req input
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, FormatValidationErrors(err, "req-1"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	body := strings.NewReader(`{"quantity": 0}`)
	req := httptest.NewRequest(http.MethodPost, "/test", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)

	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "quantity")
}

func TestValidatorDecimalAmounts(t *testing.T) {
	type input struct {
		Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
	}

	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req input
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, FormatValidationErrors(err, ""))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send(`{"amount": "1250.40"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(`{"amount": "0"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(`{"amount": "-10"}`).Code)
}

func TestValidationMessages(t *testing.T) {
	type input struct {
		Name     string `binding:"required"`
		Code     string `binding:"min=5"`
		Note     string `binding:"max=3"`
		ID       string `binding:"uuid"`
		Kind     string `binding:"oneof=INCOME EXPENSE"`
		Quantity int    `binding:"gt=0"`
	}

	expected := map[string]string{
		"Name":     "This field is required",
		"Code":     "Must be at least 5 characters",
		"Note":     "Must be at most 3 characters",
		"ID":       "Invalid UUID format",
		"Kind":     "Must be one of: INCOME EXPENSE",
		"Quantity": "Must be greater than 0",
	}

	v := validator.New()
	err := v.Struct(input{Code: "ab", Note: "long", ID: "nope", Kind: "OTHER"})
	require.Error(t, err)

	validationErrors, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	for _, e := range validationErrors {
		want, found := expected[e.Field()]
		require.True(t, found, "unexpected field %s", e.Field())
		assert.Equal(t, want, validationMessage(e))
	}
}
