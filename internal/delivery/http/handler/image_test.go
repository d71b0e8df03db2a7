package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestReadImage_JSON(t *testing.T) {
	c := newJSONContext(`{"image":"data:image/jpeg;base64,/9j/4A=="}`)

	dataURL, err := readImage(c, "photo")
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,/9j/4A==", dataURL)
}

func TestReadImage_JSONMissingImage(t *testing.T) {
	c := newJSONContext(`{}`)

	_, err := readImage(c, "photo")
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestReadImage_JSONBodyTooLarge(t *testing.T) {
	body := `{"image":"data:image/jpeg;base64,` + strings.Repeat("A", maxImageBodyBytes) + `"}`
	c := newJSONContext(body)

	_, err := readImage(c, "photo")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
	assert.Contains(t, err.Error(), "body exceeds")
}
