package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gdugdh24/mirrorfit-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// maxImageBytes caps a single uploaded image.
const maxImageBytes = 10 << 20

// maxImageBodyBytes caps a JSON body carrying one base64 encoded image.
const maxImageBodyBytes = maxImageBytes/3*4 + 4<<10

// ImageRequest carries an image as a data URL.
type ImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// readImage accepts either a multipart file under field or a JSON body with a
// data URL, and returns the image as a data URL.
func readImage(c *gin.Context, field string) (string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile(field)
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
		}
		if fh.Size > maxImageBytes {
			return "", fmt.Errorf("%w: file too large", domain.ErrInvalidImage)
		}
		f, err := fh.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
		}
		mime := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(mime, "image/") {
			mime = http.DetectContentType(data)
		}
		return domain.Image{MIMEType: mime, Data: data}.DataURL(), nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageBodyBytes)
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", fmt.Errorf("%w: body exceeds %d bytes", domain.ErrInvalidImage, tooLarge.Limit)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	return req.Image, nil
}
