package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Image is an inline image payload as exchanged with the AI service.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURL renders the image as a data URL suitable for <img src>.
func (i Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MIMEType, base64.StdEncoding.EncodeToString(i.Data))
}

// Format is the MIME subtype ("jpeg", "png", ...).
func (i Image) Format() string {
	if _, sub, ok := strings.Cut(i.MIMEType, "/"); ok {
		return sub
	}
	return "jpeg"
}

// ParseDataURL decodes a "data:<mime>;base64,<payload>" string. A bare base64
// payload without the data: prefix is accepted and assumed to be JPEG.
func ParseDataURL(s string) (Image, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Image{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	mime := "image/jpeg"
	payload := s
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, data, found := strings.Cut(rest, ",")
		if !found {
			return Image{}, fmt.Errorf("%w: missing data separator", ErrInvalidImage)
		}
		header, isBase64 := strings.CutSuffix(header, ";base64")
		if !isBase64 {
			return Image{}, fmt.Errorf("%w: only base64 data urls are supported", ErrInvalidImage)
		}
		if header != "" {
			mime = header
		}
		payload = data
	}
	if !strings.HasPrefix(mime, "image/") {
		return Image{}, fmt.Errorf("%w: unsupported mime type %q", ErrInvalidImage, mime)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	return Image{MIMEType: mime, Data: data}, nil
}
