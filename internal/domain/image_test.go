package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	img, err := ParseDataURL("data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "png", img.Format())
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, img.Data)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", img.DataURL())
}

func TestParseDataURL_BareBase64IsJPEG(t *testing.T) {
	img, err := ParseDataURL("/9j/4A==")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)
	assert.Equal(t, "jpeg", img.Format())
}

func TestParseDataURL_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "  "},
		{"no separator", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,rawbytes"},
		{"not an image", "data:text/plain;base64,aGVsbG8="},
		{"bad payload", "data:image/png;base64,***"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataURL(tt.input)
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}
