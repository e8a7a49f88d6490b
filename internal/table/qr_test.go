package table

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQRService_OrderingURL(t *testing.T) {
	svc := NewQRService("https://menu.example.com")

	url := svc.OrderingURL("tok-123")

	assert.Equal(t, "https://menu.example.com/menu?tableToken=tok-123", url)
}

func TestQRService_DataURL(t *testing.T) {
	svc := NewQRService("https://menu.example.com")

	dataURL, err := svc.DataURL("tok-123")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	assert.NoError(t, err)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])
}
