package table

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"tableside/internal/errors"
)

// QRService derives the scannable code for a table: the public
// ordering URL parameterized by the table's token, rendered as a PNG
// data URL.
type QRService struct {
	publicAppURL string
}

func NewQRService(publicAppURL string) *QRService {
	return &QRService{publicAppURL: publicAppURL}
}

func (s *QRService) OrderingURL(token string) string {
	return fmt.Sprintf("%s/menu?tableToken=%s", s.publicAppURL, token)
}

func (s *QRService) DataURL(token string) (string, error) {
	png, err := qrcode.Encode(s.OrderingURL(token), qrcode.Medium, 256)
	if err != nil {
		return "", errors.NewInternalError("encoding qr code", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
