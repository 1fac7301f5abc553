package service

import (
	"net/url"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(token string) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
}

// Generate encodes the tracking link for a pickup token as a PNG.
func (g DefaultQRGenerator) Generate(token string) ([]byte, error) {
	qrData := g.BaseURL + "/track.html?token=" + url.QueryEscape(token)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
