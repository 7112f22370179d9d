package ticket

import (
	"bytes"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

// Config describes a registration ticket image: a QR code carrying the
// ticket payload with the event title captioned underneath.
type Config struct {
	Payload    string
	Caption    string
	Size       int // QR edge length in pixels, defaults to 384
	Margin     int // whitespace around the QR, defaults to 32
	Background color.Color
	Foreground color.Color
}

// Generate renders the ticket and returns it PNG-encoded.
func Generate(c Config) ([]byte, error) {
	if c.Size <= 0 {
		c.Size = 384
	}
	if c.Margin <= 0 {
		c.Margin = 32
	}
	if c.Background == nil {
		c.Background = color.White
	}
	if c.Foreground == nil {
		c.Foreground = color.Black
	}

	qr, err := qrcode.New(c.Payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qr.DisableBorder = true

	// Render small and upscale with nearest neighbour so the modules stay
	// crisp instead of blurring.
	qrImage := resize.Resize(uint(c.Size), uint(c.Size), qr.Image(c.Size/2), resize.NearestNeighbor)

	captionHeight := 0
	if c.Caption != "" {
		captionHeight = c.Margin
	}

	width := c.Size + 2*c.Margin
	height := c.Size + 2*c.Margin + captionHeight

	dc := gg.NewContext(width, height)
	dc.SetColor(c.Background)
	dc.Clear()
	dc.DrawImage(qrImage, c.Margin, c.Margin)

	if c.Caption != "" {
		dc.SetColor(c.Foreground)
		dc.DrawStringAnchored(c.Caption, float64(width)/2, float64(c.Size+c.Margin+captionHeight/2), 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
