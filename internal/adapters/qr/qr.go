// Package qr builds the public links for an event and renders them as QR
// code images.
package qr

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"

	"signinsheet/internal/domain"
)

// qrSize is the pixel width of rendered QR images. Generous sizing plus high
// error correction keeps the codes scannable from printed sheets.
const qrSize = 512

// Links implements domain.LinkBuilder for a fixed base URL. All links point
// at the single index.html entry point and select behavior via the event and
// mode query parameters.
type Links struct {
	baseURL string
}

// NewLinks returns a LinkBuilder for the given base URL (no trailing slash).
func NewLinks(baseURL string) Links {
	return Links{baseURL: baseURL}
}

// FormLink returns the attendee form URL for the event. The query string is
// repeated in the URL fragment: some mobile browsers drop the query when
// opening a scanned link, and the page script can recover it from the hash.
func (l Links) FormLink(eventID string) string {
	query := fmt.Sprintf("event=%s&mode=form&v=%s", url.QueryEscape(eventID), url.QueryEscape(eventID))
	return fmt.Sprintf("%s/index.html?%s#%s", l.baseURL, query, query)
}

// AdminLink returns the admin URL for the event, key included.
func (l Links) AdminLink(eventID, key string) string {
	return fmt.Sprintf("%s/index.html?event=%s&mode=admin&key=%s",
		l.baseURL, url.QueryEscape(eventID), url.QueryEscape(key))
}

// Renderer implements domain.QRRenderer using skip2/go-qrcode.
type Renderer struct{}

// RenderPNG encodes content as a PNG QR code with the highest error
// correction level.
func (Renderer) RenderPNG(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.High, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

var (
	_ domain.LinkBuilder = Links{}
	_ domain.QRRenderer  = Renderer{}
)
