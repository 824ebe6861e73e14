// Package phone normalizes stored contact numbers into international form
// and builds WhatsApp / dialer deep links for manual outreach.
package phone

import (
	"errors"
	"net/url"
	"strings"
)

var ErrTooShort = errors.New("contact number too short")

const minDigits = 9

// Normalize strips everything but digits, swaps a leading trunk "0" for the
// country calling code, and prepends the code when it is missing entirely.
// Numbers shorter than nine digits after cleaning are rejected.
func Normalize(raw, countryCode string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if len(cleaned) < minDigits {
		return "", ErrTooShort
	}
	if strings.HasPrefix(cleaned, "0") {
		cleaned = countryCode + cleaned[1:]
	}
	if !strings.HasPrefix(cleaned, countryCode) {
		cleaned = countryCode + cleaned
	}
	return cleaned, nil
}

// WhatsAppLink builds a wa.me chat-composer URL for a normalized number.
func WhatsAppLink(normalized, message string) string {
	link := "https://wa.me/" + normalized
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// DialLink builds a tel: URL for a normalized number.
func DialLink(normalized string) string {
	return "tel:+" + normalized
}
