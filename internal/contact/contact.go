// Package contact builds WhatsApp chat links for reaching the agency.
package contact

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/evcraddock/realty-site/internal/property"
)

const chatBaseURL = "https://wa.me/"

// Link returns a chat deep link to phone prefilled with message. Any
// non-digit characters in phone are dropped.
func Link(phone, message string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", fmt.Errorf("phone number %q has no digits", phone)
	}

	link := chatBaseURL + digits
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link, nil
}

// PropertyMessage is the prefilled text for enquiring about a listing.
func PropertyMessage(r property.Record) string {
	msg := fmt.Sprintf("Hello! I'm interested in the property \"%s\" (code %d)", r.Title, r.ID)
	if r.Location != "" {
		msg += " in " + r.Location
	}
	if r.Price != "" {
		msg += ", listed at " + r.Price
	}
	return msg + "."
}

// PropertyLink returns a chat link enquiring about r.
func PropertyLink(phone string, r property.Record) (string, error) {
	return Link(phone, PropertyMessage(r))
}
