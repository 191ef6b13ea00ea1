package ai

import (
	"regexp"
	"strings"
	"unicode"

	"trailmate/models"
)

const (
	// BookingSentinel asks the server to book the activity id that follows it.
	BookingSentinel = "BOOK_ACTIVITY:"
	// OfferMarker tags a reply as offering the activity id that follows it.
	OfferMarker = "OFFER_ACTIVITY:"
)

var activityIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidActivityID reports whether id is shaped like a store document id.
func ValidActivityID(id string) bool {
	return activityIDPattern.MatchString(id)
}

type ReplyKind int

const (
	ReplyMessage ReplyKind = iota
	ReplyBooking
)

func (k ReplyKind) String() string {
	if k == ReplyBooking {
		return "booking"
	}
	return "message"
}

// Reply is the interpreted model output: either text to show or a booking request.
type Reply struct {
	Kind       ReplyKind
	Text       string
	ActivityID string
}

// Interpret routes a raw reply. Without the booking sentinel the text is
// returned unchanged.
func Interpret(raw string) Reply {
	if id, ok := extractAfter(raw, BookingSentinel); ok {
		return Reply{Kind: ReplyBooking, ActivityID: id}
	}
	return Reply{Kind: ReplyMessage, Text: raw}
}

// extractAfter returns the token following marker, up to the next whitespace.
// Any whitespace between the marker and the id, line breaks included, is skipped.
func extractAfter(raw, marker string) (string, bool) {
	idx := strings.Index(raw, marker)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimLeftFunc(raw[idx+len(marker):], unicode.IsSpace)
	if end := strings.IndexFunc(rest, unicode.IsSpace); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest), true
}

// SplitOffer removes an offer marker from a display reply and returns the
// cleaned text together with the offer it carried, if any. Markers with an
// invalid id are removed but produce no offer.
func SplitOffer(text string) (string, *models.Offer) {
	id, ok := extractAfter(text, OfferMarker)
	if !ok {
		return text, nil
	}

	idx := strings.Index(text, OfferMarker)
	end := idx + len(OfferMarker)
	rest := text[end:]
	skipped := len(rest) - len(strings.TrimLeftFunc(rest, unicode.IsSpace))
	end += skipped + len(id)

	cleaned := strings.TrimRight(text[:idx], " \t") + text[end:]
	cleaned = strings.TrimSpace(cleaned)

	if !ValidActivityID(id) {
		return cleaned, nil
	}
	return cleaned, &models.Offer{ActivityID: id}
}
