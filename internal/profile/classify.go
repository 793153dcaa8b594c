package profile

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNotLookup means the message is not a lookup request at all.
	ErrNotLookup = errors.New("message is not a lookup request")
	// ErrUnresolvableForward means the message is forwarded but carries no
	// sender identity, typically because the sender hid their account.
	ErrUnresolvableForward = errors.New("could not determine forwarded user")
)

// Message is the classifier's view of an inbound chat message.
type Message struct {
	Text string

	// HasForwardOrigin is set when the message carries any forwarded-origin
	// metadata, even if no sender identity could be extracted from it.
	HasForwardOrigin  bool
	ForwardedSenderID int64
	ForwardedChatID   int64
}

const deepLinkMarker = "t.me/"

// Classify turns a raw message into a lookup key. Forward metadata wins over
// text, and the handle sigil wins over deep-link detection, since a handle
// may itself look like part of a deep link.
func Classify(m Message) (Key, error) {
	if m.HasForwardOrigin {
		if m.ForwardedSenderID != 0 {
			return ForwardedSenderKey(m.ForwardedSenderID), nil
		}
		if m.ForwardedChatID != 0 {
			return ForwardedSenderKey(m.ForwardedChatID), nil
		}
		return Key{}, ErrUnresolvableForward
	}

	text := strings.TrimSpace(m.Text)
	if text == "" {
		return Key{}, ErrNotLookup
	}

	if strings.HasPrefix(text, "@") {
		handle := firstToken(text[1:])
		if handle == "" {
			return Key{}, ErrNotLookup
		}
		return HandleKey(handle), nil
	}

	if idx := strings.LastIndex(text, deepLinkMarker); idx >= 0 {
		handle := firstToken(text[idx+len(deepLinkMarker):])
		if handle == "" {
			return Key{}, ErrNotLookup
		}
		return HandleKey(handle), nil
	}

	if isDigits(text) {
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Key{}, ErrNotLookup
		}
		return NumericKey(id), nil
	}

	return Key{}, ErrNotLookup
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
