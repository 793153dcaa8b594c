package profile

import "strings"

// NamePlaceholder is shown when an account has no name parts at all.
const NamePlaceholder = "N/A"

// StatusKind is the closed set of presence states the card can show.
// Unrecognized remote variants map to StatusUnknown, never to a raw string.
type StatusKind int

const (
	StatusHidden StatusKind = iota
	StatusOnline
	StatusOffline
	StatusRecently
	StatusLastWeek
	StatusLastMonth
	StatusUnknown
)

func (s StatusKind) String() string {
	switch s {
	case StatusHidden:
		return "Hidden"
	case StatusOnline:
		return "Online"
	case StatusOffline:
		return "Offline"
	case StatusRecently:
		return "Recently"
	case StatusLastWeek:
		return "LastWeek"
	case StatusLastMonth:
		return "LastMonth"
	default:
		return "Unknown"
	}
}

// Record is the canonical profile shape every lookup is normalized into.
type Record struct {
	ID          int64
	DisplayName string
	// Username is empty when the account has none set.
	Username string
	HasPhoto bool
	// DCID is meaningful only when HasPhoto is true.
	DCID    int
	Premium bool
	Scam    bool
	Fake    bool
	Status  StatusKind
	// PaidMessages is not exposed by the lookup API and stays false.
	PaidMessages bool
	// RegisteredOn and AccountAge stay empty: Telegram does not expose the
	// account creation time, and it must not be inferred from other fields.
	RegisteredOn string
	AccountAge   string
}

// FallbackRecord builds a Record straight from the fields an inbound update
// already carries, bypassing the normalizer. Used when the requester's own
// lookup fails during the greeting flow.
func FallbackRecord(id int64, firstName, lastName, username string) Record {
	return Record{
		ID:          id,
		DisplayName: displayName(firstName, lastName),
		Username:    username,
		Status:      StatusHidden,
	}
}

func displayName(first, last string) string {
	name := first
	if last != "" {
		if name != "" {
			name += " "
		}
		name += last
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return NamePlaceholder
	}
	return name
}
