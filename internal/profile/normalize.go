package profile

import "github.com/gotd/td/tg"

// Normalize maps a raw lookup response onto the canonical Record. It is
// total: every optional field falls back to its documented default, so any
// response shape yields a renderable record.
func Normalize(raw Raw) Record {
	u := raw.account()
	if u == nil {
		return Record{DisplayName: NamePlaceholder, Status: StatusHidden}
	}

	first, _ := u.GetFirstName()
	last, _ := u.GetLastName()

	rec := Record{
		ID:          u.ID,
		DisplayName: displayName(first, last),
		Premium:     u.Premium,
		Scam:        u.Scam,
		Fake:        u.Fake,
		Status:      statusKind(u),
	}

	if username, ok := u.GetUsername(); ok && username != "" {
		rec.Username = username
	}

	if photo, ok := u.GetPhoto(); ok {
		if p, ok := photo.(*tg.UserProfilePhoto); ok {
			rec.HasPhoto = true
			rec.DCID = p.DCID
		}
	}

	return rec
}

func statusKind(u *tg.User) StatusKind {
	status, ok := u.GetStatus()
	if !ok || status == nil {
		return StatusHidden
	}
	switch status.(type) {
	case *tg.UserStatusEmpty:
		return StatusHidden
	case *tg.UserStatusOnline:
		return StatusOnline
	case *tg.UserStatusOffline:
		return StatusOffline
	case *tg.UserStatusRecently:
		return StatusRecently
	case *tg.UserStatusLastWeek:
		return StatusLastWeek
	case *tg.UserStatusLastMonth:
		return StatusLastMonth
	default:
		return StatusUnknown
	}
}
