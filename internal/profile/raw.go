package profile

import "github.com/gotd/td/tg"

// Raw is the untouched lookup response. The directory returns either a full
// profile wrapper (users.getFullUser) or a bare user (contacts resolution);
// exactly one of the two fields is non-nil.
type Raw struct {
	Full *tg.UsersUserFull
	User *tg.User
}

func RawFull(full *tg.UsersUserFull) Raw {
	return Raw{Full: full}
}

func RawUser(user *tg.User) Raw {
	return Raw{User: user}
}

// account unwraps to the single target user, or nil when the response
// carries none.
func (r Raw) account() *tg.User {
	if r.User != nil {
		return r.User
	}
	if r.Full == nil {
		return nil
	}
	for _, uc := range r.Full.Users {
		if u, ok := uc.(*tg.User); ok && u.ID == r.Full.FullUser.ID {
			return u
		}
	}
	for _, uc := range r.Full.Users {
		if u, ok := uc.(*tg.User); ok {
			return u
		}
	}
	return nil
}
