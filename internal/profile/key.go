package profile

// KeyKind says which identifier form a lookup key carries.
type KeyKind int

const (
	KindHandle KeyKind = iota
	KindNumericID
	KindForwardedSender
)

// Key is a typed lookup identifier. Exactly one of Handle or UserID is
// meaningful, selected by Kind.
type Key struct {
	Kind   KeyKind
	Handle string
	UserID int64
}

func HandleKey(handle string) Key {
	return Key{Kind: KindHandle, Handle: handle}
}

func NumericKey(id int64) Key {
	return Key{Kind: KindNumericID, UserID: id}
}

func ForwardedSenderKey(id int64) Key {
	return Key{Kind: KindForwardedSender, UserID: id}
}
