package card

import "fmt"

// FieldKey identifies one card field in a layout.
type FieldKey string

const (
	FieldID          FieldKey = "id"
	FieldName        FieldKey = "name"
	FieldDC          FieldKey = "dc"
	FieldUsername    FieldKey = "username"
	FieldPremium     FieldKey = "premium"
	FieldScam        FieldKey = "scam"
	FieldFake        FieldKey = "fake"
	FieldPaidMessage FieldKey = "paid_message"
	FieldPhotos      FieldKey = "photos"
	FieldStatus      FieldKey = "status"
	FieldRegistered  FieldKey = "registered_on"
	FieldAccountAge  FieldKey = "account_age"
	FieldLanguage    FieldKey = "language"
	FieldDate        FieldKey = "date"
)

// DefaultLayout is the superset of fields across all bot revisions, in the
// fixed order consumers of the card depend on.
var DefaultLayout = []FieldKey{
	FieldID,
	FieldName,
	FieldDC,
	FieldUsername,
	FieldPremium,
	FieldScam,
	FieldFake,
	FieldPaidMessage,
	FieldPhotos,
	FieldStatus,
	FieldRegistered,
	FieldAccountAge,
	FieldLanguage,
	FieldDate,
}

var knownFields = func() map[FieldKey]struct{} {
	m := make(map[FieldKey]struct{}, len(DefaultLayout))
	for _, k := range DefaultLayout {
		m[k] = struct{}{}
	}
	return m
}()

// ParseLayout validates a configured field list. An empty list means the
// default layout; unknown keys are rejected.
func ParseLayout(keys []string) ([]FieldKey, error) {
	if len(keys) == 0 {
		return DefaultLayout, nil
	}
	layout := make([]FieldKey, 0, len(keys))
	for _, key := range keys {
		fk := FieldKey(key)
		if _, ok := knownFields[fk]; !ok {
			return nil, fmt.Errorf("unknown card field %q", key)
		}
		layout = append(layout, fk)
	}
	return layout, nil
}
