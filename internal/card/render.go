package card

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/luizzsec/infogram/internal/profile"
)

const valuePlaceholder = "N/A"

// Options carries the process-wide, read-only rendering configuration.
type Options struct {
	Language     string
	TimezoneName string
	// Layout overrides the rendered field list; nil means DefaultLayout.
	Layout []FieldKey
}

// Render produces a card for one record. It is deterministic given its
// three inputs: identical record, options, and timestamp yield an identical
// card with an invariant field order.
func Render(rec profile.Record, opts Options, now time.Time) Card {
	layout := opts.Layout
	if len(layout) == 0 {
		layout = DefaultLayout
	}

	fields := make([]Field, 0, len(layout))
	for _, key := range layout {
		fields = append(fields, Field{Label: fieldLabel(key), Value: fieldValue(key, rec, opts, now)})
	}

	return Card{Fields: fields, GeneratedAt: now, Timezone: opts.TimezoneName}
}

func fieldLabel(key FieldKey) string {
	switch key {
	case FieldID:
		return "ID"
	case FieldName:
		return "Name"
	case FieldDC:
		return "DC"
	case FieldUsername:
		return "Username"
	case FieldPremium:
		return "Premium"
	case FieldScam:
		return "Scam Label"
	case FieldFake:
		return "Fake Label"
	case FieldPaidMessage:
		return "Paid Message"
	case FieldPhotos:
		return "Photos"
	case FieldStatus:
		return "Status"
	case FieldRegistered:
		return "Registered On"
	case FieldAccountAge:
		return "Account Age"
	case FieldLanguage:
		return "Language"
	case FieldDate:
		return "Date"
	default:
		return string(key)
	}
}

func fieldValue(key FieldKey, rec profile.Record, opts Options, now time.Time) string {
	switch key {
	case FieldID:
		return "`" + strconv.FormatInt(rec.ID, 10) + "`"
	case FieldName:
		return escapeMarkdown(rec.DisplayName)
	case FieldDC:
		if rec.HasPhoto {
			return strconv.Itoa(rec.DCID)
		}
		return valuePlaceholder
	case FieldUsername:
		if rec.Username == "" {
			return "Not set"
		}
		return "@" + escapeMarkdown(rec.Username)
	case FieldPremium:
		return yesNo(rec.Premium)
	case FieldScam:
		return yesNo(rec.Scam)
	case FieldFake:
		return yesNo(rec.Fake)
	case FieldPaidMessage:
		return yesNo(rec.PaidMessages)
	case FieldPhotos:
		if rec.HasPhoto {
			return "Set"
		}
		return "No"
	case FieldStatus:
		return rec.Status.String()
	case FieldRegistered:
		return orPlaceholder(rec.RegisteredOn)
	case FieldAccountAge:
		return orPlaceholder(rec.AccountAge)
	case FieldLanguage:
		return opts.Language
	case FieldDate:
		return fmt.Sprintf("%s (%s)", now.Format("2006-01-02 15:04"), opts.TimezoneName)
	default:
		return valuePlaceholder
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return valuePlaceholder
	}
	return s
}

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// escapeMarkdown neutralizes user-controlled text so it cannot break the
// card's own Markdown emphasis and code spans.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
