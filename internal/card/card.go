package card

import (
	"fmt"
	"strings"
	"time"
)

// Field is one rendered card line.
type Field struct {
	Label string
	Value string
}

// Card is an ordered list of labeled profile fields, immutable once
// produced. One card corresponds to one rendered reply.
type Card struct {
	Fields      []Field
	GeneratedAt time.Time
	Timezone    string
}

// Text renders the card as "- Label: Value" lines, one per field.
func (c Card) Text() string {
	lines := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		lines = append(lines, fmt.Sprintf("- %s: %s", f.Label, f.Value))
	}
	return strings.Join(lines, "\n")
}
