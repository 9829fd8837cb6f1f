package backend

import "strings"

// Section markers a dual-output model is instructed to emit.
const (
	literalMarker = "### Literal"
	poeticMarker  = "### Poetic"
)

// Sections is the two styles carried by one dual-output response.
type Sections struct {
	Literal string
	Poetic  string
}

// Split separates a raw dual-output response into its literal and poetic
// sections. When both markers are present the response is split at the
// poetic marker; the first marker is removed from the leading part and both
// sides are trimmed. When either marker is missing the whole trimmed
// response is returned for both sides, so malformed model output degrades
// instead of failing.
func Split(raw string) Sections {
	if strings.Contains(raw, literalMarker) && strings.Contains(raw, poeticMarker) {
		before, after, _ := strings.Cut(raw, poeticMarker)
		return Sections{
			Literal: strings.TrimSpace(strings.Replace(before, literalMarker, "", 1)),
			Poetic:  strings.TrimSpace(after),
		}
	}
	whole := strings.TrimSpace(raw)
	return Sections{Literal: whole, Poetic: whole}
}
