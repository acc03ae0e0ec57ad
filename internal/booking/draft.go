package booking

import (
	"strconv"
	"strings"
)

// PassengerDraft is one passenger row of an open booking form. AgeYears is the raw
// text as typed. Category is derived from AgeYears and only changes through SetAge.
type PassengerDraft struct {
	Name       string   `json:"nombre"`
	IDDocument string   `json:"cedula"`
	AgeYears   string   `json:"edad"`
	Category   Category `json:"tipo"`
}

// NewDraft returns an empty row; an empty age defaults to adult.
func NewDraft() PassengerDraft {
	return PassengerDraft{Category: CategoryAdult}
}

// SetAge stores the raw age text and recomputes the category from it.
// The parse is strict: text that is not a whole integer ("5.5", "25 años")
// falls back to adult and is later rejected as out of range.
func (d *PassengerDraft) SetAge(raw string) {
	d.AgeYears = raw
	if age, ok := parseAge(raw); ok {
		d.Category = Classify(age)
		return
	}
	d.Category = CategoryAdult
}

// Resize returns a list of exactly n drafts, keeping existing rows by index and
// padding with empty ones.
func Resize(drafts []PassengerDraft, n int) []PassengerDraft {
	if n < 0 {
		n = 0
	}
	out := make([]PassengerDraft, n)
	for i := range out {
		if i < len(drafts) {
			out[i] = drafts[i]
			continue
		}
		out[i] = NewDraft()
	}
	return out
}

func parseAge(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}
