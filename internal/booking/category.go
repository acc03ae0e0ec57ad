package booking

// Category is the fare class of a traveler, derived from age. Values are the
// passenger types the remote API expects in "tipo".
type Category string

const (
	CategoryInfant Category = "infante"
	CategoryChild  Category = "niño"
	CategoryAdult  Category = "adulto"
)

const (
	MinAge = 0
	MaxAge = 120
)

// Classify maps an age to its category: 0-1 infant, 2-11 child, anything else adult.
func Classify(age int) Category {
	switch {
	case age >= 0 && age <= 1:
		return CategoryInfant
	case age >= 2 && age <= 11:
		return CategoryChild
	default:
		return CategoryAdult
	}
}

// Label is the read-only text shown next to the age field.
func (c Category) Label() string {
	switch c {
	case CategoryInfant:
		return "Infante (0-1 años)"
	case CategoryChild:
		return "Niño (2-11 años)"
	case CategoryAdult:
		return "Adulto (12+ años)"
	default:
		return string(c)
	}
}

func (c Category) Valid() bool {
	return c == CategoryInfant || c == CategoryChild || c == CategoryAdult
}
