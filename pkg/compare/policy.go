package compare

import "strings"

// Policy selects how rows and values are matched
type Policy struct {
	// Order requires rows to match positionally
	Order bool `yaml:"order" json:"order"`
	// Strict requires exact structural equality; relax allows numeric/string
	// coercion and expected properties to be a subset of actual ones
	Strict bool `yaml:"strict" json:"strict"`
	// Included accepts extra actual rows
	Included bool `yaml:"included" json:"included"`
}

// DefaultPolicy is strict, unordered and exact
func DefaultPolicy() Policy {
	return Policy{Strict: true}
}

// String renders the policy as e.g. "unordered,strict" or "ordered,relax,included"
func (p Policy) String() string {
	parts := make([]string, 0, 3)
	if p.Order {
		parts = append(parts, "ordered")
	} else {
		parts = append(parts, "unordered")
	}
	if p.Strict {
		parts = append(parts, "strict")
	} else {
		parts = append(parts, "relax")
	}
	if p.Included {
		parts = append(parts, "included")
	}
	return strings.Join(parts, ",")
}
