package schema

import (
	"bytes"
	"encoding/json"
)

// Constraints is the canonical rule to value mapping of an attribute. Rules
// are unique and keep the position they were first declared at. The zero
// value is an empty mapping.
type Constraints struct {
	rules  []Rule
	values map[Rule]Value
}

// Len returns the number of rules.
func (c Constraints) Len() int { return len(c.rules) }

// IsEmpty reports whether no rule is set.
func (c Constraints) IsEmpty() bool { return len(c.rules) == 0 }

// Get returns the value for rule r.
func (c Constraints) Get(r Rule) (Value, bool) {
	v, ok := c.values[r]
	return v, ok
}

// Has reports whether rule r is set.
func (c Constraints) Has(r Rule) bool {
	_, ok := c.values[r]
	return ok
}

// Rules returns the rules in declaration order.
func (c Constraints) Rules() []Rule {
	return append([]Rule{}, c.rules...)
}

// Map returns the constraints as plain Go values keyed by rule name.
func (c Constraints) Map() map[string]any {
	m := make(map[string]any, len(c.rules))
	for _, r := range c.rules {
		m[string(r)] = c.values[r].Raw()
	}
	return m
}

// MarshalJSON encodes the constraints as an object in declaration order.
func (c Constraints) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range c.rules {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(r))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.values[r])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// set stores v under r. A rule that is already present keeps its position.
func (c *Constraints) set(r Rule, v Value) {
	if c.values == nil {
		c.values = make(map[Rule]Value)
	}
	if _, ok := c.values[r]; !ok {
		c.rules = append(c.rules, r)
	}
	c.values[r] = v
}

func (c Constraints) clone() Constraints {
	out := Constraints{}
	for _, r := range c.rules {
		out.set(r, c.values[r])
	}
	return out
}

// boolRule reports whether r holds the boolean true.
func (c Constraints) boolRule(r Rule) bool {
	v, ok := c.values[r]
	return ok && v.IsTrue()
}

// intRule returns the integer held by r.
func (c Constraints) intRule(r Rule) (int, bool) {
	v, ok := c.values[r]
	if !ok {
		return 0, false
	}
	return v.Int()
}

// stringRule returns the string held by r, or "" when absent.
func (c Constraints) stringRule(r Rule) string {
	v, ok := c.values[r]
	if !ok {
		return ""
	}
	s, _ := v.Str()
	return s
}
