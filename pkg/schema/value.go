package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindRange
	KindForeignKey
	KindActions
	KindOther
)

var kindNames = [...]string{
	KindNull:       "null",
	KindBool:       "bool",
	KindInt:        "int",
	KindFloat:      "float",
	KindString:     "string",
	KindRange:      "range",
	KindForeignKey: "fk",
	KindActions:    "actions",
	KindOther:      "other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Range is an unexpanded min/max pair. A nil bound was missing or not an
// integer in the input.
type Range struct {
	Min *int
	Max *int
}

// ForeignKey is the target of an fk constraint.
type ForeignKey struct {
	Table string `json:"table"`
	Name  string `json:"name"`
	ID    string `json:"id"`
}

// Value is a canonical constraint value. The zero Value is KindNull.
type Value struct {
	kind    Kind
	b       bool
	i       int
	f       float64
	s       string
	rng     Range
	fk      ForeignKey
	actions []Action
	other   any
}

// BoolValue returns a KindBool value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue returns a KindInt value.
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a KindFloat value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue returns a KindString value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// RangeValue returns a KindRange value.
func RangeValue(r Range) Value { return Value{kind: KindRange, rng: r} }

// ForeignKeyValue returns a KindForeignKey value.
func ForeignKeyValue(fk ForeignKey) Value { return Value{kind: KindForeignKey, fk: fk} }

// ActionsValue returns a KindActions value holding a copy of actions.
func ActionsValue(actions []Action) Value {
	return Value{kind: KindActions, actions: append([]Action{}, actions...)}
}

func otherValue(v any) Value { return Value{kind: KindOther, other: v} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int returns the integer held by v.
func (v Value) Int() (int, bool) { return v.i, v.kind == KindInt }

// Float returns the float held by v.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the string held by v.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Range returns the range held by v.
func (v Value) Range() (Range, bool) { return v.rng, v.kind == KindRange }

// ForeignKey returns the foreign key held by v.
func (v Value) ForeignKey() (ForeignKey, bool) { return v.fk, v.kind == KindForeignKey }

// Actions returns a copy of the action list held by v.
func (v Value) Actions() ([]Action, bool) {
	if v.kind != KindActions {
		return nil, false
	}
	return append([]Action{}, v.actions...), true
}

// IsTrue reports whether v is the boolean true.
func (v Value) IsTrue() bool { return v.kind == KindBool && v.b }

// Raw returns v as a plain Go value: nil, bool, int, float64, string,
// map[string]any for ranges and foreign keys, or a comma joined string for
// action lists.
func (v Value) Raw() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindRange:
		m := map[string]any{"min": nil, "max": nil}
		if v.rng.Min != nil {
			m["min"] = *v.rng.Min
		}
		if v.rng.Max != nil {
			m["max"] = *v.rng.Max
		}
		return m
	case KindForeignKey:
		return map[string]any{"table": v.fk.Table, "name": v.fk.Name, "id": v.fk.ID}
	case KindActions:
		return joinActions(v.actions)
	case KindOther:
		return v.other
	}
	return nil
}

// String renders v for error messages.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(v.s)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindRange:
		return fmt.Sprintf("%s,%s", boundString(v.rng.Min), boundString(v.rng.Max))
	case KindForeignKey:
		return v.fk.Table + "," + v.fk.Name + "," + v.fk.ID
	case KindActions:
		return strconv.Quote(joinActions(v.actions))
	}
	return fmt.Sprint(v.Raw())
}

// MarshalJSON encodes the plain Go form of v.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}

func boundString(b *int) string {
	if b == nil {
		return "?"
	}
	return strconv.Itoa(*b)
}

func joinActions(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ",")
}
