package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	intRe          = regexp.MustCompile(`^[+-]?\d+$`)
	numericRe      = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)
	floatDefaultRe = regexp.MustCompile(`^\d\.\d+`)
)

// Parse converts raw constraint input into canonical constraints. It never
// fails: input it cannot interpret yields an empty mapping and malformed
// values are kept as given so validation can report them.
//
// Accepted input:
//   - nil or "" for no constraints
//   - a pipe delimited string such as "required|minlength:3|fk:users,name"
//   - a flow style string such as "{required: true, min: 8}" or "[required]"
//   - a Collection, map[string]any, []any or []string
//   - Constraints, returned as a copy
func Parse(raw any) Constraints {
	switch v := raw.(type) {
	case nil:
		return Constraints{}
	case Constraints:
		return v.clone()
	case string:
		return canonicalize(collectionFromString(v))
	case Collection:
		return canonicalize(v)
	case map[string]any:
		return canonicalize(CollectionFromMap(v))
	case []any:
		return canonicalize(collectionFromSlice(v))
	case []string:
		c := make(Collection, 0, len(v))
		for _, s := range v {
			c = append(c, Entry{Value: s})
		}
		return canonicalize(c)
	}
	return Constraints{}
}

func collectionFromString(s string) Collection {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if s[0] == '{' || s[0] == '[' {
		var c Collection
		if err := yaml.Unmarshal([]byte(s), &c); err == nil {
			return c
		}
	}
	return parsePipeString(s)
}

// parsePipeString splits "rule|rule:options|..." into entries. A rule without
// options is a true flag; options holding a comma become a min/max pair
// except for rules whose options are lists themselves.
func parsePipeString(s string) Collection {
	tokens := strings.Split(s, "|")
	c := make(Collection, 0, len(tokens))
	for _, tok := range tokens {
		name, options, found := strings.Cut(tok, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !found {
			c = append(c, Entry{Key: name, Value: true})
			continue
		}
		options = strings.TrimSpace(options)
		var value any = options
		switch {
		case strings.Contains(options, ",") && !listRule(Rule(name)):
			parts := strings.Split(options, ",")
			value = Collection{{Key: "min", Value: parts[0]}, {Key: "max", Value: parts[1]}}
		case strings.EqualFold(options, "true"):
			value = true
		case strings.EqualFold(options, "false"):
			value = false
		}
		c = append(c, Entry{Key: name, Value: value})
	}
	return c
}

func listRule(r Rule) bool {
	return r == RuleForeignKey || r == RuleShow || r == RuleHide
}

func collectionFromSlice(items []any) Collection {
	c := make(Collection, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case Collection:
			c = append(c, v...)
		case map[string]any:
			c = append(c, CollectionFromMap(v)...)
		default:
			c = append(c, Entry{Value: v})
		}
	}
	return c
}

func canonicalize(c Collection) Constraints {
	var out Constraints
	for _, e := range c {
		if e.Key == "" {
			out.set(Rule(positionalName(e.Value)), BoolValue(true))
			continue
		}
		r := Rule(e.Key)
		switch {
		case r == RuleLength || r == RuleCheck:
			rng, ok := toRange(e.Value)
			if !ok {
				out.set(r, scalarValue(e.Value))
				continue
			}
			if rng.Min != nil && rng.Max != nil {
				pair := rangeRules[r]
				out.set(pair[0], IntValue(*rng.Min))
				out.set(pair[1], IntValue(*rng.Max))
				continue
			}
			out.set(r, RangeValue(rng))
		case r == RuleForeignKey:
			out.set(r, foreignKeyValue(e.Value))
		case r == RuleShow || r == RuleHide:
			if s, ok := e.Value.(string); ok {
				out.set(r, ActionsValue(splitActions(s)))
				continue
			}
			out.set(r, scalarValue(e.Value))
		case r == RuleDefault:
			if e.Value == nil {
				continue
			}
			out.set(r, defaultValue(e.Value))
		default:
			out.set(r, scalarValue(e.Value))
		}
	}
	return out
}

func positionalName(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// scalarValue casts v to its canonical form: numeric strings and floats
// become ints with the fraction dropped, "true" and "false" become bools.
func scalarValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case bool:
		return BoolValue(t)
	case string:
		return stringScalar(t)
	case float64:
		return floatScalar(t)
	case float32:
		return floatScalar(float64(t))
	case Value:
		return t
	}
	if i, ok := toInt(v); ok {
		return IntValue(i)
	}
	return otherValue(v)
}

func stringScalar(s string) Value {
	trimmed := strings.TrimSpace(s)
	switch {
	case intRe.MatchString(trimmed):
		if i, err := strconv.Atoi(trimmed); err == nil {
			return IntValue(i)
		}
	case strings.EqualFold(trimmed, "true"):
		return BoolValue(true)
	case strings.EqualFold(trimmed, "false"):
		return BoolValue(false)
	case numericRe.MatchString(trimmed):
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return floatScalar(f)
		}
	}
	return StringValue(s)
}

func floatScalar(f float64) Value {
	if i, ok := truncInt(f); ok {
		return IntValue(i)
	}
	return FloatValue(f)
}

// truncInt drops the fraction of f. ok is false when f does not fit an int
// exactly (NaN, infinities, magnitudes past 2^53).
func truncInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.Abs(f) >= 1<<53 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// defaultValue keeps the default as given, except strings that start like a
// decimal number ("1.5") which become floats. The pipe form "default:" yields
// the empty string; a null default is dropped before this point.
func defaultValue(v any) Value {
	switch t := v.(type) {
	case string:
		if m := floatDefaultRe.FindString(t); m != "" {
			if f, err := strconv.ParseFloat(m, 64); err == nil {
				return FloatValue(f)
			}
		}
		return StringValue(t)
	case float64:
		return FloatValue(t)
	case float32:
		return FloatValue(float64(t))
	case bool, Value:
		return scalarValue(t)
	}
	if i, ok := toInt(v); ok {
		return IntValue(i)
	}
	return otherValue(v)
}

// toRange reads a {min, max} pair from a Collection or map. ok is false when v
// is not a mapping at all.
func toRange(v any) (Range, bool) {
	var c Collection
	switch t := v.(type) {
	case Collection:
		c = t
	case map[string]any:
		c = CollectionFromMap(t)
	case Range:
		return t, true
	default:
		return Range{}, false
	}
	var rng Range
	if raw, ok := c.Get("min"); ok {
		rng.Min = intPtr(raw)
	}
	if raw, ok := c.Get("max"); ok {
		rng.Max = intPtr(raw)
	}
	return rng, true
}

func intPtr(v any) *int {
	switch t := v.(type) {
	case string:
		t = strings.TrimSpace(t)
		if intRe.MatchString(t) {
			i, err := strconv.Atoi(t)
			if err != nil {
				return nil
			}
			return &i
		}
		if !numericRe.MatchString(t) {
			return nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil
		}
		return intPtr(f)
	case float64:
		i, ok := truncInt(t)
		if !ok {
			return nil
		}
		return &i
	}
	if i, ok := toInt(v); ok {
		return &i
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int(t), true
	}
	return 0, false
}

// foreignKeyValue parses "table[,name[,id]]" or a {table, name, id} mapping.
// Name defaults to "name" and id to "id". Input with more than three segments
// is kept as a string for validation to reject.
func foreignKeyValue(v any) Value {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return StringValue(t)
		}
		parts := strings.Split(t, ",")
		if len(parts) > 3 {
			return StringValue(t)
		}
		fk := ForeignKey{Name: "name", ID: "id"}
		fk.Table = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			fk.Name = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			fk.ID = strings.TrimSpace(parts[2])
		}
		return ForeignKeyValue(fk)
	case Collection:
		return foreignKeyFromCollection(t)
	case map[string]any:
		return foreignKeyFromCollection(CollectionFromMap(t))
	case ForeignKey:
		return ForeignKeyValue(t)
	}
	return scalarValue(v)
}

func foreignKeyFromCollection(c Collection) Value {
	fk := ForeignKey{Name: "name", ID: "id"}
	for _, e := range c {
		s, ok := e.Value.(string)
		if !ok {
			return otherValue(c)
		}
		switch e.Key {
		case "table":
			fk.Table = s
		case "name":
			fk.Name = s
		case "id":
			fk.ID = s
		default:
			return otherValue(c)
		}
	}
	return ForeignKeyValue(fk)
}

func splitActions(s string) []Action {
	if strings.TrimSpace(s) == "" {
		return []Action{}
	}
	parts := strings.Split(s, ",")
	out := make([]Action, 0, len(parts))
	for _, p := range parts {
		out = append(out, Action(strings.TrimSpace(p)))
	}
	return out
}
