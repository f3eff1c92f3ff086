package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Attribute name limits. Names start with a letter, hold letters, digits or
// underscores and do not end with an underscore.
const (
	AttributeNameMinLength = 1
	AttributeNameMaxLength = 64
	AttributeNamePattern   = `^[A-Za-z]([A-Za-z0-9_]*[A-Za-z0-9])?$`
)

var (
	attributeNameRe = regexp.MustCompile(AttributeNamePattern)
	fkSegmentRe     = regexp.MustCompile(`^\w+$`)
)

// ruleValidator checks the shape of a single rule value. It returns the reason
// the value is rejected, or "" when it is accepted.
type ruleValidator func(v Value) string

// ruleValidators is the closed rule vocabulary. A rule missing here is not a
// valid rule.
var ruleValidators = map[Rule]ruleValidator{
	RuleRequired:      checkBool,
	RuleMinLength:     checkMin,
	RuleMaxLength:     checkMax,
	RuleLength:        checkRange,
	RuleMinCheck:      checkMin,
	RuleMaxCheck:      checkMax,
	RuleCheck:         checkRange,
	RuleMin:           checkMin,
	RuleMax:           checkMax,
	RuleEqualTo:       checkEqualTo,
	RuleType:          checkUIType,
	RulePrimaryKey:    checkBool,
	RuleForeignKey:    checkForeignKey,
	RuleAutoincrement: checkBool,
	RuleCreatedAt:     checkBool,
	RuleUpdatedAt:     checkBool,
	RuleCreatedBy:     checkBool,
	RuleUpdatedBy:     checkBool,
	RuleFilter:        checkFilter,
	RuleFormat:        checkFormat,
	RuleTrim:          checkBool,
	RuleFchars:        checkMin,
	RuleFkcheck:       checkBool,
	RuleLink:          checkBool,
	RuleShow:          checkActions,
	RuleHide:          checkActions,
	RuleDefault:       func(Value) string { return "" },
}

func checkBool(v Value) string {
	if _, ok := v.Bool(); !ok {
		return "must be a boolean"
	}
	return ""
}

func checkMin(v Value) string {
	if i, ok := v.Int(); !ok || i < 0 {
		return "must be an integer greater than or equal to 0"
	}
	return ""
}

func checkMax(v Value) string {
	if i, ok := v.Int(); !ok || i <= 0 {
		return "must be an integer greater than 0"
	}
	return ""
}

func checkRange(v Value) string {
	rng, ok := v.Range()
	if !ok {
		return "must be a min,max pair"
	}
	switch {
	case rng.Min == nil:
		return "min must be an integer"
	case rng.Max == nil:
		return "max must be an integer"
	case *rng.Min < 0:
		return "min must be greater than or equal to 0"
	case *rng.Max <= 0:
		return "max must be greater than 0"
	case *rng.Max < *rng.Min:
		return "max must be greater than or equal to min"
	}
	return ""
}

func checkEqualTo(v Value) string {
	if s, ok := v.Str(); !ok || strings.TrimSpace(s) == "" {
		return "must be a non blank string"
	}
	return ""
}

func checkUIType(v Value) string {
	s, ok := v.Str()
	if !ok || !IsValidUIType(UIType(s)) {
		return "allowed values are: " + joinUITypes(UITypes)
	}
	return ""
}

func checkForeignKey(v Value) string {
	fk, ok := v.ForeignKey()
	if !ok {
		return "must be table[,name[,id]]"
	}
	for _, seg := range []string{fk.Table, fk.Name, fk.ID} {
		if !fkSegmentRe.MatchString(seg) {
			return "segments must be alphanumeric or underscore"
		}
	}
	return ""
}

func checkFilter(v Value) string {
	s, ok := v.Str()
	if !ok || !containsString(Operators, s) {
		return "allowed values are: " + strings.Join(Operators, ",")
	}
	return ""
}

func checkFormat(v Value) string {
	s, ok := v.Str()
	if !ok || !containsString(Formats, s) {
		return "allowed values are: " + strings.Join(Formats, ",")
	}
	return ""
}

// checkActions accepts action lists and bare flags. Flags are rejected later
// by the action logic check.
func checkActions(v Value) string {
	if _, ok := v.Bool(); ok {
		return ""
	}
	actions, ok := v.Actions()
	if !ok {
		return "must be a comma separated action list"
	}
	for _, a := range actions {
		if !a.IsValid() {
			return "allowed values are: " + joinActions(Actions)
		}
	}
	return ""
}

func joinUITypes(types []UIType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// attributeProperties is the structurally valid form of an attribute's
// property set.
type attributeProperties struct {
	name        string
	dataType    DataType
	uiType      UIType
	constraints Constraints
}

// ValidateProperties runs the structural checks on an attribute property set
// without building the attribute. Accepted keys are name, dataType, type and
// constraints; name and dataType are required. The first violation is
// returned as a *ValidationError matching ErrInvalidAttribute.
func ValidateProperties(props map[string]any) error {
	_, err := checkProperties(props)
	return err
}

func checkProperties(props map[string]any) (attributeProperties, error) {
	var out attributeProperties

	var unknown []string
	for key := range props {
		if !containsString(properties, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return out, &ValidationError{
			Kind:     ErrInvalidAttribute,
			Code:     CodeUnknownProperty,
			Property: unknown[0],
			Reason:   "unknown properties: " + strings.Join(unknown, ", "),
		}
	}

	var missing []string
	for _, key := range []string{PropertyName, PropertyDataType} {
		if _, ok := props[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return out, &ValidationError{
			Kind:     ErrInvalidAttribute,
			Code:     CodeMissingRequired,
			Property: missing[0],
			Reason:   "required properties are missing: " + strings.Join(missing, ", "),
		}
	}

	name, err := checkName(props[PropertyName])
	if err != nil {
		return out, err
	}
	out.name = name

	dt, ok := props[PropertyDataType].(string)
	if !ok || !IsValidDataType(DataType(dt)) {
		e := valueError(PropertyDataType, "", renderRaw(props[PropertyDataType]), "is not a valid data type")
		e.Attribute = name
		return out, e
	}
	out.dataType = DataType(dt)

	if raw, ok := props[PropertyType]; ok && raw != nil {
		t, ok := raw.(string)
		if !ok || !IsValidUIType(UIType(t)) {
			e := valueError(PropertyType, "", renderRaw(raw), "allowed values are: "+joinUITypes(UITypes))
			e.Attribute = name
			return out, e
		}
		out.uiType = UIType(t)
	}

	out.constraints = Parse(props[PropertyConstraints])
	if err := checkConstraints(out.constraints); err != nil {
		err.Attribute = name
		return out, err
	}
	return out, nil
}

func checkName(raw any) (string, error) {
	name, ok := raw.(string)
	if !ok {
		return "", valueError(PropertyName, "", renderRaw(raw), "must be a string")
	}
	if n := len(name); n < AttributeNameMinLength || n > AttributeNameMaxLength {
		return "", valueError(PropertyName, "", renderRaw(raw),
			fmt.Sprintf("length must be between %d and %d characters", AttributeNameMinLength, AttributeNameMaxLength))
	}
	if !attributeNameRe.MatchString(name) {
		return "", valueError(PropertyName, "", renderRaw(raw),
			"must start with a letter, hold only letters, digits or underscores and not end with an underscore")
	}
	return name, nil
}

// checkConstraints validates every rule value in declaration order, then the
// min/max ordering of the scalar pairs.
func checkConstraints(c Constraints) *ValidationError {
	for _, r := range c.rules {
		v := c.values[r]
		check, ok := ruleValidators[r]
		if !ok {
			return valueError(PropertyConstraints, r, v.String(), "is not a valid rule")
		}
		if reason := check(v); reason != "" {
			return valueError(PropertyConstraints, r, v.String(), reason)
		}
	}
	for _, pair := range orderedPairs {
		lo, okLo := c.intRule(pair[0])
		hi, okHi := c.intRule(pair[1])
		if okLo && okHi && hi < lo {
			return valueError(PropertyConstraints, pair[1], strconv.Itoa(hi),
				fmt.Sprintf("must be greater than or equal to %s (%d)", pair[0], lo))
		}
	}
	return nil
}

func renderRaw(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
