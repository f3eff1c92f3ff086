package schema

// Attribute is one validated field of a schema. Attributes are immutable and
// only exist in a valid state.
type Attribute struct {
	name        string
	dataType    DataType
	uiType      UIType
	constraints Constraints
}

// NewAttribute parses constraints and builds an attribute. constraints
// accepts every form Parse does. A failure is a *ValidationError matching
// ErrInvalidAttribute or ErrInvalidAttributeLogic.
func NewAttribute(name, dataType string, constraints any) (*Attribute, error) {
	props := map[string]any{
		PropertyName:     name,
		PropertyDataType: dataType,
	}
	if constraints != nil {
		props[PropertyConstraints] = constraints
	}
	return AttributeFromProperties(props)
}

// AttributeFromProperties builds an attribute from a property set holding
// name, dataType and optionally type and constraints.
func AttributeFromProperties(props map[string]any) (*Attribute, error) {
	p, err := checkProperties(props)
	if err != nil {
		return nil, err
	}
	a := &Attribute{
		name:        p.name,
		dataType:    p.dataType,
		uiType:      p.uiType,
		constraints: p.constraints,
	}
	if err := validateLogic(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate re-runs the structural and logic checks on a built attribute.
func Validate(a *Attribute) error {
	if _, err := checkProperties(a.Properties()); err != nil {
		return err
	}
	return validateLogic(a)
}

// Name returns the attribute name.
func (a *Attribute) Name() string { return a.name }

// DataType returns the storage data type.
func (a *Attribute) DataType() DataType { return a.dataType }

// TypeHint returns the presentation type of the data type.
func (a *Attribute) TypeHint() string { return a.dataType.TypeHint() }

// Type returns the UI type, taken from the type constraint when present and
// from the type property otherwise.
func (a *Attribute) Type() UIType {
	if t := a.constraints.stringRule(RuleType); t != "" {
		return UIType(t)
	}
	return a.uiType
}

// Constraints returns a copy of the canonical constraints.
func (a *Attribute) Constraints() Constraints { return a.constraints.clone() }

// IsRequired reports whether the required rule is set.
func (a *Attribute) IsRequired() bool { return a.constraints.boolRule(RuleRequired) }

// MinLength returns the minimum length and whether it is set.
func (a *Attribute) MinLength() (int, bool) { return a.constraints.intRule(RuleMinLength) }

// MaxLength returns the maximum length and whether it is set.
func (a *Attribute) MaxLength() (int, bool) { return a.constraints.intRule(RuleMaxLength) }

// MinCheck returns the minimum number of checked options and whether it is set.
func (a *Attribute) MinCheck() (int, bool) { return a.constraints.intRule(RuleMinCheck) }

// MaxCheck returns the maximum number of checked options and whether it is set.
func (a *Attribute) MaxCheck() (int, bool) { return a.constraints.intRule(RuleMaxCheck) }

// Min returns the minimum value and whether it is set.
func (a *Attribute) Min() (int, bool) { return a.constraints.intRule(RuleMin) }

// Max returns the maximum value and whether it is set.
func (a *Attribute) Max() (int, bool) { return a.constraints.intRule(RuleMax) }

// EqualTo returns the name of the attribute this one must match.
func (a *Attribute) EqualTo() string { return a.constraints.stringRule(RuleEqualTo) }

// IsPk reports whether the attribute is the primary key.
func (a *Attribute) IsPk() bool { return a.constraints.boolRule(RulePrimaryKey) }

// IsFk reports whether the attribute references another table.
func (a *Attribute) IsFk() bool { return a.constraints.Has(RuleForeignKey) }

// IsAi reports whether the attribute is autoincrement.
func (a *Attribute) IsAi() bool { return a.constraints.boolRule(RuleAutoincrement) }

// ForeignKey returns the parsed fk constraint.
func (a *Attribute) ForeignKey() (ForeignKey, bool) {
	v, ok := a.constraints.Get(RuleForeignKey)
	if !ok {
		return ForeignKey{}, false
	}
	return v.ForeignKey()
}

// FkTable returns the referenced table, or "" when the attribute is not a
// foreign key.
func (a *Attribute) FkTable() string {
	fk, _ := a.ForeignKey()
	return fk.Table
}

// FkName returns the referenced display column.
func (a *Attribute) FkName() string {
	fk, _ := a.ForeignKey()
	return fk.Name
}

// FkID returns the referenced key column.
func (a *Attribute) FkID() string {
	fk, _ := a.ForeignKey()
	return fk.ID
}

// IsCa reports whether the attribute holds the creation time.
func (a *Attribute) IsCa() bool { return a.constraints.boolRule(RuleCreatedAt) }

// IsUa reports whether the attribute holds the last update time.
func (a *Attribute) IsUa() bool { return a.constraints.boolRule(RuleUpdatedAt) }

// IsCb reports whether the attribute holds the creator.
func (a *Attribute) IsCb() bool { return a.constraints.boolRule(RuleCreatedBy) }

// IsUb reports whether the attribute holds the last updater.
func (a *Attribute) IsUb() bool { return a.constraints.boolRule(RuleUpdatedBy) }

// IsBlameAt reports whether the attribute records when a row was created or
// updated.
func (a *Attribute) IsBlameAt() bool { return a.IsCa() || a.IsUa() }

// IsBlameBy reports whether the attribute records who created or updated a
// row.
func (a *Attribute) IsBlameBy() bool { return a.IsCb() || a.IsUb() }

// IsBlame reports whether the attribute is an audit column.
func (a *Attribute) IsBlame() bool { return a.IsBlameAt() || a.IsBlameBy() }

// Filter returns the filter operator, or "" when none is set.
func (a *Attribute) Filter() string { return a.constraints.stringRule(RuleFilter) }

// Format returns the display format, or "" when none is set.
func (a *Attribute) Format() string { return a.constraints.stringRule(RuleFormat) }

// IsFormat reports whether the display format is format.
func (a *Attribute) IsFormat(format string) bool { return a.Format() == format }

// Trim reports whether input is trimmed.
func (a *Attribute) Trim() bool { return a.constraints.boolRule(RuleTrim) }

// Fchars returns the number of characters typed before foreign key lookups
// start.
func (a *Attribute) Fchars() (int, bool) { return a.constraints.intRule(RuleFchars) }

// Fkcheck reports whether the referenced row is checked to exist.
func (a *Attribute) Fkcheck() bool { return a.constraints.boolRule(RuleFkcheck) }

// Link reports whether the value is rendered as a link to its record.
func (a *Attribute) Link() bool { return a.constraints.boolRule(RuleLink) }

// Show returns the actions the attribute is shown in. Without a show
// constraint it is every action, or read only for blame columns; hiding all
// or read removes the matching default.
func (a *Attribute) Show() []Action {
	if actions, ok := a.actionRule(RuleShow); ok {
		return actions
	}
	def := ActionAll
	if a.IsBlame() {
		def = ActionRead
	}
	hide, _ := a.actionRule(RuleHide)
	if containsAction(hide, def) {
		return []Action{}
	}
	return []Action{def}
}

// Hide returns the actions the attribute is hidden in. Blame columns are
// hidden in index, create, update and delete by default.
func (a *Attribute) Hide() []Action {
	if actions, ok := a.actionRule(RuleHide); ok {
		return actions
	}
	if a.IsBlame() {
		return []Action{ActionIndex, ActionCreate, ActionUpdate, ActionDelete}
	}
	return []Action{}
}

// UsedIn reports whether the attribute takes part in action. An attribute
// shown in all actions takes part in every action it does not hide.
func (a *Attribute) UsedIn(action Action) bool {
	show := a.Show()
	if containsAction(show, action) {
		return true
	}
	return containsAction(show, ActionAll) && !containsAction(a.Hide(), action)
}

func (a *Attribute) actionRule(r Rule) ([]Action, bool) {
	v, ok := a.constraints.Get(r)
	if !ok {
		return nil, false
	}
	return v.Actions()
}

// Default returns the declared default value. An empty declaration yields an
// empty string value; a null default is no default.
func (a *Attribute) Default() (Value, bool) {
	return a.constraints.Get(RuleDefault)
}

// Properties returns the attribute as a property set that
// AttributeFromProperties accepts.
func (a *Attribute) Properties() map[string]any {
	props := map[string]any{
		PropertyName:        a.name,
		PropertyDataType:    string(a.dataType),
		PropertyConstraints: a.constraints.clone(),
	}
	if a.uiType != "" {
		props[PropertyType] = string(a.uiType)
	}
	return props
}
