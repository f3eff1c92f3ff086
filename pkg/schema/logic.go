package schema

// logicCheck enforces one cross-field invariant on a structurally valid
// attribute.
type logicCheck func(a *Attribute) *ValidationError

// logicChecks run in this order; the first violation stops the chain.
var logicChecks = []logicCheck{
	checkPrimaryKeyLogic,
	checkAutoincrementLogic,
	checkTypeLogic,
	checkFormatLogic,
	checkFcharsLogic,
	checkFkcheckLogic,
	checkActionLogic,
	checkDefaultLogic,
}

// validateLogic runs the logic chain. Attributes without constraints have
// nothing to cross-check.
func validateLogic(a *Attribute) error {
	if a.constraints.IsEmpty() {
		return nil
	}
	for _, check := range logicChecks {
		if err := check(a); err != nil {
			return err
		}
	}
	return nil
}

func (a *Attribute) hasSizing() bool {
	for _, r := range sizingRules {
		if a.constraints.Has(r) {
			return true
		}
	}
	return false
}

func (a *Attribute) hasSize() bool {
	return a.constraints.Has(RuleMin) || a.constraints.Has(RuleMax)
}

func (a *Attribute) hasLength() bool {
	return a.constraints.Has(RuleMinLength) || a.constraints.Has(RuleMaxLength)
}

func checkPrimaryKeyLogic(a *Attribute) *ValidationError {
	if !a.IsPk() {
		return nil
	}
	switch {
	case !a.IsRequired():
		return logicError(a.name, "Primary Key must be required.")
	case a.IsFk():
		return logicError(a.name, "Primary Key cannot be Foreign Key too.")
	case a.dataType.IsInteger() && !a.IsAi():
		return logicError(a.name, "Primary Key numeric not autoincrement.")
	case a.IsAi() && a.hasSizing():
		return logicError(a.name, "Primary Key autoincrement cannot has sizing.")
	}
	return nil
}

func checkAutoincrementLogic(a *Attribute) *ValidationError {
	if !a.IsAi() {
		return nil
	}
	switch {
	case !a.IsPk():
		return logicError(a.name, "Autoincrement must be Primary Key too.")
	case !a.dataType.IsInteger():
		return logicError(a.name, "Autoincrement must be numeric.")
	case a.IsFk():
		return logicError(a.name, "Autoincrement cannot be Foreign Key too.")
	}
	return nil
}

func checkTypeLogic(a *Attribute) *ValidationError {
	dt := a.dataType
	switch {
	case a.IsBlameAt() && !dt.IsDate():
		return logicError(a.name, "Blame At property must be date datatype.")
	case a.IsCa() && a.IsUa():
		return logicError(a.name, "Created and Updated At in same property is not valid.")
	case a.IsBlameBy() && !dt.IsInteger():
		return logicError(a.name, "Blame By property must be integer datatype.")
	case a.IsCb() && a.IsUb():
		return logicError(a.name, "Created and Updated By in same property is not valid.")
	case dt.IsNumeric() && a.hasLength():
		return logicError(a.name, "Numeric properties use: min, max.")
	case dt.IsString() && a.hasSize():
		return logicError(a.name, "String properties use: minlength, maxlength.")
	case (dt.IsDate() || dt.IsBinary()) && a.hasSizing():
		return logicError(a.name, "Date, bool, blob properties not use min, max, etc")
	}
	return nil
}

func checkFormatLogic(a *Attribute) *ValidationError {
	format := a.Format()
	if format == "" {
		return nil
	}
	dt := a.dataType
	switch {
	case dt.IsString():
		return logicError(a.name, "String properties not allow format")
	case dt.IsText():
		return logicError(a.name, "Text properties not allow format")
	case dt.IsObject():
		return logicError(a.name, "Object properties not allow format")
	case dt.IsBinary():
		return logicError(a.name, "Binary (binary, bool, blob) properties not allow format")
	case dt.IsArray():
		return logicError(a.name, "Array (array, simple_array, json) properties not allow format")
	case dt.IsNumeric() && format != FormatMoney:
		return logicError(a.name, "Numeric properties not allow format: %s", format)
	case dt.IsDate() && format == FormatMoney:
		return logicError(a.name, "Date property not allow format: %s", format)
	}
	return nil
}

func checkFcharsLogic(a *Attribute) *ValidationError {
	if a.constraints.Has(RuleFchars) && !a.IsFk() {
		return logicError(a.name, "Only property with Foreign Key allow fchars option")
	}
	return nil
}

func checkFkcheckLogic(a *Attribute) *ValidationError {
	if a.Fkcheck() && !a.IsFk() {
		return logicError(a.name, "Only property with Foreign Key allow fkcheck option")
	}
	return nil
}

func checkActionLogic(a *Attribute) *ValidationError {
	for _, r := range []Rule{RuleShow, RuleHide} {
		if v, ok := a.constraints.Get(r); ok && v.Kind() == KindBool {
			return logicError(a.name, "%s constraint miss-configuration: an action list is required", ruleTitle(r))
		}
	}
	show, hide := a.Show(), a.Hide()
	if containsAction(show, ActionAll) && len(show) > 1 {
		return logicError(a.name, "Show constraint miss-configuration: ALL (a) option is exclusive")
	}
	if containsAction(hide, ActionAll) && len(hide) > 1 {
		return logicError(a.name, "Hide constraint miss-configuration: ALL (a) option is exclusive")
	}
	for _, action := range Actions {
		if containsAction(show, action) && containsAction(hide, action) {
			return logicError(a.name, "Show/Hide constraint miss-configuration: (%s) option is present in both", action)
		}
	}
	return nil
}

func checkDefaultLogic(a *Attribute) *ValidationError {
	def, ok := a.Default()
	if !ok {
		return nil
	}
	dt := a.dataType
	switch {
	case dt.IsString() && def.Kind() == KindBool:
		return logicError(a.name, "String properties not allow default: NOW or boolean, used string or int values")
	case dt.IsText():
		return logicError(a.name, "Text properties not allow default")
	case dt.IsObject():
		return logicError(a.name, "Object properties not allow default")
	case dt.IsBinary():
		return logicError(a.name, "Binary (bool, blob) properties not allow default")
	case dt.IsArray():
		return logicError(a.name, "Array (array, simple_array, json) properties not allow default")
	case dt.IsNumeric() && !isNumericValue(def):
		return logicError(a.name, "Numeric properties not allow default: %s, use numeric values", plain(def))
	case dt.IsDate() && plain(def) != DefaultNow:
		return logicError(a.name, "Date property not allow default: %s, use null or \"NOW\" string", plain(def))
	}
	return nil
}

// DefaultNow is the only default accepted by date attributes.
const DefaultNow = "NOW"

func isNumericValue(v Value) bool {
	switch v.Kind() {
	case KindInt, KindFloat:
		return true
	case KindString:
		s, _ := v.Str()
		return numericRe.MatchString(s)
	}
	return false
}

// plain renders v without quoting.
func plain(v Value) string {
	if s, ok := v.Str(); ok {
		return s
	}
	return v.String()
}

func ruleTitle(r Rule) string {
	if r == RuleShow {
		return "Show"
	}
	return "Hide"
}

func containsAction(list []Action, a Action) bool {
	for _, v := range list {
		if v == a {
			return true
		}
	}
	return false
}
