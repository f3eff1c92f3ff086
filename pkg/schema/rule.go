package schema

// Rule is a constraint key.
type Rule string

// Constraint rules.
const (
	RuleRequired      Rule = "required"
	RuleMinLength     Rule = "minlength"
	RuleMaxLength     Rule = "maxlength"
	RuleLength        Rule = "length"
	RuleMinCheck      Rule = "mincheck"
	RuleMaxCheck      Rule = "maxcheck"
	RuleCheck         Rule = "check"
	RuleMin           Rule = "min"
	RuleMax           Rule = "max"
	RuleEqualTo       Rule = "equalto"
	RuleType          Rule = "type"
	RulePrimaryKey    Rule = "pk"
	RuleForeignKey    Rule = "fk"
	RuleAutoincrement Rule = "ai"
	RuleCreatedAt     Rule = "ca"
	RuleUpdatedAt     Rule = "ua"
	RuleCreatedBy     Rule = "cb"
	RuleUpdatedBy     Rule = "ub"
	RuleFilter        Rule = "filter"
	RuleFormat        Rule = "format"
	RuleTrim          Rule = "trim"
	RuleFchars        Rule = "fchars"
	RuleFkcheck       Rule = "fkcheck"
	RuleLink          Rule = "link"
	RuleShow          Rule = "show"
	RuleHide          Rule = "hide"
	RuleDefault       Rule = "default"
)

// Rules lists every recognized constraint rule.
var Rules = []Rule{
	RuleRequired, RuleMinLength, RuleMaxLength, RuleLength, RuleMinCheck,
	RuleMaxCheck, RuleCheck, RuleMin, RuleMax, RuleEqualTo, RuleType,
	RulePrimaryKey, RuleForeignKey, RuleAutoincrement, RuleCreatedAt,
	RuleUpdatedAt, RuleCreatedBy, RuleUpdatedBy, RuleFilter, RuleFormat,
	RuleTrim, RuleFchars, RuleFkcheck, RuleLink, RuleShow, RuleHide, RuleDefault,
}

// IsValid reports whether r is a recognized rule. Rule keys are case sensitive.
func (r Rule) IsValid() bool {
	_, ok := ruleValidators[r]
	return ok
}

// rangeRules maps range shorthand rules to the scalar pair they expand into.
var rangeRules = map[Rule][2]Rule{
	RuleLength: {RuleMinLength, RuleMaxLength},
	RuleCheck:  {RuleMinCheck, RuleMaxCheck},
}

// sizingRules are the rules that constrain a value's size.
var sizingRules = []Rule{
	RuleMin, RuleMax, RuleMinLength, RuleMaxLength, RuleMinCheck, RuleMaxCheck,
	RuleLength, RuleCheck,
}

// orderedPairs are min/max rules where the max must not be below the min.
var orderedPairs = [][2]Rule{
	{RuleMin, RuleMax},
	{RuleMinLength, RuleMaxLength},
	{RuleMinCheck, RuleMaxCheck},
}
