package schema

// DataType is the storage type declared for an attribute.
type DataType string

// Storage data types.
const (
	DataTypeSmallint            DataType = "smallint"
	DataTypeInteger             DataType = "integer"
	DataTypeBigint              DataType = "bigint"
	DataTypeDecimal             DataType = "decimal"
	DataTypeFloat               DataType = "float"
	DataTypeDouble              DataType = "double"
	DataTypeString              DataType = "string"
	DataTypeText                DataType = "text"
	DataTypeGUID                DataType = "guid"
	DataTypeBinary              DataType = "binary"
	DataTypeBlob                DataType = "blob"
	DataTypeBool                DataType = "bool"
	DataTypeBoolean             DataType = "boolean"
	DataTypeDate                DataType = "date"
	DataTypeDateImmutable       DataType = "date_immutable"
	DataTypeDatetime            DataType = "datetime"
	DataTypeDatetimeImmutable   DataType = "datetime_immutable"
	DataTypeDatetimeTZ          DataType = "datetimetz"
	DataTypeDatetimeTZImmutable DataType = "datetimetz_immutable"
	DataTypeTime                DataType = "time"
	DataTypeTimeImmutable       DataType = "time_immutable"
	DataTypeArray               DataType = "array"
	DataTypeSimpleArray         DataType = "simple_array"
	DataTypeJSON                DataType = "json"
	DataTypeObject              DataType = "object"
)

// DataTypes lists every recognized data type in declaration order.
var DataTypes = []DataType{
	DataTypeSmallint, DataTypeInteger, DataTypeBigint, DataTypeDecimal,
	DataTypeFloat, DataTypeDouble, DataTypeString, DataTypeText, DataTypeGUID,
	DataTypeBinary, DataTypeBlob, DataTypeBool, DataTypeBoolean,
	DataTypeDate, DataTypeDateImmutable, DataTypeDatetime, DataTypeDatetimeImmutable,
	DataTypeDatetimeTZ, DataTypeDatetimeTZImmutable, DataTypeTime, DataTypeTimeImmutable,
	DataTypeArray, DataTypeSimpleArray, DataTypeJSON, DataTypeObject,
}

// validDataTypes is the set of recognized data types.
var validDataTypes = func() map[DataType]bool {
	m := make(map[DataType]bool, len(DataTypes))
	for _, dt := range DataTypes {
		m[dt] = true
	}
	return m
}()

// IsValidDataType reports whether dt is a recognized data type.
func IsValidDataType(dt DataType) bool {
	return validDataTypes[dt]
}

// Type hints are the presentation types a code generator maps data types to.
const (
	TypeHintInt               = "int"
	TypeHintFloat             = "float"
	TypeHintBool              = "bool"
	TypeHintDatetime          = "datetime"
	TypeHintDatetimeImmutable = "datetime_immutable"
	TypeHintArray             = "array"
	TypeHintString            = "string"
)

// typeHints maps data types to type hints. Anything missing is a string.
var typeHints = map[DataType]string{
	DataTypeSmallint:            TypeHintInt,
	DataTypeInteger:             TypeHintInt,
	DataTypeFloat:               TypeHintFloat,
	DataTypeDouble:              TypeHintFloat,
	DataTypeBool:                TypeHintBool,
	DataTypeBoolean:             TypeHintBool,
	DataTypeDate:                TypeHintDatetime,
	DataTypeDateImmutable:       TypeHintDatetimeImmutable,
	DataTypeDatetime:            TypeHintDatetime,
	DataTypeDatetimeImmutable:   TypeHintDatetimeImmutable,
	DataTypeDatetimeTZ:          TypeHintDatetime,
	DataTypeDatetimeTZImmutable: TypeHintDatetimeImmutable,
	DataTypeTime:                TypeHintDatetime,
	DataTypeTimeImmutable:       TypeHintDatetimeImmutable,
	DataTypeArray:               TypeHintArray,
	DataTypeSimpleArray:         TypeHintArray,
	DataTypeJSON:                TypeHintArray,
}

// TypeHint returns the presentation type for dt.
func (dt DataType) TypeHint() string {
	if hint, ok := typeHints[dt]; ok {
		return hint
	}
	return TypeHintString
}

// IsInteger reports whether dt is smallint, integer or bigint.
func (dt DataType) IsInteger() bool {
	switch dt {
	case DataTypeSmallint, DataTypeInteger, DataTypeBigint:
		return true
	}
	return false
}

// IsNumeric reports whether dt is an integer type, float or double.
func (dt DataType) IsNumeric() bool {
	return dt.IsInteger() || dt == DataTypeFloat || dt == DataTypeDouble
}

// IsDate reports whether dt is any date, datetime or time variant.
func (dt DataType) IsDate() bool {
	hint := dt.TypeHint()
	return hint == TypeHintDatetime || hint == TypeHintDatetimeImmutable
}

// IsArray reports whether dt is array, simple_array or json.
func (dt DataType) IsArray() bool {
	switch dt {
	case DataTypeArray, DataTypeSimpleArray, DataTypeJSON:
		return true
	}
	return false
}

// IsBinary reports whether dt is binary, blob, bool or boolean.
func (dt DataType) IsBinary() bool {
	switch dt {
	case DataTypeBinary, DataTypeBlob, DataTypeBool, DataTypeBoolean:
		return true
	}
	return false
}

// IsText reports whether dt is text.
func (dt DataType) IsText() bool { return dt == DataTypeText }

// IsObject reports whether dt is object.
func (dt DataType) IsObject() bool { return dt == DataTypeObject }

// IsString reports whether dt presents as a string. bigint is excluded even
// though it has no dedicated type hint.
func (dt DataType) IsString() bool {
	return dt != DataTypeBigint && dt.TypeHint() == TypeHintString
}

// UIType is the presentation hint for an attribute's input widget.
type UIType string

// UI types.
const (
	UITypeText     UIType = "text"
	UITypeTextarea UIType = "textarea"
	UITypeEmail    UIType = "email"
	UITypeNumber   UIType = "number"
	UITypeInteger  UIType = "integer"
	UITypeDigits   UIType = "digits"
	UITypeAlphanum UIType = "alphanum"
	UITypeURL      UIType = "url"
	UITypeRange    UIType = "range"
	UITypePattern  UIType = "pattern"
	UITypePassword UIType = "password"
	UITypeTimezone UIType = "timezone"
	UITypeTel      UIType = "tel"
	UITypeCurrency UIType = "currency"
	UITypeDate     UIType = "date"
)

// UITypes lists every recognized UI type.
var UITypes = []UIType{
	UITypeText, UITypeTextarea, UITypeEmail, UITypeNumber, UITypeInteger,
	UITypeDigits, UITypeAlphanum, UITypeURL, UITypeRange, UITypePattern,
	UITypePassword, UITypeTimezone, UITypeTel, UITypeCurrency, UITypeDate,
}

var validUITypes = func() map[UIType]bool {
	m := make(map[UIType]bool, len(UITypes))
	for _, t := range UITypes {
		m[t] = true
	}
	return m
}()

// IsValidUIType reports whether t is a recognized UI type.
func IsValidUIType(t UIType) bool {
	return validUITypes[t]
}

// Formats accepted by the format rule.
const (
	FormatMoney    = "money"
	FormatTimeago  = "timeago"
	FormatDatetime = "datetime"
)

// Formats lists every recognized format.
var Formats = []string{FormatMoney, FormatTimeago, FormatDatetime}

// Operators accepted by the filter rule.
const (
	OperatorEquals          = "eq"
	OperatorNotEquals       = "ne"
	OperatorGreater         = "gt"
	OperatorGreaterOrEquals = "ge"
	OperatorLess            = "lt"
	OperatorLessOrEquals    = "le"
	OperatorNull            = "nl"
	OperatorNotNull         = "nn"
	OperatorIn              = "in"
	OperatorNotIn           = "ni"
	OperatorStarts          = "ss"
	OperatorEnds            = "se"
	OperatorContains        = "sc"
	OperatorExplode         = "sx"
	OperatorBetween         = "bw"
)

// Operators lists every recognized filter operator.
var Operators = []string{
	OperatorEquals, OperatorNotEquals, OperatorGreater, OperatorGreaterOrEquals,
	OperatorLess, OperatorLessOrEquals, OperatorNull, OperatorNotNull,
	OperatorIn, OperatorNotIn, OperatorStarts, OperatorEnds,
	OperatorContains, OperatorExplode, OperatorBetween,
}

// Action is a generated operation an attribute or schema participates in.
type Action string

// Action codes. ActionAll is a sentinel meaning every action.
const (
	ActionAll    Action = "a"
	ActionIndex  Action = "i"
	ActionCreate Action = "c"
	ActionRead   Action = "r"
	ActionUpdate Action = "u"
	ActionDelete Action = "d"
	ActionFilter Action = "f"
)

// Actions lists every action code accepted in show and hide lists, ActionAll
// first.
var Actions = []Action{
	ActionAll, ActionIndex, ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionFilter,
}

// SchemaActions lists the action codes a schema may declare.
var SchemaActions = []Action{
	ActionIndex, ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionFilter,
}

// DefaultSchemaActions is the action set of a schema that declares none.
var DefaultSchemaActions = []Action{
	ActionIndex, ActionCreate, ActionRead, ActionUpdate, ActionDelete,
}

// IsValid reports whether a is one of the attribute action codes.
func (a Action) IsValid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
