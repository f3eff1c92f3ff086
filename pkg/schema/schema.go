package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Schema document keys.
const (
	KeyTitle      = "title"
	KeyIcon       = "icon"
	KeyLanguage   = "language"
	KeyActions    = "actions"
	KeyAttributes = "attributes"
)

// Schema fallbacks used when no attribute is a primary key.
const (
	DefaultLanguage   = "en"
	DefaultPkName     = "id"
	DefaultPkTypeHint = TypeHintString
)

// SchemaNamePattern is the pattern schema names must match.
const SchemaNamePattern = `^[A-Za-z]\w*$`

var schemaNameRe = regexp.MustCompile(SchemaNamePattern)

// Schema describes one entity: its attributes in declaration order and the
// actions generated for it.
type Schema struct {
	name       string
	title      string
	icon       string
	language   string
	actions    []Action
	attributes []*Attribute
}

// FkRelation describes the foreign key held by one attribute.
type FkRelation struct {
	Name      string   `json:"name"`     // attribute name
	PkTable   string   `json:"pkTable"`  // owning schema
	FkTable   string   `json:"fkTable"`  // referenced table
	FkID      string   `json:"fkId"`     // referenced key column
	FkName    string   `json:"fkName"`   // referenced display column
	DataType  DataType `json:"dataType"` // attribute data type
	TypeHint  string   `json:"typeHint"`
	IsBlameBy bool     `json:"isBlameBy"`
	Required  bool     `json:"required"`
	Fchars    *int     `json:"fchars,omitempty"`
	Fkcheck   bool     `json:"fkcheck"`
}

type options struct {
	icon     string
	language string
	actions  []Action
}

// Option configures New.
type Option func(*options)

// WithIcon sets the schema icon.
func WithIcon(icon string) Option {
	return func(o *options) { o.icon = icon }
}

// WithLanguage sets the schema language. An empty language keeps the default.
func WithLanguage(language string) Option {
	return func(o *options) {
		if language != "" {
			o.language = language
		}
	}
}

// WithActions sets the schema actions. An empty list keeps the default set.
func WithActions(actions ...Action) Option {
	return func(o *options) { o.actions = actions }
}

// New builds a schema. Each attribute is an *Attribute, used as is, or a
// property set (map[string]any or Collection) built with
// AttributeFromProperties. Errors match ErrInvalidSchema; attribute failures
// also match the attribute's own error kind.
func New(name, title string, attributes []any, opts ...Option) (*Schema, error) {
	o := options{language: DefaultLanguage}
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrInvalidSchema)
	}
	if !schemaNameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: name %q must start with a letter and hold only letters, digits or underscores", ErrInvalidSchema, name)
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: %s: title must not be blank", ErrInvalidSchema, name)
	}

	actions, invalid := schemaActions(o.actions)
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s: actions not valid: %s, allowed values are: %s",
			ErrInvalidSchema, name, strings.Join(invalid, ", "), joinActions(SchemaActions))
	}

	s := &Schema{
		name:       name,
		title:      title,
		icon:       o.icon,
		language:   o.language,
		actions:    actions,
		attributes: make([]*Attribute, 0, len(attributes)),
	}
	for i, raw := range attributes {
		a, err := buildAttribute(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: attribute %s > %w", ErrInvalidSchema, name, attributeLabel(raw, i), err)
		}
		s.attributes = append(s.attributes, a)
	}
	return s, nil
}

// schemaActions returns the action set and the quoted codes that are not
// schema actions.
func schemaActions(actions []Action) ([]Action, []string) {
	if len(actions) == 0 {
		return append([]Action{}, DefaultSchemaActions...), nil
	}
	var invalid []string
	for _, a := range actions {
		if !containsAction(SchemaActions, a) {
			invalid = append(invalid, strconv.Quote(string(a)))
		}
	}
	return append([]Action{}, actions...), invalid
}

func buildAttribute(raw any) (*Attribute, error) {
	switch v := raw.(type) {
	case *Attribute:
		if v == nil {
			return nil, fmt.Errorf("%w: attribute is nil", ErrInvalidAttribute)
		}
		return v, nil
	case map[string]any:
		return AttributeFromProperties(v)
	case Collection:
		return AttributeFromProperties(v.Map())
	}
	return nil, fmt.Errorf("%w: attribute must be a property mapping, got %T", ErrInvalidAttribute, raw)
}

func attributeLabel(raw any, i int) string {
	var name any
	switch v := raw.(type) {
	case map[string]any:
		name = v[PropertyName]
	case Collection:
		name, _ = v.Get(PropertyName)
	}
	if s, ok := name.(string); ok && s != "" {
		return s
	}
	return "#" + strconv.Itoa(i)
}

// FromCollection builds a schema from a single keyed document:
//
//	Users:
//	  title: User accounts
//	  icon: user
//	  actions: i,c,r,u,d
//	  attributes:
//	    email: {dataType: string, constraints: required|maxlength:255}
//
// Attributes may be a list of property sets or a mapping keyed by attribute
// name, where an entry without a name takes its key.
func FromCollection(doc Collection) (*Schema, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: schema is empty", ErrInvalidSchema)
	}
	if len(doc) > 1 {
		return nil, fmt.Errorf("%w: document must hold a single schema, found %d entries", ErrInvalidSchema, len(doc))
	}
	name := doc[0].Key
	if name == "" {
		return nil, fmt.Errorf("%w: schema name must be a string", ErrInvalidSchema)
	}
	body, ok := toCollection(doc[0].Value)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a mapping", ErrInvalidSchema, name)
	}

	title, err := optionalString(body, name, KeyTitle)
	if err != nil {
		return nil, err
	}
	icon, err := optionalString(body, name, KeyIcon)
	if err != nil {
		return nil, err
	}
	language, err := optionalString(body, name, KeyLanguage)
	if err != nil {
		return nil, err
	}
	actions, err := documentActions(body, name)
	if err != nil {
		return nil, err
	}
	attributes, err := documentAttributes(body, name)
	if err != nil {
		return nil, err
	}

	return New(name, title, attributes, WithIcon(icon), WithLanguage(language), WithActions(actions...))
}

// FromMap builds a schema from a single keyed map. Attribute order follows
// the input when attributes is a list and is sorted by name when it is a
// map.
func FromMap(doc map[string]any) (*Schema, error) {
	return FromCollection(CollectionFromMap(doc))
}

func toCollection(v any) (Collection, bool) {
	switch t := v.(type) {
	case Collection:
		return t, true
	case map[string]any:
		return CollectionFromMap(t), true
	}
	return nil, false
}

func optionalString(body Collection, name, key string) (string, error) {
	raw, ok := body.Get(key)
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s:%s must be a string", ErrInvalidSchema, name, key)
	}
	return s, nil
}

func documentActions(body Collection, name string) ([]Action, error) {
	raw, ok := body.Get(KeyActions)
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return splitActions(v), nil
	case []any:
		out := make([]Action, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s:%s must hold action codes", ErrInvalidSchema, name, KeyActions)
			}
			out = append(out, Action(strings.TrimSpace(s)))
		}
		return out, nil
	case []string:
		out := make([]Action, 0, len(v))
		for _, s := range v {
			out = append(out, Action(strings.TrimSpace(s)))
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s:%s must be a comma separated string or a list", ErrInvalidSchema, name, KeyActions)
}

func documentAttributes(body Collection, name string) ([]any, error) {
	raw, ok := body.Get(KeyAttributes)
	if !ok {
		return nil, fmt.Errorf("%w: %s:%s must be a list", ErrInvalidSchema, name, KeyAttributes)
	}
	switch v := raw.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	case Collection:
		return keyedAttributes(v), nil
	case map[string]any:
		return keyedAttributes(CollectionFromMap(v)), nil
	}
	return nil, fmt.Errorf("%w: %s:%s must be a list", ErrInvalidSchema, name, KeyAttributes)
}

// keyedAttributes turns {key: properties} entries into property sets,
// filling name from the key when it is missing.
func keyedAttributes(c Collection) []any {
	out := make([]any, 0, len(c))
	for _, e := range c {
		props, ok := toCollection(e.Value)
		if !ok {
			out = append(out, e.Value)
			continue
		}
		m := props.Map()
		if _, ok := m[PropertyName]; !ok && e.Key != "" {
			m[PropertyName] = e.Key
		}
		out = append(out, m)
	}
	return out
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Title returns the schema title.
func (s *Schema) Title() string { return s.title }

// Icon returns the schema icon, or "".
func (s *Schema) Icon() string { return s.icon }

// Language returns the schema language.
func (s *Schema) Language() string { return s.language }

// Actions returns the schema actions.
func (s *Schema) Actions() []Action { return append([]Action{}, s.actions...) }

// HasAction reports whether the schema generates action.
func (s *Schema) HasAction(action Action) bool { return containsAction(s.actions, action) }

// Attributes returns the attributes in declaration order.
func (s *Schema) Attributes() []*Attribute { return append([]*Attribute{}, s.attributes...) }

// Attribute returns the first attribute named name.
func (s *Schema) Attribute(name string) (*Attribute, bool) {
	for _, a := range s.attributes {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}

func (s *Schema) pk() *Attribute {
	for _, a := range s.attributes {
		if a.IsPk() {
			return a
		}
	}
	return nil
}

// PkName returns the name of the first primary key attribute, or "id".
func (s *Schema) PkName() string {
	if a := s.pk(); a != nil {
		return a.name
	}
	return DefaultPkName
}

// PkTypeHint returns the type hint of the first primary key attribute, or
// "string".
func (s *Schema) PkTypeHint() string {
	if a := s.pk(); a != nil {
		return a.TypeHint()
	}
	return DefaultPkTypeHint
}

// FkRelations returns one relation per foreign key attribute in declaration
// order. When attribute names repeat, the last declaration wins and takes
// the position of the first.
func (s *Schema) FkRelations() []FkRelation {
	var out []FkRelation
	index := make(map[string]int)
	for _, a := range s.attributes {
		fk, ok := a.ForeignKey()
		if !ok {
			continue
		}
		rel := FkRelation{
			Name:      a.name,
			PkTable:   s.name,
			FkTable:   fk.Table,
			FkID:      fk.ID,
			FkName:    fk.Name,
			DataType:  a.dataType,
			TypeHint:  a.TypeHint(),
			IsBlameBy: a.IsBlameBy(),
			Required:  a.IsRequired(),
			Fkcheck:   a.Fkcheck(),
		}
		if n, ok := a.Fchars(); ok {
			rel.Fchars = &n
		}
		if i, ok := index[a.name]; ok {
			out[i] = rel
			continue
		}
		index[a.name] = len(out)
		out = append(out, rel)
	}
	return out
}
