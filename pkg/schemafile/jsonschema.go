package schemafile

import (
	"github.com/invopop/jsonschema"

	"github.com/flexphp/flex-schema/pkg/schema"
)

// Document is the body of a schema document, under the schema name.
type Document struct {
	Title      string      `json:"title" jsonschema:"description=Human readable entity title,minLength=1"`
	Icon       string      `json:"icon,omitempty" jsonschema:"description=Icon shown next to the entity"`
	Language   string      `json:"language,omitempty" jsonschema:"description=Language of titles and labels,default=en"`
	Actions    string      `json:"actions,omitempty" jsonschema:"description=Generated actions as comma separated codes (i c r u d f)"`
	Attributes []Attribute `json:"attributes" jsonschema:"description=Entity fields in display order"`
}

// Attribute is one attribute entry of a schema document.
type Attribute struct {
	Name        string `json:"name" jsonschema:"description=Field name"`
	DataType    string `json:"dataType" jsonschema:"description=Storage data type"`
	Type        string `json:"type,omitempty" jsonschema:"description=Input widget hint"`
	Constraints any    `json:"constraints,omitempty" jsonschema:"description=Pipe delimited rules (required|maxlength:20) or a mapping of rule to value"`
}

// JSONSchemaExtend fills the name limits and enumerations from the schema
// vocabulary.
func (Attribute) JSONSchemaExtend(s *jsonschema.Schema) {
	if p, ok := s.Properties.Get(schema.PropertyName); ok {
		minLength := uint64(schema.AttributeNameMinLength)
		maxLength := uint64(schema.AttributeNameMaxLength)
		p.MinLength = &minLength
		p.MaxLength = &maxLength
		p.Pattern = schema.AttributeNamePattern
	}
	if p, ok := s.Properties.Get(schema.PropertyDataType); ok {
		for _, dt := range schema.DataTypes {
			p.Enum = append(p.Enum, string(dt))
		}
	}
	if p, ok := s.Properties.Get(schema.PropertyType); ok {
		for _, t := range schema.UITypes {
			p.Enum = append(p.Enum, string(t))
		}
	}
	if p, ok := s.Properties.Get(schema.PropertyConstraints); ok {
		p.OneOf = []*jsonschema.Schema{
			{Type: "string"},
			{Type: "object"},
			{Type: "array"},
			{Type: "null"},
		}
	}
}

// JSONSchemaExtend accepts action lists and attribute mappings keyed by name.
func (Document) JSONSchemaExtend(s *jsonschema.Schema) {
	if p, ok := s.Properties.Get(schema.KeyActions); ok {
		codes := make([]any, 0, len(schema.SchemaActions))
		for _, a := range schema.SchemaActions {
			codes = append(codes, string(a))
		}
		p.Type = ""
		p.OneOf = []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string", Enum: codes}},
		}
	}
	if p, ok := s.Properties.Get(schema.KeyAttributes); ok && p.Items != nil {
		keyed := *p.Items
		keyed.Required = []string{schema.PropertyDataType}
		list := *p
		list.Description = ""
		s.Properties.Set(schema.KeyAttributes, &jsonschema.Schema{
			Description: p.Description,
			OneOf: []*jsonschema.Schema{
				&list,
				{Type: "object", AdditionalProperties: &keyed},
			},
		})
	}
}

// DocumentJSONSchema describes the schema document format: an object with a
// single schema name mapped to a Document.
func DocumentJSONSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	body := r.Reflect(&Document{})
	body.Version = ""

	one := uint64(1)
	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Schema document",
		Description: "Entity description with its attributes and constraints",
		Type:        "object",
		PatternProperties: map[string]*jsonschema.Schema{
			schema.SchemaNamePattern: body,
		},
		AdditionalProperties: jsonschema.FalseSchema,
		MinProperties:        &one,
		MaxProperties:        &one,
	}
}
