package schemafile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexphp/flex-schema/pkg/schema"
)

func TestDocumentJSONSchema(t *testing.T) {
	s := DocumentJSONSchema()
	require.NotNil(t, s)
	assert.Equal(t, "object", s.Type)

	body, ok := s.PatternProperties[schema.SchemaNamePattern]
	require.True(t, ok)
	assert.Contains(t, body.Required, schema.KeyTitle)
	assert.Contains(t, body.Required, schema.KeyAttributes)

	attrs, ok := body.Properties.Get(schema.KeyAttributes)
	require.True(t, ok)
	require.Len(t, attrs.OneOf, 2)

	item := attrs.OneOf[0].Items
	require.NotNil(t, item)
	dataType, ok := item.Properties.Get(schema.PropertyDataType)
	require.True(t, ok)
	assert.Len(t, dataType.Enum, len(schema.DataTypes))
	assert.Contains(t, dataType.Enum, "datetimetz_immutable")
	assert.ElementsMatch(t, []string{schema.PropertyName, schema.PropertyDataType}, item.Required)

	name, ok := item.Properties.Get(schema.PropertyName)
	require.True(t, ok)
	assert.Equal(t, schema.AttributeNamePattern, name.Pattern)
	require.NotNil(t, name.MaxLength)
	assert.EqualValues(t, schema.AttributeNameMaxLength, *name.MaxLength)
	require.NotNil(t, name.MinLength)
	assert.EqualValues(t, schema.AttributeNameMinLength, *name.MinLength)

	keyed := attrs.OneOf[1].AdditionalProperties
	require.NotNil(t, keyed)
	assert.Equal(t, []string{schema.PropertyDataType}, keyed.Required)
}

func TestDocumentJSONSchemaMarshals(t *testing.T) {
	b, err := json.Marshal(DocumentJSONSchema())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, false, out["additionalProperties"])
	assert.EqualValues(t, 1, out["maxProperties"])
	assert.Contains(t, out, "patternProperties")
}
