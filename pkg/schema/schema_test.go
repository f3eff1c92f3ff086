package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalDocument() map[string]any {
	return map[string]any{
		"Comments": map[string]any{
			KeyTitle: "Comments",
			KeyAttributes: []any{
				map[string]any{PropertyName: "body", PropertyDataType: "text", PropertyConstraints: "required"},
			},
		},
	}
}

func TestFromMapMinimal(t *testing.T) {
	s, err := FromMap(minimalDocument())
	require.NoError(t, err)

	assert.Equal(t, "Comments", s.Name())
	assert.Equal(t, "Comments", s.Title())
	assert.Empty(t, s.Icon())
	assert.Equal(t, DefaultLanguage, s.Language())
	assert.Equal(t, []Action{ActionIndex, ActionCreate, ActionRead, ActionUpdate, ActionDelete}, s.Actions())
	assert.Equal(t, "id", s.PkName())
	assert.Equal(t, "string", s.PkTypeHint())
	assert.Empty(t, s.FkRelations())
	require.Len(t, s.Attributes(), 1)
	assert.Equal(t, "body", s.Attributes()[0].Name())
}

func TestNewSchemaOptions(t *testing.T) {
	s, err := New("Posts", "Blog posts", nil,
		WithIcon("pencil"),
		WithLanguage("es"),
		WithActions(ActionIndex, ActionFilter),
	)
	require.NoError(t, err)
	assert.Equal(t, "pencil", s.Icon())
	assert.Equal(t, "es", s.Language())
	assert.Equal(t, []Action{ActionIndex, ActionFilter}, s.Actions())
	assert.True(t, s.HasAction(ActionFilter))
	assert.False(t, s.HasAction(ActionDelete))
	assert.Empty(t, s.Attributes())
}

func TestNewSchemaInvalid(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		title   string
		actions []Action
		want    string
	}{
		{"blank name", " ", "Title", nil, "invalid schema: name must not be blank"},
		{"name starts with digit", "1Posts", "Title", nil, `invalid schema: name "1Posts" must start with a letter and hold only letters, digits or underscores`},
		{"name with dash", "blog-posts", "Title", nil, `invalid schema: name "blog-posts" must start with a letter and hold only letters, digits or underscores`},
		{"blank title", "Posts", "", nil, "invalid schema: Posts: title must not be blank"},
		{"bad actions", "Posts", "Title", []Action{"i", "x", "a"}, `invalid schema: Posts: actions not valid: "x", "a", allowed values are: i,c,r,u,d,f`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.schema, tt.title, nil, WithActions(tt.actions...))
			assert.Nil(t, s)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSchema)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestNewSchemaAttributeFailure(t *testing.T) {
	_, err := New("Users", "Users", []any{
		map[string]any{PropertyName: "id", PropertyDataType: "integer", PropertyConstraints: "pk|required"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.ErrorIs(t, err, ErrInvalidAttributeLogic)
	assert.Equal(t, "invalid schema: Users: attribute id > Logic: [id] Primary Key numeric not autoincrement.", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "id", ve.Attribute)

	_, err = New("Users", "Users", []any{"email"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchema)
	assert.ErrorIs(t, err, ErrInvalidAttribute)
	assert.Contains(t, err.Error(), "attribute #0 >")
}

func TestNewSchemaAcceptsBuiltAttributes(t *testing.T) {
	id, err := NewAttribute("id", "integer", "pk|ai|required")
	require.NoError(t, err)

	s, err := New("Users", "Users", []any{
		id,
		Collection{{Key: PropertyName, Value: "email"}, {Key: PropertyDataType, Value: "string"}},
	})
	require.NoError(t, err)
	assert.Same(t, id, s.Attributes()[0])
	assert.Equal(t, "id", s.PkName())
	assert.Equal(t, "int", s.PkTypeHint())

	email, ok := s.Attribute("email")
	require.True(t, ok)
	assert.Equal(t, DataTypeString, email.DataType())
	_, ok = s.Attribute("missing")
	assert.False(t, ok)
}

func TestSchemaPkIsFirstDeclared(t *testing.T) {
	s, err := New("Codes", "Codes", []any{
		map[string]any{PropertyName: "label", PropertyDataType: "string"},
		map[string]any{PropertyName: "code", PropertyDataType: "string", PropertyConstraints: "pk|required"},
		map[string]any{PropertyName: "other", PropertyDataType: "guid", PropertyConstraints: "pk|required"},
	})
	require.NoError(t, err)
	assert.Equal(t, "code", s.PkName())
	assert.Equal(t, "string", s.PkTypeHint())
}

func TestSchemaFkRelations(t *testing.T) {
	s, err := New("Posts", "Posts", []any{
		map[string]any{PropertyName: "id", PropertyDataType: "integer", PropertyConstraints: "pk|ai|required"},
		map[string]any{PropertyName: "authorId", PropertyDataType: "integer", PropertyConstraints: "required|fk:users,fullname,userId|fchars:2|fkcheck"},
	})
	require.NoError(t, err)

	rels := s.FkRelations()
	require.Len(t, rels, 1)
	two := 2
	assert.Equal(t, FkRelation{
		Name:      "authorId",
		PkTable:   "Posts",
		FkTable:   "users",
		FkID:      "userId",
		FkName:    "fullname",
		DataType:  DataTypeInteger,
		TypeHint:  TypeHintInt,
		IsBlameBy: false,
		Required:  true,
		Fchars:    &two,
		Fkcheck:   true,
	}, rels[0])
}

func TestSchemaFkRelationsLastDuplicateWins(t *testing.T) {
	s, err := New("Posts", "Posts", []any{
		map[string]any{PropertyName: "owner", PropertyDataType: "integer", PropertyConstraints: "fk:users"},
		map[string]any{PropertyName: "editor", PropertyDataType: "integer", PropertyConstraints: "ub|fk:users"},
		map[string]any{PropertyName: "owner", PropertyDataType: "integer", PropertyConstraints: "fk:accounts,email"},
	})
	require.NoError(t, err)
	assert.Len(t, s.Attributes(), 3)

	rels := s.FkRelations()
	require.Len(t, rels, 2)
	assert.Equal(t, "owner", rels[0].Name)
	assert.Equal(t, "accounts", rels[0].FkTable)
	assert.Equal(t, "email", rels[0].FkName)
	assert.Equal(t, "editor", rels[1].Name)
	assert.True(t, rels[1].IsBlameBy)
}

func TestFromCollection(t *testing.T) {
	doc := Collection{{Key: "Users", Value: Collection{
		{Key: KeyTitle, Value: "Users"},
		{Key: KeyIcon, Value: "user"},
		{Key: KeyActions, Value: "i,c,f"},
		{Key: KeyAttributes, Value: Collection{
			{Key: "id", Value: Collection{
				{Key: PropertyDataType, Value: "integer"},
				{Key: PropertyConstraints, Value: Collection{{Key: "pk", Value: true}, {Key: "ai", Value: true}, {Key: "required", Value: true}}},
			}},
			{Key: "email", Value: Collection{
				{Key: PropertyName, Value: "mail"},
				{Key: PropertyDataType, Value: "string"},
				{Key: PropertyType, Value: "email"},
			}},
		}},
	}}}

	s, err := FromCollection(doc)
	require.NoError(t, err)
	assert.Equal(t, "user", s.Icon())
	assert.Equal(t, []Action{ActionIndex, ActionCreate, ActionFilter}, s.Actions())

	attrs := s.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, "id", attrs[0].Name())
	assert.Equal(t, "mail", attrs[1].Name())
	assert.Equal(t, UITypeEmail, attrs[1].Type())
	assert.Equal(t, "id", s.PkName())
	assert.Equal(t, "int", s.PkTypeHint())
}

func TestFromCollectionInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  Collection
		want string
	}{
		{"empty", nil, "invalid schema: schema is empty"},
		{"two schemas", Collection{{Key: "A", Value: Collection{}}, {Key: "B", Value: Collection{}}}, "invalid schema: document must hold a single schema, found 2 entries"},
		{"positional name", Collection{{Value: "Users"}}, "invalid schema: schema name must be a string"},
		{"scalar body", Collection{{Key: "Users", Value: "x"}}, "invalid schema: Users must be a mapping"},
		{"title not a string", Collection{{Key: "Users", Value: Collection{{Key: KeyTitle, Value: 1}}}}, "invalid schema: Users:title must be a string"},
		{"missing title", Collection{{Key: "Users", Value: Collection{{Key: KeyAttributes, Value: []any{}}}}}, "invalid schema: Users: title must not be blank"},
		{"missing attributes", Collection{{Key: "Users", Value: Collection{{Key: KeyTitle, Value: "Users"}}}}, "invalid schema: Users:attributes must be a list"},
		{"scalar attributes", Collection{{Key: "Users", Value: Collection{{Key: KeyTitle, Value: "Users"}, {Key: KeyAttributes, Value: "id"}}}}, "invalid schema: Users:attributes must be a list"},
		{"bad actions type", Collection{{Key: "Users", Value: Collection{{Key: KeyTitle, Value: "Users"}, {Key: KeyActions, Value: 3}, {Key: KeyAttributes, Value: []any{}}}}}, "invalid schema: Users:actions must be a comma separated string or a list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromCollection(tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSchema)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestFromCollectionActionsList(t *testing.T) {
	doc := Collection{{Key: "Users", Value: Collection{
		{Key: KeyTitle, Value: "Users"},
		{Key: KeyActions, Value: []any{"r", "u"}},
		{Key: KeyAttributes, Value: []any{}},
	}}}
	s, err := FromCollection(doc)
	require.NoError(t, err)
	assert.Equal(t, []Action{ActionRead, ActionUpdate}, s.Actions())
}
