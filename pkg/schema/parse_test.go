package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyInput(t *testing.T) {
	for _, raw := range []any{nil, "", "   ", Collection{}, map[string]any{}, []any{}, 42} {
		c := Parse(raw)
		assert.True(t, c.IsEmpty(), "Parse(%#v)", raw)
	}
}

func TestParseStringForm(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "flag",
			raw:  "required",
			want: map[string]any{"required": true},
		},
		{
			name: "flags and scalars",
			raw:  "required|min:8|max:10|type:number",
			want: map[string]any{"required": true, "min": 8, "max": 10, "type": "number"},
		},
		{
			name: "boolean options ignore case",
			raw:  "required:TRUE|trim:false",
			want: map[string]any{"required": true, "trim": false},
		},
		{
			name: "check range expands",
			raw:  "check:3,4",
			want: map[string]any{"mincheck": 3, "maxcheck": 4},
		},
		{
			name: "length range expands",
			raw:  "length:30,40",
			want: map[string]any{"minlength": 30, "maxlength": 40},
		},
		{
			name: "only first colon splits",
			raw:  "equalto:a:b",
			want: map[string]any{"equalto": "a:b"},
		},
		{
			name: "empty tokens are skipped",
			raw:  "required||trim|",
			want: map[string]any{"required": true, "trim": true},
		},
		{
			name: "action lists keep commas",
			raw:  "show:i,c|hide:u,d",
			want: map[string]any{"show": "i,c", "hide": "u,d"},
		},
		{
			name: "empty default is an empty string",
			raw:  "default:",
			want: map[string]any{"default": ""},
		},
		{
			name: "decimal default becomes float",
			raw:  "default:1.5",
			want: map[string]any{"default": 1.5},
		},
		{
			name: "integer default stays a string",
			raw:  "default:10",
			want: map[string]any{"default": "10"},
		},
		{
			name: "default with two integer digits stays a string",
			raw:  "default:10.5",
			want: map[string]any{"default": "10.5"},
		},
		{
			name: "decimal options drop the fraction",
			raw:  "maxlength:10.5|min:-2.9|mincheck:3.",
			want: map[string]any{"maxlength": 10, "min": -2, "mincheck": 3},
		},
		{
			name: "decimal range drops the fraction",
			raw:  "length:1.5,9.9",
			want: map[string]any{"minlength": 1, "maxlength": 9},
		},
		{
			name: "spaces around rules and options",
			raw:  " required | maxlength : 20 ",
			want: map[string]any{"required": true, "maxlength": 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw).Map())
		})
	}
}

func TestParseForeignKey(t *testing.T) {
	tests := []struct {
		raw  any
		want ForeignKey
	}{
		{"fk:table", ForeignKey{Table: "table", Name: "name", ID: "id"}},
		{"fk:table2,username", ForeignKey{Table: "table2", Name: "username", ID: "id"}},
		{"fk:table3,description,uuid", ForeignKey{Table: "table3", Name: "description", ID: "uuid"}},
		{map[string]any{"fk": "users, email"}, ForeignKey{Table: "users", Name: "email", ID: "id"}},
		{Collection{{Key: "fk", Value: Collection{{Key: "table", Value: "users"}}}}, ForeignKey{Table: "users", Name: "name", ID: "id"}},
	}
	for _, tt := range tests {
		c := Parse(tt.raw)
		v, ok := c.Get(RuleForeignKey)
		require.True(t, ok, "Parse(%#v)", tt.raw)
		fk, ok := v.ForeignKey()
		require.True(t, ok, "Parse(%#v) kind = %s", tt.raw, v.Kind())
		assert.Equal(t, tt.want, fk)
	}
}

func TestParseForeignKeyTooManySegments(t *testing.T) {
	v, ok := Parse("fk:a,b,c,d").Get(RuleForeignKey)
	require.True(t, ok)
	s, ok := v.Str()
	require.True(t, ok)
	assert.Equal(t, "a,b,c,d", s)
}

func TestParseStringAndKeyedFormsAgree(t *testing.T) {
	fromString := Parse("required|min:8|max:10|type:number")
	fromKeyed := Parse(Collection{
		{Key: "required", Value: true},
		{Key: "min", Value: 8},
		{Key: "max", Value: 10},
		{Key: "type", Value: "number"},
	})
	assert.Equal(t, fromString.Map(), fromKeyed.Map())
	assert.Equal(t, fromString.Rules(), fromKeyed.Rules())
}

func TestParseKeyedForm(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want map[string]any
	}{
		{
			name: "positional entries are flags",
			raw:  []any{"required", "trim"},
			want: map[string]any{"required": true, "trim": true},
		},
		{
			name: "string slice",
			raw:  []string{"required"},
			want: map[string]any{"required": true},
		},
		{
			name: "mixed positional and keyed",
			raw:  []any{"required", map[string]any{"min": 8}},
			want: map[string]any{"required": true, "min": 8},
		},
		{
			name: "numeric looking positional entry is promoted",
			raw:  []any{5},
			want: map[string]any{"5": true},
		},
		{
			name: "numeric strings become ints",
			raw:  map[string]any{"minlength": "3", "maxlength": 20.0},
			want: map[string]any{"minlength": 3, "maxlength": 20},
		},
		{
			name: "boolean strings become bools",
			raw:  map[string]any{"required": "true", "pk": "False"},
			want: map[string]any{"required": true, "pk": false},
		},
		{
			name: "range mapping expands",
			raw:  map[string]any{"length": map[string]any{"min": 1, "max": "9"}},
			want: map[string]any{"minlength": 1, "maxlength": 9},
		},
		{
			name: "incomplete range is kept",
			raw:  map[string]any{"check": map[string]any{"min": 5}},
			want: map[string]any{"check": map[string]any{"min": 5, "max": nil}},
		},
		{
			name: "null default is no default",
			raw:  map[string]any{"default": nil, "required": true},
			want: map[string]any{"required": true},
		},
		{
			name: "decimal strings drop the fraction",
			raw:  map[string]any{"min": "2.0", "max": "7.9"},
			want: map[string]any{"min": 2, "max": 7},
		},
		{
			name: "non integral floats drop the fraction",
			raw:  map[string]any{"minlength": 1.5, "maxlength": 20.99},
			want: map[string]any{"minlength": 1, "maxlength": 20},
		},
		{
			name: "decimal range bounds drop the fraction",
			raw:  map[string]any{"length": map[string]any{"min": "1.5", "max": 9.9}},
			want: map[string]any{"minlength": 1, "maxlength": 9},
		},
		{
			name: "numeric default is kept",
			raw:  map[string]any{"default": 10},
			want: map[string]any{"default": 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw).Map())
		})
	}
}

func TestParseFlowForm(t *testing.T) {
	tests := []struct {
		raw  string
		want map[string]any
	}{
		{`["required"]`, map[string]any{"required": true}},
		{`{"required":true}`, map[string]any{"required": true}},
		{`{"required":true,"min":8}`, map[string]any{"required": true, "min": 8}},
		{`{required: true, length: {min: 2, max: 4}}`, map[string]any{"required": true, "minlength": 2, "maxlength": 4}},
		{`[required, {maxlength: 20}]`, map[string]any{"required": true, "maxlength": 20}},
		{`{min: "2.0", max: 2.5}`, map[string]any{"min": 2, "max": 2}},
		{`{required: true, default: ~}`, map[string]any{"required": true}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw).Map())
		})
	}
}

func TestParseKeepsDeclarationOrder(t *testing.T) {
	c := Parse("required|min:1|maxlength:4|required:false")
	assert.Equal(t, []Rule{RuleRequired, RuleMin, RuleMaxLength}, c.Rules())
	v, _ := c.Get(RuleRequired)
	b, ok := v.Bool()
	require.True(t, ok)
	assert.False(t, b)
}

func TestParseValueKinds(t *testing.T) {
	c := Parse("required|min:8|show:a|default:1.5|fk:users|equalto:password|check:1,x")
	kinds := map[Rule]Kind{
		RuleRequired:   KindBool,
		RuleMin:        KindInt,
		RuleShow:       KindActions,
		RuleDefault:    KindFloat,
		RuleForeignKey: KindForeignKey,
		RuleEqualTo:    KindString,
		RuleCheck:      KindRange,
	}
	for r, want := range kinds {
		v, ok := c.Get(r)
		require.True(t, ok, "rule %s", r)
		assert.Equal(t, want, v.Kind(), "rule %s", r)
	}
}

func TestParseConstraintsIsACopy(t *testing.T) {
	orig := Parse("required|min:1")
	cp := Parse(orig)
	cp.set(RuleMax, IntValue(3))
	assert.False(t, orig.Has(RuleMax))
	assert.Equal(t, 2, orig.Len())
}
