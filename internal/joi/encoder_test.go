package joi

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truepill/openapi-to-joi/internal/parser"
)

func ptr[T any](v T) *T {
	return &v
}

func refineDate(typ, format string) string {
	if typ == "string" && (format == "date" || format == "date-time") {
		return "date"
	}
	return typ
}

func refineNullable(rule *Rule, s *parser.Schema) *Rule {
	if s.Nullable {
		return rule.Allow(nil)
	}
	return rule
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		schema   *parser.Schema
		opts     Options
		expected string
	}{
		{
			name:     "required string",
			schema:   &parser.Schema{Type: "string"},
			opts:     Options{Presence: Required},
			expected: `Joi.string().allow("").required()`,
		},
		{
			name:     "optional integer with bounds",
			schema:   &parser.Schema{Type: "integer", Min: ptr(1.0), Max: ptr(100.0)},
			opts:     Options{Presence: Optional},
			expected: `Joi.number().integer().min(1).max(100).optional()`,
		},
		{
			name:     "exclusive minimum",
			schema:   &parser.Schema{Type: "integer", Min: ptr(0.0), ExclusiveMin: true},
			expected: `Joi.number().integer().greater(0)`,
		},
		{
			name:     "exclusive maximum",
			schema:   &parser.Schema{Type: "number", Min: ptr(0.0), Max: ptr(1.5), ExclusiveMax: true},
			expected: `Joi.number().min(0).less(1.5)`,
		},
		{
			name:     "exclusive flag without bound",
			schema:   &parser.Schema{Type: "number", ExclusiveMin: true},
			expected: `Joi.number()`,
		},
		{
			name:     "number multiple and default",
			schema:   &parser.Schema{Type: "number", MultipleOf: ptr(0.5), Default: 2.5},
			expected: `Joi.number().multiple(0.5).default(2.5)`,
		},
		{
			name:     "string enum",
			schema:   &parser.Schema{Type: "string", Enum: []any{"dog", "cat"}},
			expected: `Joi.string().valid("dog", "cat")`,
		},
		{
			name:     "string length and pattern",
			schema:   &parser.Schema{Type: "string", Pattern: `^[a-z]+\d$`, MinLength: 2, MaxLength: ptr(uint64(8))},
			expected: `Joi.string().pattern(new RegExp("^[a-z]+\\d$")).min(2).max(8)`,
		},
		{
			name:     "string formats",
			schema:   &parser.Schema{Type: "string", Format: "ipv6"},
			expected: `Joi.string().ip({version: ["ipv6"]}).allow("")`,
		},
		{
			name:     "binary",
			schema:   &parser.Schema{Type: "string", Format: "binary", MaxLength: ptr(uint64(1024))},
			expected: `Joi.binary().max(1024)`,
		},
		{
			name:     "date-time without refinement",
			schema:   &parser.Schema{Type: "string", Format: "date-time"},
			expected: `Joi.string().isoDate().allow("")`,
		},
		{
			name:     "date-time with refinement",
			schema:   &parser.Schema{Type: "string", Format: "date-time"},
			opts:     Options{RefineType: refineDate},
			expected: `Joi.date()`,
		},
		{
			name:     "boolean",
			schema:   &parser.Schema{Type: "boolean"},
			expected: `Joi.boolean()`,
		},
		{
			name:     "untyped",
			schema:   &parser.Schema{},
			expected: `Joi.any()`,
		},
		{
			name:     "nil schema",
			schema:   nil,
			expected: `Joi.any()`,
		},
		{
			name: "array",
			schema: &parser.Schema{
				Type:        "array",
				Items:       &parser.Schema{Type: "string", Format: "email"},
				MinItems:    1,
				UniqueItems: true,
			},
			expected: `Joi.array().items(Joi.string().email().allow("")).min(1).unique()`,
		},
		{
			name: "object with required and nullable property",
			schema: &parser.Schema{
				Type:     "object",
				Required: []string{"name"},
				Properties: map[string]*parser.Schema{
					"name": {Type: "string", Nullable: true},
					"age":  {Type: "integer"},
				},
			},
			opts:     Options{RefineRule: refineNullable},
			expected: `Joi.object({"age": Joi.number().integer(), "name": Joi.string().allow("").allow(null).required()}).unknown(true)`,
		},
		{
			name: "nullable ignored without refinement",
			schema: &parser.Schema{
				Type:       "object",
				Properties: map[string]*parser.Schema{"name": {Type: "string", Nullable: true}},
			},
			expected: `Joi.object({"name": Joi.string().allow("")}).unknown(true)`,
		},
		{
			name: "closed object",
			schema: &parser.Schema{
				Type:                 "object",
				AdditionalProperties: ptr(false),
				Properties:           map[string]*parser.Schema{"a": {Type: "boolean"}},
				MinProps:             1,
			},
			expected: `Joi.object({"a": Joi.boolean()}).min(1)`,
		},
		{
			name:     "skip unknowns",
			schema:   &parser.Schema{Type: "object"},
			opts:     Options{SkipUnknowns: true},
			expected: `Joi.object()`,
		},
		{
			name:     "map object",
			schema:   &parser.Schema{AdditionalSchema: &parser.Schema{Type: "number"}},
			expected: `Joi.object().pattern(Joi.string(), Joi.number())`,
		},
		{
			name: "all of",
			schema: &parser.Schema{AllOf: []*parser.Schema{
				{Type: "string"},
				{Type: "string", MinLength: 1},
			}},
			expected: `Joi.alternatives().try(Joi.string().allow(""), Joi.string().min(1)).match("all")`,
		},
		{
			name: "all of with own properties",
			schema: &parser.Schema{
				Type:       "object",
				Properties: map[string]*parser.Schema{"id": {Type: "integer"}},
				AllOf:      []*parser.Schema{{Type: "object", AdditionalProperties: ptr(false)}},
			},
			expected: `Joi.alternatives().try(Joi.object({"id": Joi.number().integer()}).unknown(true), Joi.object()).match("all")`,
		},
		{
			name:     "any of",
			schema:   &parser.Schema{AnyOf: []*parser.Schema{{Type: "string"}, {Type: "null"}}},
			expected: `Joi.alternatives().try(Joi.string().allow(""), Joi.valid(null))`,
		},
		{
			name:     "one of",
			schema:   &parser.Schema{OneOf: []*parser.Schema{{Type: "boolean"}, {Type: "integer"}}},
			expected: `Joi.alternatives().try(Joi.boolean(), Joi.number().integer()).match("one")`,
		},
		{
			name:     "descriptions",
			schema:   &parser.Schema{Type: "string", Title: "Name", Description: "The <b>pet</b> \"name\""},
			expected: `Joi.string().allow("").label("Name").description("The <b>pet</b> \"name\"")`,
		},
		{
			name:     "skip descriptions",
			schema:   &parser.Schema{Type: "string", Title: "Name", Description: "The pet name"},
			opts:     Options{SkipDescriptions: true},
			expected: `Joi.string().allow("")`,
		},
		{
			name:     "sanitized descriptions",
			schema:   &parser.Schema{Type: "boolean", Description: "Is <em>good</em> &amp; <script>alert(1)</script>kind"},
			opts:     Options{SanitizeDescription: StripHTML},
			expected: `Joi.boolean().description("Is good & kind")`,
		},
		{
			name: "nested refinement",
			schema: &parser.Schema{
				Type: "array",
				Items: &parser.Schema{
					Type:       "object",
					Properties: map[string]*parser.Schema{"born": {Type: "string", Format: "date", Nullable: true}},
				},
			},
			opts:     Options{RefineType: refineDate, RefineRule: refineNullable, SkipUnknowns: true},
			expected: `Joi.array().items(Joi.object({"born": Joi.date().allow(null)}))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Encode(tt.schema, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestEncodeSharedSchemaIsNotACycle(t *testing.T) {
	tag := &parser.Schema{Type: "string"}
	schema := &parser.Schema{
		Type:       "object",
		Properties: map[string]*parser.Schema{"a": tag, "b": tag},
	}

	code, err := Encode(schema, Options{SkipUnknowns: true})
	require.NoError(t, err)
	assert.Equal(t, `Joi.object({"a": Joi.string().allow(""), "b": Joi.string().allow("")})`, code)
}

func TestEncodeCyclicSchema(t *testing.T) {
	node := &parser.Schema{Type: "object", Ref: "#/components/schemas/Node"}
	node.Properties = map[string]*parser.Schema{"next": node}

	_, err := Encode(node, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncoding)
	assert.ErrorIs(t, err, ErrCyclicSchema)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "#/properties/next", encErr.Path)
	assert.Contains(t, err.Error(), "#/components/schemas/Node")
}

func TestEncodeUnsupportedType(t *testing.T) {
	schema := &parser.Schema{
		Type:       "object",
		Properties: map[string]*parser.Schema{"a/b": {Type: "file"}},
	}

	_, err := Encode(schema, Options{})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, "#/properties/a~1b", encErr.Path)
}

func TestEncodeMaxDepth(t *testing.T) {
	schema := &parser.Schema{Type: "string"}
	for i := 0; i < 4; i++ {
		schema = &parser.Schema{Type: "array", Items: schema}
	}

	_, err := Encode(schema, Options{MaxDepth: 2})
	assert.ErrorIs(t, err, ErrMaxDepth)

	_, err = Encode(schema, Options{MaxDepth: 4})
	assert.NoError(t, err)
}

func TestEncodeDeepSchemaWithinDefaultDepth(t *testing.T) {
	schema := &parser.Schema{Type: "boolean"}
	for i := 0; i < 100; i++ {
		schema = &parser.Schema{Type: "array", Items: schema}
	}

	code, err := Encode(schema, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(code, "Joi.boolean()"+strings.Repeat(")", 100)))
}

func TestRule(t *testing.T) {
	rule := NewRule("Joi.string()").Call("min", "1").Allow(nil, "", 2)
	assert.True(t, rule.Has("allow"))
	assert.True(t, rule.Has("allow", "null"))
	assert.False(t, rule.Has("allow", "undefined"))
	assert.False(t, rule.Has("max"))
	assert.Equal(t, `Joi.string().min(1).allow(null, "", 2)`, rule.String())
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{nil, "null"},
		{"a<b>&c", `"a<b>&c"`},
		{float64(3), "3"},
		{1.25, "1.25"},
		{true, "true"},
		{[]any{"x", 1.0}, `["x",1]`},
		{map[string]any{"b": 1.0, "a": "z"}, `{"a":"z","b":1}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Literal(tt.input))
	}
}
