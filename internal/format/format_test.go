package format

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedModule = `
import Joi from "joi"

export const schemas = {
  parameters: {
    "getPet": {path: Joi.object({"id": Joi.string().allow("").required()}),query: Joi.object({}),header: Joi.object({}),cookie: Joi.object({})}
  },
  components: {
    "Pet": Joi.object({"name": Joi.string().allow("").allow(null)}).unknown(true)
  }
}`

func TestFormatGeneratedModule(t *testing.T) {
	expected := `import Joi from "joi";

export const schemas = {
  parameters: {
    getPet: {
      path: Joi.object({ id: Joi.string().allow("").required() }),
      query: Joi.object({}),
      header: Joi.object({}),
      cookie: Joi.object({}),
    },
  },
  components: {
    Pet: Joi.object({ name: Joi.string().allow("").allow(null) }).unknown(true),
  },
};
`
	out, err := Format(generatedModule, DefaultStyle())
	require.NoError(t, err)
	if diff := cmp.Diff(expected, out); diff != "" {
		t.Errorf("Format() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	first, err := Format(generatedModule, DefaultStyle())
	require.NoError(t, err)

	second, err := Format(first, DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatEmptyModule(t *testing.T) {
	out, err := Format(`
import Joi from "joi"

export const schemas = {
  parameters: {

  },
  components: {

  }
}`, DefaultStyle())
	require.NoError(t, err)
	assert.Equal(t, `import Joi from "joi";

export const schemas = {
  parameters: {},
  components: {},
};
`, out)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		style    func(*Style)
		expected string
	}{
		{
			name:     "member chain breaks after the factory call",
			input:    `const a = Joi.string().valid("alpha", "beta").label("Some label").description("Some description here")`,
			expected: "const a = Joi.string()\n  .valid(\"alpha\", \"beta\")\n  .label(\"Some label\")\n  .description(\"Some description here\");\n",
		},
		{
			name:     "short chain stays on one line",
			input:    `const a = Joi.number().integer().min(1)`,
			expected: "const a = Joi.number().integer().min(1);\n",
		},
		{
			name:     "last object argument is hugged",
			input:    `foo({alpha: "aaaaaaaaaaaaaaaaaaaa", beta: "bbbbbbbbbbbbbbbbbbbb", gamma: "cccccccccccccccccccc"})`,
			expected: "foo({\n  alpha: \"aaaaaaaaaaaaaaaaaaaa\",\n  beta: \"bbbbbbbbbbbbbbbbbbbb\",\n  gamma: \"cccccccccccccccccccc\",\n});\n",
		},
		{
			name:     "object expanded in source stays expanded",
			input:    "const o = {\n a: 1 }",
			expected: "const o = {\n  a: 1,\n};\n",
		},
		{
			name:     "quotes are normalized",
			input:    `const s = ['it\'s', "say \"hi\"", 'plain', "\d"]`,
			expected: "const s = [\"it's\", 'say \"hi\"', \"plain\", \"d\"];\n",
		},
		{
			name:     "numbers are normalized",
			input:    `const n = [1.50, .5, 0XFF, 1E+05, 10.0, 2.]`,
			expected: "const n = [1.5, 0.5, 0xff, 1e5, 10.0, 2];\n",
		},
		{
			name:     "quote props as needed",
			input:    `const o = {"a": 1, "b-c": 2, d: 3}`,
			expected: "const o = { a: 1, \"b-c\": 2, d: 3 };\n",
		},
		{
			name:     "quote props consistent",
			input:    `const o = {"a": 1, "b-c": 2, d: 3}`,
			style:    func(s *Style) { s.QuoteProps = "consistent" },
			expected: "const o = { \"a\": 1, \"b-c\": 2, \"d\": 3 };\n",
		},
		{
			name:     "quote props preserve",
			input:    `const o = {"a": 1, "b-c": 2, d: 3}`,
			style:    func(s *Style) { s.QuoteProps = "preserve" },
			expected: "const o = { \"a\": 1, \"b-c\": 2, d: 3 };\n",
		},
		{
			name:  "no semicolons with single quotes",
			input: "import Joi from \"joi\"\nexport const x = {a: \"b\"}",
			style: func(s *Style) {
				s.Semi = false
				s.SingleQuote = true
				s.BracketSpacing = false
			},
			expected: "import Joi from 'joi'\nexport const x = {a: 'b'}\n",
		},
		{
			name:  "tabs and no trailing commas",
			input: "const o = {\na: [1, 2]}",
			style: func(s *Style) {
				s.UseTabs = true
				s.TrailingComma = "none"
			},
			expected: "const o = {\n\ta: [1, 2]\n};\n",
		},
		{
			name:     "blank lines between statements are collapsed to one",
			input:    "const a = 1\n\n\n\nconst b = 2;;\nconst c = 3",
			expected: "const a = 1;\n\nconst b = 2;\nconst c = 3;\n",
		},
		{
			name:     "comments are dropped",
			input:    "// header\nconst a = /* inline */ 1",
			expected: "const a = 1;\n",
		},
		{
			name:     "regular expression constructor",
			input:    `const p = Joi.string().pattern(new RegExp("^[a-z]+\\d$"))`,
			expected: "const p = Joi.string().pattern(new RegExp(\"^[a-z]+\\\\d$\"));\n",
		},
		{
			name:     "export default",
			input:    "export default {'a': [ -1, +2 ]}",
			expected: "export default { a: [-1, +2] };\n",
		},
		{
			name:     "shorthand and computed properties",
			input:    `const o = {a, [key]: 1, ...rest}`,
			expected: "const o = { a, [key]: 1, ...rest };\n",
		},
		{
			name:     "imports",
			input:    `import * as path from 'path'; import def, {a, b as c} from "mod"; import "side-effect"`,
			expected: "import * as path from \"path\";\nimport def, { a, b as c } from \"mod\";\nimport \"side-effect\";\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := DefaultStyle()
			if tt.style != nil {
				tt.style(&style)
			}
			out, err := Format(tt.input, style)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestFormatZeroStyleUsesDefaults(t *testing.T) {
	out, err := Format(`const o = {'a': 1}`, Style{})
	require.NoError(t, err)
	assert.Equal(t, "const o = { a: 1 };\n", out)
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"unterminated object", "const x = {\n  a: 1,\n", 3},
		{"missing comma", "const x = {a: 1 b: 2}", 1},
		{"arrow functions are not supported", "const f = (a) => a", 1},
		{"template literals are not supported", "const t = `x`", 1},
		{"regular expression literals are not supported", "const a = 1\nconst r = /ab+c/", 2},
		{"optional chaining is not supported", "const a = b?.c", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.input, DefaultStyle())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormatting)

			var fe *FormattingError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.line, fe.Line)
			assert.Positive(t, fe.Column)
		})
	}
}

func TestFormatInvalidStyle(t *testing.T) {
	style := DefaultStyle()
	style.TrailingComma = "sometimes"

	_, err := Format(`const a = 1`, style)
	assert.ErrorIs(t, err, ErrFormatting)
}

func TestPrintNumber(t *testing.T) {
	tests := map[string]string{
		"1":       "1",
		"1.0":     "1.0",
		"1.500":   "1.5",
		".25":     "0.25",
		"5.":      "5",
		"1E+10":   "1e10",
		"2e-05":   "2e-5",
		"3e+00":   "3",
		"0XaB":    "0xab",
		"1_000":   "1_000",
		"10n":     "10n",
		"1.50e10": "1.5e10",
	}
	for raw, expected := range tests {
		assert.Equal(t, expected, printNumber(raw), raw)
	}
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 3, textWidth("abc"))
	assert.Equal(t, 4, textWidth("日本"))
	assert.Equal(t, 2, textWidth("éa"))
}
