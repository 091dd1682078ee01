package joi

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Rule - Joi выражение: базовый вызов и цепочка модификаторов
type Rule struct {
	base  string
	calls []call
}

type call struct {
	method string
	args   []string
}

// NewRule создаёт правило из готового базового выражения, например Joi.string()
func NewRule(base string) *Rule {
	return &Rule{base: base}
}

// Call добавляет модификатор .method(args...). Аргументы - готовый JS код.
func (r *Rule) Call(method string, args ...string) *Rule {
	r.calls = append(r.calls, call{method: method, args: args})
	return r
}

// Allow добавляет .allow(values...) с литералами значений
func (r *Rule) Allow(values ...any) *Rule {
	return r.Call("allow", literals(values)...)
}

// Has сообщает, есть ли в цепочке модификатор method.
// Если передан arg, среди аргументов модификатора должен быть этот JS код.
func (r *Rule) Has(method string, arg ...string) bool {
	for _, c := range r.calls {
		if c.method != method {
			continue
		}
		if len(arg) == 0 {
			return true
		}
		for _, a := range c.args {
			if a == arg[0] {
				return true
			}
		}
	}
	return false
}

func (r *Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.base)
	for _, c := range r.calls {
		sb.WriteString(".")
		sb.WriteString(c.method)
		sb.WriteString("(")
		sb.WriteString(strings.Join(c.args, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

// Literal кодирует значение как JS литерал, совместимый с JSON.stringify
func Literal(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "undefined"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func literals(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Literal(v)
	}
	return out
}
