package joi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/truepill/openapi-to-joi/internal/parser"
)

// DefaultMaxDepth ограничивает вложенность схем.
// Циклы ловятся отдельно, предел нужен только против патологически глубоких документов.
const DefaultMaxDepth = 512

// Presence задаёт модификатор обязательности корневого правила
type Presence string

const (
	PresenceNone Presence = ""
	Required     Presence = "required"
	Optional     Presence = "optional"
)

// TypeRefiner подменяет объявленный тип узла перед кодированием
type TypeRefiner func(typ, format string) string

// RuleRefiner дополняет уже закодированное правило узла
type RuleRefiner func(rule *Rule, schema *parser.Schema) *Rule

type Options struct {
	Presence         Presence
	SkipDescriptions bool
	SkipUnknowns     bool

	// Уточнения применяются на каждом уровне вложенности
	RefineType TypeRefiner
	RefineRule RuleRefiner

	// SanitizeDescription обрабатывает текст описаний, например StripHTML
	SanitizeDescription func(string) string

	MaxDepth int
}

// Encode переводит схему в исходный код Joi правила
func Encode(schema *parser.Schema, opts Options) (string, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	e := &encoder{
		opts:   opts,
		active: make(map[*parser.Schema]bool),
	}

	rule, err := e.encode(schema, "#", 0)
	if err != nil {
		return "", err
	}
	if opts.Presence != PresenceNone {
		rule.Call(string(opts.Presence))
	}
	return rule.String(), nil
}

type encoder struct {
	opts Options
	// узлы на текущем пути обхода
	active map[*parser.Schema]bool
}

func (e *encoder) encode(s *parser.Schema, path string, depth int) (*Rule, error) {
	if s == nil {
		return NewRule("Joi.any()"), nil
	}
	if depth > e.opts.MaxDepth {
		return nil, &EncodingError{Path: path, Err: ErrMaxDepth}
	}
	if e.active[s] {
		return nil, &EncodingError{Path: path, Err: fmt.Errorf("%w: %s", ErrCyclicSchema, refOrPath(s, path))}
	}
	e.active[s] = true
	defer delete(e.active, s)

	var (
		rule *Rule
		err  error
	)
	if hasComposition(s) {
		rule, err = e.encodeComposition(s, path, depth)
	} else {
		rule, err = e.encodeTyped(s, path, depth)
	}
	if err != nil {
		return nil, err
	}

	e.applyCommon(rule, s)

	if e.opts.RefineRule != nil {
		rule = e.opts.RefineRule(rule, s)
	}
	return rule, nil
}

func (e *encoder) encodeTyped(s *parser.Schema, path string, depth int) (*Rule, error) {
	typ := declaredType(s)
	if e.opts.RefineType != nil {
		typ = e.opts.RefineType(typ, s.Format)
	}

	switch typ {
	case "string":
		return e.encodeString(s), nil
	case "date":
		return NewRule("Joi.date()"), nil
	case "integer":
		return e.encodeNumber(s, NewRule("Joi.number()").Call("integer")), nil
	case "number":
		return e.encodeNumber(s, NewRule("Joi.number()")), nil
	case "boolean":
		return NewRule("Joi.boolean()"), nil
	case "null":
		return NewRule("Joi.valid(null)"), nil
	case "array":
		return e.encodeArray(s, path, depth)
	case "object":
		return e.encodeObject(s, path, depth)
	case "":
		return NewRule("Joi.any()"), nil
	default:
		return nil, &EncodingError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedType, typ)}
	}
}

// declaredType выводит тип из структуры, если он не объявлен явно
func declaredType(s *parser.Schema) string {
	switch {
	case s.Type != "":
		return s.Type
	case len(s.Properties) > 0 || s.AdditionalSchema != nil:
		return "object"
	case s.Items != nil:
		return "array"
	}
	return ""
}

func (e *encoder) encodeString(s *parser.Schema) *Rule {
	if s.Format == "binary" {
		rule := NewRule("Joi.binary()")
		if s.MinLength > 0 {
			rule.Call("min", strconv.FormatUint(s.MinLength, 10))
		}
		if s.MaxLength != nil {
			rule.Call("max", strconv.FormatUint(*s.MaxLength, 10))
		}
		return rule
	}

	rule := NewRule("Joi.string()")
	switch s.Format {
	case "email":
		rule.Call("email")
	case "uri", "url":
		rule.Call("uri")
	case "uuid", "guid":
		rule.Call("guid")
	case "hostname":
		rule.Call("hostname")
	case "ipv4", "ipv6":
		rule.Call("ip", fmt.Sprintf("{version: [%s]}", Literal(s.Format)))
	case "byte":
		rule.Call("base64")
	case "date", "date-time":
		rule.Call("isoDate")
	}

	if s.Pattern != "" {
		rule.Call("pattern", "new RegExp("+Literal(s.Pattern)+")")
	}
	// Joi.string() по умолчанию не пропускает пустую строку
	if s.MinLength > 0 {
		rule.Call("min", strconv.FormatUint(s.MinLength, 10))
	} else if len(s.Enum) == 0 {
		rule.Allow("")
	}
	if s.MaxLength != nil {
		rule.Call("max", strconv.FormatUint(*s.MaxLength, 10))
	}
	return rule
}

func (e *encoder) encodeNumber(s *parser.Schema, rule *Rule) *Rule {
	if s.Min != nil {
		if s.ExclusiveMin {
			rule.Call("greater", Literal(*s.Min))
		} else {
			rule.Call("min", Literal(*s.Min))
		}
	}
	if s.Max != nil {
		if s.ExclusiveMax {
			rule.Call("less", Literal(*s.Max))
		} else {
			rule.Call("max", Literal(*s.Max))
		}
	}
	if s.MultipleOf != nil {
		rule.Call("multiple", Literal(*s.MultipleOf))
	}
	return rule
}

func (e *encoder) encodeArray(s *parser.Schema, path string, depth int) (*Rule, error) {
	rule := NewRule("Joi.array()")
	if s.Items != nil {
		item, err := e.encode(s.Items, path+"/items", depth+1)
		if err != nil {
			return nil, err
		}
		rule.Call("items", item.String())
	}
	if s.MinItems > 0 {
		rule.Call("min", strconv.FormatUint(s.MinItems, 10))
	}
	if s.MaxItems != nil {
		rule.Call("max", strconv.FormatUint(*s.MaxItems, 10))
	}
	if s.UniqueItems {
		rule.Call("unique")
	}
	return rule, nil
}

func (e *encoder) encodeObject(s *parser.Schema, path string, depth int) (*Rule, error) {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	keys := make([]string, 0, len(names))
	for _, name := range names {
		child, err := e.encode(s.Properties[name], path+"/properties/"+escapePointer(name), depth+1)
		if err != nil {
			return nil, err
		}
		if s.IsRequired(name) {
			child.Call("required")
		}
		keys = append(keys, Literal(name)+": "+child.String())
	}

	var rule *Rule
	if len(keys) > 0 {
		rule = NewRule("Joi.object({" + strings.Join(keys, ", ") + "})")
	} else {
		rule = NewRule("Joi.object()")
	}

	if s.AdditionalSchema != nil {
		value, err := e.encode(s.AdditionalSchema, path+"/additionalProperties", depth+1)
		if err != nil {
			return nil, err
		}
		rule.Call("pattern", "Joi.string()", value.String())
	} else if !e.opts.SkipUnknowns && (s.AdditionalProperties == nil || *s.AdditionalProperties) {
		rule.Call("unknown", "true")
	}

	if s.MinProps > 0 {
		rule.Call("min", strconv.FormatUint(s.MinProps, 10))
	}
	if s.MaxProps != nil {
		rule.Call("max", strconv.FormatUint(*s.MaxProps, 10))
	}
	return rule, nil
}

func hasComposition(s *parser.Schema) bool {
	return len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0
}

// encodeComposition кодирует allOf/oneOf/anyOf как Joi.alternatives().
// Для allOf собственные свойства узла становятся ещё одной альтернативой.
func (e *encoder) encodeComposition(s *parser.Schema, path string, depth int) (*Rule, error) {
	var (
		keyword string
		members []*parser.Schema
		match   string
	)
	switch {
	case len(s.AllOf) > 0:
		keyword, members, match = "allOf", s.AllOf, "all"
	case len(s.OneOf) > 0:
		keyword, members, match = "oneOf", s.OneOf, "one"
	default:
		keyword, members = "anyOf", s.AnyOf
	}

	var alternatives []string
	if keyword == "allOf" && declaredType(s) != "" {
		own, err := e.encodeTyped(s, path, depth)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, own.String())
	}

	for i, member := range members {
		child, err := e.encode(member, fmt.Sprintf("%s/%s/%d", path, keyword, i), depth+1)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, child.String())
	}

	rule := NewRule("Joi.alternatives()").Call("try", alternatives...)
	if match != "" {
		rule.Call("match", Literal(match))
	}
	return rule, nil
}

func (e *encoder) applyCommon(rule *Rule, s *parser.Schema) {
	if len(s.Enum) > 0 {
		rule.Call("valid", literals(s.Enum)...)
	}
	if s.Default != nil {
		rule.Call("default", Literal(s.Default))
	}
	if e.opts.SkipDescriptions {
		return
	}
	if title := e.describe(s.Title); title != "" {
		rule.Call("label", Literal(title))
	}
	if description := e.describe(s.Description); description != "" {
		rule.Call("description", Literal(description))
	}
}

func (e *encoder) describe(text string) string {
	if e.opts.SanitizeDescription != nil {
		text = e.opts.SanitizeDescription(text)
	}
	return strings.TrimSpace(text)
}

func refOrPath(s *parser.Schema, path string) string {
	if s.Ref != "" {
		return s.Ref
	}
	return path
}

func escapePointer(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	return strings.ReplaceAll(name, "/", "~1")
}
