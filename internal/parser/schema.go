package parser

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// schemaConverter переводит схемы kin-openapi в Schema.
// Уже сконвертированные узлы переиспользуются, поэтому циклические $ref становятся циклами указателей.
type schemaConverter struct {
	seen map[*openapi3.Schema]*Schema
}

func newSchemaConverter() *schemaConverter {
	return &schemaConverter{seen: make(map[*openapi3.Schema]*Schema)}
}

func (c *schemaConverter) convert(ref *openapi3.SchemaRef) *Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	src := ref.Value
	if s, ok := c.seen[src]; ok {
		if s.Ref == "" {
			s.Ref = ref.Ref
		}
		return s
	}

	schema := &Schema{
		Ref:          ref.Ref,
		Format:       src.Format,
		Nullable:     src.Nullable,
		Title:        src.Title,
		Description:  src.Description,
		Default:      src.Default,
		Pattern:      src.Pattern,
		MinLength:    src.MinLength,
		MaxLength:    src.MaxLength,
		Min:          src.Min,
		Max:          src.Max,
		ExclusiveMin: src.ExclusiveMin,
		ExclusiveMax: src.ExclusiveMax,
		MultipleOf:   src.MultipleOf,
		MinItems:     src.MinItems,
		MaxItems:     src.MaxItems,
		UniqueItems:  src.UniqueItems,
		MinProps:     src.MinProps,
		MaxProps:     src.MaxProps,
	}
	c.seen[src] = schema

	// OpenAPI 3.1 допускает type: [string, "null"]
	if src.Type != nil {
		for _, t := range src.Type.Slice() {
			if t == "null" && len(src.Type.Slice()) > 1 {
				schema.Nullable = true
				continue
			}
			if schema.Type == "" {
				schema.Type = t
			}
		}
	}

	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}

	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]*Schema, len(src.Properties))
		for name, prop := range src.Properties {
			if converted := c.convert(prop); converted != nil {
				schema.Properties[name] = converted
			}
		}
	}

	schema.Items = c.convert(src.Items)

	if src.AdditionalProperties.Has != nil {
		has := *src.AdditionalProperties.Has
		schema.AdditionalProperties = &has
	}
	schema.AdditionalSchema = c.convert(src.AdditionalProperties.Schema)

	schema.AllOf = c.convertAll(src.AllOf)
	schema.OneOf = c.convertAll(src.OneOf)
	schema.AnyOf = c.convertAll(src.AnyOf)

	return schema
}

func (c *schemaConverter) convertAll(refs openapi3.SchemaRefs) []*Schema {
	var result []*Schema
	for _, ref := range refs {
		if s := c.convert(ref); s != nil {
			result = append(result, s)
		}
	}
	return result
}
