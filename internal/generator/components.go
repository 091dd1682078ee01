package generator

import (
	"fmt"
	"strings"

	"github.com/truepill/openapi-to-joi/internal/joi"
	"github.com/truepill/openapi-to-joi/internal/parser"
)

// ComponentSchemas строит тело секции components в порядке документа.
// Уточнения типов и nullable передаются кодировщику и работают на любой глубине.
func ComponentSchemas(doc *parser.Document, opts Options) (string, error) {
	encOpts := opts.encoder(joi.PresenceNone)
	encOpts.RefineType = refineDateType
	encOpts.RefineRule = refineNullable

	fragments := make([]string, 0, len(doc.Components))
	for _, c := range doc.Components {
		code, err := joi.Encode(c.Schema, encOpts)
		if err != nil {
			return "", fmt.Errorf("component %q: %w", c.Name, err)
		}
		fragments = append(fragments, joi.Literal(c.Name)+": "+code)
	}
	return strings.Join(fragments, ","), nil
}

// refineDateType: строки с форматом date и date-time кодируются как Joi.date()
func refineDateType(typ, format string) string {
	if typ == "string" && (format == "date" || format == "date-time") {
		return "date"
	}
	return typ
}

func refineNullable(rule *joi.Rule, schema *parser.Schema) *joi.Rule {
	// enum с null уже пропускает null
	if schema.Nullable && !rule.Has("valid", "null") {
		return rule.Allow(nil)
	}
	return rule
}
