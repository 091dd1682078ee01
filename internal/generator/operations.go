package generator

import (
	"fmt"
	"strings"

	"github.com/truepill/openapi-to-joi/internal/joi"
	"github.com/truepill/openapi-to-joi/internal/parser"
)

// parameterLocations - корзины параметров в порядке вывода
var parameterLocations = []string{"path", "query", "header", "cookie"}

// OperationSchemas строит тело секции parameters:
// по одному фрагменту на каждую операцию с operationId и параметрами
func OperationSchemas(doc *parser.Document, opts Options) (string, error) {
	var fragments []string
	for _, op := range qualifyingOperations(doc) {
		fragment, err := operationSchema(op, opts)
		if err != nil {
			return "", fmt.Errorf("operation %q: %w", op.OperationID, err)
		}
		fragments = append(fragments, fragment)
	}
	return strings.Join(fragments, ","), nil
}

// qualifyingOperations обходит пути в порядке документа, методы в каноническом порядке
func qualifyingOperations(doc *parser.Document) []parser.Operation {
	var ops []parser.Operation
	for _, item := range doc.Paths {
		for _, op := range item.Operations {
			if op.Qualifies() {
				ops = append(ops, op)
			}
		}
	}
	return ops
}

func operationSchema(op parser.Operation, opts Options) (string, error) {
	buckets := make(map[string][]string, len(parameterLocations))
	for _, p := range op.Parameters {
		// параметры с content вместо schema не кодируются
		if p.Schema == nil {
			continue
		}

		presence := joi.Optional
		if p.Required {
			presence = joi.Required
		}
		code, err := joi.Encode(p.Schema, opts.encoder(presence))
		if err != nil {
			return "", fmt.Errorf("parameter %q in %s: %w", p.Name, p.In, err)
		}
		buckets[p.In] = append(buckets[p.In], joi.Literal(p.Name)+": "+code)
	}

	parts := make([]string, len(parameterLocations))
	for i, loc := range parameterLocations {
		parts[i] = loc + ": Joi.object({" + strings.Join(buckets[loc], ",") + "})"
	}
	return joi.Literal(op.OperationID) + ": {" + strings.Join(parts, ",") + "}", nil
}
