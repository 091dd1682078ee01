package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/truepill/openapi-to-joi/internal/config"
	"github.com/truepill/openapi-to-joi/internal/format"
	"github.com/truepill/openapi-to-joi/internal/joi"
	"github.com/truepill/openapi-to-joi/internal/parser"
)

// Generator генерирует модуль с Joi схемами
type Generator struct {
	cfg    *config.Config
	doc    *parser.Document
	logger *slog.Logger
}

type Option func(*Generator)

// WithLogger задаёт логгер, по умолчанию вывод отбрасывается
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New создаёт новый генератор
func New(cfg *config.Config, doc *parser.Document, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		doc:    doc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Options управляют кодированием схем в обеих секциях модуля
type Options struct {
	SkipDescriptions bool
	SkipUnknowns     bool
	StripHTML        bool
}

func (o Options) encoder(presence joi.Presence) joi.Options {
	opts := joi.Options{
		Presence:         presence,
		SkipDescriptions: o.SkipDescriptions,
		SkipUnknowns:     o.SkipUnknowns,
	}
	if o.StripHTML {
		opts.SanitizeDescription = joi.StripHTML
	}
	return opts
}

func (g *Generator) options() Options {
	return Options{
		SkipDescriptions: g.cfg.SkipDescriptions,
		SkipUnknowns:     g.cfg.SkipUnknowns,
		StripHTML:        g.cfg.StripHTML,
	}
}

// Code собирает текст модуля без форматирования
func (g *Generator) Code() (string, error) {
	opts := g.options()

	ops := qualifyingOperations(g.doc)
	seen := make(map[string]string, len(ops))
	for _, op := range ops {
		if prev, ok := seen[op.OperationID]; ok {
			g.logger.Warn("duplicate operationId, the later entry wins in the generated object",
				"operation_id", op.OperationID, "first", prev, "second", op.Method+" "+op.Path)
		}
		seen[op.OperationID] = op.Method + " " + op.Path
	}

	operations, err := OperationSchemas(g.doc, opts)
	if err != nil {
		return "", err
	}
	components, err := ComponentSchemas(g.doc, opts)
	if err != nil {
		return "", err
	}

	g.logger.Debug("schemas extracted", "operations", len(ops), "components", len(g.doc.Components))
	return AssembleModule(operations, components), nil
}

// Generate собирает модуль и приводит его к стилю Prettier
func (g *Generator) Generate() (string, error) {
	code, err := g.Code()
	if err != nil {
		return "", err
	}

	style, err := format.ResolveStyle(g.cfg.PrettierConfigPath)
	if err != nil {
		return "", err
	}

	out, err := format.Format(code, style)
	if err != nil {
		g.logger.Debug("generated module is not valid", "bytes", len(code))
		return "", err
	}

	g.logger.Debug("module formatted", "bytes", len(out))
	return out, nil
}

// Run загружает документ из cfg.Source и возвращает готовый модуль.
// Результат зависит только от содержимого документа и конфигурации.
func Run(ctx context.Context, cfg *config.Config, opts ...Option) (string, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return "", err
	}

	doc, err := parser.Parse(ctx, cfg.Source, &parser.ParseOptions{
		Strict:  cfg.Strict,
		Timeout: timeout,
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse spec: %w", err)
	}

	g := New(cfg, doc, opts...)
	g.logger.Debug("document loaded", "source", cfg.Source, "title", doc.Title, "paths", len(doc.Paths))
	return g.Generate()
}
