package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrDocument сопоставляется с любой ошибкой загрузки документа
var ErrDocument = errors.New("openapi document error")

// DocumentError описывает нечитаемый, невалидный или неразрешимый документ
type DocumentError struct {
	Source string
	Err    error
}

func (e *DocumentError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("openapi document: %v", e.Err)
	}
	return fmt.Sprintf("openapi document %s: %v", e.Source, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

func (e *DocumentError) Is(target error) bool {
	return target == ErrDocument
}

// ParseOptions опции парсинга
type ParseOptions struct {
	// Strict включает полную валидацию спецификации
	Strict bool
	// Timeout ограничивает загрузку по HTTP, по умолчанию 30 секунд
	Timeout time.Duration
	// HTTPClient заменяет клиент для загрузки по URL
	HTTPClient *http.Client
}

// canonicalMethods задаёт порядок обхода методов внутри пути
var canonicalMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Parse загружает OpenAPI спецификацию из файла или URL и разрешает все $ref
func Parse(ctx context.Context, source string, opts *ParseOptions) (*Document, error) {
	if opts == nil {
		opts = &ParseOptions{}
	}

	data, location, err := readSource(ctx, source, opts)
	if err != nil {
		return nil, &DocumentError{Source: source, Err: err}
	}

	doc, err := load(ctx, data, location, opts)
	if err != nil {
		return nil, &DocumentError{Source: source, Err: err}
	}
	return doc, nil
}

// ParseData разбирает документ из памяти. Относительные внешние $ref не поддерживаются.
func ParseData(ctx context.Context, data []byte, opts *ParseOptions) (*Document, error) {
	if opts == nil {
		opts = &ParseOptions{}
	}
	doc, err := load(ctx, data, nil, opts)
	if err != nil {
		return nil, &DocumentError{Err: err}
	}
	return doc, nil
}

func load(ctx context.Context, data []byte, location *url.URL, opts *ParseOptions) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	var (
		spec *openapi3.T
		err  error
	)
	if location != nil {
		spec, err = loader.LoadFromDataWithPath(data, location)
	} else {
		spec, err = loader.LoadFromData(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	if err := checkStructure(spec); err != nil {
		return nil, err
	}

	if opts.Strict {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
		}
	}

	return convertDocument(spec, readKeyOrder(data)), nil
}

// checkStructure проверяет только минимальную форму документа
func checkStructure(spec *openapi3.T) error {
	if spec.OpenAPI == "" {
		return errors.New(`missing "openapi" field`)
	}
	if !strings.HasPrefix(spec.OpenAPI, "3.") {
		return fmt.Errorf("unsupported OpenAPI version %q", spec.OpenAPI)
	}
	if spec.Info == nil {
		return errors.New(`missing "info" field`)
	}
	if spec.Paths == nil {
		return errors.New(`missing "paths" field`)
	}
	return nil
}

func readSource(ctx context.Context, source string, opts *ParseOptions) ([]byte, *url.URL, error) {
	if source == "" {
		return nil, nil, errors.New("source is empty")
	}
	if isURL(source) {
		return readURL(ctx, source, opts)
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, nil, err
	}
	return data, &url.URL{Path: filepath.ToSlash(abs)}, nil
}

func readURL(ctx context.Context, rawURL string, opts *ParseOptions) ([]byte, *url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid URL: %w", err)
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return data, u, nil
}

// componentRef строит JSON pointer на схему из components.schemas
func componentRef(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	return "#/components/schemas/" + strings.ReplaceAll(name, "/", "~1")
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func convertDocument(spec *openapi3.T, order keyOrder) *Document {
	doc := &Document{
		Title:   spec.Info.Title,
		Version: spec.Info.Version,
	}

	conv := newSchemaConverter()

	pathItems := spec.Paths.Map()
	for _, path := range orderedKeys(pathItems, order.paths) {
		item := pathItems[path]
		if item == nil {
			continue
		}
		doc.Paths = append(doc.Paths, convertPathItem(conv, path, item))
	}

	if spec.Components != nil {
		for _, name := range orderedKeys(spec.Components.Schemas, order.schemas) {
			schema := conv.convert(spec.Components.Schemas[name])
			if schema != nil && schema.Ref == "" {
				schema.Ref = componentRef(name)
			}
			doc.Components = append(doc.Components, NamedSchema{
				Name:   name,
				Schema: schema,
			})
		}
	}

	return doc
}

func convertPathItem(conv *schemaConverter, path string, item *openapi3.PathItem) PathItem {
	result := PathItem{Path: path}
	for _, method := range canonicalMethods {
		op := item.GetOperation(strings.ToUpper(method))
		if op == nil {
			continue
		}
		result.Operations = append(result.Operations, convertOperation(conv, path, method, op))
	}
	return result
}

func convertOperation(conv *schemaConverter, path, method string, op *openapi3.Operation) Operation {
	operation := Operation{
		Method:      method,
		Path:        path,
		OperationID: op.OperationID,
	}

	for _, paramRef := range op.Parameters {
		if paramRef == nil || paramRef.Value == nil {
			continue
		}
		operation.Parameters = append(operation.Parameters, convertParameter(conv, paramRef.Value))
	}

	return operation
}

func convertParameter(conv *schemaConverter, p *openapi3.Parameter) Parameter {
	return Parameter{
		Name:     p.Name,
		In:       p.In,
		Required: p.Required,
		Schema:   conv.convert(p.Schema),
	}
}
