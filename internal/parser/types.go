package parser

// Document представляет разрешённую OpenAPI спецификацию.
// Порядок Paths и Components совпадает с порядком в исходном документе.
type Document struct {
	Title      string
	Version    string
	Paths      []PathItem
	Components []NamedSchema
}

// PathItem хранит операции одного пути в каноническом порядке методов
type PathItem struct {
	Path       string
	Operations []Operation
}

// Operation представляет один HTTP метод одного пути
type Operation struct {
	Method      string // get, put, post, delete, options, head, patch, trace
	Path        string
	OperationID string
	Parameters  []Parameter
}

// Qualifies сообщает, попадает ли операция в секцию parameters
func (o Operation) Qualifies() bool {
	return o.OperationID != "" && len(o.Parameters) > 0
}

// Parameter представляет параметр запроса
type Parameter struct {
	Name     string
	In       string // path, query, header, cookie
	Required bool
	Schema   *Schema // nil, если параметр описан через content
}

// NamedSchema представляет схему из components.schemas
type NamedSchema struct {
	Name   string
	Schema *Schema
}

// Schema представляет JSON Schema узел.
// После разыменования граф может содержать циклы.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Nullable    bool
	Title       string
	Description string
	Enum        []any
	Default     any

	// string
	Pattern   string
	MinLength uint64
	MaxLength *uint64

	// number, integer
	Min          *float64
	Max          *float64
	ExclusiveMin bool
	ExclusiveMax bool
	MultipleOf   *float64

	// array
	Items       *Schema
	MinItems    uint64
	MaxItems    *uint64
	UniqueItems bool

	// object
	Properties           map[string]*Schema
	Required             []string
	AdditionalProperties *bool
	AdditionalSchema     *Schema
	MinProps             uint64
	MaxProps             *uint64

	AllOf []*Schema
	OneOf []*Schema
	AnyOf []*Schema
}

// IsRequired сообщает, перечислено ли свойство в required
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}
