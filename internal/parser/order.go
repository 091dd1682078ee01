package parser

import (
	"bytes"
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// keyOrder хранит порядок ключей paths и components.schemas исходного документа.
// kin-openapi держит их в map, поэтому порядок восстанавливается из сырых байт.
type keyOrder struct {
	paths   []string
	schemas []string
}

func (o *keyOrder) record(path []string, key string) {
	switch {
	case len(path) == 1 && path[0] == "paths":
		o.paths = append(o.paths, key)
	case len(path) == 2 && path[0] == "components" && path[1] == "schemas":
		o.schemas = append(o.schemas, key)
	}
}

// readKeyOrder не возвращает ошибок: при неудаче порядок будет лексическим
func readKeyOrder(data []byte) keyOrder {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if order, err := jsonKeyOrder(trimmed); err == nil {
			return order
		}
	}
	order, err := yamlKeyOrder(data)
	if err != nil {
		return keyOrder{}
	}
	return order
}

func jsonKeyOrder(data []byte) (keyOrder, error) {
	var order keyOrder
	dec := json.NewDecoder(bytes.NewReader(data))

	var walk func(path []string) error
	walk = func(path []string) error {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		delim, ok := tok.(json.Delim)
		if !ok {
			return nil
		}

		switch delim {
		case '{':
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				key, _ := keyTok.(string)
				order.record(path, key)
				if err := walk(append(path[:len(path):len(path)], key)); err != nil {
					return err
				}
			}
		case '[':
			for dec.More() {
				if err := walk(append(path[:len(path):len(path)], "[]")); err != nil {
					return err
				}
			}
		}

		// закрывающая скобка
		_, err = dec.Token()
		return err
	}

	return order, walk(nil)
}

func yamlKeyOrder(data []byte) (keyOrder, error) {
	var order keyOrder
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return order, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return order, nil
	}

	top := root.Content[0]
	if paths := mappingValue(top, "paths"); paths != nil {
		order.paths = mappingKeys(paths)
	}
	if components := mappingValue(top, "components"); components != nil {
		if schemas := mappingValue(components, "schemas"); schemas != nil {
			order.schemas = mappingKeys(schemas)
		}
	}
	return order, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func mappingKeys(node *yaml.Node) []string {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// orderedKeys возвращает ключи m в порядке документа, остальные - по алфавиту
func orderedKeys[V any](m map[string]V, order []string) []string {
	keys := make([]string, 0, len(m))
	used := make(map[string]bool, len(m))
	for _, key := range order {
		if _, ok := m[key]; ok && !used[key] {
			keys = append(keys, key)
			used[key] = true
		}
	}

	var rest []string
	for key := range m {
		if !used[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
