package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Style - подмножество опций Prettier, которое учитывает форматтер
type Style struct {
	PrintWidth     int    `yaml:"printWidth"`
	TabWidth       int    `yaml:"tabWidth"`
	UseTabs        bool   `yaml:"useTabs"`
	Semi           bool   `yaml:"semi"`
	SingleQuote    bool   `yaml:"singleQuote"`
	QuoteProps     string `yaml:"quoteProps"`    // as-needed, consistent, preserve
	TrailingComma  string `yaml:"trailingComma"` // all, es5, none
	BracketSpacing bool   `yaml:"bracketSpacing"`
}

// DefaultStyle совпадает с настройками Prettier по умолчанию
func DefaultStyle() Style {
	return Style{
		PrintWidth:     80,
		TabWidth:       2,
		Semi:           true,
		QuoteProps:     "as-needed",
		TrailingComma:  "all",
		BracketSpacing: true,
	}
}

func (s Style) validate() error {
	if s.PrintWidth <= 0 {
		return fmt.Errorf("printWidth must be positive, got %d", s.PrintWidth)
	}
	if s.TabWidth <= 0 {
		return fmt.Errorf("tabWidth must be positive, got %d", s.TabWidth)
	}
	switch s.QuoteProps {
	case "as-needed", "consistent", "preserve":
	default:
		return fmt.Errorf("unsupported quoteProps %q", s.QuoteProps)
	}
	switch s.TrailingComma {
	case "all", "es5", "none":
	default:
		return fmt.Errorf("unsupported trailingComma %q", s.TrailingComma)
	}
	return nil
}

// configNames перечисляет файлы, которые ищутся вверх по дереву каталогов
var configNames = []string{
	".prettierrc",
	".prettierrc.json",
	".prettierrc.yaml",
	".prettierrc.yml",
	"package.json",
}

var errNoPrettierKey = errors.New(`package.json has no "prettier" key`)

// ResolveStyle загружает конфигурацию Prettier.
// path может указывать на файл конфигурации, на каталог или на любой файл проекта:
// в последних двух случаях конфигурация ищется вверх по каталогам.
// Пустой path или отсутствие конфигурации дают DefaultStyle.
func ResolveStyle(path string) (Style, error) {
	if path == "" {
		return DefaultStyle(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return Style{}, &FormattingError{Err: fmt.Errorf("resolve style: %w", err)}
	}

	var style Style
	switch {
	case info.IsDir():
		style, err = searchStyle(path)
	case isConfigFile(path):
		style, err = loadStyle(path)
		if errors.Is(err, errNoPrettierKey) {
			style, err = searchStyle(filepath.Dir(path))
		}
	default:
		style, err = searchStyle(filepath.Dir(path))
	}
	if err != nil {
		return Style{}, &FormattingError{Err: fmt.Errorf("resolve style: %w", err)}
	}
	return style, nil
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	if base == "package.json" || strings.HasPrefix(base, ".prettierrc") {
		return true
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func searchStyle(dir string) (Style, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Style{}, err
	}
	for {
		for _, name := range configNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			style, err := loadStyle(candidate)
			if errors.Is(err, errNoPrettierKey) {
				continue
			}
			return style, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return DefaultStyle(), nil
		}
		dir = parent
	}
}

func loadStyle(path string) (Style, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".cjs", ".mjs", ".ts", ".toml", ".json5":
		return Style{}, fmt.Errorf("%s: unsupported configuration format", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, err
	}

	if filepath.Base(path) == "package.json" {
		var pkg map[string]json.RawMessage
		if err := json.Unmarshal(data, &pkg); err != nil {
			return Style{}, fmt.Errorf("%s: %w", path, err)
		}
		raw, ok := pkg["prettier"]
		if !ok {
			return Style{}, errNoPrettierKey
		}
		var shared string
		if json.Unmarshal(raw, &shared) == nil {
			return Style{}, fmt.Errorf("%s: shared configuration %q is not supported", path, shared)
		}
		data = raw
	}

	style := DefaultStyle()
	if err := yaml.Unmarshal(data, &style); err != nil {
		return Style{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := style.validate(); err != nil {
		return Style{}, fmt.Errorf("%s: %w", path, err)
	}
	return style, nil
}
