package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrSourceRequired = errors.New("source document is required")
	ErrOutputRequired = errors.New("output file is required")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// DefaultTimeout ограничивает загрузку документа по сети
const DefaultTimeout = 30 * time.Second

type Config struct {
	Source             string `json:"source" yaml:"source"`
	Output             string `json:"output" yaml:"output"`
	PrettierConfigPath string `json:"prettierConfig" yaml:"prettierConfig"` // путь к конфигурации Prettier
	SkipDescriptions   bool   `json:"skipDescriptions" yaml:"skipDescriptions"`
	SkipUnknowns       bool   `json:"skipUnknowns" yaml:"skipUnknowns"` // не добавлять .unknown(true) к объектам
	StripHTML          bool   `json:"stripHtml" yaml:"stripHtml"`       // вырезать HTML из описаний
	Strict             bool   `json:"strict" yaml:"strict"`             // полная валидация OpenAPI
	Timeout            string `json:"timeout" yaml:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: DefaultTimeout.String(),
	}
}

// LoadFromFile читает конфиг в JSON, либо в YAML для .yaml/.yml
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return ErrSourceRequired
	}
	if c.Output == "" {
		return ErrOutputRequired
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration возвращает таймаут загрузки, пустое значение означает DefaultTimeout
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, c.Timeout)
	}
	return d, nil
}
