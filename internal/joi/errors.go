package joi

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding сопоставляется с любой ошибкой кодирования схемы
	ErrEncoding = errors.New("schema encoding error")

	ErrUnsupportedType = errors.New("unsupported schema type")
	ErrCyclicSchema    = errors.New("cyclic schema")
	ErrMaxDepth        = errors.New("schema nesting too deep")
)

// EncodingError указывает на узел схемы, который не удалось закодировать
type EncodingError struct {
	Path string // JSON pointer относительно корня кодируемой схемы
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode schema at %s: %v", e.Path, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}
