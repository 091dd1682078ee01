package format

import (
	"errors"
	"fmt"
)

// ErrFormatting сопоставляется с любой ошибкой форматирования
var ErrFormatting = errors.New("formatting error")

// FormattingError описывает синтаксически неверный текст или неверный стиль
type FormattingError struct {
	Line   int // с единицы, 0 если позиция неизвестна
	Column int
	Err    error
}

func (e *FormattingError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format: %d:%d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("format: %v", e.Err)
}

func (e *FormattingError) Unwrap() error {
	return e.Err
}

func (e *FormattingError) Is(target error) bool {
	return target == ErrFormatting
}
