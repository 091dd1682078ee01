// Package format приводит сгенерированный модуль к стилю Prettier.
//
// Синтаксис проверяется esbuild, затем исходник разбирается парсером
// tdewolff/parse и печатается по алгоритму Prettier с учётом Style.
package format

import (
	"errors"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

// Format проверяет синтаксис src и печатает его в заданном стиле.
// Нулевой Style означает DefaultStyle.
func Format(src string, style Style) (string, error) {
	if style == (Style{}) {
		style = DefaultStyle()
	}
	if err := style.validate(); err != nil {
		return "", &FormattingError{Err: err}
	}

	if err := checkSyntax(src); err != nil {
		return "", err
	}

	prog, err := parseProgram(src)
	if err != nil {
		return "", err
	}

	b := &builder{style: style}
	return printDoc(b.program(prog), style), nil
}

// checkSyntax прогоняет исходник через парсер TypeScript из esbuild
func checkSyntax(src string) error {
	result := api.Transform(src, api.TransformOptions{
		Loader:   api.LoaderTS,
		LogLevel: api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	msg := result.Errors[0]
	fe := &FormattingError{Err: errors.New(msg.Text)}
	if msg.Location != nil {
		fe.Line = msg.Location.Line
		// esbuild считает колонки с нуля
		fe.Column = msg.Location.Column + 1
	}
	if extra := len(result.Errors) - 1; extra > 0 {
		fe.Err = fmt.Errorf("%s (and %d more)", msg.Text, extra)
	}
	return fe
}
