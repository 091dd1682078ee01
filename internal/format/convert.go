package format

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// parseProgram разбирает модуль парсером tdewolff/parse и переводит дерево
// в модель для печати. Дерево js не хранит позиций, поэтому пустые строки
// и раскрытые в исходнике объекты берутся из потока лексем того же пакета,
// который читается синхронно с обходом дерева.
func parseProgram(src string) (*program, error) {
	ast, err := js.Parse(parse.NewInputString(src), js.Options{})
	if err != nil {
		fe := &FormattingError{Err: err}
		var perr *parse.Error
		if errors.As(err, &perr) {
			fe.Line, fe.Column = perr.Line, perr.Column
			fe.Err = errors.New(perr.Message)
		}
		return nil, fe
	}

	c := &converter{lx: js.NewLexer(parse.NewInputString(src)), line: 1, col: 1}
	if err := c.advance(); err != nil {
		return nil, err
	}
	return c.program(ast.List)
}

// lexeme - значимая лексема с отметками о переводах строк перед ней
type lexeme struct {
	tt   js.TokenType
	text string
	line int
	col  int

	newlineBefore bool
	blankBefore   bool // перед лексемой есть пустая строка
}

func (l lexeme) eof() bool {
	return l.tt == js.ErrorToken
}

type converter struct {
	lx   *js.Lexer
	line int
	col  int
	cur  lexeme
}

// advance читает следующую значимую лексему, пропуская пробелы и комментарии
func (c *converter) advance() error {
	newlines := 0
	for {
		tt, data := c.lx.Next()
		switch tt {
		case js.ErrorToken:
			if err := c.lx.Err(); err != nil && err != io.EOF {
				return &FormattingError{Line: c.line, Column: c.col, Err: err}
			}
			c.cur = lexeme{tt: tt, line: c.line, col: c.col, newlineBefore: newlines > 0, blankBefore: newlines > 1}
			return nil
		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken, js.CommentLineTerminatorToken:
			newlines += strings.Count(string(data), "\n")
			c.move(data)
			continue
		}
		c.cur = lexeme{
			tt:            tt,
			text:          string(data),
			line:          c.line,
			col:           c.col,
			newlineBefore: newlines > 0,
			blankBefore:   newlines > 1,
		}
		c.move(data)
		return nil
	}
}

func (c *converter) move(data []byte) {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
	}
}

func (c *converter) errorf(format string, args ...any) error {
	return &FormattingError{Line: c.cur.line, Column: c.cur.col, Err: fmt.Errorf(format, args...)}
}

func (c *converter) is(text string) bool {
	return !c.cur.eof() && c.cur.text == text
}

// take сверяет текущую лексему с ожидаемым текстом и переходит к следующей
func (c *converter) take(text string) (lexeme, error) {
	tok := c.cur
	if !c.is(text) {
		if tok.eof() {
			return tok, c.errorf("expected %q, got end of input", text)
		}
		return tok, c.errorf("expected %q, got %q", text, tok.text)
	}
	return tok, c.advance()
}

// skip пропускает лексему text, если она стоит следующей
func (c *converter) skip(text string) error {
	if c.is(text) {
		return c.advance()
	}
	return nil
}

func (c *converter) program(list []js.IStmt) (*program, error) {
	prog := &program{}
	for _, stmt := range list {
		if _, ok := stmt.(*js.EmptyStmt); ok {
			continue
		}
		for c.is(";") {
			if err := c.advance(); err != nil {
				return nil, err
			}
		}

		blank := c.cur.blankBefore
		s, err := c.statement(stmt)
		if err != nil {
			return nil, err
		}
		if err := c.skip(";"); err != nil {
			return nil, err
		}
		prog.body = append(prog.body, s)
		prog.blank = append(prog.blank, blank && len(prog.body) > 1)
	}
	for c.is(";") {
		if err := c.advance(); err != nil {
			return nil, err
		}
	}
	if !c.cur.eof() {
		return nil, c.errorf("unexpected token %q", c.cur.text)
	}
	return prog, nil
}

func (c *converter) statement(stmt js.IStmt) (statement, error) {
	switch s := stmt.(type) {
	case *js.ImportStmt:
		return c.importStmt(s)
	case *js.ExportStmt:
		return c.exportStmt(s)
	case *js.VarDecl:
		return c.varDecl(s)
	case *js.ExprStmt:
		expr, err := c.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return &exprStmt{expr: expr}, nil
	}
	return nil, c.errorf("unsupported statement")
}

func (c *converter) importStmt(s *js.ImportStmt) (*importDecl, error) {
	if _, err := c.take("import"); err != nil {
		return nil, err
	}
	decl := &importDecl{}

	if c.cur.tt != js.StringToken {
		if len(s.Default) > 0 {
			decl.defaultName = string(s.Default)
			if _, err := c.take(decl.defaultName); err != nil {
				return nil, err
			}
			if err := c.skip(","); err != nil {
				return nil, err
			}
		}

		switch {
		case c.is("*"):
			for _, text := range []string{"*", "as"} {
				if _, err := c.take(text); err != nil {
					return nil, err
				}
			}
			decl.namespace = c.cur.text
			if err := c.advance(); err != nil {
				return nil, err
			}
		case c.is("{"):
			if err := c.importSpecifiers(decl, s.List); err != nil {
				return nil, err
			}
		}

		if _, err := c.take("from"); err != nil {
			return nil, err
		}
	}

	if c.cur.tt != js.StringToken {
		return nil, c.errorf("expected module name, got %q", c.cur.text)
	}
	source, err := c.takeString(c.cur.text)
	if err != nil {
		return nil, err
	}
	decl.source = source
	return decl, nil
}

func (c *converter) importSpecifiers(decl *importDecl, aliases []js.Alias) error {
	decl.hasNamed = true
	if _, err := c.take("{"); err != nil {
		return err
	}
	for _, alias := range aliases {
		if string(alias.Name) == "*" {
			continue
		}
		spec := importSpecifier{imported: string(alias.Name), local: string(alias.Binding)}
		if spec.imported == "" {
			spec.imported = spec.local
		}
		if spec.local == "" {
			spec.local = spec.imported
		}
		if _, err := c.take(spec.imported); err != nil {
			return err
		}
		if c.is("as") {
			if err := c.advance(); err != nil {
				return err
			}
			if _, err := c.take(spec.local); err != nil {
				return err
			}
		}
		if err := c.skip(","); err != nil {
			return err
		}
		decl.named = append(decl.named, spec)
	}
	_, err := c.take("}")
	return err
}

func (c *converter) takeString(raw string) (*stringLit, error) {
	if _, err := c.take(raw); err != nil {
		return nil, err
	}
	return &stringLit{raw: unquote(raw)}, nil
}

// unquote снимает кавычки, escape-последовательности остаются как в исходнике
func unquote(raw string) string {
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}

func (c *converter) exportStmt(s *js.ExportStmt) (statement, error) {
	if _, err := c.take("export"); err != nil {
		return nil, err
	}
	if s.Default {
		if _, err := c.take("default"); err != nil {
			return nil, err
		}
		expr, err := c.expr(s.Decl)
		if err != nil {
			return nil, err
		}
		return &exportDefault{expr: expr}, nil
	}
	if vd, ok := s.Decl.(*js.VarDecl); ok {
		decl, err := c.varDecl(vd)
		if err != nil {
			return nil, err
		}
		return &exportDecl{decl: decl}, nil
	}
	return nil, c.errorf("unsupported export")
}

func (c *converter) varDecl(s *js.VarDecl) (*varDecl, error) {
	kind := c.cur.text
	if kind != "const" && kind != "let" && kind != "var" {
		return nil, c.errorf("unexpected token %q", kind)
	}
	if err := c.advance(); err != nil {
		return nil, err
	}

	decl := &varDecl{kind: kind}
	for i, elem := range s.List {
		if i > 0 {
			if _, err := c.take(","); err != nil {
				return nil, err
			}
		}
		v, ok := elem.Binding.(*js.Var)
		if !ok {
			return nil, c.errorf("destructuring is not supported")
		}
		d := declarator{name: string(v.Data)}
		if _, err := c.take(d.name); err != nil {
			return nil, err
		}
		if elem.Default != nil {
			if _, err := c.take("="); err != nil {
				return nil, err
			}
			init, err := c.expr(elem.Default)
			if err != nil {
				return nil, err
			}
			d.init = init
		}
		decl.decls = append(decl.decls, d)
	}
	return decl, nil
}

// expr переводит выражение, продвигая поток лексем в порядке исходника
func (c *converter) expr(e js.IExpr) (expression, error) {
	switch e := e.(type) {
	case *js.Var:
		name := string(e.Data)
		if _, err := c.take(name); err != nil {
			return nil, err
		}
		return &identifier{name: name}, nil
	case js.LiteralExpr:
		return c.literal(e.Data)
	case *js.LiteralExpr:
		return c.literal(e.Data)
	case *js.GroupExpr:
		if _, err := c.take("("); err != nil {
			return nil, err
		}
		inner, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		_, err = c.take(")")
		return inner, err
	case *js.UnaryExpr:
		return c.unary(e)
	case *js.ObjectExpr:
		return c.object(e)
	case *js.ArrayExpr:
		return c.array(e)
	case *js.DotExpr:
		object, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		if _, err := c.take("."); err != nil {
			return nil, err
		}
		name := e.Y.String()
		if _, err := c.take(name); err != nil {
			return nil, err
		}
		return &memberExpr{object: object, property: name}, nil
	case *js.IndexExpr:
		object, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		if _, err := c.take("["); err != nil {
			return nil, err
		}
		index, err := c.expr(e.Y)
		if err != nil {
			return nil, err
		}
		if _, err := c.take("]"); err != nil {
			return nil, err
		}
		return &memberExpr{object: object, index: index}, nil
	case *js.CallExpr:
		callee, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		args, err := c.arguments(e.Args.List)
		if err != nil {
			return nil, err
		}
		return &callExpr{callee: callee, args: args}, nil
	case *js.NewExpr:
		if _, err := c.take("new"); err != nil {
			return nil, err
		}
		callee, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		n := &newExpr{callee: callee}
		if e.Args != nil {
			if n.args, err = c.arguments(e.Args.List); err != nil {
				return nil, err
			}
		}
		return n, nil
	case *js.ArrowFunc:
		return nil, c.errorf("arrow functions are not supported")
	case *js.TemplateExpr:
		return nil, c.errorf("template literals are not supported")
	}
	return nil, c.errorf("unsupported expression %q", c.cur.text)
}

// literal различает строки, числа и ключевые слова по первому символу
func (c *converter) literal(data []byte) (expression, error) {
	raw := string(data)
	if raw == "" {
		return nil, c.errorf("empty literal")
	}
	switch ch := raw[0]; {
	case ch == '"' || ch == '\'':
		return c.takeString(raw)
	case ch >= '0' && ch <= '9', ch == '.':
		if _, err := c.take(raw); err != nil {
			return nil, err
		}
		return &numberLit{raw: raw}, nil
	case ch == '/':
		return nil, c.errorf("regular expression literals are not supported")
	}
	// true, false, null, this
	if _, err := c.take(raw); err != nil {
		return nil, err
	}
	return &identifier{name: raw}, nil
}

func (c *converter) unary(e *js.UnaryExpr) (expression, error) {
	// префиксный оператор стоит в потоке лексем прямо перед операндом
	op := c.cur.text
	if op != "-" && op != "+" && op != "!" {
		return nil, c.errorf("unsupported operator %q", op)
	}
	if err := c.advance(); err != nil {
		return nil, err
	}
	arg, err := c.expr(e.X)
	if err != nil {
		return nil, err
	}
	return &unaryExpr{op: op, arg: arg}, nil
}

func (c *converter) arguments(list []js.Arg) ([]expression, error) {
	if _, err := c.take("("); err != nil {
		return nil, err
	}
	args := make([]expression, 0, len(list))
	for _, arg := range list {
		spread := arg.Rest
		if spread {
			if _, err := c.take("..."); err != nil {
				return nil, err
			}
		}
		value, err := c.expr(arg.Value)
		if err != nil {
			return nil, err
		}
		if spread {
			value = &spreadExpr{arg: value}
		}
		args = append(args, value)
		if err := c.skip(","); err != nil {
			return nil, err
		}
	}
	if _, err := c.take(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (c *converter) object(e *js.ObjectExpr) (*objectExpr, error) {
	if _, err := c.take("{"); err != nil {
		return nil, err
	}
	obj := &objectExpr{}
	if !c.is("}") {
		obj.expanded = c.cur.newlineBefore
	}

	for i := range e.List {
		prop, err := c.property(&e.List[i])
		if err != nil {
			return nil, err
		}
		obj.props = append(obj.props, prop)
		if c.is(",") {
			if err := c.advance(); err != nil {
				return nil, err
			}
			prop.blankAfter = c.cur.blankBefore && !c.is("}")
		}
	}
	if _, err := c.take("}"); err != nil {
		return nil, err
	}
	return obj, nil
}

func (c *converter) property(p *js.Property) (*property, error) {
	if p.Init != nil {
		return nil, c.errorf("unsupported property initializer")
	}
	if p.Spread {
		if _, err := c.take("..."); err != nil {
			return nil, err
		}
		value, err := c.expr(p.Value)
		if err != nil {
			return nil, err
		}
		return &property{spread: true, value: value}, nil
	}

	// сокращённая запись {name}
	if p.Name == nil {
		v, ok := p.Value.(*js.Var)
		if !ok {
			return nil, c.errorf("unsupported property")
		}
		id, err := c.expr(v)
		if err != nil {
			return nil, err
		}
		return &property{key: id, value: id, shorthand: true}, nil
	}

	prop := &property{}
	if p.Name.Computed != nil {
		if _, err := c.take("["); err != nil {
			return nil, err
		}
		key, err := c.expr(p.Name.Computed)
		if err != nil {
			return nil, err
		}
		if _, err := c.take("]"); err != nil {
			return nil, err
		}
		prop.key = key
		prop.computed = true
	} else {
		raw := string(p.Name.Literal.Data)
		if _, err := c.take(raw); err != nil {
			return nil, err
		}
		prop.key = propertyKey(raw)
	}

	if !c.is(":") {
		id, ok := prop.key.(*identifier)
		if !ok || prop.computed {
			_, err := c.take(":")
			return nil, err
		}
		prop.shorthand = true
		prop.value = id
		return prop, nil
	}
	if err := c.advance(); err != nil {
		return nil, err
	}
	value, err := c.expr(p.Value)
	if err != nil {
		return nil, err
	}
	prop.value = value
	return prop, nil
}

func propertyKey(raw string) expression {
	switch ch := raw[0]; {
	case ch == '"' || ch == '\'':
		return &stringLit{raw: unquote(raw)}
	case ch >= '0' && ch <= '9', ch == '.':
		return &numberLit{raw: raw}
	}
	return &identifier{name: raw}
}

func (c *converter) array(e *js.ArrayExpr) (*arrayExpr, error) {
	if _, err := c.take("["); err != nil {
		return nil, err
	}
	arr := &arrayExpr{}
	for _, el := range e.List {
		if el.Value == nil {
			return nil, c.errorf("array holes are not supported")
		}
		elem := &arrayElement{spread: el.Spread}
		if el.Spread {
			if _, err := c.take("..."); err != nil {
				return nil, err
			}
		}
		value, err := c.expr(el.Value)
		if err != nil {
			return nil, err
		}
		elem.value = value
		arr.elems = append(arr.elems, elem)
		if c.is(",") {
			if err := c.advance(); err != nil {
				return nil, err
			}
			elem.blankAfter = c.cur.blankBefore && !c.is("]")
		}
	}
	if _, err := c.take("]"); err != nil {
		return nil, err
	}
	return arr, nil
}
