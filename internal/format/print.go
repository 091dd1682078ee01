package format

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Минимальное перекрытие ключа и значения, при котором есть смысл переносить значение
const minOverlapForBreak = 3

type assignmentLayout int

const (
	layoutFluid assignmentLayout = iota
	layoutBreakAfterOperator
	layoutNeverBreakAfterOperator
)

// builder переводит синтаксическое дерево в документ для печати
type builder struct {
	style  Style
	lastID int
}

func (b *builder) newID() int {
	b.lastID++
	return b.lastID
}

func (b *builder) semi() doc {
	if b.style.Semi {
		return ";"
	}
	return ""
}

func (b *builder) program(prog *program) doc {
	parts := concat{}
	for i, stmt := range prog.body {
		if i > 0 {
			parts = append(parts, hardline)
			if prog.blank[i] {
				parts = append(parts, hardline)
			}
		}
		parts = append(parts, b.statement(stmt))
	}
	if len(prog.body) > 0 {
		parts = append(parts, hardline)
	}
	return parts
}

func (b *builder) statement(stmt statement) doc {
	switch s := stmt.(type) {
	case *importDecl:
		return b.importDecl(s)
	case *varDecl:
		return b.varDecl(s)
	case *exportDecl:
		return concat{"export ", b.varDecl(s.decl)}
	case *exportDefault:
		return concat{"export default ", b.expr(s.expr), b.semi()}
	case *exprStmt:
		var printed doc
		if call, ok := s.expr.(*callExpr); ok {
			printed = b.call(call, true)
		} else {
			printed = b.expr(s.expr)
		}
		if !b.style.Semi && startsDangerously(s.expr) {
			return concat{";", printed}
		}
		return concat{printed, b.semi()}
	}
	return ""
}

// startsDangerously сообщает, что без точки с запятой инструкция склеится с предыдущей
func startsDangerously(expr expression) bool {
	for {
		switch e := expr.(type) {
		case *memberExpr:
			expr = e.object
		case *callExpr:
			expr = e.callee
		case *arrayExpr:
			return true
		case *unaryExpr:
			return e.op == "+" || e.op == "-"
		default:
			return false
		}
	}
}

func (b *builder) importDecl(decl *importDecl) doc {
	parts := concat{"import "}
	if decl.defaultName == "" && decl.namespace == "" && !decl.hasNamed {
		return concat{"import ", b.string(decl.source.raw), b.semi()}
	}

	if decl.defaultName != "" {
		parts = append(parts, decl.defaultName)
		if decl.namespace != "" || decl.hasNamed {
			parts = append(parts, ", ")
		}
	}
	if decl.namespace != "" {
		parts = append(parts, "* as ", decl.namespace)
	}
	if decl.hasNamed {
		parts = append(parts, b.importSpecifiers(decl.named))
	}
	return append(parts, " from ", b.string(decl.source.raw), b.semi())
}

func (b *builder) importSpecifiers(specs []importSpecifier) doc {
	if len(specs) == 0 {
		return "{}"
	}
	printed := make([]doc, len(specs))
	for i, spec := range specs {
		if spec.imported == spec.local {
			printed[i] = spec.imported
		} else {
			printed[i] = spec.imported + " as " + spec.local
		}
	}
	return newGroup(
		"{",
		indent(b.bracketLine(), join(concat{",", line}, printed)),
		ifBreak{breakContents: b.trailingComma(false)},
		b.bracketLine(),
		"}",
	)
}

func (b *builder) bracketLine() doc {
	if b.style.BracketSpacing {
		return line
	}
	return softline
}

// trailingComma возвращает запятую после последнего элемента;
// для аргументов вызова она допустима только при trailingComma: all
func (b *builder) trailingComma(arguments bool) string {
	switch b.style.TrailingComma {
	case "all":
		return ","
	case "es5":
		if !arguments {
			return ","
		}
	}
	return ""
}

func (b *builder) varDecl(decl *varDecl) doc {
	hasValue := false
	printed := make([]doc, len(decl.decls))
	for i, d := range decl.decls {
		if d.init == nil {
			printed[i] = d.name
			continue
		}
		hasValue = true
		printed[i] = b.assignment(d.name, " =", d.init, false)
	}

	sep := doc(line)
	if hasValue {
		sep = hardline
	}
	rest := concat{}
	for _, p := range printed[1:] {
		rest = append(rest, ",", sep, p)
	}
	return newGroup(decl.kind, " ", printed[0], indent(rest), b.semi())
}

// assignment раскладывает "left op right" так же, как Prettier раскладывает присваивания и свойства
func (b *builder) assignment(left string, op string, right expression, isProperty bool) doc {
	rightDoc := b.expr(right)
	switch b.chooseLayout(left, right, isProperty) {
	case layoutBreakAfterOperator:
		return newGroup(newGroup(left), op, newGroup(indent(line, rightDoc)))
	case layoutNeverBreakAfterOperator:
		return newGroup(newGroup(left), op, " ", rightDoc)
	}
	id := b.newID()
	return newGroup(
		newGroup(left),
		op,
		&group{contents: indent(line), id: id},
		indentIfBreak{contents: rightDoc, groupID: id},
	)
}

func (b *builder) chooseLayout(left string, right expression, isProperty bool) assignmentLayout {
	if isRequireCall(right) {
		return layoutNeverBreakAfterOperator
	}

	hasShortKey := isProperty && textWidth(left) < b.style.TabWidth+minOverlapForBreak

	if !hasShortKey {
		node := right
		for {
			u, ok := node.(*unaryExpr)
			if !ok {
				break
			}
			node = u.arg
		}
		if _, ok := node.(*stringLit); ok || b.isPoorlyBreakableChain(node, false) {
			return layoutBreakAfterOperator
		}
	}

	if hasShortKey || isBooleanOrNumber(right) {
		return layoutNeverBreakAfterOperator
	}
	return layoutFluid
}

func isRequireCall(expr expression) bool {
	call, ok := expr.(*callExpr)
	if !ok {
		return false
	}
	id, ok := call.callee.(*identifier)
	return ok && id.name == "require"
}

func isBooleanOrNumber(expr expression) bool {
	switch e := expr.(type) {
	case *numberLit:
		return true
	case *identifier:
		return e.name == "true" || e.name == "false"
	}
	return false
}

// isPoorlyBreakableChain: цепочка обращений и вызовов без аргументов
// или с единственным коротким аргументом
func (b *builder) isPoorlyBreakableChain(expr expression, deep bool) bool {
	switch e := expr.(type) {
	case *memberExpr:
		return b.isPoorlyBreakableChain(e.object, true)
	case *callExpr:
		if len(e.args) > 1 || (len(e.args) == 1 && !b.isLoneShortArgument(e.args[0])) {
			return false
		}
		return b.isPoorlyBreakableChain(e.callee, true)
	case *identifier:
		return deep
	}
	return false
}

func (b *builder) isLoneShortArgument(expr expression) bool {
	threshold := b.style.PrintWidth / 4
	switch e := expr.(type) {
	case *identifier:
		return textWidth(e.name) <= threshold
	case *numberLit:
		return true
	case *stringLit:
		return textWidth(b.string(e.raw)) <= threshold
	case *unaryExpr:
		return b.isLoneShortArgument(e.arg)
	case *objectExpr:
		return len(e.props) == 0
	case *arrayExpr:
		return len(e.elems) == 0
	}
	return false
}

func (b *builder) expr(expr expression) doc {
	switch e := expr.(type) {
	case *identifier:
		return e.name
	case *stringLit:
		return b.string(e.raw)
	case *numberLit:
		return printNumber(e.raw)
	case *unaryExpr:
		if inner, ok := e.arg.(*unaryExpr); ok && (inner.op == "+" || inner.op == "-") && (e.op == "+" || e.op == "-") {
			return concat{e.op, "(", b.expr(inner), ")"}
		}
		return concat{e.op, b.expr(e.arg)}
	case *spreadExpr:
		return concat{"...", b.expr(e.arg)}
	case *objectExpr:
		return b.object(e)
	case *arrayExpr:
		return b.array(e)
	case *memberExpr:
		return concat{b.expr(e.object), b.memberLookup(e)}
	case *callExpr:
		return b.call(e, false)
	case *newExpr:
		return concat{"new ", b.expr(e.callee), b.arguments(e.args)}
	}
	return ""
}

func (b *builder) memberLookup(m *memberExpr) doc {
	if m.index != nil {
		return concat{"[", b.expr(m.index), "]"}
	}
	return "." + m.property
}

func (b *builder) object(obj *objectExpr) doc {
	if len(obj.props) == 0 {
		return "{}"
	}

	quoteAll := b.style.QuoteProps == "consistent" && b.needsQuotedKeys(obj)
	parts := concat{}
	for i, prop := range obj.props {
		if i > 0 {
			parts = append(parts, ",", line)
			if obj.props[i-1].blankAfter {
				parts = append(parts, hardline)
			}
		}
		parts = append(parts, newGroup(b.property(prop, quoteAll)))
	}

	g := newGroup(
		"{",
		indent(b.bracketLine(), parts),
		ifBreak{breakContents: b.trailingComma(false)},
		b.bracketLine(),
		"}",
	)
	g.shouldBreak = obj.expanded
	return g
}

func (b *builder) property(prop *property, quoteAll bool) doc {
	if prop.spread {
		return concat{"...", b.expr(prop.value)}
	}
	if prop.computed {
		return concat{"[", b.expr(prop.key), "]: ", b.expr(prop.value)}
	}
	key := b.propertyKey(prop.key, quoteAll)
	if prop.shorthand {
		if quoteAll {
			return b.assignment(key, ":", prop.value, true)
		}
		return key
	}
	return b.assignment(key, ":", prop.value, true)
}

func (b *builder) propertyKey(key expression, quoteAll bool) string {
	switch k := key.(type) {
	case *identifier:
		if quoteAll {
			return b.string(k.name)
		}
		return k.name
	case *stringLit:
		if b.canUnquote(k) && (b.style.QuoteProps == "as-needed" || (b.style.QuoteProps == "consistent" && !quoteAll)) {
			return k.raw
		}
		return b.string(k.raw)
	case *numberLit:
		return printNumber(k.raw)
	}
	return ""
}

func (b *builder) canUnquote(key *stringLit) bool {
	return !strings.ContainsRune(key.raw, '\\') && isIdentifierName(key.raw)
}

// needsQuotedKeys сообщает, что хотя бы один ключ объекта нельзя записать без кавычек
func (b *builder) needsQuotedKeys(obj *objectExpr) bool {
	for _, prop := range obj.props {
		if prop.computed || prop.spread {
			continue
		}
		if key, ok := prop.key.(*stringLit); ok && !b.canUnquote(key) {
			return true
		}
	}
	return false
}

func (b *builder) array(arr *arrayExpr) doc {
	if len(arr.elems) == 0 {
		return "[]"
	}

	parts := concat{}
	for i, elem := range arr.elems {
		var printed doc = b.expr(elem.value)
		if elem.spread {
			printed = concat{"...", printed}
		}
		parts = append(parts, printed)
		if i < len(arr.elems)-1 {
			parts = append(parts, ",", line)
			if elem.blankAfter {
				parts = append(parts, softline)
			}
		}
	}

	g := newGroup(
		"[",
		indent(softline, parts),
		ifBreak{breakContents: b.trailingComma(false)},
		softline,
		"]",
	)
	g.shouldBreak = shouldBreakArray(arr)
	return g
}

// shouldBreakArray: массив из нескольких объектов или массивов, каждый больше чем с одним элементом
func shouldBreakArray(arr *arrayExpr) bool {
	if len(arr.elems) <= 1 {
		return false
	}
	for i, elem := range arr.elems {
		if elem.spread {
			return false
		}
		switch v := elem.value.(type) {
		case *objectExpr:
			if len(v.props) <= 1 {
				return false
			}
		case *arrayExpr:
			if len(v.elems) <= 1 {
				return false
			}
		default:
			return false
		}
		if i+1 < len(arr.elems) && !sameKind(elem.value, arr.elems[i+1].value) {
			return false
		}
	}
	return true
}

func sameKind(a, b expression) bool {
	switch a.(type) {
	case *objectExpr:
		_, ok := b.(*objectExpr)
		return ok
	case *arrayExpr:
		_, ok := b.(*arrayExpr)
		return ok
	}
	return false
}

func (b *builder) call(call *callExpr, statement bool) doc {
	if _, ok := call.callee.(*memberExpr); ok {
		return b.memberChain(call, statement)
	}
	contents := concat{b.expr(call.callee), b.arguments(call.args)}
	if _, ok := call.callee.(*callExpr); ok {
		return newGroup(contents...)
	}
	return contents
}

func (b *builder) arguments(args []expression) doc {
	if len(args) == 0 {
		return "()"
	}

	printed := make([]doc, len(args))
	anyBreak := false
	for i, arg := range args {
		printed[i] = b.expr(arg)
		if willBreak(printed[i]) {
			anyBreak = true
		}
	}
	separator := concat{",", line}
	trailing := b.trailingComma(true)

	allArgsBrokenOut := func() doc {
		return &group{
			contents:    concat{"(", indent(softline, join(separator, printed)), trailing, softline, ")"},
			shouldBreak: true,
		}
	}

	if shouldGroupLast(args) {
		last := len(printed) - 1
		for _, p := range printed[:last] {
			if willBreak(p) {
				return allArgsBrokenOut()
			}
		}

		hugged := make([]doc, len(printed))
		copy(hugged, printed)
		hugged[last] = &group{contents: printed[last], shouldBreak: true}

		var prefix doc = ""
		if anyBreak {
			prefix = breakParent{}
		}
		return concat{
			prefix,
			conditionalGroup(
				concat{"(", join(separator, printed), ")"},
				concat{"(", join(separator, hugged), ")"},
				allArgsBrokenOut(),
			),
		}
	}

	g := newGroup("(", indent(softline, join(separator, printed)), ifBreak{breakContents: trailing}, softline, ")")
	g.shouldBreak = anyBreak
	return g
}

// shouldGroupLast: последний аргумент - непустой объект или массив, который можно раскрыть на месте
func shouldGroupLast(args []expression) bool {
	last := args[len(args)-1]
	switch v := last.(type) {
	case *objectExpr:
		if len(v.props) == 0 {
			return false
		}
	case *arrayExpr:
		if len(v.elems) == 0 {
			return false
		}
		if len(args) > 1 && isConciselyPrintedArray(v) {
			return false
		}
	default:
		return false
	}
	if len(args) > 1 && sameKind(args[len(args)-2], last) {
		return false
	}
	return true
}

func isConciselyPrintedArray(arr *arrayExpr) bool {
	if len(arr.elems) <= 1 {
		return false
	}
	for _, elem := range arr.elems {
		value := elem.value
		if u, ok := value.(*unaryExpr); ok && (u.op == "-" || u.op == "+") {
			value = u.arg
		}
		if _, ok := value.(*numberLit); !ok || elem.spread {
			return false
		}
	}
	return true
}

// chainLink - звено цепочки a.b().c(): корень, обращение к свойству или вызов
type chainLink struct {
	root    expression
	member  *memberExpr
	call    *callExpr
	printed doc
}

func (l chainLink) isCall() bool {
	if l.call != nil {
		return true
	}
	_, ok := l.root.(*callExpr)
	return ok
}

func (l chainLink) isMember() bool {
	return l.member != nil
}

func (l chainLink) isComputedLiteral() bool {
	if l.member == nil || l.member.index == nil {
		return false
	}
	switch l.member.index.(type) {
	case *stringLit, *numberLit:
		return true
	}
	return false
}

func (l chainLink) args() []expression {
	if l.call != nil {
		return l.call.args
	}
	if call, ok := l.root.(*callExpr); ok {
		return call.args
	}
	return nil
}

func (b *builder) flattenChain(expr expression, links []chainLink) []chainLink {
	switch e := expr.(type) {
	case *callExpr:
		switch e.callee.(type) {
		case *memberExpr, *callExpr:
			links = append(links, chainLink{call: e, printed: b.arguments(e.args)})
			return b.flattenChain(e.callee, links)
		}
	case *memberExpr:
		links = append(links, chainLink{member: e, printed: b.memberLookup(e)})
		return b.flattenChain(e.object, links)
	}
	return append(links, chainLink{root: expr, printed: b.expr(expr)})
}

// memberChain печатает цепочку вызовов: в одну строку, если она помещается,
// иначе каждое звено после головы с новой строки.
func (b *builder) memberChain(call *callExpr, statement bool) doc {
	reversed := b.flattenChain(call, nil)
	links := make([]chainLink, len(reversed))
	for i, link := range reversed {
		links[len(reversed)-1-i] = link
	}

	// Голова: корень и идущие сразу за ним вызовы,
	// а если корень не вызов, то и все обращения кроме последнего
	head := []chainLink{links[0]}
	i := 1
	for ; i < len(links); i++ {
		if links[i].isCall() || links[i].isComputedLiteral() {
			head = append(head, links[i])
			continue
		}
		break
	}
	if !links[0].isCall() {
		for ; i+1 < len(links); i++ {
			if links[i].isMember() && links[i+1].isMember() {
				head = append(head, links[i])
				continue
			}
			break
		}
	}

	groups := [][]chainLink{head}
	var current []chainLink
	seenCall := false
	for ; i < len(links); i++ {
		link := links[i]
		if seenCall && link.isMember() {
			if link.isComputedLiteral() {
				current = append(current, link)
				continue
			}
			groups = append(groups, current)
			current = nil
			seenCall = false
		}
		if link.isCall() {
			seenCall = true
		}
		current = append(current, link)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	shouldMerge := len(groups) >= 2 && len(groups[1]) > 0 && b.shouldNotWrap(groups, statement)

	printedGroups := make([]doc, len(groups))
	for gi, g := range groups {
		printed := make(concat, len(g))
		for li, link := range g {
			printed[li] = link.printed
		}
		printedGroups[gi] = printed
	}
	oneLine := concat(printedGroups)

	cutoff := 2
	if shouldMerge {
		cutoff = 3
	}
	if len(groups) <= cutoff {
		return newGroup(oneLine...)
	}

	rest := printedGroups[1:]
	expanded := concat{printedGroups[0]}
	if shouldMerge {
		expanded = append(expanded, printedGroups[1])
		rest = printedGroups[2:]
	}
	if len(rest) > 0 {
		expanded = append(expanded, indent(newGroup(hardline, join(hardline, rest))))
	}

	calls := 0
	complexArgs := false
	for _, link := range links {
		if !link.isCall() {
			continue
		}
		calls++
		for _, arg := range link.args() {
			if !isSimpleCallArgument(arg, 0) {
				complexArgs = true
			}
		}
	}

	headBreaks := false
	for _, g := range printedGroups[:len(printedGroups)-1] {
		if willBreak(g) {
			headBreaks = true
		}
	}
	if (calls > 2 && complexArgs) || headBreaks {
		return newGroup(expanded...)
	}

	var prefix doc = ""
	if willBreak(oneLine) {
		prefix = breakParent{}
	}
	return concat{prefix, conditionalGroup(oneLine, expanded)}
}

// shouldNotWrap: короткий корень вроде фабрики Joi или this остаётся на одной строке с первым вызовом
func (b *builder) shouldNotWrap(groups [][]chainLink, statement bool) bool {
	hasComputed := len(groups[1]) > 0 && groups[1][0].isComputedLiteral()

	if len(groups[0]) == 1 {
		id, ok := groups[0][0].root.(*identifier)
		if !ok {
			return false
		}
		return id.name == "this" ||
			isFactory(id.name) ||
			(statement && textWidth(id.name) <= b.style.TabWidth) ||
			hasComputed
	}

	last := groups[0][len(groups[0])-1]
	return last.isMember() && last.member.index == nil && (isFactory(last.member.property) || hasComputed)
}

// isFactory: имя с заглавной буквы или из одних $ и _
func isFactory(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return true
	}
	return strings.Trim(name, "$_") == "" && name != ""
}

// isSimpleCallArgument ограничивает глубину вложенных вызовов, объектов и массивов
func isSimpleCallArgument(expr expression, depth int) bool {
	switch e := expr.(type) {
	case *identifier, *stringLit, *numberLit:
		return true
	case *objectExpr:
		for _, prop := range e.props {
			if prop.computed || prop.spread {
				return false
			}
			if !prop.shorthand && !isSimpleCallArgument(prop.value, depth+1) {
				return false
			}
		}
		return true
	case *arrayExpr:
		for _, elem := range e.elems {
			if elem.spread || !isSimpleCallArgument(elem.value, depth+1) {
				return false
			}
		}
		return true
	case *callExpr:
		return isSimpleCallee(e.callee, depth) && simpleArgs(e.args, depth)
	case *newExpr:
		return isSimpleCallee(e.callee, depth) && simpleArgs(e.args, depth)
	case *unaryExpr:
		return isSimpleCallArgument(e.arg, depth)
	case *memberExpr:
		if e.index != nil && !isSimpleCallArgument(e.index, depth) {
			return false
		}
		return isSimpleCallArgument(e.object, depth)
	}
	return false
}

func isSimpleCallee(callee expression, depth int) bool {
	return isSimpleCallArgument(callee, depth)
}

func simpleArgs(args []expression, depth int) bool {
	if len(args) > depth {
		return false
	}
	for _, arg := range args {
		if !isSimpleCallArgument(arg, depth+1) {
			return false
		}
	}
	return true
}

// string печатает строковый литерал в предпочтительных кавычках,
// если это не увеличивает число экранирований
func (b *builder) string(raw string) string {
	preferred, alternate := '"', '\''
	if b.style.SingleQuote {
		preferred, alternate = alternate, preferred
	}
	enclosing := preferred
	if strings.Count(raw, string(preferred)) > strings.Count(raw, string(alternate)) {
		enclosing = alternate
	}
	return makeString(raw, enclosing)
}

func makeString(raw string, enclosing rune) string {
	other := '"'
	if enclosing == '"' {
		other = '\''
	}

	var sb strings.Builder
	sb.Grow(len(raw) + 2)
	sb.WriteRune(enclosing)
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		i += size
		switch {
		case r == '\\' && i < len(raw):
			escaped, size := utf8.DecodeRuneInString(raw[i:])
			i += size
			switch {
			case escaped == other:
				sb.WriteRune(escaped)
			case keepEscape(escaped):
				sb.WriteRune('\\')
				sb.WriteRune(escaped)
			default:
				sb.WriteRune(escaped)
			}
		case r == enclosing:
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(enclosing)
	return sb.String()
}

// keepEscape: экранирование значимо и его нельзя убрать
func keepEscape(r rune) bool {
	switch {
	case r == '\n', r == '\r', r == '"', r == '\'', r == '\\':
		return true
	case r >= '0' && r <= '7':
		return true
	case strings.ContainsRune("bfnrtuvx", r):
		return true
	case r == '\u2028', r == '\u2029':
		return true
	}
	return false
}

// printNumber приводит числовой литерал к нормальной форме:
// нижний регистр, без лишних нулей, знака экспоненты и точки
func printNumber(raw string) string {
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") || strings.HasSuffix(lower, "n") {
		return lower
	}

	mantissa, exponent, hasExp := strings.Cut(lower, "e")
	if hasExp {
		sign := ""
		switch {
		case strings.HasPrefix(exponent, "+"):
			exponent = exponent[1:]
		case strings.HasPrefix(exponent, "-"):
			sign, exponent = "-", exponent[1:]
		}
		digits := strings.TrimLeft(exponent, "0")
		if digits == "" {
			hasExp = false
		} else {
			exponent = sign + digits
		}
	}

	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if whole, frac, ok := strings.Cut(mantissa, "."); ok {
		if trimmed := strings.TrimRight(frac, "0"); trimmed != "" {
			frac = trimmed
		} else if frac != "" {
			frac = "0"
		}
		if frac == "" {
			mantissa = whole
		} else {
			mantissa = whole + "." + frac
		}
	}

	if hasExp {
		return mantissa + "e" + exponent
	}
	return mantissa
}

// isIdentifierName сообщает, можно ли записать ключ объекта без кавычек
func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || r == '\u200c' || r == '\u200d') {
			continue
		}
		return false
	}
	return true
}
