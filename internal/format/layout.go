package format

// Модель для печати. Строится из дерева tdewolff/parse/js и дополняет его
// тем, что нужно раскладке: пустыми строками и раскрытыми в исходнике объектами.

type statement interface{ stmtNode() }

type expression interface{ exprNode() }

type program struct {
	body []statement
	// blank[i] - перед i-й инструкцией в исходнике была пустая строка
	blank []bool
}

type importSpecifier struct {
	imported string
	local    string
}

type importDecl struct {
	defaultName string
	namespace   string
	named       []importSpecifier
	hasNamed    bool
	source      *stringLit
}

type declarator struct {
	name string
	init expression
}

type varDecl struct {
	kind  string // const, let, var
	decls []declarator
}

type exportDecl struct {
	decl *varDecl
}

type exportDefault struct {
	expr expression
}

type exprStmt struct {
	expr expression
}

func (*importDecl) stmtNode()    {}
func (*varDecl) stmtNode()       {}
func (*exportDecl) stmtNode()    {}
func (*exportDefault) stmtNode() {}
func (*exprStmt) stmtNode()      {}

type identifier struct {
	name string
}

type stringLit struct {
	raw string // содержимое без кавычек, escape-последовательности как в исходнике
}

type numberLit struct {
	raw string
}

type property struct {
	key       expression // identifier, stringLit или numberLit
	computed  bool
	value     expression
	shorthand bool
	spread    bool
	// после свойства в исходнике была пустая строка
	blankAfter bool
}

type objectExpr struct {
	props []*property
	// между "{" и первым ключом был перевод строки
	expanded bool
}

type arrayElement struct {
	value      expression
	spread     bool
	blankAfter bool
}

type arrayExpr struct {
	elems []*arrayElement
}

type memberExpr struct {
	object   expression
	property string     // для obj.name
	index    expression // для obj[expr]
}

type callExpr struct {
	callee expression
	args   []expression
}

type newExpr struct {
	callee expression
	args   []expression
}

type unaryExpr struct {
	op  string
	arg expression
}

type spreadExpr struct {
	arg expression
}

func (*identifier) exprNode() {}
func (*stringLit) exprNode()  {}
func (*numberLit) exprNode()  {}
func (*objectExpr) exprNode() {}
func (*arrayExpr) exprNode()  {}
func (*memberExpr) exprNode() {}
func (*callExpr) exprNode()   {}
func (*newExpr) exprNode()    {}
func (*unaryExpr) exprNode()  {}
func (*spreadExpr) exprNode() {}
