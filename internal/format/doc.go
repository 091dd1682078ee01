package format

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Промежуточное представление документа в духе Prettier:
// печать выбирает для каждой группы плоский или разбитый режим.

type doc interface{}

type concat []doc

type indentDoc struct {
	contents doc
}

type lineDoc struct {
	soft bool // в плоском режиме ничего не печатает
	hard bool // всегда перевод строки
}

type group struct {
	contents    doc
	shouldBreak bool
	// альтернативы от самой плоской к самой разбитой
	expandedStates []doc
	id             int
}

type ifBreak struct {
	breakContents doc
	flatContents  doc
}

// indentIfBreak добавляет отступ, если группа с groupID разбита
type indentIfBreak struct {
	contents doc
	groupID  int
}

type breakParent struct{}

var (
	line     = lineDoc{}
	softline = lineDoc{soft: true}
	hardline = concat{lineDoc{hard: true}, breakParent{}}
)

func indent(contents ...doc) doc {
	return indentDoc{contents: concat(contents)}
}

func newGroup(contents ...doc) *group {
	return &group{contents: concat(contents)}
}

func conditionalGroup(states ...doc) *group {
	return &group{contents: states[0], expandedStates: states}
}

func join(sep doc, docs []doc) concat {
	out := make(concat, 0, len(docs)*2)
	for i, d := range docs {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, d)
	}
	return out
}

// willBreak сообщает, содержит ли документ принудительный перевод строки
func willBreak(d doc) bool {
	switch d := d.(type) {
	case concat:
		for _, part := range d {
			if willBreak(part) {
				return true
			}
		}
	case indentDoc:
		return willBreak(d.contents)
	case indentIfBreak:
		return willBreak(d.contents)
	case *group:
		return d.shouldBreak || willBreak(d.contents)
	case ifBreak:
		return willBreak(d.breakContents) || willBreak(d.flatContents)
	case lineDoc:
		return d.hard
	case breakParent:
		return true
	}
	return false
}

// propagateBreaks помечает разбитыми группы, внутри которых есть жёсткий перевод строки.
// Условные группы не помечаются и дальше разрыв не передают.
func propagateBreaks(d doc) bool {
	switch d := d.(type) {
	case concat:
		found := false
		for _, part := range d {
			if propagateBreaks(part) {
				found = true
			}
		}
		return found
	case indentDoc:
		return propagateBreaks(d.contents)
	case indentIfBreak:
		return propagateBreaks(d.contents)
	case ifBreak:
		a := propagateBreaks(d.breakContents)
		b := propagateBreaks(d.flatContents)
		return a || b
	case *group:
		if d.expandedStates != nil {
			for _, state := range d.expandedStates {
				propagateBreaks(state)
			}
			return d.shouldBreak
		}
		if propagateBreaks(d.contents) {
			d.shouldBreak = true
		}
		return d.shouldBreak
	case breakParent:
		return true
	}
	return false
}

type printMode int

const (
	modeBreak printMode = iota
	modeFlat
)

type command struct {
	indent int
	mode   printMode
	doc    doc
}

type printer struct {
	style     Style
	out       []byte
	pos       int
	groupMode map[int]printMode
}

func printDoc(d doc, style Style) string {
	propagateBreaks(d)

	p := &printer{style: style, groupMode: make(map[int]printMode)}
	cmds := []command{{indent: 0, mode: modeBreak, doc: d}}
	shouldRemeasure := false

	for len(cmds) > 0 {
		cmd := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := cmd.doc.(type) {
		case nil:
		case string:
			p.out = append(p.out, d...)
			p.pos += textWidth(d)

		case concat:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{indent: cmd.indent, mode: cmd.mode, doc: d[i]})
			}

		case indentDoc:
			cmds = append(cmds, command{indent: cmd.indent + 1, mode: cmd.mode, doc: d.contents})

		case indentIfBreak:
			level := cmd.indent
			if mode, ok := p.groupMode[d.groupID]; ok && mode == modeBreak {
				level++
			}
			cmds = append(cmds, command{indent: level, mode: cmd.mode, doc: d.contents})

		case ifBreak:
			contents := d.flatContents
			if cmd.mode == modeBreak {
				contents = d.breakContents
			}
			if contents != nil {
				cmds = append(cmds, command{indent: cmd.indent, mode: cmd.mode, doc: contents})
			}

		case breakParent:

		case *group:
			mode := p.printGroup(d, cmd, &cmds, shouldRemeasure)
			shouldRemeasure = false
			if d.id != 0 {
				p.groupMode[d.id] = mode
			}

		case lineDoc:
			if cmd.mode == modeFlat && !d.hard {
				if !d.soft {
					p.out = append(p.out, ' ')
					p.pos++
				}
				continue
			}
			if cmd.mode == modeFlat {
				shouldRemeasure = true
			}
			p.newline(cmd.indent)
		}
	}

	return string(p.out)
}

// printGroup выбирает режим группы и кладёт её содержимое на стек
func (p *printer) printGroup(g *group, cmd command, cmds *[]command, remeasure bool) printMode {
	if cmd.mode == modeFlat && !remeasure {
		mode := modeFlat
		if g.shouldBreak {
			mode = modeBreak
		}
		*cmds = append(*cmds, command{indent: cmd.indent, mode: mode, doc: g.contents})
		return mode
	}

	rem := p.style.PrintWidth - p.pos
	next := command{indent: cmd.indent, mode: modeFlat, doc: g.contents}
	if !g.shouldBreak && p.fits(next, *cmds, rem) {
		*cmds = append(*cmds, next)
		return modeFlat
	}

	if g.expandedStates == nil {
		*cmds = append(*cmds, command{indent: cmd.indent, mode: modeBreak, doc: g.contents})
		return modeBreak
	}

	if g.shouldBreak {
		mostExpanded := g.expandedStates[len(g.expandedStates)-1]
		*cmds = append(*cmds, command{indent: cmd.indent, mode: modeBreak, doc: mostExpanded})
		return modeBreak
	}
	for i := 1; i <= len(g.expandedStates); i++ {
		if i == len(g.expandedStates) {
			mostExpanded := g.expandedStates[i-1]
			*cmds = append(*cmds, command{indent: cmd.indent, mode: modeBreak, doc: mostExpanded})
			return modeBreak
		}
		candidate := command{indent: cmd.indent, mode: modeFlat, doc: g.expandedStates[i]}
		if p.fits(candidate, *cmds, rem) {
			*cmds = append(*cmds, candidate)
			return modeFlat
		}
	}
	return modeBreak
}

// fits проверяет, помещается ли next в остаток строки вместе с хвостом rest до первого переноса
func (p *printer) fits(next command, rest []command, rem int) bool {
	restIdx := len(rest)
	cmds := []command{next}

	for rem >= 0 {
		if len(cmds) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			cmds = append(cmds, rest[restIdx])
			continue
		}

		cmd := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := cmd.doc.(type) {
		case string:
			rem -= textWidth(d)
		case concat:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{mode: cmd.mode, doc: d[i]})
			}
		case indentDoc:
			cmds = append(cmds, command{mode: cmd.mode, doc: d.contents})
		case indentIfBreak:
			cmds = append(cmds, command{mode: cmd.mode, doc: d.contents})
		case *group:
			mode := cmd.mode
			if d.shouldBreak {
				mode = modeBreak
			}
			contents := d.contents
			if d.expandedStates != nil && mode == modeBreak {
				contents = d.expandedStates[len(d.expandedStates)-1]
			}
			cmds = append(cmds, command{mode: mode, doc: contents})
		case ifBreak:
			contents := d.flatContents
			if cmd.mode == modeBreak {
				contents = d.breakContents
			}
			if contents != nil {
				cmds = append(cmds, command{mode: cmd.mode, doc: contents})
			}
		case lineDoc:
			if cmd.mode == modeBreak || d.hard {
				return true
			}
			if !d.soft {
				rem--
			}
		}
	}
	return false
}

func (p *printer) newline(level int) {
	end := len(p.out)
	for end > 0 && (p.out[end-1] == ' ' || p.out[end-1] == '\t') {
		end--
	}
	p.out = append(p.out[:end], '\n')

	if p.style.UseTabs {
		p.out = append(p.out, strings.Repeat("\t", level)...)
	} else {
		p.out = append(p.out, strings.Repeat(" ", level*p.style.TabWidth)...)
	}
	p.pos = level * p.style.TabWidth
}

// textWidth считает ширину строки в колонках, широкие символы занимают две
func textWidth(s string) int {
	n := 0
	for _, r := range s {
		if r < utf8.RuneSelf {
			n++
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
