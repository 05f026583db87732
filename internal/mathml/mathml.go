// Package mathml converts LaTeX math notation to presentation MathML.
// It covers the subset course materials use: scripts, fractions, roots,
// accents, big operators with limits, greek letters, and the common
// relation and arrow symbols. Constructs outside the subset fail with
// ErrUnsupported so the renderer can fall back to a placeholder.
package mathml

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported reports a math construct with no MathML mapping here.
var ErrUnsupported = errors.New("unsupported math construct")

const mathmlNamespace = "http://www.w3.org/1998/Math/MathML"

// Convert turns one LaTeX math expression into a <math> element. Display
// style affects limit placement on big operators and the display
// attribute of the element.
func Convert(src string, display bool) (string, error) {
	toks, err := lex(src)
	if err != nil {
		return "", err
	}
	p := &parser{toks: toks, display: display}
	body, err := p.parseRow(tokEOF)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<math xmlns="` + mathmlNamespace + `"`)
	if display {
		b.WriteString(` display="block"`)
	}
	b.WriteString(">")
	body.write(&b)
	b.WriteString("</math>")
	return b.String(), nil
}

// node is one MathML element. Leaves carry text, containers children.
type node struct {
	tag      string
	text     string
	attrs    [][2]string
	children []*node
}

func leafNode(tag, text string) *node { return &node{tag: tag, text: text} }

func rowOf(children []*node) *node {
	if len(children) == 1 {
		return children[0]
	}
	return &node{tag: "mrow", children: children}
}

func (n *node) withAttr(key, val string) *node {
	n.attrs = append(n.attrs, [2]string{key, val})
	return n
}

func (n *node) write(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, a := range n.attrs {
		b.WriteByte(' ')
		b.WriteString(a[0])
		b.WriteString(`="`)
		b.WriteString(escapeText(a[1]))
		b.WriteString(`"`)
	}
	if n.tag == "mspace" {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if len(n.children) > 0 {
		for _, c := range n.children {
			c.write(b)
		}
	} else {
		b.WriteString(escapeText(n.text))
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// Tokens.

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokCommand
	tokOpen
	tokClose
	tokSup
	tokSub
	tokChar
	tokNumber
	tokAlign
	tokSpace
)

type token struct {
	kind tokenKind
	text string
}

func lex(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("%w: trailing backslash", ErrUnsupported)
			}
			next := runes[i+1]
			if isLetter(next) {
				j := i + 1
				for j < len(runes) && isLetter(runes[j]) {
					j++
				}
				toks = append(toks, token{tokCommand, string(runes[i+1 : j])})
				i = j - 1
			} else {
				// Escaped single character: \{ \} \, \\ and friends.
				toks = append(toks, token{tokCommand, string(next)})
				i++
			}
		case r == '{':
			toks = append(toks, token{kind: tokOpen})
		case r == '}':
			toks = append(toks, token{kind: tokClose})
		case r == '^':
			toks = append(toks, token{kind: tokSup})
		case r == '_':
			toks = append(toks, token{kind: tokSub})
		case r == '&':
			toks = append(toks, token{kind: tokAlign})
		case r == '%':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if len(toks) == 0 || toks[len(toks)-1].kind != tokSpace {
				toks = append(toks, token{kind: tokSpace})
			}
		case r >= '0' && r <= '9':
			j := i
			for j < len(runes) && (runes[j] >= '0' && runes[j] <= '9' || runes[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNumber, string(runes[i:j])})
			i = j - 1
		default:
			toks = append(toks, token{tokChar, string(r)})
		}
	}
	return append(toks, token{kind: tokEOF}), nil
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}

// Parser.

type parser struct {
	toks    []token
	pos     int
	display bool
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) skipSpaces() {
	for p.peek().kind == tokSpace {
		p.next()
	}
}

// parseRow consumes atoms until the terminator kind, leaving the
// terminator unconsumed for tokEOF and consuming it for tokClose.
func (p *parser) parseRow(until tokenKind) (*node, error) {
	var children []*node
	for {
		t := p.peek()
		if t.kind == until {
			if until == tokClose {
				p.next()
			}
			return rowOf(children), nil
		}
		if t.kind == tokEOF {
			return nil, fmt.Errorf("%w: unbalanced group", ErrUnsupported)
		}
		if t.kind == tokAlign || t.kind == tokSpace {
			// Alignment points carry layout, not content, and
			// whitespace is insignificant in math mode.
			p.next()
			continue
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		if atom != nil {
			children = append(children, atom)
		}
	}
}

// parseAtom parses one base with optional attached sub/superscripts.
func (p *parser) parseAtom() (*node, error) {
	base, err := p.parseBase()
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, nil
	}

	var sub, sup *node
	for {
		p.skipSpaces()
		switch p.peek().kind {
		case tokSub:
			if sub != nil {
				return nil, fmt.Errorf("%w: double subscript", ErrUnsupported)
			}
			p.next()
			if sub, err = p.parseGroupOrSingle(); err != nil {
				return nil, err
			}
			continue
		case tokSup:
			if sup != nil {
				return nil, fmt.Errorf("%w: double superscript", ErrUnsupported)
			}
			p.next()
			if sup, err = p.parseGroupOrSingle(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	return scripted(base, sub, sup, p.display), nil
}

// scripted attaches scripts to a base, choosing under/over placement for
// big operators in display style.
func scripted(base, sub, sup *node, display bool) *node {
	if sub == nil && sup == nil {
		return base
	}
	limits := display && isLimitOperator(base)
	switch {
	case sub != nil && sup != nil:
		tag := "msubsup"
		if limits {
			tag = "munderover"
		}
		return &node{tag: tag, children: []*node{base, sub, sup}}
	case sub != nil:
		tag := "msub"
		if limits {
			tag = "munder"
		}
		return &node{tag: tag, children: []*node{base, sub}}
	default:
		tag := "msup"
		if limits {
			tag = "mover"
		}
		return &node{tag: tag, children: []*node{base, sup}}
	}
}

func isLimitOperator(n *node) bool {
	if n.tag != "mo" && n.tag != "mi" {
		return false
	}
	return limitOperators[n.text]
}

// parseGroupOrSingle parses a script argument: a braced group or one
// atom base.
func (p *parser) parseGroupOrSingle() (*node, error) {
	p.skipSpaces()
	if p.peek().kind == tokOpen {
		p.next()
		return p.parseRow(tokClose)
	}
	return p.parseBase()
}

// parseGroup requires a braced argument, as in \frac{a}{b}.
func (p *parser) parseGroup(command string) (*node, error) {
	p.skipSpaces()
	if p.peek().kind != tokOpen {
		return nil, fmt.Errorf("%w: \\%s missing a braced argument", ErrUnsupported, command)
	}
	p.next()
	return p.parseRow(tokClose)
}

func (p *parser) parseBase() (*node, error) {
	t := p.next()
	switch t.kind {
	case tokOpen:
		return p.parseRow(tokClose)
	case tokNumber:
		return leafNode("mn", t.text), nil
	case tokChar:
		return charNode(t.text), nil
	case tokCommand:
		return p.parseCommand(t.text)
	case tokClose:
		return nil, fmt.Errorf("%w: unbalanced group", ErrUnsupported)
	case tokSup, tokSub:
		return nil, fmt.Errorf("%w: script without a base", ErrUnsupported)
	}
	return nil, fmt.Errorf("%w: unexpected end of input", ErrUnsupported)
}

func charNode(s string) *node {
	r := []rune(s)[0]
	if isLetter(r) {
		return leafNode("mi", s)
	}
	return leafNode("mo", s)
}

func (p *parser) parseCommand(name string) (*node, error) {
	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := p.parseGroup(name)
		if err != nil {
			return nil, err
		}
		den, err := p.parseGroup(name)
		if err != nil {
			return nil, err
		}
		return &node{tag: "mfrac", children: []*node{num, den}}, nil

	case "sqrt":
		if idx, ok, err := p.parseOptionalIndex(); err != nil {
			return nil, err
		} else if ok {
			arg, err := p.parseGroup(name)
			if err != nil {
				return nil, err
			}
			return &node{tag: "mroot", children: []*node{arg, idx}}, nil
		}
		arg, err := p.parseGroup(name)
		if err != nil {
			return nil, err
		}
		return &node{tag: "msqrt", children: []*node{arg}}, nil

	case "text", "mbox", "textrm":
		txt, err := p.rawGroup(name)
		if err != nil {
			return nil, err
		}
		return leafNode("mtext", txt), nil

	case "operatorname":
		txt, err := p.rawGroup(name)
		if err != nil {
			return nil, err
		}
		return leafNode("mi", txt).withAttr("mathvariant", "normal"), nil

	case "mathrm", "mathbf", "mathit", "mathcal", "mathbb", "mathtt", "boldsymbol":
		arg, err := p.parseGroup(name)
		if err != nil {
			return nil, err
		}
		return styled(arg, mathVariants[name]), nil

	case "left", "right":
		// Delimiters render fine unstretched; emit the delimiter itself.
		p.skipSpaces()
		t := p.next()
		switch t.kind {
		case tokChar:
			if t.text == "." {
				return nil, nil
			}
			return leafNode("mo", t.text), nil
		case tokCommand:
			if sym, ok := symbols[t.text]; ok {
				return leafNode("mo", sym.text), nil
			}
		}
		return nil, fmt.Errorf("%w: \\%s delimiter", ErrUnsupported, name)

	case "over", "underbrace", "overbrace", "stackrel", "substack":
		return nil, fmt.Errorf("%w: \\%s", ErrUnsupported, name)
	}

	if over, ok := accents[name]; ok {
		arg, err := p.parseGroupOrSingle()
		if err != nil {
			return nil, err
		}
		if arg == nil {
			return nil, fmt.Errorf("%w: \\%s without argument", ErrUnsupported, name)
		}
		accent := leafNode("mo", over).withAttr("stretchy", "false")
		tag := "mover"
		if name == "underline" {
			tag = "munder"
		}
		return &node{tag: tag, children: []*node{arg, accent}}, nil
	}

	if sym, ok := symbols[name]; ok {
		n := leafNode(sym.tag, sym.text)
		if sym.tag == "mspace" {
			n.withAttr("width", sym.attr)
		} else if sym.attr != "" {
			n.withAttr("mathvariant", sym.attr)
		}
		return n, nil
	}

	return nil, fmt.Errorf("%w: command \\%s", ErrUnsupported, name)
}

// parseOptionalIndex reads a [..] group, used by \sqrt.
func (p *parser) parseOptionalIndex() (*node, bool, error) {
	p.skipSpaces()
	if p.peek().kind != tokChar || p.peek().text != "[" {
		return nil, false, nil
	}
	p.next()
	var children []*node
	for {
		t := p.peek()
		if t.kind == tokChar && t.text == "]" {
			p.next()
			return rowOf(children), true, nil
		}
		if t.kind == tokEOF {
			return nil, false, fmt.Errorf("%w: unterminated root index", ErrUnsupported)
		}
		atom, err := p.parseAtom()
		if err != nil {
			return nil, false, err
		}
		if atom != nil {
			children = append(children, atom)
		}
	}
}

// rawGroup collects the literal text of a braced argument, for \text and
// friends where math tokenization does not apply.
func (p *parser) rawGroup(command string) (string, error) {
	p.skipSpaces()
	if p.peek().kind != tokOpen {
		return "", fmt.Errorf("%w: \\%s missing a braced argument", ErrUnsupported, command)
	}
	p.next()
	var b strings.Builder
	depth := 1
	for {
		t := p.next()
		switch t.kind {
		case tokEOF:
			return "", fmt.Errorf("%w: unterminated \\%s", ErrUnsupported, command)
		case tokOpen:
			depth++
			b.WriteByte('{')
		case tokClose:
			depth--
			if depth == 0 {
				return b.String(), nil
			}
			b.WriteByte('}')
		case tokCommand:
			b.WriteByte('\\')
			b.WriteString(t.text)
		case tokNumber, tokChar:
			b.WriteString(t.text)
		case tokSup:
			b.WriteByte('^')
		case tokSub:
			b.WriteByte('_')
		case tokAlign:
			b.WriteByte('&')
		case tokSpace:
			b.WriteByte(' ')
		}
	}
}

func styled(n *node, variant string) *node {
	if variant == "" {
		return n
	}
	if len(n.children) == 0 && (n.tag == "mi" || n.tag == "mn" || n.tag == "mo") {
		return n.withAttr("mathvariant", variant)
	}
	return (&node{tag: "mstyle", children: []*node{n}}).withAttr("mathvariant", variant)
}
