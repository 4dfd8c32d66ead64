package directive

import (
	"go/scanner"
	"go/token"
	"strings"

	"github.com/goliatone/go-askgen/internal/diag"
)

// Parse reads a single comment. ok is false when text is not an askgen
// directive. Syntax errors are reported as diagnostics positioned inside the
// comment.
func Parse(text string, pos token.Position) (Directive, bool, error) {
	if !strings.HasPrefix(text, Prefix) {
		return Directive{}, false, nil
	}
	body := strings.TrimRight(text[len(Prefix):], " \t\r")
	p := newParser(body, shift(pos, len(Prefix)))

	d := Directive{Pos: pos, Text: text}
	tag, ok := p.name()
	if !ok {
		return Directive{}, true, p.errorf(p.offset(), "expected directive name after %q", Prefix)
	}
	d.Tag = tag
	p.next()

	switch p.tok {
	case token.EOF:
		return d, true, nil
	case token.LPAREN:
		opts, err := p.options()
		if err != nil {
			return Directive{}, true, err
		}
		d.Options = opts
	default:
		return Directive{}, true, p.errorf(p.offset(), "unexpected %s after directive name", p.describe())
	}
	if p.tok != token.EOF {
		return Directive{}, true, p.errorf(p.offset(), "unexpected %s after options", p.describe())
	}
	return d, true, p.err
}

type parser struct {
	src  []byte
	file *token.File
	sc   scanner.Scanner
	base token.Position
	err  error

	pos token.Pos
	tok token.Token
	lit string
}

func newParser(body string, base token.Position) *parser {
	fset := token.NewFileSet()
	p := &parser{src: []byte(body), base: base}
	p.file = fset.AddFile(base.Filename, -1, len(p.src))
	p.sc.Init(p.file, p.src, func(at token.Position, msg string) {
		if p.err == nil {
			p.err = diag.Errorf(shift(p.base, at.Offset), "%s", msg)
		}
	}, 0)
	p.next()
	return p
}

func (p *parser) next() {
	p.pos, p.tok, p.lit = p.sc.Scan()
	// The scanner inserts a semicolon at the end of the line.
	if p.tok == token.SEMICOLON && p.lit == "\n" {
		p.tok = token.EOF
	}
}

func (p *parser) offset() int {
	return p.file.Offset(p.pos)
}

// name accepts identifiers and keywords, since tags and keys such as
// `select` and `default` are Go keywords.
func (p *parser) name() (string, bool) {
	switch {
	case p.tok == token.IDENT:
		return p.lit, true
	case p.tok.IsKeyword():
		return p.tok.String(), true
	}
	return "", false
}

func (p *parser) options() ([]Option, error) {
	p.next() // (
	var opts []Option
	for p.tok != token.RPAREN {
		key, ok := p.name()
		if !ok {
			return nil, p.errorf(p.offset(), "expected option name, got %s", p.describe())
		}
		opt := Option{Key: key, Pos: shift(p.base, p.offset())}
		p.next()
		if p.tok == token.ASSIGN {
			p.next()
			value, err := p.value()
			if err != nil {
				return nil, err
			}
			opt.Value = value
		}
		opts = append(opts, opt)

		if p.tok == token.COMMA {
			p.next()
			continue
		}
		if p.tok != token.RPAREN {
			return nil, p.errorf(p.offset(), "expected `,` or `)`, got %s", p.describe())
		}
	}
	p.next() // )
	return opts, p.err
}

func (p *parser) value() (*Literal, error) {
	start := p.offset()
	lit := &Literal{Pos: shift(p.base, start)}
	switch p.tok {
	case token.STRING:
		lit.Kind, lit.Text = LitString, p.lit
	case token.CHAR:
		lit.Kind, lit.Text = LitChar, p.lit
	case token.INT:
		lit.Kind, lit.Text = LitInt, p.lit
	case token.FLOAT:
		lit.Kind, lit.Text = LitFloat, p.lit
	case token.SUB:
		p.next()
		switch p.tok {
		case token.INT:
			lit.Kind = LitInt
		case token.FLOAT:
			lit.Kind = LitFloat
		default:
			return nil, p.errorf(p.offset(), "expected number after `-`, got %s", p.describe())
		}
		lit.Text = "-" + p.lit
	case token.IDENT:
		if p.lit != "true" && p.lit != "false" {
			return nil, p.errorf(start, "expected literal value, got identifier %s", p.lit)
		}
		lit.Kind, lit.Text = LitBool, p.lit
	case token.LBRACK:
		return p.array()
	default:
		return nil, p.errorf(start, "expected literal value, got %s", p.describe())
	}
	p.next()
	return lit, nil
}

func (p *parser) array() (*Literal, error) {
	lit := &Literal{Kind: LitArray, Pos: shift(p.base, p.offset())}
	p.next() // [
	var texts []string
	for p.tok != token.RBRACK {
		elem, err := p.value()
		if err != nil {
			return nil, err
		}
		lit.Elems = append(lit.Elems, *elem)
		texts = append(texts, elem.Text)

		if p.tok == token.COMMA {
			p.next()
			continue
		}
		if p.tok != token.RBRACK {
			return nil, p.errorf(p.offset(), "expected `,` or `]`, got %s", p.describe())
		}
	}
	p.next() // ]
	lit.Text = "[" + strings.Join(texts, ", ") + "]"
	return lit, nil
}

func (p *parser) describe() string {
	switch {
	case p.tok == token.EOF:
		return "end of directive"
	case p.lit != "":
		return p.lit
	}
	return "`" + p.tok.String() + "`"
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	if p.err != nil {
		return p.err
	}
	return diag.Errorf(shift(p.base, offset), format, args...)
}

func shift(pos token.Position, n int) token.Position {
	if !pos.IsValid() {
		return pos
	}
	pos.Offset += n
	pos.Column += n
	return pos
}
