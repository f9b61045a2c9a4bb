// The parser consumes the lexer's token stream and builds the raw AST: a
// sequence of assignments and recipes in declaration order. It performs no
// semantic validation beyond what the grammar itself demands; duplicate
// names, unknown dependencies and cyclic references are the resolver's job.

package main

import "strings"

type parser struct {
	lex      *lexer
	filename string
	tok      token
	err      error
}

func newParser(src, filename string) *parser {
	p := &parser{lex: newLexer(src, filename), filename: filename}
	p.advance()
	return p
}

func (p *parser) advance() {
	if p.err != nil {
		return
	}
	t, err := p.lex.nextToken()
	if err != nil {
		p.err = err
		return
	}
	p.tok = t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.err != nil {
		return token{}, p.err
	}
	if p.tok.kind != kind {
		err := p.unexpected(kind.String())
		p.err = err
		return token{}, err
	}
	t := p.tok
	p.advance()
	return t, p.err
}

func (p *parser) unexpected(expected string) *justError {
	return newErr(errUnexpectedToken, p.tok.pos, "expected %s but found %s", expected, describeTok(p.tok))
}

func describeTok(t token) string {
	switch t.kind {
	case tokName, tokStringLiteral, tokRawStringLiteral, tokBacktick:
		return "'" + t.text + "'"
	default:
		return t.kind.String()
	}
}

// parseFile parses an entire justfile source into a raw AST.
func parseFile(src, filename string) (*file, error) {
	p := newParser(src, filename)
	return p.parseFile()
}

func (p *parser) parseFile() (*file, error) {
	f := &file{}
	for {
		p.skipBlankEols()
		if p.err != nil {
			return nil, p.err
		}
		if p.tok.kind == tokEOF {
			return f, nil
		}
		if err := p.parseItem(f); err != nil {
			return nil, err
		}
	}
}

func (p *parser) skipBlankEols() {
	for p.err == nil && p.tok.kind == tokEol {
		p.advance()
	}
}

func (p *parser) parseItem(f *file) error {
	switch {
	case p.tok.kind == tokName && p.tok.text == "export":
		p.advance()
		nameTok, err := p.expect(tokName)
		if err != nil {
			return err
		}
		return p.finishAssignment(f, nameTok, true)

	case p.tok.kind == tokAt:
		p.advance()
		nameTok, err := p.expect(tokName)
		if err != nil {
			return err
		}
		return p.finishRecipe(f, nameTok, true)

	case p.tok.kind == tokName:
		nameTok := p.tok
		p.advance()
		if p.tok.kind == tokEquals {
			return p.finishAssignment(f, nameTok, false)
		}
		return p.finishRecipe(f, nameTok, false)

	default:
		return p.unexpected("a rule, assignment, or 'export'")
	}
}

func (p *parser) finishAssignment(f *file, nameTok token, exported bool) error {
	if _, err := p.expect(tokEquals); err != nil {
		return err
	}
	e, err := p.parseExpression()
	if err != nil {
		return err
	}
	if _, err := p.expect(tokEol); err != nil {
		return err
	}
	f.assignments = append(f.assignments, &assignment{
		name: nameTok.text, value: e, exported: exported, pos: nameTok.pos,
	})
	return nil
}

func (p *parser) finishRecipe(f *file, nameTok token, headerAt bool) error {
	r := &recipe{name: nameTok.text, pos: nameTok.pos, headerAt: headerAt}

	for p.tok.kind == tokName {
		r.parameters = append(r.parameters, p.tok.text)
		p.advance()
	}

	if p.tok.kind == tokColon {
		p.advance()
		for p.tok.kind == tokName {
			r.deps = append(r.deps, depRef{name: p.tok.text, pos: p.tok.pos})
			p.advance()
		}
	}

	if _, err := p.expect(tokEol); err != nil {
		return err
	}

	if p.tok.kind == tokIndent {
		p.advance()
		if err := p.parseBody(r); err != nil {
			return err
		}
		if _, err := p.expect(tokDedent); err != nil {
			return err
		}
	}

	r.isShebang = recipeIsShebang(r)
	r.quiet = headerAt || recipeLinesAllQuiet(r)
	f.recipes = append(f.recipes, r)
	return nil
}

func (p *parser) parseBody(r *recipe) error {
	for p.tok.kind != tokDedent {
		if p.tok.kind == tokEOF {
			return p.unexpected("a dedent")
		}
		line, err := p.parseLine()
		if err != nil {
			return err
		}
		r.lines = append(r.lines, line)
	}
	return nil
}

func (p *parser) parseLine() (recipeLine, error) {
	var ln recipeLine
	if p.tok.kind == tokAt {
		ln.quiet = true
		p.advance()
	}
	for p.tok.kind == tokLine || p.tok.kind == tokInterpolationStart {
		if p.tok.kind == tokLine {
			ln.fragments = append(ln.fragments, fragment{literal: p.tok.text})
			p.advance()
			continue
		}
		p.advance() // consume '{{'
		e, err := p.parseExpression()
		if err != nil {
			return ln, err
		}
		if _, err := p.expect(tokInterpolationEnd); err != nil {
			return ln, err
		}
		ln.fragments = append(ln.fragments, fragment{expr: e})
	}
	if _, err := p.expect(tokEol); err != nil {
		return ln, err
	}
	return ln, nil
}

func (p *parser) parseExpression() (*expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus {
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &expr{kind: exprConcat, left: left, right: right, pos: left.pos}
	}
	return left, nil
}

func (p *parser) parseTerm() (*expr, error) {
	t := p.tok
	switch t.kind {
	case tokStringLiteral, tokRawStringLiteral:
		p.advance()
		return &expr{kind: exprStringLit, value: t.text, pos: t.pos}, nil
	case tokBacktick:
		p.advance()
		return &expr{kind: exprBacktick, command: t.text, pos: t.pos}, nil
	case tokName:
		p.advance()
		return &expr{kind: exprVariable, name: t.text, pos: t.pos}, nil
	default:
		return nil, p.unexpected("a string, raw string, backtick, or name")
	}
}

// recipeIsShebang reports whether a recipe's first body line is literal
// text beginning with "#!" - the whole body is then executed as a script
// rather than fed to the shell line by line.
func recipeIsShebang(r *recipe) bool {
	if len(r.lines) == 0 || len(r.lines[0].fragments) == 0 {
		return false
	}
	fr := r.lines[0].fragments[0]
	return fr.expr == nil && strings.HasPrefix(fr.literal, "#!")
}

func recipeLinesAllQuiet(r *recipe) bool {
	if len(r.lines) == 0 {
		return false
	}
	for _, ln := range r.lines {
		if !ln.quiet {
			return false
		}
	}
	return true
}
