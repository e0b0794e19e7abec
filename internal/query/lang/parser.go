package lang

import "strconv"

// Parser is a hand-rolled recursive-descent parser over a flat token
// slice, following the grammar in spec §4.3.
type Parser struct {
	toks []Token
	pos  int
}

func Parse(src string) (*Select, error) {
	lx := NewLexer(src)
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	sel, err := p.parseSelect()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errorf("end of query", p.cur().Text)
	}
	return sel, nil
}

func (p *Parser) cur() Token  { return p.toks[p.pos] }
func (p *Parser) atEOF() bool { return p.cur().Kind == TokEOF }

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(expected, found string) error {
	return &ParseError{Position: p.cur().Start, Expected: expected, Found: found}
}

func (p *Parser) isKeyword(word string) bool {
	t := p.cur()
	return t.Kind == TokKeyword && equalFold(t.Text, word)
}

func (p *Parser) isOp(op string) bool {
	t := p.cur()
	return t.Kind == TokOp && t.Text == op
}

func (p *Parser) isPunct(s string) bool {
	t := p.cur()
	return t.Kind == TokPunct && t.Text == s
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func (p *Parser) expectKeyword(word string) error {
	if !p.isKeyword(word) {
		return p.errorf(word, p.cur().Text)
	}
	p.advance()
	return nil
}

func (p *Parser) expectPunct(s string) error {
	if !p.isPunct(s) {
		return p.errorf(s, p.cur().Text)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdent() (string, error) {
	t := p.cur()
	if t.Kind != TokIdent {
		return "", p.errorf("identifier", t.Text)
	}
	p.advance()
	return t.Text, nil
}

func (p *Parser) parseSelect() (*Select, error) {
	if err := p.expectKeyword("select"); err != nil {
		return nil, err
	}
	sel := &Select{}
	if p.isPunct("*") || (p.cur().Kind == TokOp && p.cur().Text == "*") {
		sel.Star = true
		p.advance()
	} else {
		for {
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			sel.Columns = append(sel.Columns, name)
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}

	if err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	from, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	sel.From = from

	if p.isKeyword("where") {
		p.advance()
		where, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		sel.Where = where
	}

	if p.isKeyword("order") {
		p.advance()
		if err := p.expectKeyword("by"); err != nil {
			return nil, err
		}
		for {
			col, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			term := OrderTerm{Column: col}
			if p.isKeyword("asc") {
				p.advance()
			} else if p.isKeyword("desc") {
				term.Desc = true
				p.advance()
			}
			sel.OrderBy = append(sel.OrderBy, term)
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}

	if p.isKeyword("limit") {
		p.advance()
		n, err := p.expectIntLiteral()
		if err != nil {
			return nil, err
		}
		v := int(n)
		sel.Limit = &v
	}

	if p.isKeyword("offset") {
		p.advance()
		n, err := p.expectIntLiteral()
		if err != nil {
			return nil, err
		}
		v := int(n)
		sel.Offset = &v
	}

	return sel, nil
}

func (p *Parser) expectIntLiteral() (int64, error) {
	t := p.cur()
	if t.Kind != TokInt {
		return 0, p.errorf("integer literal", t.Text)
	}
	p.advance()
	n, _ := strconv.ParseInt(t.Text, 10, 64)
	return n, nil
}

func (p *Parser) parseOrExpr() (Expr, error) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		p.advance()
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		left = OrExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAndExpr() (Expr, error) {
	left, err := p.parseNotExpr()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		p.advance()
		right, err := p.parseNotExpr()
		if err != nil {
			return nil, err
		}
		left = AndExpr{Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNotExpr() (Expr, error) {
	if p.isKeyword("not") {
		p.advance()
		inner, err := p.parseNotExpr()
		if err != nil {
			return nil, err
		}
		return NotExpr{Inner: inner}, nil
	}
	return p.parsePrimaryExpr()
}

func (p *Parser) parsePrimaryExpr() (Expr, error) {
	if p.isPunct("(") {
		p.advance()
		inner, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	left, err := p.parseValueExpr()
	if err != nil {
		return nil, err
	}

	negate := false
	if p.isKeyword("not") {
		negate = true
		p.advance()
	}

	switch {
	case p.isKeyword("between"):
		p.advance()
		lo, err := p.parseValueExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("and"); err != nil {
			return nil, err
		}
		hi, err := p.parseValueExpr()
		if err != nil {
			return nil, err
		}
		return Between{Target: left, Low: lo, Hi: hi, Negate: negate}, nil

	case p.isKeyword("in"):
		p.advance()
		if err := p.expectPunct("("); err != nil {
			return nil, err
		}
		var items []ValueExpr
		for {
			v, err := p.parseValueExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, v)
			if p.isPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return InList{Target: left, Items: items, Negate: negate}, nil

	case p.isKeyword("is"):
		if negate {
			return nil, p.errorf("BETWEEN, IN, or a comparison operator", "NOT before IS")
		}
		p.advance()
		isNeg := false
		if p.isKeyword("not") {
			isNeg = true
			p.advance()
		}
		if err := p.expectKeyword("null"); err != nil {
			return nil, err
		}
		return IsNull{Target: left, Negate: isNeg}, nil
	}

	if negate {
		return nil, p.errorf("BETWEEN or IN after NOT", p.cur().Text)
	}

	op, err := p.expectCompareOp()
	if err != nil {
		return nil, err
	}
	right, err := p.parseValueExpr()
	if err != nil {
		return nil, err
	}
	return Comparison{Left: left, Op: op, Right: right}, nil
}

func (p *Parser) expectCompareOp() (string, error) {
	t := p.cur()
	if t.Kind == TokOp {
		switch t.Text {
		case "=", "<>", "!=", "<", "<=", ">", ">=":
			p.advance()
			return t.Text, nil
		}
	}
	if p.isKeyword("like") {
		p.advance()
		return "like", nil
	}
	return "", p.errorf("a comparison operator", t.Text)
}

// parseValueExpr parses a scalar primary (column, literal, DateTime
// constructor) followed by zero or more chained method calls.
func (p *Parser) parseValueExpr() (ValueExpr, error) {
	base, err := p.parseValuePrimary()
	if err != nil {
		return nil, err
	}
	for p.isPunct(".") {
		p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if !p.isPunct("(") {
			return nil, p.errorf("(", p.cur().Text)
		}
		p.advance()
		var args []ValueExpr
		if !p.isPunct(")") {
			for {
				a, err := p.parseValueExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.isPunct(",") {
					p.advance()
					continue
				}
				break
			}
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		base = MethodCall{Target: base, Method: name, Args: args}
	}
	return base, nil
}

func (p *Parser) parseValuePrimary() (ValueExpr, error) {
	t := p.cur()

	if t.Kind == TokKeyword && equalFold(t.Text, "datetime") {
		return p.parseDateCtor()
	}
	if t.Kind == TokKeyword && equalFold(t.Text, "null") {
		p.advance()
		return Literal{Kind: LitNull}, nil
	}

	switch t.Kind {
	case TokInt:
		p.advance()
		n, _ := strconv.ParseInt(t.Text, 10, 64)
		return Literal{Kind: LitInt, IntVal: n}, nil
	case TokFloat:
		p.advance()
		f, _ := strconv.ParseFloat(t.Text, 64)
		return Literal{Kind: LitFloat, FloatVal: f}, nil
	case TokString:
		p.advance()
		return Literal{Kind: LitString, StrVal: t.Text}, nil
	case TokIdent, TokKeyword:
		p.advance()
		if equalFold(t.Text, "true") {
			return Literal{Kind: LitBool, BoolVal: true}, nil
		}
		if equalFold(t.Text, "false") {
			return Literal{Kind: LitBool, BoolVal: false}, nil
		}
		return ColumnRef{Name: t.Text}, nil
	case TokOp:
		if t.Text == "-" {
			p.advance()
			inner := p.cur()
			switch inner.Kind {
			case TokInt:
				p.advance()
				n, _ := strconv.ParseInt(inner.Text, 10, 64)
				return Literal{Kind: LitInt, IntVal: -n}, nil
			case TokFloat:
				p.advance()
				f, _ := strconv.ParseFloat(inner.Text, 64)
				return Literal{Kind: LitFloat, FloatVal: -f}, nil
			}
			return nil, p.errorf("number after unary -", inner.Text)
		}
	}
	return nil, p.errorf("a column, literal, or DateTime(...)", t.Text)
}

// parseDateCtor handles DateTime(y, m, d[, h, mi, s]) and the bare
// DateTime.Today constant, per spec §4.3.
func (p *Parser) parseDateCtor() (ValueExpr, error) {
	p.advance() // 'datetime'
	if p.isPunct(".") {
		p.advance()
		t := p.cur()
		if t.Kind != TokIdent && t.Kind != TokKeyword {
			return nil, p.errorf("Today", t.Text)
		}
		p.advance()
		if !equalFold(t.Text, "today") {
			return nil, p.errorf("Today", t.Text)
		}
		return DateCtor{Today: true}, nil
	}
	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []ValueExpr
	for {
		a, err := p.parseValueExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.isPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return DateCtor{Args: args}, nil
}
