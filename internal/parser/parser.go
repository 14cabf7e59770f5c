// Package parser implements the recursive-descent grammar from spec.md
// 4.4, producing the typed AST from internal/ast. It is non-recovering:
// the first unexpected token aborts the parse with a ParseError, per
// spec.md 4.4.
//
// Grounded on CWBudde-go-dws/internal/parser/parser.go's overall
// recursive-descent shape, adapted from its generic Pratt
// precedence table to spec.md 4.4's fixed chain of named productions
// (Equation -> Comparison -> Additive -> Multiplicative -> Prefix ->
// DotArray -> Primary), since the grammar here is not a flat
// operator-precedence table.
package parser

import (
	"fmt"
	"strconv"

	"github.com/glint-lang/glint/internal/ast"
	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/lexer"
)

// Parser turns one source file (or REPL snippet) into an ast.Node tree.
type Parser struct {
	l    *lexer.Lexer
	file string
	src  string
	cur  lexer.Token
	peek lexer.Token
}

// New constructs a parser over src. file is used only for error messages
// and AST spans; it may be empty for inline/REPL evaluation.
func New(file, src string) *Parser {
	p := &Parser{l: lexer.New(src), file: file, src: src}
	p.cur = p.l.Next()
	p.peek = p.l.Next()
	return p
}

// Parse parses a complete File node: spec.md 4.4's File := Statement*.
func Parse(file, src string) (*ast.Node, error) {
	return New(file, src).ParseFile()
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) span(start lexer.Position) ast.Span {
	return ast.FromPos(p.file, start).End(p.cur.Pos)
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...interface{}) error {
	return &diag.ParseError{
		Pos:    diag.Position{File: p.file, Line: pos.Line, Column: pos.Column},
		Reason: fmt.Sprintf(format, args...),
		Source: p.src,
	}
}

func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	if p.cur.Type != tt {
		return lexer.Token{}, p.errorf(p.cur.Pos, "expected %s, got %q", what, p.cur.Literal)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// ParseFile parses the whole token stream as a File node.
func (p *Parser) ParseFile() (*ast.Node, error) {
	start := p.cur.Pos
	var stmts []*ast.Node
	for p.cur.Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.New(ast.KindFile, p.span(start), stmts...), nil
}

// parseStatement implements spec.md 4.4's Statement production, including
// attaching the last pending comment as the parsed statement's Annotation
// node; earlier pending comments are dropped.
func (p *Parser) parseStatement() (*ast.Node, error) {
	comments := p.l.TakeComments()

	stmt, err := p.parseStatementBody()
	if err != nil {
		return nil, err
	}

	if len(comments) > 0 {
		c := comments[len(comments)-1]
		note := ast.NewLeaf(ast.KindAnnotation, c.Text, ast.FromPos(p.file, c.Pos))
		stmt.WithAnnotation(note)
	}
	return stmt, nil
}

func (p *Parser) parseStatementBody() (*ast.Node, error) {
	switch p.cur.Type {
	case lexer.DEF:
		return p.parseDef()
	case lexer.VAR:
		return p.parseVarDeclStatement()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		return p.parseBreak()
	default:
		return p.parseExpressionStatement()
	}
}

// Def := 'def' Id '(' [Id (',' Id)*] ')' Block
func (p *Parser) parseDef() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // 'def'

	nameTok, err := p.expect(lexer.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	name := ast.NewLeaf(ast.KindId, nameTok.Literal, ast.FromPos(p.file, nameTok.Pos))

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return ast.New(ast.KindDef, p.span(start), name, params, body), nil
}

func (p *Parser) parseParamList() (*ast.Node, error) {
	start := p.cur.Pos
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.Node
	for p.cur.Type != lexer.RPAREN {
		tok, err := p.expect(lexer.IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, ast.NewLeaf(ast.KindId, tok.Literal, ast.FromPos(p.file, tok.Pos)))
		if p.cur.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindArgList, p.span(start), params...), nil
}

// Block := '{' Statement* '}'
func (p *Parser) parseBlock() (*ast.Node, error) {
	start := p.cur.Pos
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var stmts []*ast.Node
	for p.cur.Type != lexer.RBRACE {
		if p.cur.Type == lexer.EOF {
			return nil, p.errorf(p.cur.Pos, "unexpected end of input, expected '}'")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.advance() // '}'
	return ast.New(ast.KindBlock, p.span(start), stmts...), nil
}

// If := 'if' '(' Expression ')' Block ('else' (If | Block))?
func (p *Parser) parseIf() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // 'if'
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	children := []*ast.Node{cond, thenBlock}
	if p.cur.Type == lexer.ELSE {
		p.advance()
		var elseNode *ast.Node
		if p.cur.Type == lexer.IF {
			elseNode, err = p.parseIf()
		} else {
			elseNode, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
		children = append(children, elseNode)
	}
	return ast.New(ast.KindIf, p.span(start), children...), nil
}

// While := 'while' '(' Expression ')' Block
func (p *Parser) parseWhile() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // 'while'
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindWhile, p.span(start), cond, body), nil
}

// For := 'for' '(' ForInit? ';' Expression? ';' Expression? ')' Block
// The four children are always present in order [init, cond, step, body];
// a missing init/cond/step is represented as an Eol placeholder node so
// the evaluator's fixed-arity children indexing stays simple.
func (p *Parser) parseFor() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // 'for'
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}

	init, err := p.parseForInit()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}

	cond := p.emptySlot()
	if p.cur.Type != lexer.SEMI {
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}

	step := p.emptySlot()
	if p.cur.Type != lexer.RPAREN {
		step, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindFor, p.span(start), init, cond, step, body), nil
}

func (p *Parser) parseForInit() (*ast.Node, error) {
	if p.cur.Type == lexer.SEMI {
		return p.emptySlot(), nil
	}
	if p.cur.Type == lexer.VAR {
		return p.parseVarDecl()
	}
	return p.parseExpression()
}

func (p *Parser) emptySlot() *ast.Node {
	return ast.NewLeaf(ast.KindEol, "", ast.FromPos(p.file, p.cur.Pos))
}

// Return := 'return' Expression?
func (p *Parser) parseReturn() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // 'return'
	var children []*ast.Node
	if p.cur.Type != lexer.SEMI {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, val)
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindReturn, p.span(start), children...), nil
}

func (p *Parser) parseBreak() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // 'break'
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	return ast.NewLeaf(ast.KindBreak, "", p.span(start)), nil
}

// VarDecl := 'var' Id, used both as a statement (with trailing ';') and as
// a for-init clause (without).
func (p *Parser) parseVarDecl() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // 'var'
	idTok, err := p.expect(lexer.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	id := ast.NewLeaf(ast.KindId, idTok.Literal, ast.FromPos(p.file, idTok.Pos))
	decl := ast.New(ast.KindVarDecl, p.span(start), id)

	if p.cur.Type == lexer.ASSIGN {
		p.advance()
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindEquation, p.span(start), decl, rhs), nil
	}
	return decl, nil
}

func (p *Parser) parseVarDeclStatement() (*ast.Node, error) {
	node, err := p.parseVarDecl()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	return node, nil
}

// parseExpressionStatement parses Expression ';'. The ';' may be omitted
// when the expression is the last statement before a closing '}', as in
// `fun(x) { x * x }`.
func (p *Parser) parseExpressionStatement() (*ast.Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.RBRACE {
		return expr, nil
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	return expr, nil
}

// Expression := Equation
func (p *Parser) parseExpression() (*ast.Node, error) {
	return p.parseEquation()
}

var assignOps = map[lexer.TokenType]string{
	lexer.ASSIGN:       "=",
	lexer.PLUS_ASSIGN:  "+=",
	lexer.MINUS_ASSIGN: "-=",
	lexer.STAR_ASSIGN:  "*=",
	lexer.SLASH_ASSIGN: "/=",
}

// Equation := Comparison (('=' | op-assign) Comparison)*, right-associative:
// parsed by recursing into another Equation on the right so a chain of
// assignments associates to the right.
func (p *Parser) parseEquation() (*ast.Node, error) {
	start := p.cur.Pos
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	op, ok := assignOps[p.cur.Type]
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseEquation()
	if err != nil {
		return nil, err
	}
	node := ast.New(ast.KindEquation, p.span(start), left, right)
	node.Text = op
	return node, nil
}

var comparisonOps = map[lexer.TokenType]string{
	lexer.EQ:  "==",
	lexer.NEQ: "!=",
	lexer.LT:  "<",
	lexer.LE:  "<=",
	lexer.GT:  ">",
	lexer.GE:  ">=",
	lexer.AND: "&&",
	lexer.OR:  "||",
}

// Comparison := Additive (('==' '!=' '<' '<=' '>' '>=' '&&' '||') Additive)*
func (p *Parser) parseComparison() (*ast.Node, error) {
	start := p.cur.Pos
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.DOTDOT {
		p.advance()
		hi, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindValueRange, p.span(start), left, hi), nil
	}

	op, ok := comparisonOps[p.cur.Type]
	if !ok {
		return left, nil
	}
	chain := ast.NewChain(ast.KindComparison, p.span(start), left)
	for ok {
		p.advance()
		next, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		chain.AppendOp(op, next)
		op, ok = comparisonOps[p.cur.Type]
	}
	chain.Span = p.span(start)
	return chain, nil
}

var additiveOps = map[lexer.TokenType]string{lexer.PLUS: "+", lexer.MINUS: "-"}

// Additive := Multiplicative (('+' '-') Multiplicative)*
func (p *Parser) parseAdditive() (*ast.Node, error) {
	start := p.cur.Pos
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	op, ok := additiveOps[p.cur.Type]
	if !ok {
		return left, nil
	}
	chain := ast.NewChain(ast.KindAdditive, p.span(start), left)
	for ok {
		p.advance()
		next, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		chain.AppendOp(op, next)
		op, ok = additiveOps[p.cur.Type]
	}
	chain.Span = p.span(start)
	return chain, nil
}

var multiplicativeOps = map[lexer.TokenType]string{lexer.STAR: "*", lexer.SLASH: "/"}

// Multiplicative := Prefix (('*' '/') Prefix)*
func (p *Parser) parseMultiplicative() (*ast.Node, error) {
	start := p.cur.Pos
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	op, ok := multiplicativeOps[p.cur.Type]
	if !ok {
		return left, nil
	}
	chain := ast.NewChain(ast.KindMultiplicative, p.span(start), left)
	for ok {
		p.advance()
		next, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		chain.AppendOp(op, next)
		op, ok = multiplicativeOps[p.cur.Type]
	}
	chain.Span = p.span(start)
	return chain, nil
}

// Prefix := ('!' | '-' | '+')? DotArray
func (p *Parser) parsePrefix() (*ast.Node, error) {
	start := p.cur.Pos
	switch p.cur.Type {
	case lexer.NOT:
		p.advance()
		child, err := p.parseDotArray()
		if err != nil {
			return nil, err
		}
		n := ast.New(ast.KindNot, p.span(start), child)
		n.Text = "!"
		return n, nil
	case lexer.MINUS:
		p.advance()
		child, err := p.parseDotArray()
		if err != nil {
			return nil, err
		}
		n := ast.New(ast.KindNegate, p.span(start), child)
		n.Text = "-"
		return n, nil
	case lexer.PLUS:
		p.advance()
		return p.parseDotArray()
	default:
		return p.parseDotArray()
	}
}

// DotArray := Primary ('.' Id ('(' ArgList ')')? | '[' Expression ']' | '(' ArgList ')')*
// The trailing '(' ArgList ')' alternative is not spelled out in spec.md's
// grammar summary but is required by its own evaluator section and
// end-to-end scenarios (bare calls like fact(5), f(7)); see SPEC_FULL.md 5.
func (p *Parser) parseDotArray() (*ast.Node, error) {
	start := p.cur.Pos
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case lexer.DOT:
			p.advance()
			nameTok, err := p.expect(lexer.IDENT, "member name")
			if err != nil {
				return nil, err
			}
			name := ast.NewLeaf(ast.KindId, nameTok.Literal, ast.FromPos(p.file, nameTok.Pos))
			if p.cur.Type == lexer.LPAREN {
				args, err := p.parseArgList()
				if err != nil {
					return nil, err
				}
				node = ast.New(ast.KindDotAccess, p.span(start), node, name, args)
			} else {
				node = ast.New(ast.KindDotAccess, p.span(start), node, name)
			}
		case lexer.LBRACKET:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
				return nil, err
			}
			node = ast.New(ast.KindArrayCall, p.span(start), node, index)
		case lexer.LPAREN:
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			node = ast.New(ast.KindFunCall, p.span(start), node, args)
		default:
			return node, nil
		}
	}
}

// ArgList := '(' [Expression (',' Expression)*] ')'
func (p *Parser) parseArgList() (*ast.Node, error) {
	start := p.cur.Pos
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var args []*ast.Node
	for p.cur.Type != lexer.RPAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindArgList, p.span(start), args...), nil
}

// Primary := Int | Float | Char | Str | QuotedStr | Id
//          | '(' Expression ')' | Lambda | InlineArray | InlineMap
func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok := p.cur
	pos := ast.FromPos(p.file, tok.Pos)

	switch tok.Type {
	case lexer.INT:
		p.advance()
		if _, err := strconv.ParseInt(tok.Literal, 10, 64); err != nil {
			return nil, p.errorf(tok.Pos, "invalid integer literal %q", tok.Literal)
		}
		return ast.NewLeaf(ast.KindInt, tok.Literal, pos), nil
	case lexer.FLOAT:
		p.advance()
		if _, err := strconv.ParseFloat(tok.Literal, 64); err != nil {
			return nil, p.errorf(tok.Pos, "invalid float literal %q", tok.Literal)
		}
		return ast.NewLeaf(ast.KindFloat, tok.Literal, pos), nil
	case lexer.CHAR:
		p.advance()
		return ast.NewLeaf(ast.KindChar, tok.Literal, pos), nil
	case lexer.STRING:
		p.advance()
		return ast.NewLeaf(ast.KindQuotedString, tok.Literal, pos), nil
	case lexer.IDENT:
		p.advance()
		return ast.NewLeaf(ast.KindId, tok.Literal, pos), nil
	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.FUN:
		return p.parseLambda()
	case lexer.LBRACKET:
		return p.parseInlineArrayOrMap()
	default:
		return nil, p.errorf(tok.Pos, "unexpected token %q", tok.Literal)
	}
}

// Lambda := 'fun' '(' [Id (',' Id)*] ')' Block
func (p *Parser) parseLambda() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // 'fun'
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindLambda, p.span(start), params, body), nil
}

// InlineArray := '[' [Expression (',' Expression)*] ']'
// InlineMap   := '[' MapPair (',' MapPair)* ']'
// Inline_Range is the special one-element bracketed case '[' Expression '..' Expression ']'.
func (p *Parser) parseInlineArrayOrMap() (*ast.Node, error) {
	start := p.cur.Pos
	p.advance() // '['

	if p.cur.Type == lexer.RBRACKET {
		p.advance()
		return ast.New(ast.KindInlineArray, p.span(start)), nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if first.Kind == ast.KindValueRange && p.cur.Type == lexer.RBRACKET {
		p.advance()
		return ast.New(ast.KindInlineRange, p.span(start), first.Children...), nil
	}

	switch p.cur.Type {
	case lexer.DOTDOT:
		p.advance()
		hi, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return nil, err
		}
		return ast.New(ast.KindInlineRange, p.span(start), first, hi), nil
	case lexer.COLON:
		p.advance()
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		pair := ast.New(ast.KindMapPair, p.span(start), first, val)
		pairs := []*ast.Node{pair}
		for p.cur.Type == lexer.COMMA {
			p.advance()
			k, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON, "':'"); err != nil {
				return nil, err
			}
			v, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, ast.New(ast.KindMapPair, p.span(start), k, v))
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return nil, err
		}
		return ast.New(ast.KindInlineMap, p.span(start), pairs...), nil
	default:
		elems := []*ast.Node{first}
		for p.cur.Type == lexer.COMMA {
			p.advance()
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expect(lexer.RBRACKET, "']'"); err != nil {
			return nil, err
		}
		return ast.New(ast.KindInlineArray, p.span(start), elems...), nil
	}
}
