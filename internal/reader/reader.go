// Package reader turns a token stream into quill Value trees — the
// homoiconic "code is data" step between internal/lexer and an external
// compiler. Grounded on ketos's parser.rs: the same iterative group-stack
// algorithm (no recursion), generalised from Rust's Group enum into a Go
// slice of group structs, so a deeply nested quasiquote/unquote chain
// parses in a fixed stack depth rather than blowing the Go call stack.
package reader

import (
	"math/big"
	"strconv"
	"strings"

	"quill/internal/lexer"
	"quill/internal/name"
	"quill/internal/numeric"
	"quill/internal/perr"
	"quill/internal/value"
)

type groupKind int

const (
	groupParen groupKind = iota
	groupQuote
	groupQuasiquote
	groupComma
	groupCommaAt
)

type group struct {
	kind  groupKind
	elems []value.Value
	span  perr.Span // the opening token's span, for MissingCloseParen/TrailingQuote
}

// Reader consumes a token slice and produces Values. The zero value is not
// usable; use New.
type Reader struct {
	toks       []lexer.Token
	pos        int
	nm         *name.Store
	stack      []group
	quasiDepth int
}

// New builds a Reader over toks, interning identifiers into nm.
func New(toks []lexer.Token, nm *name.Store) *Reader {
	return &Reader{toks: toks, nm: nm}
}

// ParseExprs reads every top-level expression from src.
func ParseExprs(src string, nm *name.Store) ([]value.Value, error) {
	toks, err := lexer.New(src).ScanAll()
	if err != nil {
		return nil, err
	}
	return New(toks, nm).ParseExprs()
}

// ParseSingleExpr reads exactly one top-level expression from src, erroring
// if the input contains more than one (trailing tokens besides EOF).
func ParseSingleExpr(src string, nm *name.Store) (value.Value, error) {
	toks, err := lexer.New(src).ScanAll()
	if err != nil {
		return value.Unit, err
	}
	r := New(toks, nm)
	v, err := r.ParseExpr()
	if err != nil {
		return value.Unit, err
	}
	if r.peek().Type != lexer.TokenEOF {
		return value.Unit, perr.New(r.peek().Span, perr.UnexpectedCloseParen, "trailing input after expression")
	}
	return v, nil
}

func (r *Reader) peek() lexer.Token { return r.toks[r.pos] }

func (r *Reader) next() lexer.Token {
	t := r.toks[r.pos]
	if t.Type != lexer.TokenEOF {
		r.pos++
	}
	return t
}

// ParseExprs reads every remaining top-level expression.
func (r *Reader) ParseExprs() ([]value.Value, error) {
	var out []value.Value
	for r.peek().Type != lexer.TokenEOF {
		v, err := r.ParseExpr()
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseExpr reads one top-level expression, running the group-stack
// settle loop until a value bubbles all the way back out to depth zero.
func (r *Reader) ParseExpr() (value.Value, error) {
	r.stack = r.stack[:0]
	r.quasiDepth = 0
	for {
		tok := r.next()
		switch tok.Type {
		case lexer.TokenEOF:
			if len(r.stack) > 0 {
				top := r.stack[len(r.stack)-1]
				if top.kind == groupParen {
					return value.Unit, perr.New(top.span, perr.MissingCloseParen, "unclosed parenthesis")
				}
				return value.Unit, perr.New(top.span, perr.TrailingQuote, "nothing to quote before end of input")
			}
			return value.Unit, perr.New(tok.Span, perr.UnexpectedEOF, "expected an expression")

		case lexer.TokenLParen:
			r.stack = append(r.stack, group{kind: groupParen, span: tok.Span})

		case lexer.TokenRParen:
			v, done, err := r.closeParen(tok)
			if err != nil {
				return value.Unit, err
			}
			if done {
				return v, nil
			}

		case lexer.TokenQuote:
			r.stack = append(r.stack, group{kind: groupQuote, span: tok.Span})

		case lexer.TokenBackQuote:
			r.stack = append(r.stack, group{kind: groupQuasiquote, span: tok.Span})
			r.quasiDepth++

		case lexer.TokenComma:
			if r.quasiDepth == 0 {
				return value.Unit, perr.New(tok.Span, perr.UnbalancedComma, "comma outside quasiquote")
			}
			r.quasiDepth--
			r.stack = append(r.stack, group{kind: groupComma, span: tok.Span})

		case lexer.TokenCommaAt:
			if r.quasiDepth == 0 {
				return value.Unit, perr.New(tok.Span, perr.UnbalancedComma, "comma-at outside quasiquote")
			}
			r.quasiDepth--
			r.stack = append(r.stack, group{kind: groupCommaAt, span: tok.Span})

		case lexer.TokenDocComment:
			// Doc comments are not part of the value stream: the reader
			// skips them and attaches them to no value.

		default:
			v, err := r.atom(tok)
			if err != nil {
				return value.Unit, err
			}
			done, result, err := r.settle(v)
			if err != nil {
				return value.Unit, err
			}
			if done {
				return result, nil
			}
		}
	}
}

func (r *Reader) closeParen(tok lexer.Token) (value.Value, bool, error) {
	if len(r.stack) == 0 {
		return value.Unit, false, perr.New(tok.Span, perr.UnexpectedCloseParen, "no matching open parenthesis")
	}
	top := r.stack[len(r.stack)-1]
	if top.kind != groupParen {
		return value.Unit, false, perr.New(tok.Span, perr.UnexpectedCloseParen, "close paren inside an unterminated quote")
	}
	r.stack = r.stack[:len(r.stack)-1]
	list := listOrUnit(top.elems)
	return r.settle(list)
}

// settle applies any pending quote/quasiquote/comma wraps sitting above v
// on the stack, stopping either when the value is absorbed into an
// enclosing paren-list (done=false) or when the stack empties entirely
// (done=true, v is a finished top-level expression).
func (r *Reader) settle(v value.Value) (bool, value.Value, error) {
	for len(r.stack) > 0 {
		top := &r.stack[len(r.stack)-1]
		switch top.kind {
		case groupParen:
			top.elems = append(top.elems, v)
			return false, value.Unit, nil
		case groupQuote:
			v = value.Quote(v)
			r.stack = r.stack[:len(r.stack)-1]
		case groupQuasiquote:
			v = value.Quasiquote(v)
			r.stack = r.stack[:len(r.stack)-1]
			r.quasiDepth--
		case groupComma:
			v = value.Comma(v)
			r.stack = r.stack[:len(r.stack)-1]
			r.quasiDepth++
		case groupCommaAt:
			v = value.CommaAt(v)
			r.stack = r.stack[:len(r.stack)-1]
			r.quasiDepth++
		}
	}
	return true, v, nil
}

func listOrUnit(elems []value.Value) value.Value {
	if len(elems) == 0 {
		return value.Unit
	}
	return value.NewList(elems)
}

func (r *Reader) atom(tok lexer.Token) (value.Value, error) {
	switch tok.Type {
	case lexer.TokenInteger:
		return parseInteger(tok)
	case lexer.TokenFloat:
		return parseFloat(tok)
	case lexer.TokenRatio:
		return parseRatio(tok)
	case lexer.TokenChar:
		return parseChar(tok)
	case lexer.TokenString:
		return parseString(tok)
	case lexer.TokenKeyword:
		return value.NewName(r.nm.Add(tok.Lexeme)), nil
	case lexer.TokenIdent:
		return value.NewName(r.nm.Add(tok.Lexeme)), nil
	default:
		return value.Unit, perr.New(tok.Span, perr.UnexpectedChar, "unexpected token "+string(tok.Type))
	}
}

func stripUnderscores(s string) string { return strings.ReplaceAll(s, "_", "") }

func parseInteger(tok lexer.Token) (value.Value, error) {
	lex := stripUnderscores(tok.Lexeme)
	if len(lex) > 1 && lex[0] == '#' {
		// Based integer: #<base>r<digits>, e.g. #16rFF.
		rest := lex[1:]
		idx := strings.IndexAny(rest, "rR")
		if idx < 0 {
			return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "malformed based integer "+tok.Lexeme)
		}
		base, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "malformed integer base in "+tok.Lexeme)
		}
		digits := rest[idx+1:]
		n := new(big.Int)
		if _, ok := n.SetString(digits, base); !ok {
			return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "malformed digits in "+tok.Lexeme)
		}
		return value.NewInteger(numeric.NewIntegerFromBig(n)), nil
	}
	n := new(big.Int)
	if _, ok := n.SetString(lex, 10); !ok {
		return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "malformed integer "+tok.Lexeme)
	}
	return value.NewInteger(numeric.NewIntegerFromBig(n)), nil
}

func parseFloat(tok lexer.Token) (value.Value, error) {
	lex := stripUnderscores(tok.Lexeme)
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "malformed float "+tok.Lexeme)
	}
	return value.NewFloat(f), nil
}

func parseRatio(tok lexer.Token) (value.Value, error) {
	lex := stripUnderscores(tok.Lexeme)
	parts := strings.SplitN(lex, "/", 2)
	if len(parts) != 2 {
		return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "malformed ratio "+tok.Lexeme)
	}
	num, ok1 := new(big.Int).SetString(parts[0], 10)
	den, ok2 := new(big.Int).SetString(parts[1], 10)
	if !ok1 || !ok2 {
		return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "malformed ratio "+tok.Lexeme)
	}
	r, err := numeric.NewRatio(numeric.NewIntegerFromBig(num), numeric.NewIntegerFromBig(den))
	if err != nil {
		return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "ratio with zero denominator "+tok.Lexeme)
	}
	return value.NewRatio(r), nil
}

var namedChars = map[string]rune{
	"space":   ' ',
	"newline": '\n',
	"tab":     '\t',
	"nul":     0,
	"null":    0,
}

func parseChar(tok lexer.Token) (value.Value, error) {
	body := tok.Lexeme[2:] // strip "#\"
	if r, ok := namedChars[strings.ToLower(body)]; ok {
		return value.NewChar(r), nil
	}
	runes := []rune(body)
	if len(runes) != 1 {
		return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "malformed char literal "+tok.Lexeme)
	}
	return value.NewChar(runes[0]), nil
}

func parseString(tok lexer.Token) (value.Value, error) {
	body := tok.Lexeme[1 : len(tok.Lexeme)-1] // strip quotes
	var b strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		i++
		if i >= len(runes) {
			return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "unterminated escape in "+tok.Lexeme)
		}
		switch runes[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '0':
			b.WriteByte(0)
		default:
			return value.Unit, perr.New(tok.Span, perr.InvalidLiteral, "unknown escape in "+tok.Lexeme)
		}
	}
	return value.NewString(b.String()), nil
}
