// Package attributes parses the attribute strings attached to level sprites,
// such as `checkpoint(2, 0, 1)` or `moving(left, 3, 4)`.
package attributes

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenParen tokenKind = iota
	tokenComma
	tokenSpace
	tokenMinus
	tokenDigit
	tokenChar
)

type token struct {
	kind tokenKind
	r    rune
}

func lex(input string) []token {
	out := make([]token, 0, len(input))
	for _, r := range input {
		switch {
		case r == '-':
			out = append(out, token{kind: tokenMinus, r: r})
		case r == ' ':
			out = append(out, token{kind: tokenSpace, r: r})
		case r == ',':
			out = append(out, token{kind: tokenComma, r: r})
		case r == '(' || r == ')':
			out = append(out, token{kind: tokenParen, r: r})
		case r >= '0' && r <= '9':
			out = append(out, token{kind: tokenDigit, r: r})
		default:
			out = append(out, token{kind: tokenChar, r: r})
		}
	}
	return out
}

// ArgKind identifies the type held by an Arg.
type ArgKind int

const (
	ArgString ArgKind = iota
	ArgNumber
	ArgBool
)

func (k ArgKind) String() string {
	switch k {
	case ArgString:
		return "string"
	case ArgNumber:
		return "number"
	case ArgBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Arg is one parsed attribute argument.
type Arg struct {
	Kind ArgKind
	Str  string
	Num  int64
	Bool bool
}

func StringArg(s string) Arg { return Arg{Kind: ArgString, Str: s} }
func NumberArg(n int64) Arg  { return Arg{Kind: ArgNumber, Num: n} }
func BoolArg(b bool) Arg     { return Arg{Kind: ArgBool, Bool: b} }

func (a Arg) String() string {
	switch a.Kind {
	case ArgNumber:
		return strconv.FormatInt(a.Num, 10)
	case ArgBool:
		return strconv.FormatBool(a.Bool)
	default:
		return a.Str
	}
}

// item is either a key (before the argument list) or an argument.
type item struct {
	key   string
	isKey bool
	arg   Arg
}

// parseString consumes a run of characters, minus signs and digits.
func parseString(tokens []token, pos int) (int, string) {
	var b strings.Builder
	for pos < len(tokens) {
		t := tokens[pos]
		if t.kind != tokenChar && t.kind != tokenMinus && t.kind != tokenDigit {
			break
		}
		b.WriteRune(t.r)
		pos++
	}
	return pos, b.String()
}

// parseNumber consumes a run of digits. ok is false when no digit is found
// or the run overflows.
func parseNumber(tokens []token, pos int) (int, int64, bool) {
	start := pos
	for pos < len(tokens) && tokens[pos].kind == tokenDigit {
		pos++
	}
	if pos == start {
		return pos, 0, false
	}
	var b strings.Builder
	for _, t := range tokens[start:pos] {
		b.WriteRune(t.r)
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return pos, 0, false
	}
	return pos, n, true
}

func parse(tokens []token) ([]item, error) {
	var out []item
	pos := 0
	withinArgs := false
	for pos < len(tokens) {
		switch tokens[pos].kind {
		case tokenParen:
			pos++
			withinArgs = true
		case tokenComma, tokenSpace:
			pos++
		case tokenMinus:
			next, n, ok := parseNumber(tokens, pos+1)
			if !ok {
				return nil, fmt.Errorf("failed to parse minus at pos %d", pos)
			}
			pos = next
			out = append(out, item{arg: NumberArg(-n)})
		case tokenDigit:
			next, n, ok := parseNumber(tokens, pos)
			if !ok {
				return nil, fmt.Errorf("failed to parse number at pos %d", pos)
			}
			pos = next
			out = append(out, item{arg: NumberArg(n)})
		case tokenChar:
			next, s := parseString(tokens, pos)
			pos = next
			if s == "true" || s == "false" {
				out = append(out, item{arg: BoolArg(s == "true")})
			} else if withinArgs {
				out = append(out, item{arg: StringArg(s)})
			} else {
				out = append(out, item{key: s, isKey: true})
			}
		}
	}
	return out, nil
}
