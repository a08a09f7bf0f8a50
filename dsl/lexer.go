package dsl

import (
	"strconv"
	"strings"
)

// Lexer tokenizes DSL source line by line, emitting indentation changes
// as explicit INDENT/DEDENT markers. It never fails: unrecognized input
// is silently dropped and all hard-error reporting happens downstream.
type Lexer struct {
	lines   []string
	indents []int
}

// NewLexer creates a lexer for the given source.
func NewLexer(source string) *Lexer {
	return &Lexer{
		lines:   strings.Split(source, "\n"),
		indents: []int{0},
	}
}

// Tokenize returns the full ordered token sequence, ending in EOF.
func Tokenize(source string) []Token {
	return NewLexer(source).Tokenize()
}

func (l *Lexer) Tokenize() []Token {
	var tokens []Token

	for lineno, line := range l.lines {
		stripped := strings.TrimLeft(line, " \t")

		// Blank and comment-only lines contribute no tokens at all.
		if stripped == "" || strings.HasPrefix(stripped, "//") {
			continue
		}

		indent := len(line) - len(stripped)
		tokens = l.handleIndent(tokens, indent, lineno)
		tokens = l.scanLine(tokens, stripped, lineno)
		tokens = append(tokens, Token{Type: TokenNewline, Text: "\n", Line: lineno, Col: len(line)})
	}

	last := len(l.lines) - 1
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		tokens = append(tokens, Token{Type: TokenDedent, Line: last})
	}
	tokens = append(tokens, Token{Type: TokenEOF, Line: last})
	return tokens
}

// handleIndent compares the line's leading-whitespace width against the
// indent stack. A width between two stack levels is accepted as equal
// to whatever level popping stops at; this leniency is deliberate.
func (l *Lexer) handleIndent(tokens []Token, indent, line int) []Token {
	top := l.indents[len(l.indents)-1]
	if indent > top {
		l.indents = append(l.indents, indent)
		return append(tokens, Token{Type: TokenIndent, Line: line})
	}
	for indent < l.indents[len(l.indents)-1] {
		l.indents = l.indents[:len(l.indents)-1]
		tokens = append(tokens, Token{Type: TokenDedent, Line: line})
	}
	return tokens
}

func (l *Lexer) scanLine(tokens []Token, line string, lineno int) []Token {
	pos := 0
	for pos < len(line) {
		c := line[pos]

		if c == ' ' || c == '\t' {
			pos++
			continue
		}

		// Trailing comment discards the rest of the line.
		if c == '/' && pos+1 < len(line) && line[pos+1] == '/' {
			break
		}

		if tok, n, ok := l.matchToken(line[pos:], lineno, pos); ok {
			tokens = append(tokens, tok)
			pos += n
			continue
		}
		if n := skipLen(line[pos:]); n > 0 {
			pos += n
			continue
		}
		pos++ // unrecognized character, drop it
	}
	return tokens
}

// matchToken tries the fixed priority order: variable, color, pair,
// string, number, arrow, colon, equals, brackets, identifier.
func (l *Lexer) matchToken(s string, line, col int) (Token, int, bool) {
	if tok, n, ok := matchVar(s, line, col); ok {
		return tok, n, true
	}
	if tok, n, ok := matchColor(s, line, col); ok {
		return tok, n, true
	}
	if tok, n, ok := matchPair(s, line, col); ok {
		return tok, n, true
	}
	if tok, n, ok := matchString(s, line, col); ok {
		return tok, n, true
	}
	if tok, n, ok := matchNumberToken(s, line, col); ok {
		return tok, n, true
	}
	if strings.HasPrefix(s, "->") {
		return Token{Type: TokenArrow, Text: "->", Line: line, Col: col}, 2, true
	}
	switch s[0] {
	case ':':
		return Token{Type: TokenColon, Text: ":", Line: line, Col: col}, 1, true
	case '=':
		return Token{Type: TokenEquals, Text: "=", Line: line, Col: col}, 1, true
	case '[':
		return Token{Type: TokenLBracket, Text: "[", Line: line, Col: col}, 1, true
	case ']':
		return Token{Type: TokenRBracket, Text: "]", Line: line, Col: col}, 1, true
	}
	if tok, n, ok := matchIdent(s, line, col); ok {
		return tok, n, true
	}
	return Token{}, 0, false
}

// skipLen reports how many characters of an almost-token to drop, so a
// malformed color like #12 is consumed whole rather than re-lexed as an
// identifier.
func skipLen(s string) int {
	if s[0] == '#' {
		n := 1
		for n < len(s) && isHex(s[n]) {
			n++
		}
		return n
	}
	return 0
}

func matchVar(s string, line, col int) (Token, int, bool) {
	if s[0] != '$' || len(s) < 2 || !isIdentStart(s[1]) {
		return Token{}, 0, false
	}
	n := 2
	for n < len(s) && isVarChar(s[n]) {
		n++
	}
	return Token{Type: TokenVar, Text: s[:n], Line: line, Col: col}, n, true
}

// matchColor accepts '#' followed by 3, 4, 6, or 8 hex digits.
func matchColor(s string, line, col int) (Token, int, bool) {
	if s[0] != '#' {
		return Token{}, 0, false
	}
	n := 1
	for n < len(s) && isHex(s[n]) {
		n++
	}
	digits := n - 1
	switch digits {
	case 3, 4, 6, 8:
		return Token{Type: TokenColor, Text: s[:n], Line: line, Col: col}, n, true
	}
	return Token{}, 0, false
}

// matchPair accepts two signed decimals joined by ',' or 'x', with no
// intervening whitespace.
func matchPair(s string, line, col int) (Token, int, bool) {
	a := numberLen(s)
	if a == 0 || a >= len(s) {
		return Token{}, 0, false
	}
	sep := s[a]
	if sep != ',' && sep != 'x' {
		return Token{}, 0, false
	}
	b := numberLen(s[a+1:])
	if b == 0 {
		return Token{}, 0, false
	}
	x, _ := strconv.ParseFloat(s[:a], 64)
	y, _ := strconv.ParseFloat(s[a+1:a+1+b], 64)
	n := a + 1 + b
	return Token{Type: TokenPair, Text: s[:n], X: x, Y: y, Line: line, Col: col}, n, true
}

// matchString accepts single- or double-quoted text. An unterminated
// quote matches nothing; the quote character is then dropped upstream.
func matchString(s string, line, col int) (Token, int, bool) {
	q := s[0]
	if q != '"' && q != '\'' {
		return Token{}, 0, false
	}
	end := strings.IndexByte(s[1:], q)
	if end < 0 {
		return Token{}, 0, false
	}
	n := end + 2
	return Token{Type: TokenString, Text: s[1 : n-1], Line: line, Col: col}, n, true
}

func matchNumberToken(s string, line, col int) (Token, int, bool) {
	n := numberLen(s)
	if n == 0 {
		return Token{}, 0, false
	}
	v, _ := strconv.ParseFloat(s[:n], 64)
	return Token{Type: TokenNumber, Text: s[:n], Num: v, Line: line, Col: col}, n, true
}

// numberLen matches -?digits(.digits*)? and returns the matched length.
func numberLen(s string) int {
	n := 0
	if n < len(s) && s[n] == '-' {
		n++
	}
	start := n
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n == start {
		return 0
	}
	if n < len(s) && s[n] == '.' {
		n++
		for n < len(s) && isDigit(s[n]) {
			n++
		}
	}
	return n
}

func matchIdent(s string, line, col int) (Token, int, bool) {
	if !isIdentStart(s[0]) {
		return Token{}, 0, false
	}
	n := 1
	for n < len(s) && isIdentChar(s[n]) {
		n++
	}
	return Token{Type: TokenIdent, Text: s[:n], Line: line, Col: col}, n, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) || c == '-' }

func isVarChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || isDigit(c)
}
