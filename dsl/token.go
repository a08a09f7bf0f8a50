// Package dsl implements the indentation-based visual-graphics language:
// tokenizer, AST, and recursive-descent parser with error recovery.
package dsl

import "fmt"

// TokenType identifies a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenString
	TokenPair
	TokenColor
	TokenIdent
	TokenVar
	TokenIndent
	TokenDedent
	TokenNewline
	TokenLBracket
	TokenRBracket
	TokenColon
	TokenEquals
	TokenArrow
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenPair:
		return "PAIR"
	case TokenColor:
		return "COLOR"
	case TokenIdent:
		return "IDENT"
	case TokenVar:
		return "VAR"
	case TokenIndent:
		return "INDENT"
	case TokenDedent:
		return "DEDENT"
	case TokenNewline:
		return "NEWLINE"
	case TokenLBracket:
		return "LBRACKET"
	case TokenRBracket:
		return "RBRACKET"
	case TokenColon:
		return "COLON"
	case TokenEquals:
		return "EQUALS"
	case TokenArrow:
		return "ARROW"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexeme with its decoded value and source position.
// Tokens are immutable once produced.
//
// Text carries the decoded literal: strings are unquoted, colors keep
// their '#', variable references keep their '$'. Num holds the value of
// NUMBER tokens; X and Y hold the two components of PAIR tokens.
type Token struct {
	Type TokenType
	Text string
	Num  float64
	X, Y float64
	Line int
	Col  int
}

func (t Token) String() string {
	switch t.Type {
	case TokenNumber:
		return fmt.Sprintf("Token{NUMBER %v %d:%d}", t.Num, t.Line, t.Col)
	case TokenPair:
		return fmt.Sprintf("Token{PAIR %v,%v %d:%d}", t.X, t.Y, t.Line, t.Col)
	default:
		return fmt.Sprintf("Token{%v %q %d:%d}", t.Type, t.Text, t.Line, t.Col)
	}
}
