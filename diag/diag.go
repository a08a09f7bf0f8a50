// Package diag provides structured error records for the DSL pipeline.
// Codes are grouped by category in ranges of 1000: lexer, parser,
// runtime, transport, render.
package diag

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Code is a stable integer error code.
type Code int

const (
	// Lexer errors (1000-1099). The lexer never reports these itself;
	// they exist for callers that want to classify dropped input.
	LexUnknownChar Code = 1001

	// Parser errors (2000-2099)
	ParseUnexpectedToken Code = 2001
	ParseExpectedValue   Code = 2002
	ParseUndefinedVar    Code = 2003
	ParseUnknownCommand  Code = 2004
	ParseMissingBracket  Code = 2005
	ParseInvalidProperty Code = 2006
	ParseExpectedColor   Code = 2007
	ParseExpectedNumber  Code = 2008
	ParseExpectedPair    Code = 2009
	ParseExpectedString  Code = 2010
	ParseMissingEquals   Code = 2011
	ParseEmptyValue      Code = 2012

	// Runtime/evaluation errors (3000-3099)
	EvalInvalidShape    Code = 3001
	EvalMissingProperty Code = 3002
	EvalInvalidCanvas   Code = 3004

	// Transport errors (4000-4099)
	TransportInvalidMessage Code = 4001
	TransportInvalidPayload Code = 4002
	TransportConnection     Code = 4003

	// Render errors (5000-5099)
	RenderInvalidShape Code = 5001
	RenderFailed       Code = 5002
)

// Category returns the error category derived from the code range.
func (c Code) Category() string {
	switch c / 1000 {
	case 1:
		return "lexer"
	case 2:
		return "parser"
	case 3:
		return "runtime"
	case 4:
		return "transport"
	case 5:
		return "render"
	default:
		return "unknown"
	}
}

// Severity classifies how serious an error is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return "error"
	}
}

// Action is the recovery action the pipeline took for an error. Every
// error class has a defined non-fatal recovery; tests assert on which
// policy fired rather than inferring it from the absence of a crash.
type Action int

const (
	ActionNone Action = iota
	// ActionSkip drops the offending input and continues in place.
	ActionSkip
	// ActionPassThroughLiteral substitutes the literal source text for
	// an unresolvable value (undefined variable references).
	ActionPassThroughLiteral
	// ActionResumeAtNextToken advances exactly one token and resumes
	// statement dispatch.
	ActionResumeAtNextToken
)

func (a Action) String() string {
	switch a {
	case ActionSkip:
		return "skip"
	case ActionPassThroughLiteral:
		return "pass-through-literal"
	case ActionResumeAtNextToken:
		return "resume-at-next-token"
	default:
		return "none"
	}
}

// Info is a single structured error record.
type Info struct {
	Code     Code
	Message  string
	Line     int
	Column   int
	Severity Severity
	Context  string
	Recovery Action
}

// New builds an error-severity record.
func New(code Code, msg string, line, column int) Info {
	return Info{Code: code, Message: msg, Line: line, Column: column, Severity: SeverityError}
}

// WithRecovery returns a copy tagged with the recovery action taken.
func (i Info) WithRecovery(a Action) Info {
	i.Recovery = a
	return i
}

func (i Info) String() string {
	loc := ""
	if i.Line != 0 || i.Column != 0 {
		loc = fmt.Sprintf("[%d:%d] ", i.Line+1, i.Column)
	}
	return fmt.Sprintf("%sE%d: %s", loc, int(i.Code), i.Message)
}

// MarshalJSON serializes the wire shape consumed by transport clients.
func (i Info) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"code":     int(i.Code),
		"category": i.Code.Category(),
		"message":  i.Message,
		"line":     i.Line,
		"column":   i.Column,
		"severity": i.Severity.String(),
	}
	if i.Context != "" {
		m["context"] = i.Context
	}
	return json.Marshal(m)
}

// List is an ordered, append-only error collection.
type List []Info

// HasFatal reports whether any error is fatal.
func (l List) HasFatal() bool {
	for _, e := range l {
		if e.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// ToResponse returns a list safe to marshal into a wire frame: a nil
// list becomes an empty one so clients always see an errors array.
func (l List) ToResponse() List {
	if l == nil {
		return List{}
	}
	return l
}

// Summary joins all errors into a single readable line.
func (l List) Summary() string {
	if len(l) == 0 {
		return "No errors"
	}
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
