// Package diag implements the error taxonomy from spec.md 7: ParseError,
// EvalError, BadBoxedCast (a specialisation of EvalError), and
// DispatchError. It also renders them with a source line and a caret under
// the offending column, the way CWBudde-go-dws/internal/errors formats
// compiler diagnostics.
package diag

import (
	"fmt"
	"strings"

	"github.com/glint-lang/glint/internal/types"
)

// Position is a 1-based line/column pair used in error messages; the AST
// itself keeps 0-based spans per spec.md 6.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// ParseError reports malformed source. Non-recoverable within a single
// parse: the parser stops at the first one.
type ParseError struct {
	Pos    Position
	Reason string
	Source string
}

func (e *ParseError) Error() string {
	return formatMessage("parse error", e.Pos, e.Reason, e.Source, false)
}

// Format renders the error with a source line and caret, optionally
// colorized with ANSI escapes (gated by the caller on isatty).
func (e *ParseError) Format(color bool) string {
	return formatMessage("parse error", e.Pos, e.Reason, e.Source, color)
}

// EvalError reports a runtime failure: unbound identifier, bad cast,
// dispatch failure, arity mismatch, non-loop break, or division by zero.
type EvalError struct {
	Pos    Position
	Reason string
	Source string
}

func (e *EvalError) Error() string {
	return formatMessage("eval error", e.Pos, e.Reason, e.Source, false)
}

func (e *EvalError) Format(color bool) string {
	return formatMessage("eval error", e.Pos, e.Reason, e.Source, color)
}

// BadBoxedCast is raised when cast<T>(b) is requested but the stored type
// does not match T. It is a specialisation of EvalError: it embeds one so
// that errors.As(err, *EvalError) also matches, and surfaces directly from
// internal/box's extractors without needing a source position at
// construction time (the evaluator attaches one when it wraps the error).
type BadBoxedCast struct {
	EvalError
	From types.ID
	To   types.ID
}

func NewBadBoxedCast(from, to types.ID) *BadBoxedCast {
	return &BadBoxedCast{
		EvalError: EvalError{Reason: fmt.Sprintf("bad boxed cast: from %s to %s", from.Name(), to.Name())},
		From:      from,
		To:        to,
	}
}

func (e *BadBoxedCast) Error() string {
	return e.EvalError.Error()
}

// Unwrap exposes the embedded EvalError to errors.As/errors.Is.
func (e *BadBoxedCast) Unwrap() error {
	return &e.EvalError
}

// WithPos returns a copy of the cast error carrying a source position and
// the offending source text, for when the evaluator attaches location
// information to an error raised deeper in internal/box.
func (e *BadBoxedCast) WithPos(pos Position, source string) *BadBoxedCast {
	cp := *e
	cp.Pos = pos
	cp.Source = source
	return &cp
}

// DispatchError is raised when no overload matches a call's argument list.
// It carries the name and the observed argument type identities.
type DispatchError struct {
	EvalError
	Name      string
	ArgTypes  []types.ID
}

func NewDispatchError(name string, argTypes []types.ID) *DispatchError {
	names := make([]string, len(argTypes))
	for i, t := range argTypes {
		names[i] = t.Name()
	}
	return &DispatchError{
		EvalError: EvalError{Reason: fmt.Sprintf("no matching overload for %s(%s)", name, strings.Join(names, ", "))},
		Name:      name,
		ArgTypes:  argTypes,
	}
}

func (e *DispatchError) Error() string {
	return e.EvalError.Error()
}

func (e *DispatchError) WithPos(pos Position, source string) *DispatchError {
	cp := *e
	cp.Pos = pos
	cp.Source = source
	return &cp
}

func formatMessage(kind string, pos Position, reason, source string, color bool) string {
	var sb strings.Builder

	if pos.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", kind, pos.File, pos.Line, pos.Column)
	} else if pos.Line != 0 {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", kind, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s\n", kind)
	}

	if line := sourceLine(source, pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+max(pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(reason)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
