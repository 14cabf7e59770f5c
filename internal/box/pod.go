package box

import (
	"reflect"

	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/types"
)

// pod is the POD coercion view from spec.md 4.2: a read-only numeric
// façade over a boxed host numeric primitive, carrying either an int64 or
// a float64 plus an is-float flag. Grounded verbatim on
// original_source/boxed_value.hpp's Boxed_POD_Value, down to the
// "integer unless either operand is float" promotion rule.
type pod struct {
	i       int64
	d       float64
	isFloat bool
}

// newPOD builds a pod view from a boxed value, or fails with BadBoxedCast
// when the stored type is not one of the host numeric primitives listed in
// spec.md 4.2.
func newPOD(b Value) (pod, error) {
	if b.IsUnknown() {
		return pod{}, diag.NewBadBoxedCast(b.typeID, types.Unknown)
	}
	payload := b.payload
	if rv := reflect.ValueOf(payload); rv.Kind() == reflect.Ptr && !rv.IsNil() {
		payload = rv.Elem().Interface()
	}

	switch v := payload.(type) {
	case float64:
		return pod{d: v, isFloat: true}, nil
	case float32:
		return pod{d: float64(v), isFloat: true}, nil
	case bool:
		return pod{i: boolToInt64(v)}, nil
	case rune: // also matches int32 under Go's type identity
		return pod{i: int64(v)}, nil
	case byte: // also matches uint8
		return pod{i: int64(v)}, nil
	case int:
		return pod{i: int64(v)}, nil
	case int8:
		return pod{i: int64(v)}, nil
	case int16:
		return pod{i: int64(v)}, nil
	case int64:
		return pod{i: v}, nil
	case uint:
		return pod{i: int64(v)}, nil
	case uint16:
		return pod{i: int64(v)}, nil
	case uint32:
		return pod{i: int64(v)}, nil
	case uint64:
		return pod{i: int64(v)}, nil
	default:
		return pod{}, diag.NewBadBoxedCast(b.typeID, types.Unknown)
	}
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// box re-boxes the pod result: integer type when both inputs were
// integral, otherwise double, per spec.md 4.2.
func (p pod) box(c *Cache) Value {
	if p.isFloat {
		return c.Wrap(p.d)
	}
	return c.Wrap(p.i)
}

// IsNumeric reports whether b's stored type qualifies for the POD view,
// without raising BadBoxedCast - used by the If/While condition coercion
// in internal/eval.
func IsNumeric(b Value) bool {
	_, err := newPOD(b)
	return err == nil
}

// Truthy coerces a boxed bool/integral value to a Go bool, per spec.md
// 4.5's If/While condition coercion "via POD view over bool/integral".
func Truthy(b Value) (bool, error) {
	p, err := newPOD(b)
	if err != nil {
		return false, err
	}
	if p.isFloat {
		return p.d != 0, nil
	}
	return p.i != 0, nil
}

// Add, Sub, Mul, Div implement the four arithmetic operators {+, -, *, /}
// over the POD view: promote to double iff either operand is float,
// otherwise integer semantics with truncating integer division.
func Add(c *Cache, a, b Value) (Value, error) { return arith(c, a, b, opAdd) }
func Sub(c *Cache, a, b Value) (Value, error) { return arith(c, a, b, opSub) }
func Mul(c *Cache, a, b Value) (Value, error) { return arith(c, a, b, opMul) }

// Div divides a by b. Division by zero over integral operands raises
// EvalError "division by zero" (per SPEC_FULL.md 5) rather than letting
// Go's integer division panic.
func Div(c *Cache, a, b Value) (Value, error) {
	pa, err := newPOD(a)
	if err != nil {
		return Void, err
	}
	pb, err := newPOD(b)
	if err != nil {
		return Void, err
	}
	if pa.isFloat || pb.isFloat {
		return c.Wrap(toFloat(pa) / toFloat(pb)), nil
	}
	if pb.i == 0 {
		return Void, &diag.EvalError{Reason: "division by zero"}
	}
	return c.Wrap(pa.i / pb.i), nil
}

// Neg implements unary minus over the POD view, used by the evaluator's
// Negate node alongside the binary arithmetic operators.
func Neg(c *Cache, a Value) (Value, error) {
	pa, err := newPOD(a)
	if err != nil {
		return Void, err
	}
	if pa.isFloat {
		return c.Wrap(-pa.d), nil
	}
	return c.Wrap(-pa.i), nil
}

// Mod implements integral modulo; internal/stdlib registers it as the "%"
// overload.
func Mod(c *Cache, a, b Value) (Value, error) {
	pa, err := newPOD(a)
	if err != nil {
		return Void, err
	}
	pb, err := newPOD(b)
	if err != nil {
		return Void, err
	}
	if pa.isFloat || pb.isFloat {
		return Void, diag.NewBadBoxedCast(a.typeID, types.Unknown)
	}
	if pb.i == 0 {
		return Void, &diag.EvalError{Reason: "division by zero"}
	}
	return c.Wrap(pa.i % pb.i), nil
}

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
)

func arith(c *Cache, a, b Value, op arithOp) (Value, error) {
	pa, err := newPOD(a)
	if err != nil {
		return Void, err
	}
	pb, err := newPOD(b)
	if err != nil {
		return Void, err
	}
	if pa.isFloat || pb.isFloat {
		x, y := toFloat(pa), toFloat(pb)
		var r float64
		switch op {
		case opAdd:
			r = x + y
		case opSub:
			r = x - y
		case opMul:
			r = x * y
		}
		return c.Wrap(r), nil
	}
	var r int64
	switch op {
	case opAdd:
		r = pa.i + pb.i
	case opSub:
		r = pa.i - pb.i
	case opMul:
		r = pa.i * pb.i
	}
	return c.Wrap(r), nil
}

func toFloat(p pod) float64 {
	if p.isFloat {
		return p.d
	}
	return float64(p.i)
}

// Compare implements the six comparison operators by promoting to double
// iff either side is float, otherwise comparing as int64.
func Compare(a, b Value) (int, error) {
	pa, err := newPOD(a)
	if err != nil {
		return 0, err
	}
	pb, err := newPOD(b)
	if err != nil {
		return 0, err
	}
	if pa.isFloat || pb.isFloat {
		x, y := toFloat(pa), toFloat(pb)
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		default:
			return 0, nil
		}
	}
	switch {
	case pa.i < pb.i:
		return -1, nil
	case pa.i > pb.i:
		return 1, nil
	default:
		return 0, nil
	}
}
