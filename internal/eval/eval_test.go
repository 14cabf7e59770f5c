package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/eval"
	"github.com/glint-lang/glint/internal/parser"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/scope"
	"github.com/glint-lang/glint/internal/stdlib"
)

// run parses and evaluates src end to end over a freshly bootstrapped
// engine, the same pipeline pkg/glint.Engine wires together.
func run(t *testing.T, src string) (box.Value, error) {
	t.Helper()
	n, err := parser.Parse("test.gl", src)
	require.NoError(t, err)

	reg := registry.New()
	cache := box.NewCache()
	stdlib.Bootstrap(reg, cache)
	sc := scope.New(cache)
	ev := eval.New(reg, cache, sc, "test.gl", src)
	return ev.EvalProgram(n)
}

func TestArithmetic(t *testing.T) {
	v, err := run(t, "2 + 3 * 4;")
	require.NoError(t, err)
	require.Equal(t, "14", v.String())
}

func TestVarAndAssign(t *testing.T) {
	v, err := run(t, `
		var x = 10;
		x += 5;
		x;
	`)
	require.NoError(t, err)
	require.Equal(t, "15", v.String())
}

func TestIfElse(t *testing.T) {
	v, err := run(t, `
		var x = 7;
		if (x > 5) {
			"big";
		} else {
			"small";
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "big", v.String())
}

func TestWhileLoop(t *testing.T) {
	v, err := run(t, `
		var i = 0;
		var sum = 0;
		while (i < 5) {
			sum += i;
			i += 1;
		}
		sum;
	`)
	require.NoError(t, err)
	require.Equal(t, "10", v.String())
}

func TestForLoopBreak(t *testing.T) {
	v, err := run(t, `
		var sum = 0;
		for (var i = 0; i < 100; i += 1) {
			if (i == 5) {
				break;
			}
			sum += i;
		}
		sum;
	`)
	require.NoError(t, err)
	require.Equal(t, "10", v.String())
}

func TestDefRecursiveFactorial(t *testing.T) {
	v, err := run(t, `
		def fact(n) {
			if (n <= 1) {
				return 1;
			}
			return n * fact(n - 1);
		}
		fact(5);
	`)
	require.NoError(t, err)
	require.Equal(t, "120", v.String())
}

func TestLambdaAssignedToVariable(t *testing.T) {
	v, err := run(t, `
		var square = fun(x) { return x * x; };
		square(7);
	`)
	require.NoError(t, err)
	require.Equal(t, "49", v.String())
}

func TestLambdaClosureCapturesOuterVariable(t *testing.T) {
	v, err := run(t, `
		def makeAdder(n) {
			return fun(x) { return x + n; };
		}
		var add10 = makeAdder(10);
		add10(32);
	`)
	require.NoError(t, err)
	require.Equal(t, "42", v.String())
}

func TestRecursiveLambdaBoundToVariable(t *testing.T) {
	v, err := run(t, `
		var fib = fun(n) {
			if (n < 2) {
				return n;
			}
			return fib(n - 1) + fib(n - 2);
		};
		fib(10);
	`)
	require.NoError(t, err)
	require.Equal(t, "55", v.String())
}

func TestInlineArrayIndexAndSize(t *testing.T) {
	v, err := run(t, `
		var xs = [1, 2, 3, 4];
		xs.size() + xs[2];
	`)
	require.NoError(t, err)
	require.Equal(t, "7", v.String())
}

func TestInlineMapInsertAndLookup(t *testing.T) {
	v, err := run(t, `
		var m = ["a": 1, "b": 2];
		m["b"];
	`)
	require.NoError(t, err)
	require.Equal(t, "2", v.String())
}

func TestValueRangeSize(t *testing.T) {
	v, err := run(t, `
		var r = 1..5;
		r.size();
	`)
	require.NoError(t, err)
	require.Equal(t, "4", v.String())
}

func TestStringConcatenation(t *testing.T) {
	v, err := run(t, `"hello" + " " + "world";`)
	require.NoError(t, err)
	require.Equal(t, "hello world", v.String())
}

func TestUndefinedVariableErrors(t *testing.T) {
	_, err := run(t, "missing;")
	require.Error(t, err)
}

func TestDivisionByZeroErrors(t *testing.T) {
	_, err := run(t, "1 / 0;")
	require.Error(t, err)
}

func TestNonLoopBreakErrors(t *testing.T) {
	_, err := run(t, "break;")
	require.Error(t, err)
}
