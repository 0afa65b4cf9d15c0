package eval

import (
	"testing"

	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/symtab"
)

func TestConstantEvaluation(t *testing.T) {
	got, err := Evaluate(expr.Int(5), Env{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5.0 {
		t.Errorf("Evaluate(5) = %v, want 5", got)
	}
}

func TestUnboundVariableIsUnevaluable(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	_, err := Evaluate(expr.NewVar(x), Env{})
	if err != ErrUnevaluable {
		t.Errorf("Evaluate(unbound x) = %v, want ErrUnevaluable", err)
	}
}

func TestArithmeticEvaluation(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	// x^2 + 2x + 1 at x=3 should be 16.
	e := expr.Add(
		expr.Pow(expr.NewVar(x), expr.Int(2)),
		expr.Add(expr.Mul(expr.Int(2), expr.NewVar(x)), expr.Int(1)),
	)
	got, err := Evaluate(e, Env{x: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 16 {
		t.Errorf("Evaluate(x^2+2x+1 @ x=3) = %v, want 16", got)
	}
}

func TestDivisionByZeroIsUnevaluable(t *testing.T) {
	_, err := Evaluate(expr.Div(expr.Int(1), expr.Int(0)), Env{})
	if err != ErrUnevaluable {
		t.Errorf("Evaluate(1/0) = %v, want ErrUnevaluable", err)
	}
}

func TestSqrtOfNegativeIsUnevaluable(t *testing.T) {
	_, err := Evaluate(expr.Sqrt(expr.Int(-1)), Env{})
	if err != ErrUnevaluable {
		t.Errorf("Evaluate(sqrt(-1)) = %v, want ErrUnevaluable", err)
	}
}

func TestFactorialOverflowBound(t *testing.T) {
	_, err := Evaluate(expr.Factorial(expr.Int(21)), Env{})
	if err != ErrUnevaluable {
		t.Errorf("Evaluate(21!) = %v, want ErrUnevaluable", err)
	}
	got, err := Evaluate(expr.Factorial(expr.Int(5)), Env{})
	if err != nil || got != 120 {
		t.Errorf("Evaluate(5!) = %v, %v, want 120, nil", got, err)
	}
}

func TestDerivativeIsUnevaluable(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	_, err := Evaluate(expr.NewDerivative(expr.NewVar(x), x), Env{x: 1})
	if err != ErrUnevaluable {
		t.Errorf("Evaluate(d/dx x) = %v, want ErrUnevaluable", err)
	}
}

func TestSummationBoundedRange(t *testing.T) {
	tab := symtab.New()
	i := tab.Intern("i")

	// sum_{i=1}^{5} i = 15
	s := expr.NewSummation(i, expr.Int(1), expr.Int(5), expr.NewVar(i))
	got, err := Evaluate(s, Env{})
	if err != nil || got != 15 {
		t.Errorf("Evaluate(sum i=1..5 i) = %v, %v, want 15, nil", got, err)
	}
}

func TestSummationExceedingRangeIsUnevaluable(t *testing.T) {
	tab := symtab.New()
	i := tab.Intern("i")

	s := expr.NewSummation(i, expr.Int(1), expr.Int(2000), expr.NewVar(i))
	if _, err := Evaluate(s, Env{}); err != ErrUnevaluable {
		t.Errorf("Evaluate(sum with span>1000) should be unevaluable, got %v", err)
	}
}

func TestGCDLCM(t *testing.T) {
	got, err := Evaluate(expr.GCD(expr.Int(12), expr.Int(18)), Env{})
	if err != nil || got != 6 {
		t.Errorf("Evaluate(gcd(12,18)) = %v, %v, want 6, nil", got, err)
	}
	got, err = Evaluate(expr.LCM(expr.Int(4), expr.Int(6)), Env{})
	if err != nil || got != 12 {
		t.Errorf("Evaluate(lcm(4,6)) = %v, %v, want 12, nil", got, err)
	}
}

func TestApproxEqualCommutativeAdd(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	a := expr.Add(expr.NewVar(x), expr.Int(1))
	b := expr.Add(expr.Int(1), expr.NewVar(x))
	if !ApproxEqual(a, b, 10, 1e-10, 42) {
		t.Error("x+1 and 1+x should be approximately equal")
	}
}

func TestApproxEqualDetectsDifference(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")

	a := expr.Add(expr.NewVar(x), expr.Int(1))
	b := expr.Add(expr.NewVar(x), expr.Int(2))
	if ApproxEqual(a, b, 10, 1e-10, 42) {
		t.Error("x+1 and x+2 should not be approximately equal")
	}
}

func TestApproxEqualVacuousWhenBothUnevaluable(t *testing.T) {
	tab := symtab.New()
	x := tab.Intern("x")
	a := expr.NewDerivative(expr.NewVar(x), x)
	b := expr.NewDerivative(expr.NewVar(x), x)
	if !ApproxEqual(a, b, 5, 1e-10, 7) {
		t.Error("both sides always unevaluable should be vacuously equal")
	}
}
