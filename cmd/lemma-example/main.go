// Package main demonstrates basic usage of the symbolic reasoning engine.
package main

import (
	"context"
	"fmt"

	"github.com/gitrdm/lemma"
	"github.com/gitrdm/lemma/internal/expr"
)

func main() {
	fmt.Println("=== Lemma Examples ===")
	fmt.Println()

	simplifyExample()
	differentiateExample()
	solveLinearExample()
	solveQuadraticExample()
	proveExample()
}

// simplifyExample demonstrates reducing an arithmetic expression to its
// canonical, locally-minimal form.
func simplifyExample() {
	fmt.Println("1. Simplify:")

	e := lemma.New()
	problem := expr.Add(expr.Mul(expr.Int(2), expr.Int(3)), expr.Int(4))

	sol := e.Simplify(context.Background(), problem)
	fmt.Printf("   2*3 + 4 => %v (verified: %v)\n", sol.Result, sol.Verified)
	fmt.Println()
}

// differentiateExample demonstrates symbolic differentiation.
func differentiateExample() {
	fmt.Println("2. Differentiate:")

	e := lemma.New()
	x := e.Table.Intern("x")
	// d/dx[x^2]
	problem := expr.Pow(expr.NewVar(x), expr.Int(2))

	sol := e.Differentiate(context.Background(), problem, x)
	fmt.Printf("   d/dx[x^2] => %v\n", sol.Result)
	fmt.Println()
}

// solveLinearExample demonstrates isolating a variable in a linear
// equation.
func solveLinearExample() {
	fmt.Println("3. Solve (linear):")

	e := lemma.New()
	x := e.Table.Intern("x")
	eq := expr.NewEquation(expr.Add(expr.Mul(expr.Int(2), expr.NewVar(x)), expr.Int(3)), expr.Int(7))

	solutions := e.SolveFor(context.Background(), eq, x)
	for _, sol := range solutions {
		fmt.Printf("   2x + 3 = 7  =>  %v\n", sol.Result)
	}
	fmt.Println()
}

// solveQuadraticExample demonstrates returning every real root.
func solveQuadraticExample() {
	fmt.Println("4. Solve (quadratic):")

	e := lemma.New()
	x := e.Table.Intern("x")
	// x^2 - 5x + 6 = 0
	eq := expr.NewEquation(
		expr.Add(expr.Sub(expr.Pow(expr.NewVar(x), expr.Int(2)), expr.Mul(expr.Int(5), expr.NewVar(x))), expr.Int(6)),
		expr.Int(0),
	)

	solutions := e.SolveFor(context.Background(), eq, x)
	fmt.Printf("   x^2 - 5x + 6 = 0  =>  %d root(s)\n", len(solutions))
	for _, sol := range solutions {
		fmt.Printf("     %v\n", sol.Result)
	}
	fmt.Println()
}

// proveExample demonstrates the proof orchestrator discharging a goal by
// induction.
func proveExample() {
	fmt.Println("5. Prove:")

	e := lemma.New()
	n := e.Table.Intern("n")
	goal := expr.NewForAll(n, nil, expr.Gte(expr.NewVar(n), expr.Int(0)))

	res := e.Prove(context.Background(), goal)
	fmt.Printf("   forall n. n >= 0  =>  success: %v\n", res.Success)
	for _, step := range res.Steps {
		fmt.Printf("     [%s] %s\n", step.Strategy, step.Justification)
	}
	fmt.Println()
}
