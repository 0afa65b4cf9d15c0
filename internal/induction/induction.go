// Package induction builds the base case, inductive hypothesis, and
// inductive step goal for a universally quantified proposition (spec.md
// §4.13). Grounded on original_source/crates/mm-rules/src/induction.rs's
// InductionProof, carried as three named constructors per its
// InductionType enum (Simple/Strong/FromOne) rather than a single
// constructor plus a flag.
package induction

import (
	"github.com/gitrdm/lemma/internal/expr"
	"github.com/gitrdm/lemma/internal/symtab"
)

// Kind selects which induction principle a Proof applies (spec.md §4.13:
// "simple, strong, and from-one variants").
type Kind int

const (
	Simple Kind = iota
	Strong
	FromOne
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "mathematical induction"
	case Strong:
		return "strong induction"
	case FromOne:
		return "mathematical induction (from n=1)"
	default:
		return "unknown induction"
	}
}

// Proof holds the pieces of an induction proof over Property, a
// proposition with one free variable Var.
type Proof struct {
	Property expr.Expr
	Var      symtab.ID
	Kind     Kind

	// KVar is the fresh variable used by the inductive hypothesis and step
	// (spec.md §4.13: "freshness guaranteed by a monotonic counter" — see
	// symtab.Table.Fresh).
	KVar symtab.ID

	// JVar is the fresh bound variable of the strong-induction hypothesis
	// ∀j<k. P(j). Unused (zero value) for Simple and FromOne.
	JVar symtab.ID
}

// NewSimple builds a simple-induction proof from ∀var. body.
func NewSimple(goal *expr.ForAll, tab *symtab.Table) *Proof {
	return newProof(goal, Simple, tab)
}

// NewStrong builds a strong-induction proof from ∀var. body.
func NewStrong(goal *expr.ForAll, tab *symtab.Table) *Proof {
	return newProof(goal, Strong, tab)
}

// NewFromOne builds an induction-from-one proof from ∀var. body.
func NewFromOne(goal *expr.ForAll, tab *symtab.Table) *Proof {
	return newProof(goal, FromOne, tab)
}

func newProof(goal *expr.ForAll, kind Kind, tab *symtab.Table) *Proof {
	p := &Proof{
		Property: goal.Body,
		Var:      goal.Var,
		Kind:     kind,
		KVar:     tab.Fresh("k"),
	}
	if kind == Strong {
		p.JVar = tab.Fresh("j")
	}
	return p
}

// BaseCase substitutes the base value (0, or 1 for FromOne) for Var
// (spec.md §4.13: "substitute n = 0 (or n = 1...)").
func (p *Proof) BaseCase() expr.Expr {
	base := expr.Int(0)
	if p.Kind == FromOne {
		base = expr.Int(1)
	}
	return expr.Substitute(p.Property, p.Var, base)
}

// InductiveHypothesis returns P(k) for Simple/FromOne, or ∀j<k. P(j) for
// Strong (spec.md §4.13). The strong form names its own bound variable j,
// distinct from k, rather than reusing k as both the outer and bound
// variable — original_source's own Strong case aliases them into an
// always-false Lt(k, k) domain, which this proof corrects by introducing
// JVar.
func (p *Proof) InductiveHypothesis() expr.Expr {
	if p.Kind == Strong {
		body := expr.Substitute(p.Property, p.Var, expr.NewVar(p.JVar))
		domain := expr.Lt(expr.NewVar(p.JVar), expr.NewVar(p.KVar))
		return expr.NewForAll(p.JVar, domain, body)
	}
	return expr.Substitute(p.Property, p.Var, expr.NewVar(p.KVar))
}

// InductiveStepGoal returns P(k+1) (spec.md §4.13: "substitute k+1").
func (p *Proof) InductiveStepGoal() expr.Expr {
	kPlusOne := expr.Add(expr.NewVar(p.KVar), expr.Int(1))
	return expr.Substitute(p.Property, p.Var, kPlusOne)
}

// InductiveStepImplication returns the hypothesis → step-goal implication
// a caller verifies to discharge the inductive step.
func (p *Proof) InductiveStepImplication() expr.Expr {
	return expr.Implies(p.InductiveHypothesis(), p.InductiveStepGoal())
}

// Justification renders a natural-language proof summary once base and
// step justifications are known.
func (p *Proof) Justification(baseJustification, stepJustification string) string {
	return "By " + p.Kind.String() + ":\n  Base case: " + baseJustification +
		"\n  Inductive step: " + stepJustification
}
